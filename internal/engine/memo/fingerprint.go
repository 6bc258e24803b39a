// Package memo provides content-addressed memoization for node
// evaluation. A node's cache key is its identity plus fingerprints of
// its parameters and of everything flowing into it; any upstream change
// shifts the key and the stale entry is simply never hit again.
package memo

import (
	"encoding/binary"
	"math"
	"sort"

	"github.com/cespare/xxhash/v2"

	"github.com/BauhouseConsortium/nirmanaflow/internal/core/domain"
)

// sep keeps adjacent fields from colliding ("ab"+"c" vs "a"+"bc").
const sep = "\x00"

func writeUint64(d *xxhash.Digest, v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, _ = d.Write(buf[:])
}

// ParamsFingerprint hashes the canonical key=value pairs. The canonical
// form sorts keys and collapses integral floats, so 2 and 2.0 fingerprint
// identically and map iteration order never matters.
func ParamsFingerprint(p domain.Params) uint64 {
	d := xxhash.New()
	for _, pair := range p.CanonicalPairs() {
		_, _ = d.WriteString(pair)
		_, _ = d.WriteString(sep)
	}
	return d.Sum64()
}

// NodeFingerprint hashes the node's type tag together with its canonical
// parameters. The tag keeps two nodes that share an id across documents
// but differ in type from colliding in a shared cache.
func NodeFingerprint(typeTag string, p domain.Params) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(typeTag)
	_, _ = d.WriteString(sep)
	for _, pair := range p.CanonicalPairs() {
		_, _ = d.WriteString(pair)
		_, _ = d.WriteString(sep)
	}
	return d.Sum64()
}

// PathSetFingerprint hashes the exact geometry, coordinate bit patterns
// included. Paths that differ only in point order fingerprint
// differently, which is correct: order is visible in the output.
func PathSetFingerprint(ps domain.PathSet) uint64 {
	d := xxhash.New()
	writeUint64(d, uint64(len(ps)))
	for _, path := range ps {
		writeUint64(d, uint64(len(path)))
		for _, pt := range path {
			writeUint64(d, math.Float64bits(pt.X))
			writeUint64(d, math.Float64bits(pt.Y))
		}
	}
	return d.Sum64()
}

// RasterFingerprint hashes decoded pixel data so image-fed nodes re-run
// when the underlying asset changes.
func RasterFingerprint(r *domain.Raster) uint64 {
	if r == nil {
		return 0
	}
	d := xxhash.New()
	writeUint64(d, uint64(r.Width))
	writeUint64(d, uint64(r.Height))
	for _, l := range r.Lum {
		writeUint64(d, math.Float64bits(l))
	}
	return d.Sum64()
}

// InputsFingerprint hashes the per-port upstream output fingerprints.
// Ports are visited in sorted name order; within a port the order is the
// edge order, which is semantic (multi-edge inputs concatenate in edge
// order).
func InputsFingerprint(byPort map[string][]uint64) uint64 {
	names := make([]string, 0, len(byPort))
	for name := range byPort {
		names = append(names, name)
	}
	sort.Strings(names)

	d := xxhash.New()
	for _, name := range names {
		_, _ = d.WriteString(name)
		_, _ = d.WriteString(sep)
		writeUint64(d, uint64(len(byPort[name])))
		for _, fp := range byPort[name] {
			writeUint64(d, fp)
		}
	}
	return d.Sum64()
}
