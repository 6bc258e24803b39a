package domain

import (
	"sort"
	"strconv"
)

// Params is a node's parameter record. The set of meaningful fields is
// determined by the node's type tag; unknown fields are ignored by
// evaluators. Values are the scalar types produced by the graph document
// loader: float64, int, int64, bool, string.
type Params map[string]any

// Clone returns a shallow copy (all values are scalars).
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Set replaces exactly one field, creating the record if needed. This is
// the engine-side half of the editor's (nodeId, field, value) mutation
// protocol.
func (p *Params) Set(field string, value any) {
	if *p == nil {
		*p = make(Params, 1)
	}
	(*p)[field] = value
}

// Float returns the field as a float64, or def when absent or not numeric.
func (p Params) Float(field string, def float64) float64 {
	switch v := p[field].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case uint64:
		return float64(v)
	default:
		return def
	}
}

// Int returns the field as an int, or def when absent or not numeric.
// Float values are truncated.
func (p Params) Int(field string, def int) int {
	switch v := p[field].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		return int(v)
	case float64:
		return int(v)
	case float32:
		return int(v)
	default:
		return def
	}
}

// String returns the field as a string, or def when absent.
func (p Params) String(field, def string) string {
	if v, ok := p[field].(string); ok {
		return v
	}
	return def
}

// Bool returns the field as a bool, or def when absent.
func (p Params) Bool(field string, def bool) bool {
	if v, ok := p[field].(bool); ok {
		return v
	}
	return def
}

// Has reports whether the field is present.
func (p Params) Has(field string) bool {
	_, ok := p[field]
	return ok
}

// CanonicalPairs returns the record as "key=value" strings in sorted key
// order with canonical scalar formatting, so that two records with equal
// content always serialize identically regardless of how they were built.
// This is the basis of the parameter fingerprint.
func (p Params) CanonicalPairs() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + canonicalValue(p[k])
	}
	return pairs
}

func canonicalValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "~"
	case string:
		return "s:" + t
	case bool:
		return "b:" + strconv.FormatBool(t)
	case int:
		return "i:" + strconv.FormatInt(int64(t), 10)
	case int64:
		return "i:" + strconv.FormatInt(t, 10)
	case uint64:
		return "i:" + strconv.FormatUint(t, 10)
	case float32:
		return "f:" + strconv.FormatFloat(float64(t), 'g', -1, 64)
	case float64:
		// Integral floats collapse to the integer form so that the YAML
		// loader's 3 and an editor patch of 3.0 fingerprint identically.
		if t == float64(int64(t)) {
			return "i:" + strconv.FormatInt(int64(t), 10)
		}
		return "f:" + strconv.FormatFloat(t, 'g', -1, 64)
	default:
		return "?:" + strconv.Quote(stringify(t))
	}
}

func stringify(v any) string {
	if s, ok := v.(interface{ String() string }); ok {
		return s.String()
	}
	return ""
}
