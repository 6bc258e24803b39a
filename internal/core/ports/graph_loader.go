package ports

import "github.com/BauhouseConsortium/nirmanaflow/internal/core/domain"

// GraphLoader defines the interface for loading a graph document and its
// external assets. Parsing and image decoding live entirely on the
// collaborator side; the engine receives well-typed records.
type GraphLoader interface {
	// Load reads the graph document at the given path.
	Load(path string) (*domain.Graph, *domain.Assets, error)
}
