// Package graph is the read side of a GraphAr-style graph store: metadata,
// vertex collections and positional row access.
package graph

import (
	"errors"
	"time"
)

var (
	ErrLoad            = errors.New("graph metadata could not be loaded")
	ErrOpen            = errors.New("vertex collection could not be opened")
	ErrUnknownVertex   = errors.New("unknown vertex type")
	ErrMissingProperty = errors.New("missing property")
	ErrTypeMismatch    = errors.New("property type mismatch")
	ErrIndexOutOfRange = errors.New("vertex index out of range")
)

// Metadata describes the vertex types of a graph.
type Metadata interface {
	Name() string
	VertexTypes() []string
	VertexInfo(table string) (*VertexInfo, error)
}

// Store loads metadata and opens collections.
type Store interface {
	LoadMetadata(path string) (Metadata, error)
	OpenCollection(meta Metadata, table string) (Collection, error)
}

// Collection is an ordered, read-only, randomly addressable set of vertices.
// Implementations must be safe for concurrent use.
type Collection interface {
	Size() int64
	// At returns an independent accessor positioned on vertex index.
	At(index int64) Vertex
}

// Vertex reads typed properties of one vertex. The boolean result is false
// when the stored value is NULL. In CSV chunks an empty cell is NULL, unless
// the property is a string declared is_nullable: false, which reads as "".
type Vertex interface {
	Index() int64
	Bool(name string) (bool, bool, error)
	Int32(name string) (int32, bool, error)
	Int64(name string) (int64, bool, error)
	Float32(name string) (float32, bool, error)
	Float64(name string) (float64, bool, error)
	String(name string) (string, bool, error)
	Date(name string) (time.Time, bool, error)
	Timestamp(name string) (time.Time, bool, error)
}
