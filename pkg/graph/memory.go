package graph

import (
	"fmt"
	"sync"
	"time"
)

// MemoryStore keeps graphs in memory, keyed by the path they are loaded from.
type MemoryStore struct {
	mu     sync.RWMutex
	graphs map[string]*memoryGraph
}

type memoryGraph struct {
	info *GraphInfo
	rows map[string][]map[string]interface{}
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{graphs: make(map[string]*memoryGraph)}
}

// AddGraph registers metadata under path.
func (s *MemoryStore) AddGraph(path string, info *GraphInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graphs[path] = &memoryGraph{info: info, rows: make(map[string][]map[string]interface{})}
}

// SetRows replaces the vertices of a vertex type. Values must have the Go type
// matching the property type (int64 for int64, time.Time for date, ...); nil is NULL.
func (s *MemoryStore) SetRows(path, table string, rows []map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.graphs[path]
	if !ok {
		return fmt.Errorf("%w: no graph at %s", ErrLoad, path)
	}
	if _, err := g.info.VertexInfo(table); err != nil {
		return err
	}
	g.rows[table] = rows
	return nil
}

func (s *MemoryStore) LoadMetadata(path string) (Metadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.graphs[path]
	if !ok {
		return nil, fmt.Errorf("%w: no graph at %s", ErrLoad, path)
	}
	return g.info, nil
}

func (s *MemoryStore) OpenCollection(meta Metadata, table string) (Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, g := range s.graphs {
		if g.info != meta {
			continue
		}
		v, err := g.info.VertexInfo(table)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrOpen, err)
		}
		types := make(map[string]Type)
		for _, p := range v.Properties() {
			types[p.Name] = p.Type
		}
		return &memoryCollection{table: table, types: types, rows: g.rows[table]}, nil
	}
	return nil, fmt.Errorf("%w: graph '%s' is not held by this store", ErrOpen, meta.Name())
}

// memoryCollection is a snapshot of the rows at open time.
type memoryCollection struct {
	table string
	types map[string]Type
	rows  []map[string]interface{}
}

func (c *memoryCollection) Size() int64 {
	return int64(len(c.rows))
}

func (c *memoryCollection) At(index int64) Vertex {
	return &memoryVertex{c: c, index: index}
}

type memoryVertex struct {
	c     *memoryCollection
	index int64
}

func memoryValue[T any](v *memoryVertex, name string, want Type) (T, bool, error) {
	var zero T
	typ, ok := v.c.types[name]
	if !ok {
		return zero, false, fmt.Errorf("%w: '%s' on vertex '%s'", ErrMissingProperty, name, v.c.table)
	}
	if typ != want {
		return zero, false, fmt.Errorf("%w: '%s' is %s, read as %s", ErrTypeMismatch, name, typ, want)
	}
	if v.index < 0 || v.index >= int64(len(v.c.rows)) {
		return zero, false, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, v.index, len(v.c.rows))
	}
	raw, ok := v.c.rows[v.index][name]
	if !ok {
		return zero, false, fmt.Errorf("%w: '%s' on vertex %d of '%s'", ErrMissingProperty, name, v.index, v.c.table)
	}
	if raw == nil {
		return zero, false, nil
	}
	val, ok := raw.(T)
	if !ok {
		return zero, false, fmt.Errorf("%w: '%s' holds %T, read as %s", ErrTypeMismatch, name, raw, want)
	}
	return val, true, nil
}

func (v *memoryVertex) Index() int64 {
	return v.index
}

func (v *memoryVertex) Bool(name string) (bool, bool, error) {
	return memoryValue[bool](v, name, TypeBool)
}

func (v *memoryVertex) Int32(name string) (int32, bool, error) {
	return memoryValue[int32](v, name, TypeInt32)
}

func (v *memoryVertex) Int64(name string) (int64, bool, error) {
	return memoryValue[int64](v, name, TypeInt64)
}

func (v *memoryVertex) Float32(name string) (float32, bool, error) {
	return memoryValue[float32](v, name, TypeFloat)
}

func (v *memoryVertex) Float64(name string) (float64, bool, error) {
	return memoryValue[float64](v, name, TypeDouble)
}

func (v *memoryVertex) String(name string) (string, bool, error) {
	return memoryValue[string](v, name, TypeString)
}

func (v *memoryVertex) Date(name string) (time.Time, bool, error) {
	return memoryValue[time.Time](v, name, TypeDate)
}

func (v *memoryVertex) Timestamp(name string) (time.Time, bool, error) {
	return memoryValue[time.Time](v, name, TypeTimestamp)
}
