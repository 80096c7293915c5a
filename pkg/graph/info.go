package graph

import (
	"fmt"
	"strings"
)

// Property is one column of a vertex type.
type Property struct {
	Name       string
	Type       Type
	IsPrimary  bool
	IsNullable bool
}

// PropertyGroup is a set of properties stored together in the same chunk files.
type PropertyGroup struct {
	Properties []Property
	FileType   FileType
	Prefix     string
}

// PathPrefix returns the group prefix, defaulting to the property names joined by '_'.
func (g *PropertyGroup) PathPrefix() string {
	if g.Prefix != "" {
		return g.Prefix
	}
	names := make([]string, len(g.Properties))
	for i, p := range g.Properties {
		names[i] = p.Name
	}
	return strings.Join(names, "_") + "/"
}

// VertexInfo describes one vertex type.
type VertexInfo struct {
	Type           string
	ChunkSize      int64
	Prefix         string
	PropertyGroups []*PropertyGroup
}

// PathPrefix returns the vertex prefix, defaulting to vertex/<type>/.
func (v *VertexInfo) PathPrefix() string {
	if v.Prefix != "" {
		return v.Prefix
	}
	return "vertex/" + v.Type + "/"
}

// Properties flattens the property groups in declaration order.
func (v *VertexInfo) Properties() []Property {
	var out []Property
	for _, g := range v.PropertyGroups {
		out = append(out, g.Properties...)
	}
	return out
}

// Validate checks the invariants the scan relies on.
func (v *VertexInfo) Validate() error {
	if v.Type == "" {
		return fmt.Errorf("vertex type without a name")
	}
	if v.ChunkSize <= 0 {
		return fmt.Errorf("vertex '%s': chunk_size must be positive, got %d", v.Type, v.ChunkSize)
	}
	seen := make(map[string]bool)
	for _, p := range v.Properties() {
		if seen[p.Name] {
			return fmt.Errorf("vertex '%s': duplicate property '%s'", v.Type, p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}

// GraphInfo is the loaded metadata of a graph.
type GraphInfo struct {
	GraphName string
	Prefix    string
	Version   string

	vertices map[string]*VertexInfo
	order    []string
}

// NewGraphInfo builds metadata from vertex descriptions, preserving their order.
func NewGraphInfo(name, prefix string, vertices ...*VertexInfo) (*GraphInfo, error) {
	g := &GraphInfo{
		GraphName: name,
		Prefix:    prefix,
		vertices:  make(map[string]*VertexInfo, len(vertices)),
	}
	for _, v := range vertices {
		if err := v.Validate(); err != nil {
			return nil, err
		}
		if _, dup := g.vertices[v.Type]; dup {
			return nil, fmt.Errorf("duplicate vertex type '%s'", v.Type)
		}
		g.vertices[v.Type] = v
		g.order = append(g.order, v.Type)
	}
	return g, nil
}

func (g *GraphInfo) Name() string {
	return g.GraphName
}

// VertexTypes returns the vertex types in declaration order.
func (g *GraphInfo) VertexTypes() []string {
	return append([]string(nil), g.order...)
}

// VertexInfo returns the description of a vertex type.
func (g *GraphInfo) VertexInfo(table string) (*VertexInfo, error) {
	v, ok := g.vertices[table]
	if !ok {
		return nil, fmt.Errorf("%w: '%s' in graph '%s'", ErrUnknownVertex, table, g.GraphName)
	}
	return v, nil
}
