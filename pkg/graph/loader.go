package graph

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type graphFile struct {
	Name     string   `yaml:"name"`
	Prefix   string   `yaml:"prefix"`
	Vertices []string `yaml:"vertices"`
	Edges    []string `yaml:"edges"`
	Version  string   `yaml:"version"`
}

type vertexFile struct {
	Type           string              `yaml:"type"`
	ChunkSize      int64               `yaml:"chunk_size"`
	Prefix         string              `yaml:"prefix"`
	PropertyGroups []propertyGroupFile `yaml:"property_groups"`
	Version        string              `yaml:"version"`
}

type propertyGroupFile struct {
	Prefix     string         `yaml:"prefix"`
	FileType   string         `yaml:"file_type"`
	Properties []propertyFile `yaml:"properties"`
}

type propertyFile struct {
	Name       string `yaml:"name"`
	DataType   string `yaml:"data_type"`
	IsPrimary  bool   `yaml:"is_primary"`
	IsNullable *bool  `yaml:"is_nullable"`
}

// LoadGraphInfo reads a graph YAML file and every vertex file it references.
// Relative paths are resolved against the directory of the graph file, and so
// is a relative data prefix.
func LoadGraphInfo(path string) (*GraphInfo, error) {
	var gf graphFile
	if err := readYAML(path, &gf); err != nil {
		return nil, err
	}
	if gf.Name == "" {
		return nil, fmt.Errorf("%w: %s: graph name is empty", ErrLoad, path)
	}

	base := filepath.Dir(path)
	vertices := make([]*VertexInfo, 0, len(gf.Vertices))
	for _, ref := range gf.Vertices {
		v, err := loadVertexInfo(resolve(base, ref))
		if err != nil {
			return nil, err
		}
		vertices = append(vertices, v)
	}

	prefix := gf.Prefix
	if prefix == "" {
		prefix = "./"
	}
	info, err := NewGraphInfo(gf.Name, resolve(base, prefix), vertices...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoad, path, err)
	}
	info.Version = gf.Version
	return info, nil
}

func loadVertexInfo(path string) (*VertexInfo, error) {
	var vf vertexFile
	if err := readYAML(path, &vf); err != nil {
		return nil, err
	}
	v := &VertexInfo{
		Type:      vf.Type,
		ChunkSize: vf.ChunkSize,
		Prefix:    vf.Prefix,
	}
	for _, gf := range vf.PropertyGroups {
		g := &PropertyGroup{
			Prefix:   gf.Prefix,
			FileType: FileType(gf.FileType),
		}
		if g.FileType == "" {
			g.FileType = FileCSV
		}
		for _, pf := range gf.Properties {
			nullable := !pf.IsPrimary
			if pf.IsNullable != nil {
				nullable = *pf.IsNullable
			}
			g.Properties = append(g.Properties, Property{
				Name:       pf.Name,
				Type:       ParseType(pf.DataType),
				IsPrimary:  pf.IsPrimary,
				IsNullable: nullable,
			})
		}
		v.PropertyGroups = append(v.PropertyGroups, g)
	}
	if err := v.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoad, path, err)
	}
	return v, nil
}

func readYAML(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLoad, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrLoad, path, err)
	}
	return nil
}

func resolve(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
