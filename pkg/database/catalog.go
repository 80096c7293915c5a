package database

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Catalog manages the table functions known to the engine.
// Names are case-insensitive.
type Catalog struct {
	functions map[string]*TableFunction
	mu        sync.RWMutex
}

// NewCatalog creates a new empty catalog
func NewCatalog() *Catalog {
	return &Catalog{
		functions: make(map[string]*TableFunction),
	}
}

// RegisterFunction adds a table function to the catalog, replacing any
// function with the same name.
func (c *Catalog) RegisterFunction(f *TableFunction) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.functions[strings.ToUpper(f.Name)] = f
}

// GetFunction retrieves a table function by name
func (c *Catalog) GetFunction(name string) (*TableFunction, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	f, ok := c.functions[strings.ToUpper(name)]
	if !ok {
		return nil, fmt.Errorf("table function '%s' not found", name)
	}
	return f, nil
}

// FunctionNames lists registered functions in sorted order.
func (c *Catalog) FunctionNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.functions))
	for _, f := range c.functions {
		names = append(names, f.Name)
	}
	sort.Strings(names)
	return names
}
