package graphar

import "strings"

// ColumnNotFound is returned by IndexOf for names that match no column.
const ColumnNotFound = -1

// Below this many columns a linear scan is faster than hashing.
const linearScanLimit = 24

// ColumnIndex maps output column names to their position.
type ColumnIndex struct {
	names  []string
	byName map[string]int
}

// NewColumnIndex indexes names, which must be unique.
func NewColumnIndex(names []string) *ColumnIndex {
	c := &ColumnIndex{names: append([]string(nil), names...)}
	if len(names) >= linearScanLimit {
		c.byName = make(map[string]int, len(names))
		for i, n := range names {
			c.byName[n] = i
		}
	}
	return c
}

// IndexOf returns the position of name. "from" and "to" also match the
// columns of those names case-insensitively, for compatibility with older
// edge queries.
func (c *ColumnIndex) IndexOf(name string) int {
	if i := c.exact(name); i != ColumnNotFound {
		return i
	}
	switch {
	case strings.EqualFold(name, "from"):
		return c.exact("from")
	case strings.EqualFold(name, "to"):
		return c.exact("to")
	}
	return ColumnNotFound
}

func (c *ColumnIndex) exact(name string) int {
	if c.byName == nil {
		for i, n := range c.names {
			if n == name {
				return i
			}
		}
		return ColumnNotFound
	}
	if i, ok := c.byName[name]; ok {
		return i
	}
	return ColumnNotFound
}

// Len is the number of indexed columns.
func (c *ColumnIndex) Len() int {
	return len(c.names)
}

// Names returns the indexed names in order.
func (c *ColumnIndex) Names() []string {
	return append([]string(nil), c.names...)
}
