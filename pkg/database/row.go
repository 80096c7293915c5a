package database

import "fmt"

// orderedRow implements Row over an OrderedMap.
type orderedRow struct {
	data OrderedMap
}

func (r *orderedRow) Get(field string) (interface{}, error) {
	v, ok := r.data.Get(field)
	if !ok {
		return nil, fmt.Errorf("column '%s' not found", field)
	}
	return v, nil
}

func (r *orderedRow) Primitive() interface{} {
	return r.data
}

// NewRow creates a new Row from column-ordered values.
func NewRow(data OrderedMap) Row {
	return &orderedRow{data: data}
}

// BatchRow materializes row i of a batch with the given column names.
func BatchRow(names []string, b *Batch, i int) Row {
	om := make(OrderedMap, len(names))
	for c, name := range names {
		om[c] = KeyVal{Key: name, Val: b.Vectors[c].Value(i)}
	}
	return NewRow(om)
}
