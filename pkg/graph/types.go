package graph

import "strings"

// Type is the native data type tag of a GraphAr property.
type Type string

const (
	TypeBool      Type = "bool"
	TypeInt32     Type = "int32"
	TypeInt64     Type = "int64"
	TypeFloat     Type = "float"
	TypeDouble    Type = "double"
	TypeString    Type = "string"
	TypeDate      Type = "date"
	TypeTimestamp Type = "timestamp"
	TypeTime      Type = "time"
)

// ParseType normalizes a data_type tag as written in a vertex file.
// Unknown tags are kept verbatim so that callers can report them.
func ParseType(s string) Type {
	return Type(strings.ToLower(strings.TrimSpace(s)))
}

// IsList reports whether t is a list type such as list<int32>.
func (t Type) IsList() bool {
	return strings.HasPrefix(string(t), "list<")
}

func (t Type) String() string {
	return string(t)
}

// FileType is the storage format of a property group's chunks.
type FileType string

const (
	FileCSV     FileType = "csv"
	FileParquet FileType = "parquet"
	FileORC     FileType = "orc"
)
