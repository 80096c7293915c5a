package graph

import (
	"encoding/binary"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheChunks is the number of parsed chunks a FileStore keeps in memory.
const DefaultCacheChunks = 64

const vertexCountFile = "vertex_count"

type chunkKey struct {
	dir   string
	index int64
}

// chunk is one parsed CSV chunk file of a property group.
type chunk struct {
	columns map[string]int
	rows    [][]string
}

// FileStore reads GraphAr graphs laid out on the local filesystem.
// Parsed chunks are shared by every collection opened from the same store.
type FileStore struct {
	cache  *lru.Cache[chunkKey, *chunk]
	logger *slog.Logger
}

// NewFileStore creates a store caching up to cacheChunks parsed chunks.
func NewFileStore(cacheChunks int, logger *slog.Logger) (*FileStore, error) {
	if cacheChunks <= 0 {
		cacheChunks = DefaultCacheChunks
	}
	if logger == nil {
		logger = slog.Default()
	}
	cache, err := lru.New[chunkKey, *chunk](cacheChunks)
	if err != nil {
		return nil, fmt.Errorf("failed to create chunk cache: %w", err)
	}
	return &FileStore{cache: cache, logger: logger}, nil
}

func (s *FileStore) LoadMetadata(path string) (Metadata, error) {
	return LoadGraphInfo(path)
}

func (s *FileStore) OpenCollection(meta Metadata, table string) (Collection, error) {
	info, ok := meta.(*GraphInfo)
	if !ok {
		return nil, fmt.Errorf("%w: metadata of type %T is not backed by files", ErrOpen, meta)
	}
	v, err := info.VertexInfo(table)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}

	dir := filepath.Join(info.Prefix, v.PathPrefix())
	c := &fileCollection{
		store:     s,
		vertex:    v,
		groupDirs: make([]string, len(v.PropertyGroups)),
		props:     make(map[string]propertyRef),
	}
	for gi, g := range v.PropertyGroups {
		if g.FileType != FileCSV {
			return nil, fmt.Errorf("%w: vertex '%s': file type '%s' is not supported", ErrOpen, table, g.FileType)
		}
		c.groupDirs[gi] = filepath.Join(dir, g.PathPrefix())
		for _, p := range g.Properties {
			c.props[p.Name] = propertyRef{group: gi, typ: p.Type, nullable: p.IsNullable}
		}
	}

	size, err := s.vertexCount(dir, c.groupDirs)
	if err != nil {
		return nil, fmt.Errorf("%w: vertex '%s': %v", ErrOpen, table, err)
	}
	c.size = size
	return c, nil
}

// vertexCount reads the GraphAr vertex_count file, falling back to counting
// the rows of the first property group.
func (s *FileStore) vertexCount(dir string, groupDirs []string) (int64, error) {
	data, err := os.ReadFile(filepath.Join(dir, vertexCountFile))
	switch {
	case err == nil:
		if len(data) != 8 {
			return 0, fmt.Errorf("malformed %s: %d bytes", vertexCountFile, len(data))
		}
		return int64(binary.LittleEndian.Uint64(data)), nil
	case !errors.Is(err, fs.ErrNotExist):
		return 0, err
	}

	if len(groupDirs) == 0 {
		return 0, nil
	}
	var total int64
	for k := int64(0); ; k++ {
		ck, err := s.chunk(groupDirs[0], k)
		if errors.Is(err, fs.ErrNotExist) {
			return total, nil
		}
		if err != nil {
			return 0, err
		}
		total += int64(len(ck.rows))
	}
}

func (s *FileStore) chunk(dir string, index int64) (*chunk, error) {
	key := chunkKey{dir: dir, index: index}
	if ck, ok := s.cache.Get(key); ok {
		return ck, nil
	}
	path := filepath.Join(dir, fmt.Sprintf("chunk%d", index))
	start := time.Now()
	ck, err := readChunk(path)
	if err != nil {
		return nil, err
	}
	s.cache.Add(key, ck)
	s.logger.Debug("chunk loaded", "path", path, "rows", len(ck.rows), "duration", time.Since(start))
	return ck, nil
}

func readChunk(path string) (*chunk, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err == io.EOF {
		return &chunk{columns: map[string]int{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	ck := &chunk{columns: make(map[string]int, len(header))}
	for i, name := range header {
		ck.columns[name] = i
	}
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		ck.rows = append(ck.rows, rec)
	}
	return ck, nil
}

type propertyRef struct {
	group    int
	typ      Type
	nullable bool
}

type fileCollection struct {
	store     *FileStore
	vertex    *VertexInfo
	groupDirs []string
	props     map[string]propertyRef
	size      int64
}

func (c *fileCollection) Size() int64 {
	return c.size
}

func (c *fileCollection) At(index int64) Vertex {
	return &fileVertex{c: c, index: index}
}

// cell returns the raw text of a property. An empty cell is NULL (ok=false),
// except for a non-nullable string property where it is the empty string.
func (c *fileCollection) cell(index int64, name string, want Type) (string, bool, error) {
	ref, found := c.props[name]
	if !found {
		return "", false, fmt.Errorf("%w: '%s' on vertex '%s'", ErrMissingProperty, name, c.vertex.Type)
	}
	if ref.typ != want {
		return "", false, fmt.Errorf("%w: '%s' is %s, read as %s", ErrTypeMismatch, name, ref.typ, want)
	}
	if index < 0 || index >= c.size {
		return "", false, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, c.size)
	}

	chunkSize := c.vertex.ChunkSize
	ck, err := c.store.chunk(c.groupDirs[ref.group], index/chunkSize)
	if err != nil {
		return "", false, err
	}
	col, found := ck.columns[name]
	if !found {
		return "", false, fmt.Errorf("%w: '%s' absent from chunk %d of vertex '%s'",
			ErrMissingProperty, name, index/chunkSize, c.vertex.Type)
	}
	offset := index % chunkSize
	if offset >= int64(len(ck.rows)) {
		return "", false, fmt.Errorf("%w: vertex %d beyond chunk %d of vertex '%s'",
			ErrIndexOutOfRange, index, index/chunkSize, c.vertex.Type)
	}
	s := ck.rows[offset][col]
	if s == "" {
		return "", ref.typ == TypeString && !ref.nullable, nil
	}
	return s, true, nil
}

type fileVertex struct {
	c     *fileCollection
	index int64
}

func fileValue[T any](v *fileVertex, name string, want Type, parse func(string) (T, error)) (T, bool, error) {
	var zero T
	s, ok, err := v.c.cell(v.index, name, want)
	if err != nil || !ok {
		return zero, false, err
	}
	val, err := parse(s)
	if err != nil {
		return zero, false, fmt.Errorf("%w: '%s' of vertex %d: %v", ErrTypeMismatch, name, v.index, err)
	}
	return val, true, nil
}

func (v *fileVertex) Index() int64 {
	return v.index
}

func (v *fileVertex) Bool(name string) (bool, bool, error) {
	return fileValue(v, name, TypeBool, parseBool)
}

func (v *fileVertex) Int32(name string) (int32, bool, error) {
	return fileValue(v, name, TypeInt32, parseInt32)
}

func (v *fileVertex) Int64(name string) (int64, bool, error) {
	return fileValue(v, name, TypeInt64, parseInt64)
}

func (v *fileVertex) Float32(name string) (float32, bool, error) {
	return fileValue(v, name, TypeFloat, parseFloat32)
}

func (v *fileVertex) Float64(name string) (float64, bool, error) {
	return fileValue(v, name, TypeDouble, parseFloat64)
}

func (v *fileVertex) String(name string) (string, bool, error) {
	s, ok, err := v.c.cell(v.index, name, TypeString)
	return s, ok, err
}

func (v *fileVertex) Date(name string) (time.Time, bool, error) {
	return fileValue(v, name, TypeDate, parseDate)
}

func (v *fileVertex) Timestamp(name string) (time.Time, bool, error) {
	return fileValue(v, name, TypeTimestamp, parseTimestamp)
}
