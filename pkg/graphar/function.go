// Package graphar exposes GraphAr vertex collections as a parallel table
// function. Binding resolves the schema and compiles one setter per output
// column; scanning claims disjoint row ranges through an atomic cursor so that
// any number of callers can share one execution.
package graphar

import (
	"log/slog"

	"github.com/bisegni/grapharscan/pkg/database"
	"github.com/bisegni/grapharscan/pkg/graph"
)

const (
	FunctionName    = "GRAPHAR_SCAN"
	OptionTableName = "table_name"
	OptionBatchSize = "batch_size"
)

// Observer is notified of scan activity. Calls come from scanning goroutines
// and must be safe for concurrent use.
type Observer interface {
	ExecutionStarted(table string, rows int64)
	BatchClaimed(table string, rows int)
	ScanFailed(table string)
}

type nopObserver struct{}

func (nopObserver) ExecutionStarted(string, int64) {}
func (nopObserver) BatchClaimed(string, int)       {}
func (nopObserver) ScanFailed(string)              {}

type scanFunction struct {
	store     graph.Store
	logger    *slog.Logger
	observer  Observer
	factories map[database.ScalarKind]setterFactory
}

type Option func(*scanFunction)

func WithLogger(l *slog.Logger) Option {
	return func(f *scanFunction) {
		if l != nil {
			f.logger = l
		}
	}
}

func WithObserver(o Observer) Option {
	return func(f *scanFunction) {
		if o != nil {
			f.observer = o
		}
	}
}

func withSetterFactories(m map[database.ScalarKind]setterFactory) Option {
	return func(f *scanFunction) {
		f.factories = m
	}
}

// NewScanFunction returns GRAPHAR_SCAN(path, table_name := ...) reading from store.
func NewScanFunction(store graph.Store, opts ...Option) *database.TableFunction {
	f := &scanFunction{
		store:     store,
		logger:    slog.Default(),
		observer:  nopObserver{},
		factories: setterFactories,
	}
	for _, opt := range opts {
		opt(f)
	}
	return &database.TableFunction{
		Name:            FunctionName,
		Parameters:      []database.ScalarKind{database.KindText},
		RequiredOptions: []string{OptionTableName},
		Bind:            f.bind,
		InitSharedState: f.initSharedState,
		Scan:            Scan,
	}
}

// Register adds GRAPHAR_SCAN to catalog.
func Register(catalog *database.Catalog, store graph.Store, opts ...Option) {
	catalog.RegisterFunction(NewScanFunction(store, opts...))
}
