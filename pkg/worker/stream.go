// Package worker drives a table function from a bounded pool of goroutines,
// the way a host engine would, and streams the produced batches.
package worker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"

	"github.com/bisegni/grapharscan/pkg/database"
)

// Options configures a Stream.
type Options struct {
	// Workers is the number of concurrent scan loops. Defaults to GOMAXPROCS.
	Workers int
	// Capacity is the vector capacity of every batch handed to the scan.
	Capacity int
	Logger   *slog.Logger
}

// Stream delivers the batches of one execution. Batches from different
// workers arrive in no particular order.
type Stream struct {
	fn    *database.TableFunction
	bind  database.BindData
	state database.SharedState
	kinds []database.ScalarKind
	opts  Options

	pool    *ants.Pool
	batches chan *database.Batch
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	rows    atomic.Int64

	mu  sync.Mutex
	err error
}

// Start submits opts.Workers scan loops to a pool. Each loop calls fn.Scan
// until it yields no rows, fails, or ctx is done. The first error cancels the
// other loops and is returned by Next.
func Start(ctx context.Context, fn *database.TableFunction, bind database.BindData, state database.SharedState, opts Options) (*Stream, error) {
	if opts.Workers < 1 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.Capacity < 1 {
		opts.Capacity = database.DefaultVectorCapacity
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	runCtx, cancel := context.WithCancel(ctx)
	s := &Stream{
		fn:      fn,
		bind:    bind,
		state:   state,
		kinds:   bind.ColumnKinds(),
		opts:    opts,
		batches: make(chan *database.Batch, opts.Workers),
		cancel:  cancel,
	}

	pool, err := ants.NewPool(opts.Workers, ants.WithPanicHandler(func(v any) {
		s.fail(fmt.Errorf("scan worker panic: %v", v))
	}))
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}
	s.pool = pool

	for w := 0; w < opts.Workers; w++ {
		s.wg.Add(1)
		id := w
		if err := pool.Submit(func() { s.run(runCtx, id) }); err != nil {
			s.wg.Done()
			s.fail(fmt.Errorf("failed to submit scan worker: %w", err))
			break
		}
	}

	go func() {
		s.wg.Wait()
		if ctx.Err() != nil {
			s.fail(ctx.Err())
		}
		close(s.batches)
		pool.Release()
	}()
	return s, nil
}

func (s *Stream) run(ctx context.Context, id int) {
	defer s.wg.Done()
	batches := 0
	for ctx.Err() == nil {
		out := database.NewBatch(s.kinds, s.opts.Capacity)
		n, err := s.fn.Scan(s.state, s.bind, out)
		if err != nil {
			s.fail(err)
			return
		}
		if n == 0 {
			break
		}
		s.rows.Add(int64(n))
		batches++
		select {
		case s.batches <- out:
		case <-ctx.Done():
			return
		}
	}
	s.opts.Logger.Debug("scan worker finished", "function", s.fn.Name, "worker", id, "batches", batches)
}

func (s *Stream) fail(err error) {
	s.mu.Lock()
	if s.err == nil {
		s.err = err
	}
	s.mu.Unlock()
	s.cancel()
}

// Err returns the first error observed by any worker.
func (s *Stream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Next returns the next non-empty batch. It returns io.EOF once every worker
// has finished without error.
func (s *Stream) Next(ctx context.Context) (*database.Batch, error) {
	select {
	case b, ok := <-s.batches:
		if !ok {
			if err := s.Err(); err != nil {
				return nil, err
			}
			return nil, io.EOF
		}
		return b, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Rows is the number of rows produced so far.
func (s *Stream) Rows() int64 {
	return s.rows.Load()
}

// Close stops the workers and waits for them to exit.
func (s *Stream) Close() error {
	s.cancel()
	for range s.batches {
	}
	if err := s.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
