package datatable

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const defaultLoaderTimeout = 30 * time.Second

// Loader is a fetch collaborator that runs each request on its own goroutine and
// delivers the result to a Receiver.
//
// A new request cancels the context of the one it supersedes, and a late result of a
// superseded request is dropped rather than delivered. On failure the error handler is
// called and the receiver keeps its current rows.
//
// Type parameter T is the row type.
type Loader[T any] struct {
	page    PageFunc[T]
	timeout time.Duration
	onError func(req FetchRequest[T], err error)
	logger  *log.Logger

	mu       sync.Mutex
	receiver Receiver[T]
	seq      uint64
	cancel   context.CancelFunc
	closed   bool
	wg       sync.WaitGroup
}

// LoaderOption configures a Loader.
type LoaderOption func(*loaderConfig)

type loaderConfig struct {
	timeout time.Duration
	onError func(err error)
	logger  *log.Logger
}

// WithTimeout bounds each request.
// Default: 30 seconds
func WithTimeout(d time.Duration) LoaderOption {
	return func(c *loaderConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithErrorHandler receives fetch failures, typically to show a notification.
func WithErrorHandler(fn func(err error)) LoaderOption {
	return func(c *loaderConfig) {
		c.onError = fn
	}
}

// WithLoaderLogger sets the logger for dropped and failed requests.
func WithLoaderLogger(l *log.Logger) LoaderOption {
	return func(c *loaderConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewLoader creates a loader over a function returning rows and total together.
func NewLoader[T any](page PageFunc[T], opts ...LoaderOption) *Loader[T] {
	cfg := &loaderConfig{
		timeout: defaultLoaderTimeout,
		logger:  log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	l := &Loader[T]{
		page:    page,
		timeout: cfg.timeout,
		logger:  cfg.logger,
	}
	l.onError = func(req FetchRequest[T], err error) {
		l.logger.Printf("datatable: fetch failed (offset=%d size=%d): %v", req.Offset, req.PageSize, err)
		if cfg.onError != nil {
			cfg.onError(err)
		}
	}
	return l
}

// NewSourceLoader creates a loader over a Source, running Fetch and Count concurrently.
func NewSourceLoader[T any](src Source[T], opts ...LoaderOption) *Loader[T] {
	return NewLoader(SourcePageFunc(src), opts...)
}

// SourcePageFunc adapts a Source into a PageFunc. Fetch and Count run concurrently
// and the first failure cancels the other.
func SourcePageFunc[T any](src Source[T]) PageFunc[T] {
	return func(ctx context.Context, req FetchRequest[T]) ([]T, int, error) {
		var (
			rows  []T
			total int
		)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			rows, err = src.Fetch(gctx, req)
			if err != nil {
				return fmt.Errorf("fetch rows: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			var err error
			total, err = src.Count(gctx, req)
			if err != nil {
				return fmt.Errorf("count rows: %w", err)
			}
			return nil
		})

		if err := g.Wait(); err != nil {
			return nil, 0, err
		}
		return rows, total, nil
	}
}

// Bind sets the receiver of results. It must be called before the first Fetch.
func (l *Loader[T]) Bind(r Receiver[T]) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.receiver = r
}

// Fetch implements FetchFunc.
func (l *Loader[T]) Fetch(req FetchRequest[T], force bool) {
	l.mu.Lock()
	if l.closed || l.receiver == nil {
		l.mu.Unlock()
		return
	}
	if l.cancel != nil {
		l.cancel()
	}
	l.seq++
	seq := l.seq
	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	l.cancel = cancel
	receiver := l.receiver
	l.wg.Add(1)
	l.mu.Unlock()

	receiver.SetLoading(true)
	go l.run(ctx, cancel, seq, req, receiver)
}

func (l *Loader[T]) run(ctx context.Context, cancel context.CancelFunc, seq uint64, req FetchRequest[T], receiver Receiver[T]) {
	defer l.wg.Done()
	defer cancel()

	rows, total, err := l.page(ctx, req)

	if !l.current(seq) {
		l.logger.Printf("datatable: dropping stale response (offset=%d size=%d)", req.Offset, req.PageSize)
		return
	}

	// A guarded receiver repeats the check when it applies the result, closing the gap
	// in which a newer Fetch can start after the check above.
	guarded, _ := receiver.(GuardedReceiver[T])
	current := func() bool {
		if l.current(seq) {
			return true
		}
		l.logger.Printf("datatable: dropping stale response (offset=%d size=%d)", req.Offset, req.PageSize)
		return false
	}

	if err != nil {
		if guarded != nil {
			guarded.SetLoadingIf(current, false)
		} else {
			receiver.SetLoading(false)
		}
		l.onError(req, err)
		return
	}
	if guarded != nil {
		guarded.ResolveIf(current, rows, total)
		return
	}
	receiver.Resolve(rows, total)
}

// current reports whether seq is still the latest request of an open loader.
func (l *Loader[T]) current(seq uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return seq == l.seq && !l.closed
}

// Wait blocks until every started request has settled.
func (l *Loader[T]) Wait() {
	l.wg.Wait()
}

// Close cancels the in-flight request. Later calls to Fetch are ignored.
func (l *Loader[T]) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}
