// Package sqlboiler serves datatable requests from SQLBoiler queries.
//
// A Source turns each FetchRequest into offset, limit and order-by query mods, prepends
// the current filter mods, and runs them through the query and count functions it was
// built with. Count sees only the filters.
//
// Example usage:
//
//	src := sqlboiler.NewSource(
//	    func(ctx context.Context, mods ...qm.QueryMod) ([]*models.Submission, error) {
//	        return models.Submissions(mods...).All(ctx, db)
//	    },
//	    func(ctx context.Context, mods ...qm.QueryMod) (int64, error) {
//	        return models.Submissions(mods...).Count(ctx, db)
//	    },
//	    sqlboiler.WithTieBreaker("id"),
//	)
//	loader := datatable.NewSourceLoader[*models.Submission](src)
package sqlboiler

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/aarondl/sqlboiler/v4/queries/qm"
	"github.com/friendsofgo/errors"

	"github.com/nrfta/datatable-go"
)

// QueryFunc executes a SQLBoiler query and returns results.
//
// Type parameter T is the SQLBoiler model type (e.g., *models.Submission).
type QueryFunc[T any] func(ctx context.Context, mods ...qm.QueryMod) ([]T, error)

// CountFunc executes a SQLBoiler count query.
type CountFunc func(ctx context.Context, mods ...qm.QueryMod) (int64, error)

// UnknownColumnError is returned for a sort identifier the resolver rejects.
type UnknownColumnError struct {
	ID string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("sqlboiler: cannot sort by unknown column %q", e.ID)
}

// Option configures a Source.
type Option func(*config)

type config struct {
	resolve    ColumnResolver
	tieBreaker string
	filters    []qm.QueryMod
}

// WithColumnResolver sets how sort identifiers map to SQL columns.
// Default: SnakeCaseColumns
func WithColumnResolver(r ColumnResolver) Option {
	return func(c *config) {
		if r != nil {
			c.resolve = r
		}
	}
}

// WithColumnMap restricts sorting to the listed identifiers.
func WithColumnMap(columns map[string]string) Option {
	return WithColumnResolver(ColumnMap(columns))
}

// WithTieBreaker appends a unique column to every ORDER BY so rows with equal sort keys
// keep a stable order across pages.
func WithTieBreaker(column string) Option {
	return func(c *config) {
		c.tieBreaker = column
	}
}

// WithFilters sets the initial filter mods.
func WithFilters(mods ...qm.QueryMod) Option {
	return func(c *config) {
		c.filters = mods
	}
}

// Source implements datatable.Source for SQLBoiler queries.
type Source[T any] struct {
	queryFunc  QueryFunc[T]
	countFunc  CountFunc
	resolve    ColumnResolver
	tieBreaker string

	mu      sync.RWMutex
	filters []qm.QueryMod
}

var _ datatable.Source[any] = (*Source[any])(nil)

// NewSource creates a source from query and count functions.
func NewSource[T any](queryFunc QueryFunc[T], countFunc CountFunc, opts ...Option) *Source[T] {
	cfg := &config{resolve: SnakeCaseColumns}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Source[T]{
		queryFunc:  queryFunc,
		countFunc:  countFunc,
		resolve:    cfg.resolve,
		tieBreaker: cfg.tieBreaker,
		filters:    slices.Clone(cfg.filters),
	}
}

// SetFilters replaces the filter mods applied to both queries. Callers usually follow
// this with Controller.ResetPage so the table refetches from the first page.
func (s *Source[T]) SetFilters(mods ...qm.QueryMod) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = slices.Clone(mods)
}

// Filters returns the current filter mods.
func (s *Source[T]) Filters() []qm.QueryMod {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.filters)
}

// Params translates a table request into SQL terms.
func (s *Source[T]) Params(req datatable.FetchRequest[T]) (Params, error) {
	params := Params{
		Offset: max(req.Offset, 0),
		Limit:  max(req.PageSize, 0),
	}
	if req.OrderBy == "" {
		return params, nil
	}

	column, ok := s.resolve(req.OrderBy)
	if !ok {
		return Params{}, &UnknownColumnError{ID: req.OrderBy}
	}
	params.OrderBy = append(params.OrderBy, OrderBy{Column: column, Desc: req.Desc()})
	if s.tieBreaker != "" && s.tieBreaker != column {
		params.OrderBy = append(params.OrderBy, OrderBy{Column: s.tieBreaker, Desc: req.Desc()})
	}
	return params, nil
}

// QueryMods returns the filter mods followed by the paging mods for req.
func (s *Source[T]) QueryMods(req datatable.FetchRequest[T]) ([]qm.QueryMod, error) {
	params, err := s.Params(req)
	if err != nil {
		return nil, err
	}
	return append(s.Filters(), params.QueryMods()...), nil
}

// Fetch retrieves the rows of one page.
func (s *Source[T]) Fetch(ctx context.Context, req datatable.FetchRequest[T]) ([]T, error) {
	mods, err := s.QueryMods(req)
	if err != nil {
		return nil, err
	}

	rows, err := s.queryFunc(ctx, mods...)
	if err != nil {
		return nil, errors.Wrap(err, "sqlboiler: query rows")
	}
	if rows == nil {
		rows = []T{}
	}
	return rows, nil
}

// Count returns the number of rows matching the filters.
func (s *Source[T]) Count(ctx context.Context, _ datatable.FetchRequest[T]) (int, error) {
	n, err := s.countFunc(ctx, s.Filters()...)
	if err != nil {
		return 0, errors.Wrap(err, "sqlboiler: count rows")
	}
	return int(n), nil
}
