package datatable

import (
	"context"
	"slices"
	"sync"
)

// LocalSource serves rows held in memory, for tables that do not paginate on a server.
// Rows are sorted with the comparator of the requested column.
type LocalSource[T any] struct {
	mu   sync.RWMutex
	rows []T
}

var _ Source[any] = (*LocalSource[any])(nil)

// NewLocalSource creates a source over a copy of rows.
func NewLocalSource[T any](rows []T) *LocalSource[T] {
	return &LocalSource[T]{rows: slices.Clone(rows)}
}

// SetRows replaces the data set.
func (s *LocalSource[T]) SetRows(rows []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = slices.Clone(rows)
}

// Fetch returns the requested window. Without a comparator the original order is kept.
func (s *LocalSource[T]) Fetch(ctx context.Context, req FetchRequest[T]) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	rows := slices.Clone(s.rows)
	s.mu.RUnlock()

	if cmp := req.Comparator; cmp != nil {
		if req.Desc() {
			slices.SortStableFunc(rows, func(a, b T) int { return cmp(b, a) })
		} else {
			slices.SortStableFunc(rows, cmp)
		}
	}

	start := min(max(req.Offset, 0), len(rows))
	end := len(rows)
	if req.PageSize > 0 {
		end = min(start+req.PageSize, len(rows))
	}
	return rows[start:end], nil
}

// Count returns the number of rows.
func (s *LocalSource[T]) Count(ctx context.Context, _ FetchRequest[T]) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows), nil
}
