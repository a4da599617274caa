package datatable

// FetchRequest describes the page a table needs next. The controller derives it from
// State whenever page, perPage, sort direction, or order-by change.
//
// Type parameter T is the row type.
type FetchRequest[T any] struct {
	// PageSize is the number of rows to fetch.
	PageSize int

	// Offset is the number of rows to skip (Page * PageSize).
	Offset int

	// SortDirection applies to OrderBy.
	SortDirection SortDirection

	// OrderBy is the identifier of the sort column. Empty means unsorted.
	OrderBy string

	// Comparator of the sort column, for in-memory sources. May be nil.
	Comparator Comparator[T]
}

// NewFetchRequest derives the request for the given state and columns.
func NewFetchRequest[T any](s *State[T], columns []Column[T]) FetchRequest[T] {
	req := FetchRequest[T]{
		PageSize:      s.PerPage,
		Offset:        s.Page * s.PerPage,
		SortDirection: s.SortDirection,
		OrderBy:       s.OrderBy,
	}
	if c, ok := FindColumn(columns, s.OrderBy); ok {
		req.Comparator = c.Comparator
	}
	return req
}

// Page returns the 0-based page index of the request.
func (r FetchRequest[T]) Page() int {
	if r.PageSize <= 0 {
		return 0
	}
	return r.Offset / r.PageSize
}

// Desc reports whether the request sorts in descending order.
func (r FetchRequest[T]) Desc() bool {
	return r.SortDirection == Desc
}

// Equal reports structural equality. The comparator is not compared: it is a
// function of OrderBy.
func (r FetchRequest[T]) Equal(o FetchRequest[T]) bool {
	return r.PageSize == o.PageSize &&
		r.Offset == o.Offset &&
		r.SortDirection == o.SortDirection &&
		r.OrderBy == o.OrderBy
}
