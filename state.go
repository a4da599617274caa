package datatable

import "slices"

// SortDirection is the order applied to the active sort column.
type SortDirection string

const (
	// Asc sorts the active column in ascending order.
	Asc SortDirection = "asc"

	// Desc sorts the active column in descending order.
	Desc SortDirection = "desc"
)

// Toggle returns the opposite direction.
func (d SortDirection) Toggle() SortDirection {
	if d == Asc {
		return Desc
	}
	return Asc
}

// State is the single source of truth for one table instance.
//
// A State is never mutated once published: every transition goes through Reduce,
// which returns either the same pointer (nothing changed) or a fresh copy.
//
// Type parameter T is the row type (e.g., *models.Submission).
type State[T any] struct {
	// Data is the current page of rows as returned by the last fetch.
	Data []T

	// Total is the row count across all pages, independent of len(Data).
	Total int

	// Page is the current 0-based page index.
	Page int

	// PerPage is the number of rows per page. Always a member of PerPageOptions.
	PerPage int

	// PerPageOptions lists the legal row-count choices.
	PerPageOptions []int

	// SortDirection applies to OrderBy.
	SortDirection SortDirection

	// OrderBy identifies the column currently driving sort order. May be empty.
	OrderBy string
}

func (s *State[T]) clone() *State[T] {
	c := *s
	return &c
}

// Params returns the paging and sorting parameters of the state.
func (s *State[T]) Params() Params {
	return Params{
		Page:          s.Page,
		PerPage:       s.PerPage,
		SortDirection: s.SortDirection,
		OrderBy:       s.OrderBy,
	}
}

// Params is a read-only snapshot of the paging and sorting parameters of a table.
type Params struct {
	Page          int           `json:"page"`
	PerPage       int           `json:"perPage"`
	SortDirection SortDirection `json:"sortDirection"`
	OrderBy       string        `json:"orderBy"`
}

// Partial carries the fields of a SetAll action. Nil fields are absent and left untouched.
type Partial[T any] struct {
	Data           *[]T
	Total          *int
	Page           *int
	PerPage        *int
	PerPageOptions *[]int
	SortDirection  *SortDirection
	OrderBy        *string
}

// IsEmpty reports whether no field is present.
func (p Partial[T]) IsEmpty() bool {
	return p.Data == nil && p.Total == nil && p.Page == nil && p.PerPage == nil &&
		p.PerPageOptions == nil && p.SortDirection == nil && p.OrderBy == nil
}

// NewState creates the initial state of a table. Values failing validation fall back
// to the package defaults, so the returned state always satisfies the invariants.
func NewState[T any](perPage int, perPageOptions []int, direction SortDirection, orderBy string) *State[T] {
	if !ValidatePerPageOptions(perPageOptions) {
		perPageOptions = DefaultPerPageOptions
	}
	if !ValidateRowsPerPage(perPage, perPageOptions) {
		perPage = perPageOptions[0]
	}
	if !ValidateSortDirection(direction) {
		direction = Asc
	}

	return &State[T]{
		Data:           []T{},
		PerPage:        perPage,
		PerPageOptions: slices.Clone(perPageOptions),
		SortDirection:  direction,
		OrderBy:        orderBy,
	}
}

// Ptr returns a pointer to v. Handy for building a Partial.
func Ptr[V any](v V) *V {
	return &v
}
