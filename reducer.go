package datatable

import (
	"fmt"
	"slices"
)

// ActionKind names a reducer transition.
type ActionKind string

const (
	KindSetData           ActionKind = "SET_DATA"
	KindSetTotal          ActionKind = "SET_TOTAL"
	KindSetPage           ActionKind = "SET_PAGE"
	KindSetPerPage        ActionKind = "SET_PER_PAGE"
	KindSetPerPageOptions ActionKind = "SET_PER_PAGE_OPTIONS"
	KindSetSortDirection  ActionKind = "SET_SORT_DIRECTION"
	KindSetOrderBy        ActionKind = "SET_ORDER_BY"
	KindSetAll            ActionKind = "SET_ALL"
)

// Action is a state transition request handled by Reduce.
type Action interface {
	Kind() ActionKind
}

// SetData replaces the rows of the current page.
type SetData[T any] struct{ Data []T }

// SetTotal replaces the total row count.
type SetTotal struct{ Total int }

// SetPage moves to a 0-based page.
type SetPage struct{ Page int }

// SetPerPage changes the row count. It must be one of the current options.
type SetPerPage struct{ PerPage int }

// SetPerPageOptions replaces the allowed row counts.
type SetPerPageOptions struct{ Options []int }

// SetSortDirection changes the sort direction.
type SetSortDirection struct{ Direction SortDirection }

// SetOrderBy changes the sort column.
type SetOrderBy struct{ OrderBy string }

// SetAll applies every present field of the partial as its own validated update.
type SetAll[T any] struct{ Partial[T] }

func (SetData[T]) Kind() ActionKind       { return KindSetData }
func (SetTotal) Kind() ActionKind          { return KindSetTotal }
func (SetPage) Kind() ActionKind           { return KindSetPage }
func (SetPerPage) Kind() ActionKind        { return KindSetPerPage }
func (SetPerPageOptions) Kind() ActionKind { return KindSetPerPageOptions }
func (SetSortDirection) Kind() ActionKind  { return KindSetSortDirection }
func (SetOrderBy) Kind() ActionKind        { return KindSetOrderBy }
func (SetAll[T]) Kind() ActionKind         { return KindSetAll }

// UnexpectedActionError is the panic value raised by Reduce for an action it does not know.
// It always indicates a programming defect.
type UnexpectedActionError struct {
	Kind ActionKind
	Type string
}

func (e *UnexpectedActionError) Error() string {
	return fmt.Sprintf("unexpected action type %q (%s)", e.Kind, e.Type)
}

// Reduce is the only writer of table state.
//
// Invalid values are rejected silently and the state is returned unchanged (same pointer).
// An action that is not one of the known kinds for row type T panics with an
// *UnexpectedActionError.
func Reduce[T any](s *State[T], action Action) *State[T] {
	switch a := action.(type) {
	case SetData[T]:
		return setData(s, a.Data)
	case SetTotal:
		return setTotal(s, a.Total)
	case SetPage:
		return setPage(s, a.Page)
	case SetPerPage:
		return setPerPage(s, a.PerPage)
	case SetPerPageOptions:
		return setPerPageOptions(s, a.Options, s.PerPage)
	case SetSortDirection:
		return setSortDirection(s, a.Direction)
	case SetOrderBy:
		return setOrderBy(s, a.OrderBy)
	case SetAll[T]:
		return setAll(s, a.Partial)
	default:
		panic(unexpectedAction(action))
	}
}

func unexpectedAction(action Action) *UnexpectedActionError {
	if action == nil {
		return &UnexpectedActionError{Kind: "<nil>", Type: "<nil>"}
	}
	return &UnexpectedActionError{Kind: action.Kind(), Type: fmt.Sprintf("%T", action)}
}

func setData[T any](s *State[T], data []T) *State[T] {
	if data == nil {
		data = []T{}
	}
	return SetIfChanged(s, func(s *State[T]) *[]T { return &s.Data }, data, func([]T) bool { return true })
}

func setTotal[T any](s *State[T], total int) *State[T] {
	return SetIfChanged(s, func(s *State[T]) *int { return &s.Total }, total, ValidateTotal)
}

func setPage[T any](s *State[T], page int) *State[T] {
	return SetIfChanged(s, func(s *State[T]) *int { return &s.Page }, page, ValidatePage)
}

func setPerPage[T any](s *State[T], perPage int) *State[T] {
	options := s.PerPageOptions
	return SetIfChanged(s, func(s *State[T]) *int { return &s.PerPage }, perPage, func(n int) bool {
		return ValidateRowsPerPage(n, options)
	})
}

// setPerPageOptions only accepts options that still contain perPage, which keeps
// PerPage a member of PerPageOptions.
func setPerPageOptions[T any](s *State[T], options []int, perPage int) *State[T] {
	return SetIfChanged(s, func(s *State[T]) *[]int { return &s.PerPageOptions }, slices.Clone(options), func(xs []int) bool {
		return ValidatePerPageOptions(xs) && ValidateRowsPerPage(perPage, xs)
	})
}

func setSortDirection[T any](s *State[T], direction SortDirection) *State[T] {
	return SetIfChanged(s, func(s *State[T]) *SortDirection { return &s.SortDirection }, direction, ValidateSortDirection)
}

func setOrderBy[T any](s *State[T], orderBy string) *State[T] {
	return SetIfChanged(s, func(s *State[T]) *string { return &s.OrderBy }, orderBy, ValidateOrderBy)
}

func setAll[T any](s *State[T], p Partial[T]) *State[T] {
	next := s
	if p.Data != nil {
		next = setData(next, *p.Data)
	}
	if p.Total != nil {
		next = setTotal(next, *p.Total)
	}
	if p.PerPageOptions != nil {
		perPage := next.PerPage
		if p.PerPage != nil {
			perPage = *p.PerPage
		}
		next = setPerPageOptions(next, *p.PerPageOptions, perPage)
	}
	if p.PerPage != nil {
		next = setPerPage(next, *p.PerPage)
	}
	if p.Page != nil {
		next = setPage(next, *p.Page)
	}
	if p.SortDirection != nil {
		next = setSortDirection(next, *p.SortDirection)
	}
	if p.OrderBy != nil {
		next = setOrderBy(next, *p.OrderBy)
	}
	return next
}
