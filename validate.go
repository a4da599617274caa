package datatable

import (
	"reflect"
	"slices"
)

// ValidatePage reports whether n is a legal 0-based page index.
func ValidatePage(n int) bool {
	return n >= 0
}

// ValidateTotal reports whether n is a legal total row count.
func ValidateTotal(n int) bool {
	return n >= 0
}

// ValidateRowsPerPage reports whether n is one of the allowed row counts.
func ValidateRowsPerPage(n int, options []int) bool {
	return slices.Contains(options, n)
}

// ValidatePerPageOptions reports whether xs is a non-empty list of positive row counts.
func ValidatePerPageOptions(xs []int) bool {
	if len(xs) == 0 {
		return false
	}
	for _, x := range xs {
		if x < 1 {
			return false
		}
	}
	return true
}

// ValidateSortDirection reports whether s is "asc" or "desc".
func ValidateSortDirection(s SortDirection) bool {
	return s == Asc || s == Desc
}

// ValidateOrderBy accepts any column identifier, including the empty one.
// Whether a matching column exists is decided by the caller.
func ValidateOrderBy(string) bool {
	return true
}

// SetIfChanged sets one field of the state to candidate when valid(candidate) holds and
// the candidate differs (deeply) from the current value.
//
// The returned pointer is s itself when nothing changed. Callers use pointer equality
// as the signal to skip downstream work.
//
// Example:
//
//	next := datatable.SetIfChanged(s,
//	    func(s *datatable.State[Row]) *int { return &s.Page },
//	    2,
//	    datatable.ValidatePage,
//	)
func SetIfChanged[T, V any](s *State[T], field func(*State[T]) *V, candidate V, valid func(V) bool) *State[T] {
	if !valid(candidate) {
		return s
	}
	if reflect.DeepEqual(*field(s), candidate) {
		return s
	}

	next := s.clone()
	*field(next) = candidate
	return next
}
