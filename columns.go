package datatable

// Comparator orders two rows for the column it belongs to. It returns a negative number
// when a sorts before b, zero when they are equal, and a positive number otherwise.
type Comparator[T any] func(a, b T) int

// Column describes one table column. The controller reads only the identifier and the
// sort-related fields; Label and Render exist for renderers.
//
// Type parameter T is the row type.
type Column[T any] struct {
	// Label is the header text.
	Label string

	// Field is the column identifier used for sorting and in the query string.
	Field string

	// Key is the fallback identifier for columns that are not backed by a field.
	Key string

	// Default marks the column sorted by when nothing else is requested.
	Default bool

	// SortDisabled excludes the column from sorting.
	SortDisabled bool

	// SortDirection is the initial direction when the column becomes the default sort.
	// Empty means the table's configured default.
	SortDirection SortDirection

	// Comparator is used by in-memory sources. Optional.
	Comparator Comparator[T]

	// Render formats a cell. Optional, never read by the controller.
	Render func(T) string
}

// ID returns Field, falling back to Key.
func (c Column[T]) ID() string {
	if c.Field != "" {
		return c.Field
	}
	return c.Key
}

// Sortable reports whether the column can drive sort order.
func (c Column[T]) Sortable() bool {
	return !c.SortDisabled && c.ID() != ""
}

// FindColumn returns the sortable column with the given identifier.
func FindColumn[T any](columns []Column[T], id string) (Column[T], bool) {
	for _, c := range columns {
		if c.Sortable() && c.ID() == id {
			return c, true
		}
	}
	return Column[T]{}, false
}

// DefaultColumn resolves the column to sort by when the active one is missing:
// the first sortable column flagged Default, then the first sortable column.
// It returns false when no column is sortable.
func DefaultColumn[T any](columns []Column[T]) (Column[T], bool) {
	for _, c := range columns {
		if c.Default && c.Sortable() {
			return c, true
		}
	}
	for _, c := range columns {
		if c.Sortable() {
			return c, true
		}
	}
	return Column[T]{}, false
}
