package datatable

// Pagination is what pagination controls render for a table.
type Pagination struct {
	// Page is the page to render. It equals StoredPage unless StoredPage lies beyond
	// the last page, in which case it is 0.
	Page int

	// StoredPage is the authoritative page held in state.
	StoredPage int

	PerPage        int
	PerPageOptions []int
	Total          int

	// PageCount is ceil(Total / PerPage).
	PageCount int

	// EmptyRows is the number of blank rows that keep the row height constant
	// on a partially filled page.
	EmptyRows int

	HasNextPage     bool
	HasPreviousPage bool

	// From and To are the 1-based row numbers shown ("11-20 of 45"). Both are 0
	// when the table is empty.
	From int
	To   int
}

// NewPagination computes the rendering view of a state.
func NewPagination[T any](s *State[T]) Pagination {
	page := SafePage(s.Page, s.PerPage, s.Total)
	count := PageCount(s.Total, s.PerPage)

	p := Pagination{
		Page:            page,
		StoredPage:      s.Page,
		PerPage:         s.PerPage,
		PerPageOptions:  s.PerPageOptions,
		Total:           s.Total,
		PageCount:       count,
		EmptyRows:       EmptyRows(page, s.PerPage, s.Total),
		HasNextPage:     page+1 < count,
		HasPreviousPage: page > 0,
	}

	if s.Total > 0 {
		p.From = page*s.PerPage + 1
		p.To = min((page+1)*s.PerPage, s.Total)
	}
	return p
}

// PageCount returns the number of pages needed for total rows.
func PageCount(total, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// SafePage returns page when it is within the known total, and 0 otherwise.
// It never changes stored state; the correction applies at render time only.
func SafePage(page, perPage, total int) int {
	if page+1 > PageCount(total, perPage) {
		return 0
	}
	return page
}

// EmptyRows returns max(0, (page+1)*perPage - total).
func EmptyRows(page, perPage, total int) int {
	return max(0, (page+1)*perPage-total)
}

// PageFromDisplay converts a 1-based page number from a UI event or URL into a
// 0-based page index.
func PageFromDisplay(n int) int {
	return n - 1
}

// DisplayPage converts a 0-based page index into the 1-based number users see.
func DisplayPage(page int) int {
	return page + 1
}
