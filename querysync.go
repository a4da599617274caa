package datatable

import (
	"io"
	"log"
	"net/url"
	"strconv"
)

// QueryKeys names the query-string keys a table reads and writes.
type QueryKeys struct {
	Page          string
	PerPage       string
	OrderBy       string
	SortDirection string
}

// DefaultQueryKeys are the keys used when no prefix is configured.
var DefaultQueryKeys = QueryKeys{
	Page:          "page",
	PerPage:       "perPage",
	OrderBy:       "orderBy",
	SortDirection: "sortDirection",
}

// PrefixedQueryKeys returns the default keys namespaced as "<prefix>.<key>", so several
// tables can share one query string. An empty prefix returns DefaultQueryKeys.
func PrefixedQueryKeys(prefix string) QueryKeys {
	if prefix == "" {
		return DefaultQueryKeys
	}
	return QueryKeys{
		Page:          prefix + "." + DefaultQueryKeys.Page,
		PerPage:       prefix + "." + DefaultQueryKeys.PerPage,
		OrderBy:       prefix + "." + DefaultQueryKeys.OrderBy,
		SortDirection: prefix + "." + DefaultQueryKeys.SortDirection,
	}
}

// QueryParams holds the values hydrated from a query string. Nil fields were absent or
// invalid.
type QueryParams struct {
	Page          *int
	PerPage       *int
	SortDirection *SortDirection
	OrderBy       *string
}

// IsEmpty reports whether nothing was hydrated.
func (q QueryParams) IsEmpty() bool {
	return q.Page == nil && q.PerPage == nil && q.SortDirection == nil && q.OrderBy == nil
}

// QuerySync translates between table parameters and a persisted query string.
// Pages are 1-based in the query string and 0-based everywhere else.
type QuerySync struct {
	store  QueryStore
	keys   QueryKeys
	logger *log.Logger
}

// NewQuerySync creates a synchronizer over store. A nil logger discards output.
func NewQuerySync(store QueryStore, keys QueryKeys, logger *log.Logger) *QuerySync {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &QuerySync{store: store, keys: keys, logger: logger}
}

// Keys returns the keys in use.
func (q *QuerySync) Keys() QueryKeys {
	return q.keys
}

// Hydrate reads the persisted parameters and validates each of them.
//
// perPage must be one of options and orderBy must satisfy known. An invalid page is
// deleted from the store so the query heals back to the default; other invalid values
// are ignored.
func (q *QuerySync) Hydrate(options []int, known func(orderBy string) bool) QueryParams {
	values := q.store.Values()
	var out QueryParams

	if raw, ok := lookup(values, q.keys.Page); ok {
		if n, err := strconv.Atoi(raw); err == nil && ValidatePage(PageFromDisplay(n)) {
			out.Page = Ptr(PageFromDisplay(n))
		} else {
			q.logger.Printf("datatable: dropping invalid %s=%q from query", q.keys.Page, raw)
			values.Del(q.keys.Page)
			q.store.Replace(values)
		}
	}

	if raw, ok := lookup(values, q.keys.PerPage); ok {
		if n, err := strconv.Atoi(raw); err == nil && ValidateRowsPerPage(n, options) {
			out.PerPage = Ptr(n)
		}
	}

	if raw, ok := lookup(values, q.keys.SortDirection); ok {
		if d := SortDirection(raw); ValidateSortDirection(d) {
			out.SortDirection = Ptr(d)
		}
	}

	if raw, ok := lookup(values, q.keys.OrderBy); ok {
		if ValidateOrderBy(raw) && (known == nil || known(raw)) {
			out.OrderBy = Ptr(raw)
		}
	}

	return out
}

// Write mirrors p into the store. Parameters equal to their default are removed.
// Nothing is committed when the resulting query is identical to the current one;
// the return value reports whether a commit happened.
func (q *QuerySync) Write(p, defaults Params) bool {
	values := q.store.Values()
	before := values.Encode()

	setOrDelete(values, q.keys.Page, strconv.Itoa(DisplayPage(p.Page)), p.Page == defaults.Page)
	setOrDelete(values, q.keys.PerPage, strconv.Itoa(p.PerPage), p.PerPage == defaults.PerPage)
	setOrDelete(values, q.keys.OrderBy, p.OrderBy, p.OrderBy == defaults.OrderBy)
	setOrDelete(values, q.keys.SortDirection, string(p.SortDirection), p.SortDirection == defaults.SortDirection)

	if values.Encode() == before {
		return false
	}
	q.store.Replace(values)
	return true
}

func lookup(values url.Values, key string) (string, bool) {
	if !values.Has(key) {
		return "", false
	}
	return values.Get(key), true
}

func setOrDelete(values url.Values, key, value string, isDefault bool) {
	if isDefault {
		values.Del(key)
		return
	}
	values.Set(key, value)
}
