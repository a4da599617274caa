// Package datatable drives paginated, sortable tables.
//
// A Controller holds the table state (rows, total, page, rows per page, sort) and
// changes it only through Reduce, which rejects invalid values instead of failing.
// Whenever paging or sorting changes it derives a FetchRequest and hands it to an
// external FetchFunc, skipping requests identical to the previous one. Results come
// back through Resolve or Supply.
//
// Optional pieces:
//   - QuerySync mirrors page, perPage, orderBy and sortDirection into a QueryStore
//     so a table can be restored from its URL.
//   - LoadingIndicator delays the loading UI for fast responses.
//   - Loader runs requests against a Source or PageFunc and drops stale results.
//   - LocalSource serves tables whose rows are already in memory.
//
// Pages are 0-based everywhere in this package. The query string uses 1-based pages.
package datatable
