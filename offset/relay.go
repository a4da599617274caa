// Package offset bridges datatable fetch requests and relay-style connection APIs that
// paginate with an offset cursor.
//
// A client table turns each FetchRequest into Args (first/after/sortBy), sends them to
// the backend, and maps the returned Connection back into rows and a total. A backend
// does the reverse with Serve, answering Args from any datatable.Source.
//
// Example usage:
//
//	page := offset.PageFunc(func(ctx context.Context, args offset.Args) (*offset.Connection[*Submission], error) {
//	    return api.Submissions(ctx, args)
//	})
//	loader := datatable.NewLoader(page)
package offset

import (
	"context"
	"fmt"

	"github.com/nrfta/datatable-go"
)

const defaultLimitVal = 50

// Args are relay pagination arguments.
type Args struct {
	First  *int     `json:"first,omitempty"`
	After  *string  `json:"after,omitempty"`
	SortBy []string `json:"sortBy,omitempty"`
	Desc   bool     `json:"desc,omitempty"`
}

// ArgsFor converts a table request into relay arguments.
func ArgsFor[T any](req datatable.FetchRequest[T]) Args {
	args := Args{Desc: req.Desc()}
	if req.PageSize > 0 {
		args.First = datatable.Ptr(req.PageSize)
	}
	if req.Offset > 0 {
		args.After = EncodeCursor(req.Offset)
	}
	if req.OrderBy != "" {
		args.SortBy = []string{req.OrderBy}
	}
	return args
}

// RequestFor converts relay arguments back into a table request.
//
// The page size falls back to defaultLimit (or 50) when First is missing or not positive.
// Only the first SortBy entry is used, and only when it names a sortable column;
// columns also provide the comparator.
func RequestFor[T any](args Args, columns []datatable.Column[T], defaultLimit ...int) datatable.FetchRequest[T] {
	limit := defaultLimitVal
	if len(defaultLimit) > 0 && defaultLimit[0] > 0 {
		limit = defaultLimit[0]
	}
	if args.First != nil && *args.First > 0 {
		limit = *args.First
	}

	req := datatable.FetchRequest[T]{
		PageSize:      limit,
		Offset:        DecodeCursor(args.After),
		SortDirection: datatable.Asc,
	}
	if args.Desc {
		req.SortDirection = datatable.Desc
	}
	if len(args.SortBy) > 0 {
		if col, ok := datatable.FindColumn(columns, args.SortBy[0]); ok {
			req.OrderBy = col.ID()
			req.Comparator = col.Comparator
		}
	}
	return req
}

// PageInfo describes the position of a connection page.
type PageInfo struct {
	StartCursor     *string `json:"startCursor"`
	EndCursor       *string `json:"endCursor"`
	HasNextPage     bool    `json:"hasNextPage"`
	HasPreviousPage bool    `json:"hasPreviousPage"`
}

// NewPageInfo computes page info for an offset window over totalCount rows.
//
// EndCursor points to the start of the last page, so a client can jump there directly.
func NewPageInfo(pageSize, totalCount, currentOffset int) PageInfo {
	if pageSize <= 0 {
		pageSize = defaultLimitVal
	}

	endOffset := totalCount - (totalCount % pageSize)
	if endOffset == totalCount {
		endOffset = totalCount - pageSize
	}

	return PageInfo{
		StartCursor:     EncodeCursor(0),
		EndCursor:       EncodeCursor(max(endOffset, 0)),
		HasNextPage:     currentOffset+pageSize < totalCount,
		HasPreviousPage: currentOffset > 0,
	}
}

// Connection is one page of a relay connection.
type Connection[T any] struct {
	Nodes      []T      `json:"nodes"`
	TotalCount int      `json:"totalCount"`
	PageInfo   PageInfo `json:"pageInfo"`
}

// ConnectionFunc loads a connection page for relay arguments.
type ConnectionFunc[T any] func(ctx context.Context, args Args) (*Connection[T], error)

// PageFunc adapts a relay backend into a datatable.PageFunc for use with a Loader.
func PageFunc[T any](fn ConnectionFunc[T]) datatable.PageFunc[T] {
	return func(ctx context.Context, req datatable.FetchRequest[T]) ([]T, int, error) {
		conn, err := fn(ctx, ArgsFor(req))
		if err != nil {
			return nil, 0, fmt.Errorf("load connection: %w", err)
		}
		if conn == nil {
			return []T{}, 0, nil
		}
		return conn.Nodes, conn.TotalCount, nil
	}
}

// Serve answers relay arguments from a Source. Fetch and Count run concurrently.
func Serve[T any](src datatable.Source[T], columns []datatable.Column[T], defaultLimit ...int) ConnectionFunc[T] {
	page := datatable.SourcePageFunc(src)
	return func(ctx context.Context, args Args) (*Connection[T], error) {
		req := RequestFor(args, columns, defaultLimit...)
		nodes, total, err := page(ctx, req)
		if err != nil {
			return nil, err
		}
		return &Connection[T]{
			Nodes:      nodes,
			TotalCount: total,
			PageInfo:   NewPageInfo(req.PageSize, total, req.Offset),
		}, nil
	}
}
