package datatable

import "context"

// FetchFunc is the external fetch collaborator called by the controller.
//
// It must not block: it starts the fetch and later hands the result back to the
// controller (Resolve, or SetLoading + Supply). It is called with force=true for an
// unchanged request when the caller explicitly asked for a refetch.
type FetchFunc[T any] func(req FetchRequest[T], force bool)

// PageFunc retrieves one page of rows plus the total row count.
// Relay-style backends that return both in one call implement this directly.
type PageFunc[T any] func(ctx context.Context, req FetchRequest[T]) ([]T, int, error)

// Source abstracts a data layer that can fetch a window of rows and count them separately.
// This allows the Loader to work with SQLBoiler, in-memory slices, or any other backend
// without being coupled to it.
//
// Type parameter T is the row type.
type Source[T any] interface {
	// Fetch retrieves the rows described by the request.
	// It should apply limit, offset and ordering.
	Fetch(ctx context.Context, req FetchRequest[T]) ([]T, error)

	// Count returns the total number of rows, ignoring paging.
	Count(ctx context.Context, req FetchRequest[T]) (int, error)
}

// Receiver takes results back from a fetch collaborator. *Controller implements it.
type Receiver[T any] interface {
	SetLoading(loading bool)
	Resolve(data []T, total int)
}

// GuardedReceiver is a Receiver that applies results on its own execution queue.
// current is evaluated when the result is applied, and the result is discarded when it
// reports false. A Loader uses this to drop a response that was superseded after it
// arrived but before the receiver got to it. *Controller implements it.
type GuardedReceiver[T any] interface {
	Receiver[T]
	ResolveIf(current func() bool, data []T, total int)
	SetLoadingIf(current func() bool, loading bool)
}
