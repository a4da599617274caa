package datatable

import (
	"log"
	"slices"
	"sync"
)

// Phase is the lifecycle stage of a Controller.
type Phase int

const (
	// Uninitialized is the phase before Start.
	Uninitialized Phase = iota

	// Initializing waits for the column configuration needed to hydrate from the query string.
	Initializing

	// Ready derives and issues fetch requests.
	Ready

	// Closed ignores all further input.
	Closed
)

func (p Phase) String() string {
	switch p {
	case Uninitialized:
		return "uninitialized"
	case Initializing:
		return "initializing"
	case Ready:
		return "ready"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Handle is the imperative surface exposed to components that need to trigger or
// inspect a table without owning it.
type Handle interface {
	// Refresh re-issues the current request even if it is unchanged.
	Refresh()

	// SetPage moves to a 0-based page. Passing true forces a refetch even when the
	// page does not change.
	SetPage(page int, force ...bool)

	// Params returns the current paging and sorting parameters.
	Params() Params
}

// Controller drives one paginated, sortable table.
//
// It owns the table state, derives a FetchRequest whenever paging or sorting changes,
// suppresses requests identical to the previous one, and hands requests to the
// external FetchFunc. Results come back through Resolve or Supply.
//
// All operations are queued on a single execution queue and applied in call order.
// Calls made from inside a FetchFunc or a listener are queued behind the current one.
//
// Type parameter T is the row type.
type Controller[T any] struct {
	fetch     FetchFunc[T]
	config    *Config
	sync      *QuerySync
	indicator *LoadingIndicator
	logger    *log.Logger
	onLoading func(visible bool)

	// Guarded by stateMu for readers outside the queue; written only by queued tasks.
	stateMu  sync.RWMutex
	state    *State[T]
	columns  []Column[T]
	phase    Phase
	defaults Params

	// Touched only by queued tasks.
	loading bool
	last    *FetchRequest[T]

	queueMu  sync.Mutex
	queue    []func()
	draining bool

	listenersMu sync.Mutex
	listeners   map[int]func(*State[T])
	nextID      int
}

var _ Handle = (*Controller[any])(nil)
var _ GuardedReceiver[any] = (*Controller[any])(nil)

// NewController creates a controller for the given columns. fetch may be nil for tables
// whose rows are always supplied directly.
//
// The controller does nothing until Start is called.
//
// Example:
//
//	ctrl := datatable.NewController(columns, loader.Fetch,
//	    datatable.WithConfig(datatable.NewConfig().WithPerPageOptions(10, 20, 30)),
//	    datatable.WithQueryStore(store),
//	)
//	loader.Bind(ctrl)
//	ctrl.Start()
func NewController[T any](columns []Column[T], fetch FetchFunc[T], opts ...Option) *Controller[T] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	cfg := o.config
	c := &Controller[T]{
		fetch:     fetch,
		config:    cfg,
		logger:    o.logger,
		onLoading: o.onLoading,
		state:     NewState[T](cfg.PerPage, cfg.PerPageOptions, cfg.SortDirection, ""),
		columns:   slices.Clone(columns),
		listeners: map[int]func(*State[T]){},
	}
	if o.store != nil {
		c.sync = NewQuerySync(o.store, o.keys, o.logger)
	}
	c.indicator = NewLoadingIndicator(cfg.LoadingDelay, c.loadingChanged)
	c.defaults = Params{
		PerPage:       c.state.PerPage,
		SortDirection: c.state.SortDirection,
	}
	return c
}

// Start mounts the controller: it resolves the default sort column, hydrates from the
// query string when enabled, and issues the first fetch. When query synchronization is
// enabled and no columns are known yet, the controller waits in Initializing until
// SetColumns supplies them.
func (c *Controller[T]) Start() {
	c.do(func() {
		if c.phase != Uninitialized {
			return
		}
		c.setPhase(Initializing)
		c.activate()
	})
}

// Close unmounts the controller and cancels a pending loading timer.
func (c *Controller[T]) Close() {
	c.do(func() {
		c.setPhase(Closed)
		c.indicator.Stop()
	})
}

// Dispatch applies an action to the table state. Paging or sorting changes trigger a
// fetch once the controller is ready.
//
// Dispatch panics with *UnexpectedActionError on an unknown action.
func (c *Controller[T]) Dispatch(action Action) {
	c.do(func() { c.apply(action, false) })
}

// SetPage moves to a 0-based page. Invalid pages are ignored.
func (c *Controller[T]) SetPage(page int, force ...bool) {
	forced := len(force) > 0 && force[0]
	c.do(func() { c.apply(SetPage{Page: page}, forced) })
}

// ResetPage returns to the first page and refetches even if already there.
// Call it when the filters feeding the fetch collaborator change.
func (c *Controller[T]) ResetPage() {
	c.SetPage(0, true)
}

// Refresh re-issues the current request.
func (c *Controller[T]) Refresh() {
	c.do(func() {
		if c.phase == Ready {
			c.requestFetch(true)
		}
	})
}

// SetPerPage changes the row count and returns to the first page in one transition.
// A row count that is not one of the options is ignored.
func (c *Controller[T]) SetPerPage(perPage int) {
	c.do(func() {
		if !ValidateRowsPerPage(perPage, c.state.PerPageOptions) {
			return
		}
		c.apply(SetAll[T]{Partial[T]{PerPage: Ptr(perPage), Page: Ptr(0)}}, false)
	})
}

// Sort sorts by the given column. Sorting by the active column flips the direction;
// a new column starts ascending. Unknown or sort-disabled columns are ignored.
func (c *Controller[T]) Sort(columnID string) {
	c.do(func() {
		if _, ok := FindColumn(c.columns, columnID); !ok {
			return
		}
		direction := Asc
		if c.state.OrderBy == columnID {
			direction = c.state.SortDirection.Toggle()
		}
		c.apply(SetAll[T]{Partial[T]{OrderBy: Ptr(columnID), SortDirection: Ptr(direction)}}, false)
	})
}

// SetColumns replaces the column configuration. When the active sort column is gone,
// the default column takes over.
func (c *Controller[T]) SetColumns(columns []Column[T]) {
	columns = slices.Clone(columns)
	c.do(func() {
		c.stateMu.Lock()
		c.columns = columns
		c.stateMu.Unlock()

		switch c.phase {
		case Initializing:
			c.activate()
		case Ready:
			c.resolveDefaults()
			if _, ok := FindColumn(c.columns, c.state.OrderBy); !ok {
				c.apply(SetAll[T]{Partial[T]{
					OrderBy:       Ptr(c.defaults.OrderBy),
					SortDirection: Ptr(c.defaults.SortDirection),
				}}, false)
			}
		}
	})
}

// SetLoading feeds the fetching state of the collaborator into the loading indicator.
func (c *Controller[T]) SetLoading(loading bool) {
	c.SetLoadingIf(always, loading)
}

// SetLoadingIf is SetLoading applied only when current reports true at the moment the
// queued task runs.
func (c *Controller[T]) SetLoadingIf(current func() bool, loading bool) {
	c.do(func() {
		if c.phase == Closed || !current() {
			return
		}
		c.loading = loading
		c.indicator.Set(loading)
	})
}

// Supply hands fresh rows and total to the table. It is ignored while loading, so a
// result is only applied once the collaborator has reported completion.
func (c *Controller[T]) Supply(data []T, total int) {
	c.do(func() {
		if c.loading {
			c.logger.Printf("datatable: ignoring supplied rows while loading")
			return
		}
		c.supply(data, total)
	})
}

// Resolve ends loading and supplies rows and total in one step.
func (c *Controller[T]) Resolve(data []T, total int) {
	c.ResolveIf(always, data, total)
}

// ResolveIf is Resolve applied only when current reports true at the moment the
// queued task runs.
func (c *Controller[T]) ResolveIf(current func() bool, data []T, total int) {
	c.do(func() {
		if c.phase == Closed || !current() {
			return
		}
		c.loading = false
		c.indicator.Set(false)
		c.supply(data, total)
	})
}

// Flush blocks until every call queued before it has been applied, including calls
// another goroutine is still draining. It must not be called from a listener or a
// FetchFunc, which run while the queue is drained.
func (c *Controller[T]) Flush() {
	done := make(chan struct{})
	c.do(func() { close(done) })
	<-done
}

// Subscribe registers fn to be called with every new state. The returned function
// removes the subscription.
func (c *Controller[T]) Subscribe(fn func(*State[T])) (unsubscribe func()) {
	c.listenersMu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.listenersMu.Unlock()

	return func() {
		c.listenersMu.Lock()
		delete(c.listeners, id)
		c.listenersMu.Unlock()
	}
}

// State returns the current state. The returned value must not be modified.
func (c *Controller[T]) State() *State[T] {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.state
}

// Params returns the current paging and sorting parameters.
func (c *Controller[T]) Params() Params {
	return c.State().Params()
}

// Pagination returns what pagination controls should render, with the page corrected
// when it lies beyond the latest total.
func (c *Controller[T]) Pagination() Pagination {
	return NewPagination(c.State())
}

// Columns returns the current column configuration.
func (c *Controller[T]) Columns() []Column[T] {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return slices.Clone(c.columns)
}

// Phase returns the lifecycle phase.
func (c *Controller[T]) Phase() Phase {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.phase
}

// Loading reports whether the loading UI should be shown.
func (c *Controller[T]) Loading() bool {
	return c.indicator.Visible()
}

// activate leaves Initializing once hydration is possible.
func (c *Controller[T]) activate() {
	if c.phase != Initializing {
		return
	}
	if c.sync != nil && len(c.columns) == 0 {
		return
	}

	c.resolveDefaults()
	partial := Partial[T]{}
	if _, ok := FindColumn(c.columns, c.state.OrderBy); !ok {
		partial.OrderBy = Ptr(c.defaults.OrderBy)
		partial.SortDirection = Ptr(c.defaults.SortDirection)
	}

	if c.sync != nil {
		q := c.sync.Hydrate(c.state.PerPageOptions, func(id string) bool {
			_, ok := FindColumn(c.columns, id)
			return ok
		})
		if q.Page != nil {
			partial.Page = q.Page
		}
		if q.PerPage != nil {
			partial.PerPage = q.PerPage
		}
		if q.OrderBy != nil {
			partial.OrderBy = q.OrderBy
		}
		if q.SortDirection != nil {
			partial.SortDirection = q.SortDirection
		}
	}

	prev := c.state
	next := Reduce(prev, SetAll[T]{partial})
	c.commit(next)
	c.setPhase(Ready)
	c.requestFetch(false)
	if next != prev {
		c.notify(next)
	}
}

// resolveDefaults recomputes the parameters that are pruned from the query string.
func (c *Controller[T]) resolveDefaults() {
	d := Params{
		PerPage:       c.defaults.PerPage,
		SortDirection: c.config.SortDirection,
	}
	if !ValidateSortDirection(d.SortDirection) {
		d.SortDirection = Asc
	}
	if col, ok := DefaultColumn(c.columns); ok {
		d.OrderBy = col.ID()
		if ValidateSortDirection(col.SortDirection) {
			d.SortDirection = col.SortDirection
		}
	}
	c.defaults = d
}

func (c *Controller[T]) apply(action Action, force bool) {
	if c.phase == Closed {
		return
	}

	prev := c.state
	next := Reduce(prev, action)
	if next == prev {
		if force && c.phase == Ready {
			c.requestFetch(true)
		}
		return
	}

	c.commit(next)
	if c.phase == Ready && paramsChanged(prev, next) {
		if c.sync != nil {
			c.sync.Write(next.Params(), c.defaults)
		}
		c.requestFetch(force)
	} else if force && c.phase == Ready {
		c.requestFetch(true)
	}
	c.notify(next)
}

func (c *Controller[T]) supply(data []T, total int) {
	if data == nil {
		data = []T{}
	}
	c.apply(SetAll[T]{Partial[T]{Data: &data, Total: Ptr(total)}}, false)
}

// requestFetch calls the collaborator unless the request equals the previous one.
func (c *Controller[T]) requestFetch(force bool) {
	req := NewFetchRequest(c.state, c.columns)
	if !force && c.last != nil && c.last.Equal(req) {
		c.logger.Printf("datatable: skipping unchanged request (offset=%d size=%d orderBy=%q %s)",
			req.Offset, req.PageSize, req.OrderBy, req.SortDirection)
		return
	}
	c.last = &req
	if c.fetch != nil {
		c.fetch(req, force)
	}
}

func (c *Controller[T]) commit(next *State[T]) {
	c.stateMu.Lock()
	c.state = next
	c.stateMu.Unlock()
}

func (c *Controller[T]) setPhase(p Phase) {
	c.stateMu.Lock()
	c.phase = p
	c.stateMu.Unlock()
}

func (c *Controller[T]) notify(s *State[T]) {
	c.listenersMu.Lock()
	fns := make([]func(*State[T]), 0, len(c.listeners))
	ids := make([]int, 0, len(c.listeners))
	for id := range c.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		fns = append(fns, c.listeners[id])
	}
	c.listenersMu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}

// loadingChanged runs on the indicator's timer goroutine or inside a task.
func (c *Controller[T]) loadingChanged(visible bool) {
	c.do(func() {
		if c.onLoading != nil {
			c.onLoading(visible)
		}
		c.notify(c.state)
	})
}

// do queues task and drains the queue unless another caller is already draining it.
func (c *Controller[T]) do(task func()) {
	c.queueMu.Lock()
	c.queue = append(c.queue, task)
	if c.draining {
		c.queueMu.Unlock()
		return
	}
	c.draining = true
	c.queueMu.Unlock()

	c.drain()
}

func (c *Controller[T]) drain() {
	defer func() {
		if r := recover(); r != nil {
			// Only the faulting task is lost; the rest still run before the panic
			// reaches the caller.
			c.drain()
			panic(r)
		}
	}()

	for {
		c.queueMu.Lock()
		if len(c.queue) == 0 {
			c.draining = false
			c.queueMu.Unlock()
			return
		}
		task := c.queue[0]
		c.queue[0] = nil
		c.queue = c.queue[1:]
		c.queueMu.Unlock()

		task()
	}
}

func always() bool { return true }

func paramsChanged[T any](a, b *State[T]) bool {
	return a.Params() != b.Params()
}
