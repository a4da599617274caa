package datatable

import (
	"io"
	"log"
	"time"
)

const (
	// DefaultPerPage is the row count used when none is configured.
	DefaultPerPage = 10
)

// DefaultPerPageOptions are the row-count choices used when none are configured.
var DefaultPerPageOptions = []int{10, 25, 50, 100}

// Config holds the static defaults of a table.
// Use NewConfig() to create a config with sensible defaults,
// then customize using the With* methods.
//
// Example:
//
//	cfg := datatable.NewConfig().
//	    WithPerPageOptions(10, 20, 30).
//	    WithPerPage(20)
type Config struct {
	// PerPage is the initial row count. Must be one of PerPageOptions.
	PerPage int

	// PerPageOptions are the legal row counts.
	PerPageOptions []int

	// SortDirection is the initial direction for columns that do not set one.
	SortDirection SortDirection

	// LoadingDelay is the grace period before the loading indicator shows.
	LoadingDelay time.Duration
}

// NewConfig creates a Config with sensible defaults:
// - PerPage: 10
// - PerPageOptions: 10, 25, 50, 100
// - SortDirection: asc
// - LoadingDelay: 200ms
func NewConfig() *Config {
	return &Config{
		PerPage:        DefaultPerPage,
		PerPageOptions: DefaultPerPageOptions,
		SortDirection:  Asc,
		LoadingDelay:   DefaultLoadingDelay,
	}
}

// WithPerPage sets the initial row count and returns the config for chaining.
func (c *Config) WithPerPage(n int) *Config {
	if n > 0 {
		c.PerPage = n
	}
	return c
}

// WithPerPageOptions sets the legal row counts and returns the config for chaining.
// Invalid option lists are ignored.
func (c *Config) WithPerPageOptions(options ...int) *Config {
	if ValidatePerPageOptions(options) {
		c.PerPageOptions = options
	}
	return c
}

// WithSortDirection sets the default direction and returns the config for chaining.
func (c *Config) WithSortDirection(d SortDirection) *Config {
	if ValidateSortDirection(d) {
		c.SortDirection = d
	}
	return c
}

// WithLoadingDelay sets the loading grace period and returns the config for chaining.
func (c *Config) WithLoadingDelay(d time.Duration) *Config {
	if d >= 0 {
		c.LoadingDelay = d
	}
	return c
}

// Option configures a Controller.
type Option func(*options)

type options struct {
	config    *Config
	store     QueryStore
	keys      QueryKeys
	logger    *log.Logger
	onLoading func(visible bool)
}

func defaultOptions() *options {
	return &options{
		config: NewConfig(),
		keys:   DefaultQueryKeys,
		logger: log.New(io.Discard, "", 0),
	}
}

// WithConfig replaces the table defaults.
func WithConfig(cfg *Config) Option {
	return func(o *options) {
		if cfg != nil {
			o.config = cfg
		}
	}
}

// WithQueryStore enables query-string synchronization against store.
// Without it the table is seeded from static defaults and never touches a query string.
func WithQueryStore(store QueryStore) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithQueryPrefix namespaces the query keys as "<prefix>.page" and so on.
func WithQueryPrefix(prefix string) Option {
	return func(o *options) {
		o.keys = PrefixedQueryKeys(prefix)
	}
}

// WithLogger sets the logger for decisions such as suppressed duplicate fetches.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithLoadingListener registers a callback for loading indicator flips.
func WithLoadingListener(fn func(visible bool)) Option {
	return func(o *options) {
		o.onLoading = fn
	}
}
