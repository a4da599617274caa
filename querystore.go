package datatable

import (
	"net/url"
	"sync"
)

// QueryStore persists the table's query string. It is owned by the page or router
// layer and injected into the controller.
//
// Reads and edits (get/set/delete) happen on the url.Values snapshot returned by
// Values; Replace commits a new query, which typically pushes a history entry.
type QueryStore interface {
	Values() url.Values
	Replace(values url.Values)
}

// MemoryQueryStore keeps the query in memory and records every committed query.
type MemoryQueryStore struct {
	mu      sync.Mutex
	values  url.Values
	history []string
}

// NewMemoryQueryStore creates a store seeded from a raw query such as "page=2&perPage=20".
// An unparsable query starts empty.
func NewMemoryQueryStore(rawQuery string) *MemoryQueryStore {
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		values = url.Values{}
	}
	return &MemoryQueryStore{values: values}
}

func (m *MemoryQueryStore) Values() url.Values {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneValues(m.values)
}

func (m *MemoryQueryStore) Replace(values url.Values) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = cloneValues(values)
	m.history = append(m.history, values.Encode())
}

// Encode returns the current query string.
func (m *MemoryQueryStore) Encode() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values.Encode()
}

// History returns every committed query, oldest first.
func (m *MemoryQueryStore) History() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.history...)
}

// URLQueryStore reads and writes the query of a URL in place.
type URLQueryStore struct {
	mu sync.Mutex
	u  *url.URL
}

// NewURLQueryStore wraps u. The store owns u from then on.
func NewURLQueryStore(u *url.URL) *URLQueryStore {
	return &URLQueryStore{u: u}
}

func (s *URLQueryStore) Values() url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.u.Query()
}

func (s *URLQueryStore) Replace(values url.Values) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.u.RawQuery = values.Encode()
}

// URL returns a copy of the current URL.
func (s *URLQueryStore) URL() *url.URL {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := *s.u
	return &u
}

func cloneValues(v url.Values) url.Values {
	c := make(url.Values, len(v))
	for k, vs := range v {
		c[k] = append([]string(nil), vs...)
	}
	return c
}
