package datatable

import (
	"sync"
	"time"
)

// DefaultLoadingDelay is the grace period before a loading indicator becomes visible.
const DefaultLoadingDelay = 200 * time.Millisecond

// LoadingIndicator turns an "is fetching" input into a "show loading UI" output that
// only turns on once fetching has lasted longer than the delay, and turns off the
// moment fetching stops.
//
// It is safe for concurrent use.
type LoadingIndicator struct {
	mu       sync.Mutex
	delay    time.Duration
	onChange func(visible bool)

	loading bool
	visible bool
	stopped bool
	timer   *time.Timer
	gen     uint64

	// delivered is the last value passed to onChange. Only the goroutine that set
	// delivering calls onChange.
	delivered  bool
	delivering bool
}

// NewLoadingIndicator creates an indicator. onChange, when not nil, is called outside
// the indicator's lock when the visible flag flips. Calls never overlap, and the last
// value delivered always equals Visible once the indicator is idle; flips that happen
// while a call is in progress are coalesced.
func NewLoadingIndicator(delay time.Duration, onChange func(visible bool)) *LoadingIndicator {
	return &LoadingIndicator{
		delay:    delay,
		onChange: onChange,
	}
}

// Set feeds the current fetching state.
func (l *LoadingIndicator) Set(loading bool) {
	l.mu.Lock()
	if l.stopped || loading == l.loading {
		l.mu.Unlock()
		return
	}
	l.loading = loading
	l.gen++
	l.cancelTimer()

	if !loading {
		l.visible = false
		l.mu.Unlock()
		l.publish()
		return
	}

	if l.delay <= 0 {
		l.visible = true
		l.mu.Unlock()
		l.publish()
		return
	}

	gen := l.gen
	l.timer = time.AfterFunc(l.delay, func() { l.fire(gen) })
	l.mu.Unlock()
}

func (l *LoadingIndicator) fire(gen uint64) {
	l.mu.Lock()
	if l.stopped || gen != l.gen || !l.loading || l.visible {
		l.mu.Unlock()
		return
	}
	l.visible = true
	l.timer = nil
	l.mu.Unlock()
	l.publish()
}

// Visible reports whether the loading UI should be shown.
func (l *LoadingIndicator) Visible() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.visible
}

// Loading reports the last input passed to Set.
func (l *LoadingIndicator) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

// Stop cancels any pending timer. The indicator ignores further input.
func (l *LoadingIndicator) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopped = true
	l.gen++
	l.cancelTimer()
}

// cancelTimer requires l.mu.
func (l *LoadingIndicator) cancelTimer() {
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
}

// publish delivers visible until the delivered value catches up. A caller that finds
// another delivery in progress returns at once; that delivery re-reads the flag after
// its callback.
func (l *LoadingIndicator) publish() {
	l.mu.Lock()
	if l.delivering {
		l.mu.Unlock()
		return
	}
	l.delivering = true
	defer func() {
		if r := recover(); r != nil {
			l.mu.Lock()
			l.delivering = false
			l.mu.Unlock()
			panic(r)
		}
	}()

	for l.visible != l.delivered {
		visible := l.visible
		l.delivered = visible
		l.mu.Unlock()
		if l.onChange != nil {
			l.onChange(visible)
		}
		l.mu.Lock()
	}
	l.delivering = false
	l.mu.Unlock()
}
