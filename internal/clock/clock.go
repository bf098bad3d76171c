// Package clock provides a small time abstraction so code that waits
// (artificial network delay, mostly) can be tested deterministically.
package clock

import "time"

// Clock supplies the current time and blocking sleeps.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
	// Sleep blocks for the given duration. Non-positive durations return
	// immediately.
	Sleep(d time.Duration)
}

// System is a Clock backed by the real system clock.
type System struct{}

// Now returns the current system time.
func (System) Now() time.Time { return time.Now() }

// Sleep calls time.Sleep.
func (System) Sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

// Mock is a Clock for tests that advances manually and records sleeps
// instead of blocking. It is not safe for concurrent use.
type Mock struct {
	current time.Time
	slept   []time.Duration
}

// NewMock creates a Mock initialized to the given time.
// If t is zero it starts at a fixed non-zero time to avoid zero-time edge cases.
func NewMock(t time.Time) *Mock {
	if t.IsZero() {
		t = time.Unix(1700000000, 0) // 2023-11-14
	}
	return &Mock{current: t}
}

// Now returns the mock clock's current time.
func (m *Mock) Now() time.Time { return m.current }

// Sleep records the requested duration and advances the clock by it.
func (m *Mock) Sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	m.slept = append(m.slept, d)
	m.current = m.current.Add(d)
}

// Advance moves the clock forward by d. Panics if d is negative.
func (m *Mock) Advance(d time.Duration) {
	if d < 0 {
		panic("clock: Advance requires a non-negative duration")
	}
	m.current = m.current.Add(d)
}

// Slept returns every duration passed to Sleep, in order.
func (m *Mock) Slept() []time.Duration { return m.slept }
