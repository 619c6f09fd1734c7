package mocks

import (
	"time"

	"github.com/mcoot/quickdrawgame-go/internal/dependencies/clock"
)

// MockClock is a mock implementation of Clock for testing.
// Timers scheduled with AfterFunc fire synchronously from Advance.
type MockClock struct {
	CurrentTime time.Time
	timers      []*mockTimer
}

// Ensure MockClock implements Clock
var _ clock.Clock = (*MockClock)(nil)

// NewMockClock creates a MockClock set to the given time
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{CurrentTime: t}
}

// Now returns the mocked current time
func (c *MockClock) Now() time.Time {
	return c.CurrentTime
}

// AfterFunc schedules f to fire when the clock is advanced past d
func (c *MockClock) AfterFunc(d time.Duration, f func()) clock.Timer {
	t := &mockTimer{deadline: c.CurrentTime.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward by the given duration, firing any
// timers whose deadlines are reached, in deadline order
func (c *MockClock) Advance(d time.Duration) {
	target := c.CurrentTime.Add(d)
	for {
		next := c.nextDue(target)
		if next == nil {
			break
		}
		c.CurrentTime = next.deadline
		next.fired = true
		next.f()
	}
	c.CurrentTime = target
}

// Set sets the clock to the given time without firing timers
func (c *MockClock) Set(t time.Time) {
	c.CurrentTime = t
}

// PendingTimers returns the number of scheduled timers that have
// neither fired nor been stopped
func (c *MockClock) PendingTimers() int {
	count := 0
	for _, t := range c.timers {
		if !t.fired && !t.stopped {
			count++
		}
	}
	return count
}

func (c *MockClock) nextDue(target time.Time) *mockTimer {
	var next *mockTimer
	for _, t := range c.timers {
		if t.fired || t.stopped || t.deadline.After(target) {
			continue
		}
		if next == nil || t.deadline.Before(next.deadline) {
			next = t
		}
	}
	return next
}

type mockTimer struct {
	deadline time.Time
	f        func()
	fired    bool
	stopped  bool
}

// Stop cancels the timer if it has not yet fired
func (t *mockTimer) Stop() bool {
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}
