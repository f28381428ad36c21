package game

import (
	"sync"
	"time"
)

// Clock is one side's countdown timer. It only runs between Start and Stop.
type Clock struct {
	mu          sync.Mutex
	timeLeft    time.Duration
	lastStarted time.Time
	isRunning   bool
	now         func() time.Time
}

// NewClock creates a stopped clock holding initial time.
func NewClock(initial time.Duration) *Clock {
	return newClock(initial, time.Now)
}

func newClock(initial time.Duration, now func() time.Time) *Clock {
	return &Clock{timeLeft: initial, now: now}
}

// Start resumes the countdown. Starting a running clock does nothing.
func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isRunning {
		c.lastStarted = c.now()
		c.isRunning = true
	}
}

// Stop pauses the countdown and books the elapsed time.
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isRunning {
		c.timeLeft -= c.now().Sub(c.lastStarted)
		c.isRunning = false
	}
}

// Add credits d to the clock, as an increment after a move.
func (c *Clock) Add(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timeLeft += d
}

// Remaining returns the time left, counting a running period.
func (c *Clock) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isRunning {
		return c.timeLeft - c.now().Sub(c.lastStarted)
	}
	return c.timeLeft
}

// Running reports whether the clock is counting down.
func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isRunning
}

// Flagged reports whether the time has run out.
func (c *Clock) Flagged() bool {
	return c.Remaining() <= 0
}
