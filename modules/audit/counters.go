package audit

import (
	"sync"
	"time"
)

// Counters tallies calculation outcomes. Individual calculations are not kept.
type Counters struct {
	mu           sync.RWMutex
	performed    int64
	failed       int64
	byOperation  map[string]int64
	failedByCode map[string]int64
	lastActivity time.Time
}

// NewCounters creates empty counters.
func NewCounters() *Counters {
	return &Counters{
		byOperation:  make(map[string]int64),
		failedByCode: make(map[string]int64),
	}
}

// RecordPerformed counts a successful calculation.
func (c *Counters) RecordPerformed(operation string, at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.performed++
	c.byOperation[operation]++
	c.touch(at)
}

// RecordFailed counts a rejected calculation.
func (c *Counters) RecordFailed(code string, at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.failed++
	c.failedByCode[code]++
	c.touch(at)
}

func (c *Counters) touch(at time.Time) {
	if at.After(c.lastActivity) {
		c.lastActivity = at
	}
}

// Snapshot returns a copy of the current counters.
func (c *Counters) Snapshot() SummaryResponse {
	c.mu.RLock()
	defer c.mu.RUnlock()

	resp := SummaryResponse{
		Performed:    c.performed,
		Failed:       c.failed,
		ByOperation:  make(map[string]int64, len(c.byOperation)),
		FailedByCode: make(map[string]int64, len(c.failedByCode)),
	}
	for op, n := range c.byOperation {
		resp.ByOperation[op] = n
	}
	for code, n := range c.failedByCode {
		resp.FailedByCode[code] = n
	}
	if !c.lastActivity.IsZero() {
		last := c.lastActivity
		resp.LastActivity = &last
	}
	return resp
}
