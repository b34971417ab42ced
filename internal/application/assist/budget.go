package assist

import "time"

// Budget wall-clock allowance of one request
// Owned by a single orchestrator run; never shared.
type Budget struct {
	start time.Time
	total time.Duration
	now   func() time.Time
}

// NewBudget starts a budget at now()
func NewBudget(total time.Duration, now func() time.Time) *Budget {
	if now == nil {
		now = time.Now
	}
	return &Budget{start: now(), total: total, now: now}
}

// Elapsed time since the request entered
func (b *Budget) Elapsed() time.Duration {
	return b.now().Sub(b.start)
}

// Remaining time left; never negative
func (b *Budget) Remaining() time.Duration {
	remaining := b.total - b.Elapsed()
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Past reports whether mark has elapsed since start
func (b *Budget) Past(mark time.Duration) bool {
	return b.Elapsed() > mark
}

// Deadline absolute end of the budget
func (b *Budget) Deadline() time.Time {
	return b.start.Add(b.total)
}
