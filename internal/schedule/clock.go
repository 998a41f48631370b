package schedule

import (
	"slices"
	"time"
)

// FireFunc delivers an elapsed timer and returns any follow-up timers.
type FireFunc func(Timer) []Timer

type entry struct {
	at    time.Duration
	order uint64
	timer Timer
}

// Clock is a virtual clock. Time only moves when [Clock.Advance] or [Clock.Drain] is called,
// and due timers fire in due-time order, ties broken by scheduling order.
type Clock struct {
	now     time.Duration
	order   uint64
	pending []entry
}

// Now returns the elapsed virtual time.
func (c *Clock) Now() time.Duration { return c.now }

// Pending returns the number of scheduled timers that have not fired.
func (c *Clock) Pending() int { return len(c.pending) }

// Schedule queues timers relative to the current virtual time.
func (c *Clock) Schedule(timers ...Timer) {
	for _, t := range timers {
		c.order++
		e := entry{at: c.now + t.Delay, order: c.order, timer: t}
		i, _ := slices.BinarySearchFunc(c.pending, e, compareEntries)
		c.pending = slices.Insert(c.pending, i, e)
	}
}

// Advance moves time forward by d, firing every timer that comes due on the way.
// Follow-up timers are scheduled from the moment their parent fired and fire too if due within d.
func (c *Clock) Advance(d time.Duration, fire FireFunc) {
	target := c.now + d
	for len(c.pending) > 0 && c.pending[0].at <= target {
		c.step(fire)
	}
	c.now = target
}

// Drain fires timers until none remain, moving time to each one's due time.
func (c *Clock) Drain(fire FireFunc) {
	for len(c.pending) > 0 {
		c.step(fire)
	}
}

// Next returns the delay until the earliest pending timer of kind k.
func (c *Clock) Next(k Kind) (time.Duration, bool) {
	for _, e := range c.pending {
		if e.timer.Kind == k {
			return e.at - c.now, true
		}
	}
	return 0, false
}

func (c *Clock) step(fire FireFunc) {
	e := c.pending[0]
	c.pending = c.pending[1:]
	c.now = e.at
	if fire != nil {
		c.Schedule(fire(e.timer)...)
	}
}

func compareEntries(a, b entry) int {
	switch {
	case a.at < b.at:
		return -1
	case a.at > b.at:
		return 1
	case a.order < b.order:
		return -1
	case a.order > b.order:
		return 1
	default:
		return 0
	}
}
