package swap

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"swapkern/trace"
	"swapkern/util"
)

/// Controller_t holds the adaptive replacement controller's tunables.
/// Threshold and Batch are monotonic within the lifetime of a
/// Controller_t: Threshold only ever decreases (floor 1) and Batch only
/// ever increases (ceiling Limit). Sustained pressure therefore makes the
/// controller progressively more aggressive and this never resets.
type Controller_t struct {
	mu sync.Mutex
	sf singleflight.Group

	Threshold int
	Batch     int
	Alpha     int
	Beta      int
	Limit     int
}

/// NewController creates a Controller_t with the documented defaults
/// (threshold=100, batch=4, limit=100) and the given alpha/beta
/// growth/decay percentages.
func NewController(alpha, beta int) *Controller_t {
	return &Controller_t{
		Threshold: 100,
		Batch:     4,
		Alpha:     alpha,
		Beta:      beta,
		Limit:     100,
	}
}

/// MaybeSwap is invoked whenever the free-frame count may have dipped to
/// or under the adaptive threshold. Concurrent callers collapse into a
/// single evaluation via singleflight, so a burst of pressure signals from
/// unrelated callers triggers at most one eviction episode at a time.
func (c *Controller_t) MaybeSwap(s *Subsystem_t) trace.Record {
	v, _, _ := c.sf.Do("maybe_swap", func() (interface{}, error) {
		return c.maybeSwapOnce(s), nil
	})
	return v.(trace.Record)
}

func (c *Controller_t) maybeSwapOnce(s *Subsystem_t) trace.Record {
	free := s.Phys.FreeCount()

	c.mu.Lock()
	threshold := c.Threshold
	batch := c.Batch
	c.mu.Unlock()

	rec := trace.Record{Free: free, Threshold: threshold, Batch: batch}
	if free > threshold {
		return rec
	}

	var successes, attempts int
	if victim, ok := PickVictimProcess(s.Procs); ok {
		successes, attempts = SwapOut(s, victim, batch)
	}
	rec.Evicted = successes
	rec.Attempts = attempts
	trace.Emit(rec)

	// Adaptation runs unconditionally after every triggered eviction, even
	// when zero pages were actually evicted: sustained failure to evict
	// still biases future behavior toward more aggressive reclaim.
	c.mu.Lock()
	c.Threshold = util.Max(1, c.Threshold-c.Threshold*c.Beta/100)
	c.Batch = util.Min(c.Limit, c.Batch+c.Batch*c.Alpha/100)
	c.mu.Unlock()

	return rec
}
