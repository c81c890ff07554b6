package swap

import (
	"swapkern/blk"
	"swapkern/mem"
	"swapkern/oom"
	"swapkern/proc"
)

/// Subsystem_t bundles the slot table, frame allocator, process table,
/// disk, pressure notifier, and controller that every swap operation
/// needs. It is threaded explicitly through the operations that need it
/// rather than held in ambient package-level globals.
type Subsystem_t struct {
	Slots      *Table_t
	Phys       *mem.Physmem_t
	Procs      *proc.Table_t
	Disk       blk.Disk_i
	Notifier   *oom.Notifier_t
	Controller *Controller_t
}

/// Init boots the swap subsystem: a fresh, all-free slot table and a
/// controller with the documented default tunables, wired so that
/// pressure notifications invoke MaybeSwap. alpha/beta are the
/// build-time ALPHA/BETA growth/decay percentages; pass 0 to take the
/// documented defaults (25, 10).
func Init(phys *mem.Physmem_t, procs *proc.Table_t, disk blk.Disk_i, alpha, beta int) *Subsystem_t {
	if alpha == 0 {
		alpha = 25
	}
	if beta == 0 {
		beta = 10
	}
	s := &Subsystem_t{
		Slots:    NewTable(),
		Phys:     phys,
		Procs:    procs,
		Disk:     disk,
		Notifier: oom.NewNotifier(),
	}
	s.Controller = NewController(alpha, beta)
	s.Notifier.Subscribe(func(need int) {
		s.Controller.MaybeSwap(s)
	})
	return s
}

// retryUnderPressure implements the "try, ask the reclaimer for room, try
// again" pattern as a single reusable helper instead of duplicating the
// attempt/notify/retry loop at each call site (Duplicate, SwapPageIn).
func retryUnderPressure[T any](n *oom.Notifier_t, need, maxRetries int, op func() (T, bool)) (T, bool) {
	v, ok := op()
	for i := 0; !ok && i < maxRetries; i++ {
		n.Notify(need)
		v, ok = op()
	}
	return v, ok
}

/// Duplicate is used by fork to copy a swapped page: it allocates a new
/// slot (retrying twice after invoking the pressure routine on failure),
/// copies perm under the slot lock, and copies the 8 disk blocks without
/// holding that lock. It fails if parent is out of range or already free,
/// or if no free slot can be found after the two retries.
func (s *Subsystem_t) Duplicate(parent int) (int, bool) {
	if parent < 0 || parent >= NSLOTS || s.Slots.IsFree(parent) {
		return 0, false
	}
	child, ok := retryUnderPressure(s.Notifier, 1, 2, func() (int, bool) {
		return s.Slots.Allocate()
	})
	if !ok {
		return 0, false
	}
	perm := s.Slots.Perm(parent)
	s.Slots.SetPerm(child, perm)
	copySlotBlocks(s.Disk, parent, child)
	return child, true
}
