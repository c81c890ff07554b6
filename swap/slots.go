// Package swap implements the demand-paging / swap subsystem: the slot
// table, page I/O, victim selector, and adaptive replacement controller
// that evict user pages to disk under memory pressure and fault them back
// in on access.
package swap

import (
	"sync"

	"swapkern/mem"
)

/// NSLOTS is the fixed capacity of the slot table.
const NSLOTS = 800

/// BASE is the first disk block reserved for the swap area; blocks 0 and 1
/// belong to the host filesystem's boot/superblock.
const BASE = 2

/// BlocksPerSlot is the number of 512-byte disk blocks backing one 4KiB
/// page slot.
const BlocksPerSlot = mem.PGSIZE / 512

type slot_t struct {
	free bool
	perm mem.Pa_t
}

/// Table_t is the swap slot table: NSLOTS fixed-size slots guarded by a
/// single lock, covering only in-memory metadata.
type Table_t struct {
	mu    sync.Mutex
	slots [NSLOTS]slot_t
}

/// NewTable constructs a slot table with every slot free, matching
/// boot-time init(). Reinitializing an existing table is never needed —
/// the slot table is a singleton created once, at boot.
func NewTable() *Table_t {
	t := &Table_t{}
	for i := range t.slots {
		t.slots[i].free = true
	}
	return t
}

/// Allocate performs a linear, first-fit scan for the lowest-indexed free
/// slot, marks it used, and returns its index. Deterministic ordering is
/// required so callers can predict slot reuse.
func (t *Table_t) Allocate() (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.slots {
		if t.slots[i].free {
			t.slots[i].free = false
			return i, true
		}
	}
	return 0, false
}

/// Release marks slot i free again and clears its captured permissions.
/// Out-of-range indices are a silent no-op; releasing an already-free slot
/// is permitted because cleanup paths may double-visit it.
func (t *Table_t) Release(i int) {
	if i < 0 || i >= NSLOTS {
		return
	}
	t.mu.Lock()
	t.slots[i].free = true
	t.slots[i].perm = 0
	t.mu.Unlock()
}

/// SetPerm captures the residual PTE flags for slot i under the lock. The
/// caller must have already reserved the slot via Allocate.
func (t *Table_t) SetPerm(i int, perm mem.Pa_t) {
	t.mu.Lock()
	t.slots[i].perm = perm
	t.mu.Unlock()
}

/// Perm reads back the residual PTE flags captured for slot i.
func (t *Table_t) Perm(i int) mem.Pa_t {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.slots[i].perm
}

/// IsFree reports whether slot i is currently unused. Used by callers that
/// must validate a slot index decoded from a PTE before trusting it.
func (t *Table_t) IsFree(i int) bool {
	if i < 0 || i >= NSLOTS {
		return true
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.slots[i].free
}

/// UsedCount returns the number of slots currently marked used, which
/// should always equal the number of live swapped PTEs across every
/// address space.
func (t *Table_t) UsedCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for i := range t.slots {
		if !t.slots[i].free {
			n++
		}
	}
	return n
}

/// BlockBase returns the first disk block number backing slot i.
func BlockBase(slot int) int {
	return BASE + BlocksPerSlot*slot
}
