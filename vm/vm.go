// Package vm implements leaf page-table-entry encoding, a read-only page
// walker, and the TLB-flush hook used by the swap subsystem.
package vm

import (
	"sort"
	"sync"

	"swapkern/mem"
	"swapkern/util"
)

/// Vm_t is one process's address space: a sparse set of leaf page-table
/// entries (standing in for a real multi-level pmap) plus a TLB-flush
/// counter.
type Vm_t struct {
	mu      sync.Mutex
	leaves  map[uintptr]*mem.Pa_t
	flushes int
}

/// NewVm creates an empty address space with no mappings.
func NewVm() *Vm_t {
	return &Vm_t{leaves: make(map[uintptr]*mem.Pa_t)}
}

func pageOf(va uintptr) uintptr {
	return util.Rounddown(va, uintptr(mem.PGSIZE))
}

/// Walk performs a read-only page-table walk: it never allocates
/// intermediate tables. It returns the leaf entry pointer and true only if
/// a leaf already exists for va's page. Eviction, fault-in, and exit
/// cleanup walk read-only; WalkCreate is used only where a new leaf is
/// needed (test setup, the swapctl demo, and ForkCopy's child entries).
func (vm *Vm_t) Walk(va uintptr) (*mem.Pa_t, bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	pte, ok := vm.leaves[pageOf(va)]
	return pte, ok
}

/// WalkCreate installs (if absent) and returns the leaf entry for va. Used
/// to set up test fixtures and by ForkCopy to install the child's swapped
/// entries; fault-in rewrites the existing leaf found by Walk.
func (vm *Vm_t) WalkCreate(va uintptr) *mem.Pa_t {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	key := pageOf(va)
	pte, ok := vm.leaves[key]
	if !ok {
		pte = new(mem.Pa_t)
		vm.leaves[key] = pte
	}
	return pte
}

/// FlushTLB reloads the page-directory base, the architecturally required
/// step after any change to the accessed bit or a PTE rewrite so the
/// hardware re-samples stale translations on the next access.
func (vm *Vm_t) FlushTLB() {
	vm.mu.Lock()
	vm.flushes++
	vm.mu.Unlock()
}

/// Flushes reports how many times FlushTLB has run; tests use this to
/// assert the clearing sweep actually reloads cr3.
func (vm *Vm_t) Flushes() int {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.flushes
}

/// Range calls f for every mapped user virtual address (va < KERNBASE), in
/// ascending order, the deterministic order the clock scan relies on to
/// pick victim pages reproducibly. f may mutate *pte in place (e.g. to
/// clear PTE_A) but must not call back into vm.
func (vm *Vm_t) Range(f func(va uintptr, pte *mem.Pa_t) bool) {
	vm.mu.Lock()
	vas := make([]uintptr, 0, len(vm.leaves))
	for va := range vm.leaves {
		if va < mem.KERNBASE {
			vas = append(vas, va)
		}
	}
	vm.mu.Unlock()
	sort.Slice(vas, func(i, j int) bool { return vas[i] < vas[j] })
	for _, va := range vas {
		vm.mu.Lock()
		pte := vm.leaves[va]
		vm.mu.Unlock()
		if pte == nil {
			continue
		}
		if !f(va, pte) {
			return
		}
	}
}

// --- PTE encoding ---

/// Classify reports which of the three disjoint states a leaf entry is in:
/// present, swapped, or empty. Exactly one is ever true.
func Classify(e mem.Pa_t) (present, swapped, empty bool) {
	if e == 0 {
		return false, false, true
	}
	if e&mem.PTE_P != 0 {
		return true, false, false
	}
	return false, true, false
}

/// EncodePresent builds a present leaf entry for the given frame and low
/// flag bits, forcing PTE_P on.
func EncodePresent(frame mem.Pa_t, flags mem.Pa_t) mem.Pa_t {
	return (frame & mem.PTE_ADDR) | (flags & mem.PTE_FLAGS) | mem.PTE_P
}

/// EncodeSwapped builds a swapped leaf entry: slot index in the upper
/// bits, the residual low-12 flags with PTE_P masked off.
func EncodeSwapped(slot int, flags mem.Pa_t) mem.Pa_t {
	return (mem.Pa_t(slot) << mem.PGSHIFT) | (flags &^ mem.PTE_P & mem.PTE_FLAGS)
}

/// DecodeSlot extracts the slot index from a swapped leaf entry.
func DecodeSlot(e mem.Pa_t) int {
	return int((e & mem.PTE_ADDR) >> mem.PGSHIFT)
}

/// DecodeFlags extracts the low-12 flag bits of a leaf entry.
func DecodeFlags(e mem.Pa_t) mem.Pa_t {
	return e & mem.PTE_FLAGS
}

/// DecodeFrame extracts the physical frame of a present leaf entry.
func DecodeFrame(e mem.Pa_t) mem.Pa_t {
	return e & mem.PTE_ADDR
}
