package swap

import (
	"swapkern/defs"
	"swapkern/mem"
	"swapkern/proc"
	"swapkern/vm"
)

/// SwapPageIn handles a page fault on a faulting address whose leaf PTE is
/// non-zero and non-present. It rounds va down to its page boundary (via
/// as.Walk), requires a leaf to exist, tolerates a PTE that is already
/// present (another thread raced this fault and won), decodes and
/// validates the slot index, allocates a frame (retrying once after
/// invoking the pressure routine), reads the page back from disk, restores
/// the captured permissions with PTE_P forced on, releases the slot, and
/// increments p's RSS.
func SwapPageIn(s *Subsystem_t, as *vm.Vm_t, p *proc.Proc_t, va uintptr) defs.Err_t {
	pte, ok := as.Walk(va)
	if !ok {
		return -defs.ENOPTE
	}
	if *pte&mem.PTE_P != 0 {
		// another thread already handled this fault.
		return 0
	}

	slot := vm.DecodeSlot(*pte)
	if slot < 0 || slot >= NSLOTS || s.Slots.IsFree(slot) {
		return -defs.EBADSLOT
	}

	frame, ok := retryUnderPressure(s.Notifier, 1, 1, func() (mem.Pa_t, bool) {
		return s.Phys.AllocFrame()
	})
	if !ok {
		return -defs.EOOM
	}

	ReadPageFromSlot(s.Disk, slot, s.Phys.Frame(frame))

	// Installing the mapping cannot itself fail in this simulated address
	// space (there is no intermediate page-table page to allocate). The
	// one real failure mode here — frame exhaustion — is handled above by
	// retryUnderPressure before any state is touched.
	perm := s.Slots.Perm(slot) | mem.PTE_P
	*pte = vm.EncodePresent(frame, perm)
	as.FlushTLB()

	s.Slots.Release(slot)
	p.AddRss(1)
	return 0
}
