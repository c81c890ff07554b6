package swap

import (
	"swapkern/defs"
	"swapkern/mem"
	"swapkern/proc"
	"swapkern/vm"
)

/// SwapPageOut evicts the page mapped at va in address space as. It
/// reserves a slot, requires the leaf PTE to be present, captures the
/// PTE's low 12 flag bits (PTE_P included) as the slot's perm, writes the
/// page image to disk, rewrites the PTE to
/// point at the slot with PTE_P cleared, and flushes the TLB — the
/// capture-flags -> write-disk -> overwrite-PTE -> flush-TLB sequence must
/// run in that order. On success it returns the now-orphan physical frame
/// so the caller can free it after adjusting RSS; SwapOut is the only
/// caller.
func SwapPageOut(s *Subsystem_t, as *vm.Vm_t, va uintptr) (mem.Pa_t, defs.Err_t) {
	slot, ok := s.Slots.Allocate()
	if !ok {
		return 0, -defs.ENOSLOT
	}

	pte, ok := as.Walk(va)
	if !ok || *pte&mem.PTE_P == 0 {
		s.Slots.Release(slot)
		return 0, -defs.ENOTPRESENT
	}

	flags := vm.DecodeFlags(*pte)
	frame := vm.DecodeFrame(*pte)
	s.Slots.SetPerm(slot, flags)

	WritePageToSlot(s.Disk, slot, s.Phys.Frame(frame))

	*pte = vm.EncodeSwapped(slot, flags)
	as.FlushTLB()

	return frame, 0
}

/// SwapOut picks pages from victim's address space and evicts them one at
/// a time until either batch pages have been successfully evicted or
/// 2*batch attempts have been made — the attempt cap bounds worst-case
/// work when most candidates keep failing, e.g. because a PTE disappeared
/// under a race.
func SwapOut(s *Subsystem_t, victim *proc.Proc_t, batch int) (successes, attempts int) {
	for successes < batch && attempts < 2*batch {
		va, ok := PickVictimPage(victim.Pgdir)
		if !ok {
			break
		}
		attempts++
		frame, err := SwapPageOut(s, victim.Pgdir, va)
		if err == 0 {
			victim.AddRss(-1)
			s.Phys.FreeFrame(frame)
			successes++
		}
	}
	return successes, attempts
}
