package swap

import (
	"swapkern/mem"
	"swapkern/proc"
	"swapkern/vm"
)

/// SwapFree performs exit-time cleanup: every leaf entry in p's address
/// space that is nonzero and non-present names a swap slot, which is
/// released and zeroed. Present entries are left untouched — those are
/// freed by the generic teardown path, outside this subsystem's scope.
func SwapFree(s *Subsystem_t, p *proc.Proc_t) {
	p.Pgdir.Range(func(va uintptr, pte *mem.Pa_t) bool {
		e := *pte
		if e != 0 && e&mem.PTE_P == 0 {
			s.Slots.Release(vm.DecodeSlot(e))
			*pte = 0
		}
		return true
	})
}
