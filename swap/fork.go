package swap

import (
	"swapkern/defs"
	"swapkern/mem"
	"swapkern/vm"
)

/// ForkCopy duplicates every swapped PTE in parent into child, giving the
/// child its own slot with the same residual flags and disk contents. It
/// stops at the first slot it cannot duplicate, since failure to allocate
/// a swap slot is fatal to the fork: the child is not created.
func ForkCopy(s *Subsystem_t, parent, child *vm.Vm_t) defs.Err_t {
	var ferr defs.Err_t
	parent.Range(func(va uintptr, pte *mem.Pa_t) bool {
		e := *pte
		if e == 0 || e&mem.PTE_P != 0 {
			return true
		}
		parentSlot := vm.DecodeSlot(e)
		flags := vm.DecodeFlags(e)
		childSlot, ok := s.Duplicate(parentSlot)
		if !ok {
			ferr = -defs.ENOSLOT
			return false
		}
		childPte := child.WalkCreate(va)
		*childPte = vm.EncodeSwapped(childSlot, flags)
		return true
	})
	return ferr
}
