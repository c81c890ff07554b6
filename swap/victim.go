package swap

import (
	"swapkern/mem"
	"swapkern/proc"
	"swapkern/vm"
)

/// PickVictimProcess scans the process table under its lock and returns
/// the eligible process with the largest Rss. Entries that are Unused or
/// have pid <= 0 are skipped. Ties go to the smaller pid, but only once a
/// candidate is already recorded; with no candidate yet, an equal Rss can
/// only be 0, so that guard never picks a zero-Rss process. The
/// comparator uses max_rss = 0 as a strict lower bound, so it never
/// returns a process whose Rss is 0, even if that process is the only
/// candidate.
func PickVictimProcess(t *proc.Table_t) (*proc.Proc_t, bool) {
	var victim *proc.Proc_t
	maxRss := 0
	t.Each(func(p *proc.Proc_t) {
		if p.State == proc.Unused || p.Pid < 1 {
			return
		}
		if p.Rss > maxRss || (p.Rss == maxRss && victim != nil && p.Pid < victim.Pid) {
			maxRss = p.Rss
			victim = p
		}
	})
	return victim, victim != nil
}

/// PickVictimPage runs a two-pass approximate-LRU ("second-chance") scan
/// over as's user mappings, in ascending virtual address order. Pass A
/// returns the first present, user-accessible entry
/// whose accessed bit is clear. If pass A finds nothing, every present
/// user-accessible entry has its accessed bit cleared, the TLB is flushed,
/// and pass B returns the first present user-accessible entry encountered
/// (now guaranteed to have PTE_A clear, since the sweep just cleared all
/// of them).
func PickVictimPage(as *vm.Vm_t) (uintptr, bool) {
	var found uintptr
	ok := false
	as.Range(func(va uintptr, pte *mem.Pa_t) bool {
		e := *pte
		if e&mem.PTE_P == 0 || e&mem.PTE_U == 0 {
			return true
		}
		if e&mem.PTE_A == 0 {
			found, ok = va, true
			return false
		}
		return true
	})
	if ok {
		return found, true
	}

	as.Range(func(va uintptr, pte *mem.Pa_t) bool {
		e := *pte
		if e&mem.PTE_P == 0 || e&mem.PTE_U == 0 {
			return true
		}
		*pte = e &^ mem.PTE_A
		return true
	})
	as.FlushTLB()

	as.Range(func(va uintptr, pte *mem.Pa_t) bool {
		e := *pte
		if e&mem.PTE_P == 0 || e&mem.PTE_U == 0 {
			return true
		}
		found, ok = va, true
		return false
	})
	return found, ok
}
