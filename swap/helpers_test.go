package swap_test

import (
	"swapkern/blk"
	"swapkern/mem"
	"swapkern/proc"
	"swapkern/swap"
)

// newSubsystem builds a Subsystem_t over a fresh nframes-frame arena, an
// 8-slot process table, and an in-memory disk — the fixture every
// eviction/fault-in/controller test in this package starts from.
func newSubsystem(nframes, alpha, beta int) *swap.Subsystem_t {
	phys := mem.NewPhysmem(nframes)
	procs := proc.NewTable(8)
	disk := blk.NewMemDisk()
	return swap.Init(phys, procs, disk, alpha, beta)
}

// fillPattern returns a deterministic, non-zero byte pattern sized to a
// page, used to check page contents survive an evict/fault-in round trip.
func fillPattern(seed byte) *mem.Bytepg_t {
	var pg mem.Bytepg_t
	for i := range pg {
		pg[i] = byte(i) ^ seed
	}
	return &pg
}
