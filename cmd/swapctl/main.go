// Command swapctl boots the swap subsystem against a small simulated
// arena and drives one pressure episode end-to-end, printing the
// controller's trace line and a short CPU-profile summary of the run.
package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"strconv"

	"github.com/google/pprof/profile"

	"swapkern/blk"
	"swapkern/mem"
	"swapkern/proc"
	"swapkern/swap"
	"swapkern/vm"
)

func envInt(name string, def int) int {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("swapctl: bad %s=%q: %v", name, v, err)
	}
	return n
}

func main() {
	// ALPHA/BETA are build-time configuration, read as environment
	// variables at run time since this module is not cross-compiled per
	// build.
	alpha := envInt("ALPHA", 25)
	beta := envInt("BETA", 10)

	const frames = 96 // deliberately small so a pressure episode triggers
	phys := mem.NewPhysmem(frames)
	procs := proc.NewTable(8)
	disk := blk.NewMemDisk()
	s := swap.Init(phys, procs, disk, alpha, beta)

	as := vm.NewVm()
	p := procs.Add(7, as)

	npages := 90
	for i := 0; i < npages; i++ {
		va := uintptr(i * mem.PGSIZE)
		pte := as.WalkCreate(va)
		frame, ok := phys.AllocFrame()
		if !ok {
			log.Fatalf("swapctl: arena too small for demo (ran out after %d pages)", i)
		}
		*pte = vm.EncodePresent(frame, mem.PTE_U|mem.PTE_W|mem.PTE_A)
		p.AddRss(1)
	}

	var buf bytes.Buffer
	if err := pprof.StartCPUProfile(&buf); err != nil {
		log.Fatalf("swapctl: start profile: %v", err)
	}
	rec := s.Controller.MaybeSwap(s)
	pprof.StopCPUProfile()

	fmt.Println(rec.String())
	fmt.Printf("rss now %d, slots in use %d\n", p.Rss, s.Slots.UsedCount())

	prof, err := profile.Parse(&buf)
	if err != nil {
		log.Fatalf("swapctl: parse profile: %v", err)
	}
	fmt.Printf("profile: %d samples over %dns\n", len(prof.Sample), prof.DurationNanos)
}
