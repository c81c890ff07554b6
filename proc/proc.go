// Package proc implements the process table: the pid/state/rss/pgdir
// bookkeeping the victim selector and replacement controller iterate
// under a single lock.
package proc

import (
	"sync"

	"swapkern/vm"
)

/// State_t enumerates the lifecycle states of a process table slot.
type State_t int

const (
	Unused State_t = iota
	Embryo
	Runnable
	Running
	Zombie
)

/// Proc_t is one process table entry: pid, scheduling state, resident set
/// size, and the address space it owns.
type Proc_t struct {
	Pid   int
	State State_t
	Rss   int
	Pgdir *vm.Vm_t
}

/// Table_t is the process table: a fixed slice of Proc_t guarded by a
/// single mutex — the process table lock.
type Table_t struct {
	mu    sync.Mutex
	procs []*Proc_t
}

/// NewTable creates an empty process table with room for capacity
/// processes.
func NewTable(capacity int) *Table_t {
	return &Table_t{procs: make([]*Proc_t, 0, capacity)}
}

/// Add inserts a new, Runnable process and returns it.
func (t *Table_t) Add(pid int, pgdir *vm.Vm_t) *Proc_t {
	t.mu.Lock()
	defer t.mu.Unlock()
	p := &Proc_t{Pid: pid, State: Runnable, Pgdir: pgdir}
	t.procs = append(t.procs, p)
	return p
}

/// Remove deletes p from the table (exit teardown).
func (t *Table_t) Remove(p *Proc_t) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, q := range t.procs {
		if q == p {
			t.procs = append(t.procs[:i], t.procs[i+1:]...)
			return
		}
	}
}

/// Each calls f for every process under the table lock. f must not call
/// back into Table_t.
func (t *Table_t) Each(f func(*Proc_t)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, p := range t.procs {
		f(p)
	}
}

/// AddRss adjusts p's resident set size by delta. RSS is advisory: callers
/// may race a brief over/undercount.
func (p *Proc_t) AddRss(delta int) {
	p.Rss += delta
}
