package vm_test

import (
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swapkern/mem"
	"swapkern/vm"
)

// TestClassifyDisjoint checks that for each of a fixed set of encoded leaf
// entries, exactly one of present/swapped/empty holds.
func TestClassifyDisjoint(t *testing.T) {
	cases := []mem.Pa_t{
		0,
		vm.EncodePresent(mem.Pa_t(4096), mem.PTE_U|mem.PTE_W),
		vm.EncodeSwapped(0, mem.PTE_U),
		vm.EncodeSwapped(799, mem.PTE_U|mem.PTE_W),
		vm.EncodePresent(mem.Pa_t(0), 0),
	}
	for _, e := range cases {
		present, swapped, empty := vm.Classify(e)
		n := 0
		for _, b := range []bool{present, swapped, empty} {
			if b {
				n++
			}
		}
		assert.Equal(t, 1, n, "entry %#x must classify as exactly one state", e)
	}
}

// TestEncodeDecodeRoundTrip checks that decoding an encoded entry recovers
// exactly the slot/frame and flags that were put in.
func TestEncodeDecodeRoundTrip(t *testing.T) {
	f := func(slot uint16, flags uint8) bool {
		s := int(slot) % swapSlotBound
		fl := mem.Pa_t(flags) & mem.PTE_FLAGS &^ mem.PTE_P
		e := vm.EncodeSwapped(s, fl)
		_, swapped, _ := vm.Classify(e)
		return swapped && vm.DecodeSlot(e) == s && vm.DecodeFlags(e) == fl
	}
	require.NoError(t, quick.Check(f, nil))

	g := func(frame uint32, flags uint8) bool {
		pa := mem.Pa_t(frame) << mem.PGSHIFT
		fl := mem.Pa_t(flags) & mem.PTE_FLAGS
		e := vm.EncodePresent(pa, fl)
		present, _, _ := vm.Classify(e)
		return present && vm.DecodeFrame(e) == pa && vm.DecodeFlags(e) == (fl|mem.PTE_P)
	}
	require.NoError(t, quick.Check(g, nil))
}

const swapSlotBound = 800

func TestWalkNeverCreates(t *testing.T) {
	as := vm.NewVm()
	_, ok := as.Walk(0)
	assert.False(t, ok)
}

func TestWalkCreateIsIdempotent(t *testing.T) {
	as := vm.NewVm()
	p1 := as.WalkCreate(100)
	p2 := as.WalkCreate(100)
	assert.Same(t, p1, p2)
}

func TestRangeOrdersAscendingAndSkipsKernel(t *testing.T) {
	as := vm.NewVm()
	vas := []uintptr{3 * 4096, 1 * 4096, 2 * 4096}
	for _, va := range vas {
		as.WalkCreate(va)
	}
	as.WalkCreate(mem.KERNBASE) // must never appear in Range

	var seen []uintptr
	as.Range(func(va uintptr, pte *mem.Pa_t) bool {
		seen = append(seen, va)
		return true
	})
	assert.Equal(t, []uintptr{1 * 4096, 2 * 4096, 3 * 4096}, seen)
}

func TestRangeStopsOnFalse(t *testing.T) {
	as := vm.NewVm()
	for i := 0; i < 5; i++ {
		as.WalkCreate(uintptr(i * 4096))
	}
	n := 0
	as.Range(func(va uintptr, pte *mem.Pa_t) bool {
		n++
		return n < 2
	})
	assert.Equal(t, 2, n)
}
