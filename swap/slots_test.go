package swap_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"swapkern/swap"
)

func TestTableAllocateFirstFit(t *testing.T) {
	tb := swap.NewTable()

	i0, ok := tb.Allocate()
	require.True(t, ok)
	assert.Equal(t, 0, i0)

	i1, ok := tb.Allocate()
	require.True(t, ok)
	assert.Equal(t, 1, i1)

	tb.Release(i0)

	// releasing the lowest slot makes it the next allocation again —
	// first-fit, deterministic.
	i2, ok := tb.Allocate()
	require.True(t, ok)
	assert.Equal(t, 0, i2)
}

func TestTableReleaseIdempotentAndOutOfRange(t *testing.T) {
	tb := swap.NewTable()

	// out of range is a silent no-op.
	tb.Release(-1)
	tb.Release(swap.NSLOTS)
	tb.Release(swap.NSLOTS + 100)

	i, ok := tb.Allocate()
	require.True(t, ok)
	tb.Release(i)
	tb.Release(i) // double release permitted
	assert.True(t, tb.IsFree(i))
}

func TestTableExhaustion(t *testing.T) {
	tb := swap.NewTable()
	for i := 0; i < swap.NSLOTS; i++ {
		_, ok := tb.Allocate()
		require.True(t, ok)
	}
	_, ok := tb.Allocate()
	assert.False(t, ok, "table should report exhaustion once all slots are used")
}

// TestNoDoubleAllocation drives many concurrent Allocate calls and checks
// that no index is ever returned twice while it is in use.
func TestNoDoubleAllocation(t *testing.T) {
	tb := swap.NewTable()

	var mu sync.Mutex
	seen := make(map[int]bool)

	var g errgroup.Group
	for i := 0; i < swap.NSLOTS; i++ {
		g.Go(func() error {
			idx, ok := tb.Allocate()
			if !ok {
				return nil
			}
			mu.Lock()
			defer mu.Unlock()
			if seen[idx] {
				t.Errorf("slot %d allocated twice concurrently", idx)
			}
			seen[idx] = true
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, swap.NSLOTS, tb.UsedCount())
}
