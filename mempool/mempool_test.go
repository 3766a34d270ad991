package mempool_test

import (
	"testing"

	"github.com/openpktio/pktio/core/testenv"
	"github.com/openpktio/pktio/mempool"
)

var makeAR = testenv.MakeAR

func TestMempool(t *testing.T) {
	assert, require := makeAR(t)

	mp, e := mempool.New(mempool.Config{Capacity: 63}, func(i int) *int {
		v := i
		return &v
	})
	require.NoError(e)
	defer mp.Close()

	assert.Equal(63, mp.Capacity())
	assert.Equal(63, mp.CountAvailable())
	assert.Equal(0, mp.CountInUse())

	vec0 := make([]*int, 33)
	require.NoError(mp.Alloc(vec0))
	assert.Equal(30, mp.CountAvailable())
	assert.Equal(33, mp.CountInUse())

	// all-or-nothing bulk allocation
	vec1 := make([]*int, 31)
	assert.ErrorIs(mp.Alloc(vec1), mempool.ErrNoObjects)
	assert.Equal(30, mp.CountAvailable())

	// burst allocation returns fewer on exhaustion
	n := mp.AllocBurst(vec1)
	assert.Equal(30, n)
	assert.Equal(0, mp.CountAvailable())
	assert.Equal(0, mp.AllocBurst(vec1))

	mp.Free(vec0)
	mp.Free(vec1[:n])
	assert.Equal(63, mp.CountAvailable())
}

func TestDoubleFree(t *testing.T) {
	assert, require := makeAR(t)

	// capacity below the ring's power-of-two alignment, so the slack would
	// otherwise absorb duplicated frees
	mp, e := mempool.New(mempool.Config{Capacity: 100}, func(i int) *int {
		v := i
		return &v
	})
	require.NoError(e)
	defer mp.Close()

	vec := make([]*int, 4)
	require.NoError(mp.Alloc(vec))
	mp.Free(vec)
	assert.Equal(100, mp.CountAvailable())
	assert.Panics(func() { mp.Free(vec) })
}

func TestOptimumCapacity(t *testing.T) {
	assert, _ := makeAR(t)

	assert.Equal(63, mempool.ComputeOptimumCapacity(64))
	assert.Equal(63, mempool.ComputeOptimumCapacity(63))
	assert.Equal(100, mempool.ComputeOptimumCapacity(100))
}
