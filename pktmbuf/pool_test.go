package pktmbuf_test

import (
	"testing"

	"github.com/openpktio/pktio/numa"
	"github.com/openpktio/pktio/pktmbuf"
)

func TestPool(t *testing.T) {
	assert, require := makeAR(t)

	mp, e := pktmbuf.NewPool(pktmbuf.PoolConfig{Capacity: 63, Dataroom: 1000}, numa.Socket{})
	require.NoError(e)
	defer mp.Close()

	assert.Equal(63, mp.CountAvailable())
	assert.Equal(0, mp.CountInUse())
	assert.Equal(1000, mp.Dataroom())

	vec0, e := mp.Alloc(33)
	assert.NoError(e)
	assert.Equal(30, mp.CountAvailable())
	assert.Equal(33, mp.CountInUse())
	assert.Len(vec0, 33)

	vec1, e := mp.Alloc(30)
	assert.NoError(e)
	assert.Equal(0, mp.CountAvailable())
	assert.Equal(63, mp.CountInUse())

	_, e = mp.Alloc(1)
	assert.Error(e)

	// exhaustion surfaces as a shorter burst, not an error
	vec0.Close()
	vec2 := mp.AllocBurst(40)
	assert.Len(vec2, 33)

	vec1.Close()
	vec2.Close()
	assert.Equal(63, mp.CountAvailable())
}

func TestPoolDefaults(t *testing.T) {
	assert, require := makeAR(t)

	mp, e := pktmbuf.NewPool(pktmbuf.PoolConfig{Capacity: 7}, numa.Socket{})
	require.NoError(e)
	defer mp.Close()

	assert.Equal(pktmbuf.DefaultDataroom, mp.Dataroom())
	assert.Equal(pktmbuf.DefaultHeadroom, mp.Headroom())

	vec := mp.MustAlloc(1)
	defer vec.Close()
	pkt := vec[0]
	assert.Equal(pktmbuf.DefaultHeadroom, pkt.Headroom())
	assert.Equal(0, pkt.Len())
	assert.Equal(1, pkt.RefcntRead())
}
