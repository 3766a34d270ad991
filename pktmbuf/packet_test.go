package pktmbuf_test

import (
	"bytes"
	"testing"

	"github.com/openpktio/pktio/core/testenv"
	"github.com/openpktio/pktio/numa"
	"github.com/openpktio/pktio/pktmbuf"
)

func TestPacketReadWrite(t *testing.T) {
	assert, require := makeAR(t)
	vec := directMp.MustAlloc(2)
	defer vec.Close()

	part0 := bytes.Repeat([]byte{0xA0}, 100)
	part1 := bytes.Repeat([]byte{0xA1}, 200)
	part2 := make([]byte, 300)
	testenv.RandBytes(part2)

	pkt := vec[0]
	require.NotNil(pkt)
	assert.Equal(0, pkt.Len())
	assert.False(pkt.IsSegmented())
	assert.True(pkt.IsContiguous())

	require.NoError(pkt.SetHeadroom(200))
	assert.Equal(200, pkt.Headroom())
	tail0 := pkt.Tailroom()
	require.NoError(pkt.AppendBytes(part1))
	assert.Equal(200, pkt.Len())
	assert.Equal(200, tail0-pkt.Tailroom())

	seg1 := vec[1]
	e := pkt.Chain(seg1)
	require.NoError(e)
	vec[1] = nil // avoid double-free during vec.Close()
	assert.True(pkt.IsSegmented())

	require.NoError(pkt.AppendBytes(part2))
	assert.Equal(500, pkt.Len())
	require.NoError(pkt.PrependBytes(part0))
	assert.Equal(600, pkt.Len())
	assert.Equal([]int{300, 300}, pkt.SegmentLengths())

	assert.Equal(bytes.Join([][]byte{part0, part1, part2}, nil), pkt.Bytes())
}

func TestPacketWindowInvariants(t *testing.T) {
	assert, require := makeAR(t)

	mp, e := pktmbuf.NewPool(pktmbuf.PoolConfig{Capacity: 15, Dataroom: 2048, Headroom: 128}, numa.Socket{})
	require.NoError(e)
	defer mp.Close()

	vec := mp.MustAlloc(1)
	defer vec.Close()
	pkt := vec[0]

	// headroom 128, tailroom 1920
	assert.Equal(1920, pkt.Tailroom())
	_, e = pkt.Append(1900)
	assert.NoError(e)
	_, e = pkt.Append(100)
	assert.ErrorIs(e, pktmbuf.ErrTailroom)
	assert.Equal(1900, pkt.Len()) // failed call does not mutate

	rest, e := pkt.Adj(500)
	assert.NoError(e)
	assert.Len(rest, 1400)
	assert.Equal(628, pkt.Headroom())
	assert.Equal(1400, pkt.Len())

	_, e = pkt.Adj(1401)
	assert.ErrorIs(e, pktmbuf.ErrLength)
	assert.Equal(1400, pkt.Len())

	assert.NoError(pkt.Trim(400))
	assert.Equal(1000, pkt.Len())
	assert.ErrorIs(pkt.Trim(1001), pktmbuf.ErrLength)

	_, e = pkt.Prepend(629)
	assert.ErrorIs(e, pktmbuf.ErrHeadroom)
	room, e := pkt.Prepend(628)
	assert.NoError(e)
	assert.Len(room, 628)
	assert.Equal(0, pkt.Headroom())
}

func TestPacketRefcnt(t *testing.T) {
	assert, require := makeAR(t)

	mp, e := pktmbuf.NewPool(pktmbuf.PoolConfig{Capacity: 7, Dataroom: 512}, numa.Socket{})
	require.NoError(e)
	defer mp.Close()

	vec := mp.MustAlloc(1)
	pkt := vec[0]
	assert.Equal(1, pkt.RefcntRead())
	assert.Equal(6, mp.CountAvailable())

	shared := pkt.Clone()
	assert.Equal(2, shared.RefcntRead())

	pkt.Close()
	assert.Equal(1, shared.RefcntRead())
	assert.Equal(6, mp.CountAvailable()) // still referenced

	shared.Close()
	assert.Equal(7, mp.CountAvailable())

	vec = mp.MustAlloc(1)
	pkt = vec[0]
	assert.Equal(2, pkt.RefcntUpdate(1))
	pkt.RefcntSet(1)
	pkt.Close()
	assert.Equal(7, mp.CountAvailable())
}

func TestOffloadFlags(t *testing.T) {
	assert, _ := makeAR(t)

	var f pktmbuf.OffloadFlags
	assert.Equal("none", f.String())

	f = f.With(pktmbuf.RxVLAN | pktmbuf.RxRSSHash)
	assert.True(f.Has(pktmbuf.RxVLAN))
	assert.False(f.Has(pktmbuf.RxFDir))

	f = f.With(pktmbuf.TxUDPCksum | pktmbuf.TxIPv4)
	assert.Equal(pktmbuf.TxUDPCksum, f.TxL4Cksum())
	assert.Contains(f.String(), "TX_UDP_CKSUM")
	assert.Contains(f.String(), "RX_VLAN")

	f = f.Without(pktmbuf.RxVLAN)
	assert.False(f.Has(pktmbuf.RxVLAN))
}
