package ethdev_test

import (
	"testing"

	"github.com/openpktio/pktio/ethdev"
	"github.com/openpktio/pktio/numa"
	"github.com/openpktio/pktio/pktmbuf"
	"github.com/openpktio/pktio/pktmbuf/mbuftestenv"
)

func TestTxBuffer(t *testing.T) {
	assert, require := makeAR(t)
	pool := mbuftestenv.DirectPool()

	port, e := ethdev.Attach("net_ring_txb,queues=1,capacity=16")
	require.NoError(e)
	defer port.Detach()
	require.NoError(port.Configure(1, 1, ethdev.Config{}))
	require.NoError(port.RxQueueSetup(0, 16, numa.Socket{}, ethdev.RxQueueConf{}, pool))
	require.NoError(port.TxQueueSetup(0, 16, numa.Socket{}, ethdev.TxQueueConf{}))
	require.NoError(port.Start())
	defer func() {
		port.Stop()
		port.Close()
	}()
	txq := port.TxQueues()[0]
	rxq := port.RxQueues()[0]

	b := ethdev.NewTxBuffer(32)
	assert.Equal(32, b.Capacity())
	policy := &ethdev.CountPolicy{}
	b.SetErrorPolicy(policy)

	vec := pool.MustAlloc(40)
	for _, pkt := range vec {
		require.NoError(pkt.AppendBytes([]byte{0x01}))
	}

	// the first 32 stay buffered; the 33rd append flushes them
	for i := 0; i < 32; i++ {
		assert.Zero(b.Append(txq, vec[i]))
	}
	assert.Equal(32, b.Count())
	sent := b.Append(txq, vec[32])
	assert.Equal(16, sent) // loopback ring holds 16
	assert.EqualValues(16, policy.Dropped())
	assert.Equal(1, b.Count())

	for i := 33; i < 40; i++ {
		assert.Zero(b.Append(txq, vec[i]))
	}
	assert.Equal(8, b.Count())

	// drain the ring, then the remainder flushes cleanly
	drain := make(pktmbuf.Vector, 16)
	assert.Equal(16, rxq.RxBurst(drain))
	drain.Close()

	assert.Equal(8, b.Flush(txq))
	assert.Zero(b.Count())
	assert.EqualValues(16, policy.Dropped())

	drain = make(pktmbuf.Vector, 16)
	assert.Equal(8, rxq.RxBurst(drain))
	drain.Close()
}

func TestTxBufferDropPolicy(t *testing.T) {
	assert, require := makeAR(t)
	pool := mbuftestenv.DirectPool()

	port, e := ethdev.Attach("net_ring_txd,queues=1,capacity=16")
	require.NoError(e)
	defer port.Detach()
	require.NoError(port.Configure(1, 1, ethdev.Config{}))
	require.NoError(port.RxQueueSetup(0, 16, numa.Socket{}, ethdev.RxQueueConf{}, pool))
	require.NoError(port.TxQueueSetup(0, 16, numa.Socket{}, ethdev.TxQueueConf{}))
	require.NoError(port.Start())
	defer func() {
		port.Stop()
		port.Close()
	}()
	txq := port.TxQueues()[0]
	rxq := port.RxQueues()[0]

	inUse := pool.CountInUse()
	b := ethdev.NewTxBuffer(8)
	vec := pool.MustAlloc(24)
	for _, pkt := range vec {
		b.Append(txq, pkt)
	}
	b.Flush(txq)

	// 16 packets sit in the loopback ring, the rest were dropped and freed
	drain := make(pktmbuf.Vector, 24)
	assert.Equal(16, rxq.RxBurst(drain))
	drain.Close()
	assert.Equal(inUse, pool.CountInUse())
}
