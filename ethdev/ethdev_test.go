package ethdev_test

import (
	"log"
	"testing"
	"time"

	"github.com/openpktio/pktio/ethdev"
	"github.com/openpktio/pktio/ethdev/ethringdev"
	"github.com/openpktio/pktio/numa"
	"github.com/openpktio/pktio/pktmbuf"
	"github.com/openpktio/pktio/pktmbuf/mbuftestenv"
)

func TestEthDev(t *testing.T) {
	assert, require := makeAR(t)

	pair, e := ethringdev.NewPair(ethringdev.PairConfig{RxPool: mbuftestenv.DirectPool()})
	require.NoError(e)
	defer pair.Close()
	require.NoError(pair.Launch())
	assert.False(pair.PortA.IsDown())
	assert.False(pair.PortB.IsDown())

	rxq := pair.PortA.RxQueues()[0]
	txq := pair.PortB.TxQueues()[0]

	const rxBurstSize = 6
	const txLoops = 1000
	const txBurstSize = 10
	const maxTxRetry = 20
	const txRetryInterval = 1 * time.Millisecond
	const rxFinishWait = 10 * time.Millisecond

	nReceived := 0
	rxQuit := make(chan bool)
	rxDone := make(chan bool)
	go func() {
		defer close(rxDone)
		for {
			vec := make(pktmbuf.Vector, rxBurstSize)
			burstSize := rxq.RxBurst(vec)
			for _, pkt := range vec[:burstSize] {
				if assert.NotNil(pkt) {
					nReceived++
					assert.Equal(1, pkt.Len(), "bad RX length at %d", nReceived)
					assert.EqualValues(pair.PortA.ID(), pkt.Port())
				}
			}
			vec.Close()

			select {
			case <-rxQuit:
				return
			default:
			}
		}
	}()

	txDone := make(chan bool)
	go func() {
		defer close(txDone)
		for i := 0; i < txLoops; i++ {
			vec := mbuftestenv.DirectPool().MustAlloc(txBurstSize)
			for j := 0; j < txBurstSize; j++ {
				vec[j].AppendBytes([]byte{byte(j)})
			}

			nSent := 0
			for nRetries := 0; nRetries < maxTxRetry; nRetries++ {
				nSent += txq.TxBurst(vec[nSent:])
				if nSent == txBurstSize {
					break
				}
				time.Sleep(txRetryInterval)
			}
			assert.Equal(txBurstSize, nSent, "TxBurst incomplete at loop %d", i)
		}
	}()
	<-txDone
	time.Sleep(rxFinishWait)
	rxQuit <- true
	<-rxDone

	log.Println("portA.stats=", pair.PortA.Stats())
	log.Println("portB.stats=", pair.PortB.Stats())
	assert.True(nReceived <= txLoops*txBurstSize)
	assert.InEpsilon(txLoops*txBurstSize, nReceived, 0.05)

	statsB := pair.PortB.Stats()
	assert.EqualValues(txLoops*txBurstSize, statsB.Opackets)
	assert.EqualValues(txLoops*txBurstSize, statsB.Obytes)
	pair.PortB.ResetStats()
	statsB = pair.PortB.Stats()
	assert.Zero(statsB.Opackets)
}

func TestStateMachine(t *testing.T) {
	assert, require := makeAR(t)
	pool := mbuftestenv.DirectPool()

	port, e := ethdev.Attach("net_ring_sm,queues=2,capacity=64")
	require.NoError(e)
	defer port.Detach()
	assert.Equal(ethdev.Unconfigured, port.State())
	assert.True(port.Valid())

	// operations out of order
	assert.ErrorIs(port.Start(), ethdev.ErrInvalidState)
	assert.ErrorIs(port.RxQueueSetup(0, 64, numa.Socket{}, ethdev.RxQueueConf{}, pool), ethdev.ErrInvalidState)
	assert.ErrorIs(port.Stop(), ethdev.ErrInvalidState)
	assert.ErrorIs(port.Close(), ethdev.ErrInvalidState)

	// queue counts beyond device limits
	assert.ErrorIs(port.Configure(3, 1, ethdev.Config{}), ethdev.ErrInvalidArgument)
	assert.Equal(ethdev.Unconfigured, port.State())

	require.NoError(port.Configure(2, 2, ethdev.Config{}))
	assert.Equal(ethdev.Configured, port.State())

	// reconfiguration requires a stopped port
	assert.ErrorIs(port.Configure(2, 2, ethdev.Config{}), ethdev.ErrInvalidState)
	assert.Equal(ethdev.Configured, port.State())

	// cannot start until every declared queue is set up
	assert.ErrorIs(port.Start(), ethdev.ErrInvalidState)
	assert.Equal(ethdev.Configured, port.State())

	assert.ErrorIs(port.RxQueueSetup(5, 64, numa.Socket{}, ethdev.RxQueueConf{}, pool), ethdev.ErrInvalidArgument)
	assert.ErrorIs(port.RxQueueSetup(0, 64, numa.Socket{}, ethdev.RxQueueConf{}, nil), ethdev.ErrInvalidArgument)
	for q := 0; q < 2; q++ {
		require.NoError(port.RxQueueSetup(q, 64, numa.Socket{}, ethdev.RxQueueConf{}, pool))
		require.NoError(port.TxQueueSetup(q, 64, numa.Socket{}, ethdev.TxQueueConf{}))
	}

	require.NoError(port.Start())
	assert.Equal(ethdev.Started, port.State())
	assert.ErrorIs(port.Start(), ethdev.ErrInvalidState)
	assert.ErrorIs(port.Close(), ethdev.ErrInvalidState)
	assert.ErrorIs(port.RxQueueSetup(0, 64, numa.Socket{}, ethdev.RxQueueConf{}, pool), ethdev.ErrInvalidState)

	// an idle queue yields empty bursts without touching the pool
	inUse := pool.CountInUse()
	rxq := port.RxQueues()[0]
	vec := make(pktmbuf.Vector, 8)
	assert.Zero(rxq.RxBurst(vec))
	assert.Equal(inUse, pool.CountInUse())

	// device without VF support
	assert.ErrorIs(port.SetVFRx(0, true), ethdev.ErrUnsupported)

	require.NoError(port.Stop())
	assert.Equal(ethdev.Stopped, port.State())
	require.NoError(port.Close())
	assert.Equal(ethdev.Closed, port.State())

	// closed is terminal except for reconfiguration
	assert.ErrorIs(port.Start(), ethdev.ErrInvalidState)
	assert.ErrorIs(port.Stop(), ethdev.ErrInvalidState)
	require.NoError(port.Configure(1, 1, ethdev.Config{}))
	assert.Equal(ethdev.Configured, port.State())

	require.NoError(port.RxQueueSetup(0, 64, numa.Socket{}, ethdev.RxQueueConf{}, pool))
	require.NoError(port.TxQueueSetup(0, 64, numa.Socket{}, ethdev.TxQueueConf{}))
	require.NoError(port.Start())
	require.NoError(port.Stop())
	require.NoError(port.Close())
}

func TestDeferredStart(t *testing.T) {
	assert, require := makeAR(t)
	pool := mbuftestenv.DirectPool()

	port, e := ethdev.Attach("net_ring_ds,queues=1,capacity=64")
	require.NoError(e)
	defer port.Detach()
	require.NoError(port.Configure(1, 1, ethdev.Config{}))
	require.NoError(port.RxQueueSetup(0, 64, numa.Socket{}, ethdev.RxQueueConf{DeferredStart: true}, pool))
	require.NoError(port.TxQueueSetup(0, 64, numa.Socket{}, ethdev.TxQueueConf{}))
	require.NoError(port.Start())
	defer func() {
		port.Stop()
		port.Close()
	}()

	// loopback device, but the RX queue has not been started
	txq := port.TxQueues()[0]
	rxq := port.RxQueues()[0]
	send := pool.MustAlloc(4)
	for _, pkt := range send {
		require.NoError(pkt.AppendBytes([]byte{0xA0}))
	}
	assert.Equal(4, txq.TxBurst(send))

	vec := make(pktmbuf.Vector, 8)
	assert.Zero(rxq.RxBurst(vec))

	require.NoError(port.RxQueueStart(0))
	assert.Equal(4, rxq.RxBurst(vec))
	vec.Close()

	require.NoError(port.RxQueueStop(0))
	assert.ErrorIs(port.RxQueueStart(5), ethdev.ErrInvalidArgument)
}

func TestRuntimeControls(t *testing.T) {
	assert, require := makeAR(t)
	pool := mbuftestenv.DirectPool()

	port, e := ethdev.Attach("net_ring_rt,capacity=64")
	require.NoError(e)
	defer port.Detach()

	_, e = port.MTU()
	assert.ErrorIs(e, ethdev.ErrInvalidState)

	require.NoError(port.Configure(1, 1, ethdev.Config{}))
	require.NoError(port.RxQueueSetup(0, 64, numa.Socket{}, ethdev.RxQueueConf{}, pool))
	require.NoError(port.TxQueueSetup(0, 64, numa.Socket{}, ethdev.TxQueueConf{}))

	mtu, e := port.MTU()
	require.NoError(e)
	assert.Equal(ethdev.DefaultMTU, mtu)
	require.NoError(port.SetMTU(9000))
	mtu, _ = port.MTU()
	assert.Equal(9000, mtu)
	assert.ErrorIs(port.SetMTU(1), ethdev.ErrInvalidArgument)

	promisc, e := port.IsPromiscuous()
	require.NoError(e)
	assert.False(promisc)
	require.NoError(port.SetPromiscuous(true))
	promisc, _ = port.IsPromiscuous()
	assert.True(promisc)

	addr, e := port.MacAddr()
	require.NoError(e)
	assert.Len(addr, 6)
	require.NoError(port.SetMacAddr([]byte{0x02, 0x01, 0x02, 0x03, 0x04, 0x05}))
	addr, _ = port.MacAddr()
	assert.EqualValues([]byte{0x02, 0x01, 0x02, 0x03, 0x04, 0x05}, []byte(addr))
	assert.ErrorIs(port.SetMacAddr([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}), ethdev.ErrInvalidArgument)

	require.NoError(port.SetVlanOffload(ethdev.VlanStripOffload))
	mode, e := port.VlanOffload()
	require.NoError(e)
	assert.Equal(ethdev.VlanStripOffload, mode)
	assert.ErrorIs(port.SetVlanFilter(5000, true), ethdev.ErrInvalidArgument)

	require.NoError(port.Start())
	link, e := port.Link()
	require.NoError(e)
	assert.True(link.Up)
	assert.EqualValues(10000, link.Speed)

	require.NoError(port.SetLinkDown())
	assert.True(port.IsDown())
	require.NoError(port.SetLinkUp())
	assert.False(port.IsDown())

	require.NoError(port.Stop())
	require.NoError(port.Close())
}

func TestAttach(t *testing.T) {
	assert, require := makeAR(t)

	_, e := ethdev.Attach("")
	assert.ErrorIs(e, ethdev.ErrInvalidArgument)
	_, e = ethdev.Attach("net_ring_bad,queues")
	assert.ErrorIs(e, ethdev.ErrInvalidArgument)
	_, e = ethdev.Attach("net_ring_bad,queues=x")
	assert.ErrorIs(e, ethdev.ErrInvalidArgument)
	_, e = ethdev.Attach("net_tap0")
	assert.ErrorIs(e, ethdev.ErrInvalidArgument)

	port, e := ethdev.Attach("net_ring_at,queues=1")
	require.NoError(e)
	defer port.Detach()
	assert.Equal(port, ethdev.Find("net_ring_at"))
	assert.True(ethdev.Count() >= 1)

	_, e = ethdev.Attach("net_ring_at,queues=1")
	assert.ErrorIs(e, ethdev.ErrInvalidArgument)

	info, e := port.DevInfo()
	require.NoError(e)
	assert.Equal(ethdev.DriverRing, info.DriverName)
	assert.Equal(1, info.MaxRxQueues)
	assert.True(info.HasTxMultiSegOffload())
}
