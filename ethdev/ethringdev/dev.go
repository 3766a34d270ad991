// Package ethringdev implements an Ethernet device backed by software FIFOs.
package ethringdev

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/openpktio/pktio/core/logging"
	"github.com/openpktio/pktio/core/macaddr"
	"github.com/openpktio/pktio/ethdev"
	"github.com/openpktio/pktio/numa"
	"github.com/openpktio/pktio/pktmbuf"
	"github.com/openpktio/pktio/ringbuffer"
)

var logger = logging.New("ethringdev")

var lastDevID atomic.Uint64

type queueState struct {
	setup    bool
	deferred bool
	started  atomic.Bool
}

type counters struct {
	ipackets atomic.Uint64
	opackets atomic.Uint64
	ibytes   atomic.Uint64
	obytes   atomic.Uint64
	oerrors  atomic.Uint64

	qIpackets [ethdev.QueueStatsCntrs]atomic.Uint64
	qOpackets [ethdev.QueueStatsCntrs]atomic.Uint64
	qIbytes   [ethdev.QueueStatsCntrs]atomic.Uint64
	qObytes   [ethdev.QueueStatsCntrs]atomic.Uint64
}

type ringDev struct {
	rxRings []*ringbuffer.Ring[*pktmbuf.Packet]
	txRings []*ringbuffer.Ring[*pktmbuf.Packet]
	socket  numa.Socket

	macLock sync.Mutex
	mac     net.HardwareAddr

	loopback bool
	rxQueues []queueState
	txQueues []queueState

	link atomic.Uint64
	vlan atomic.Uint32

	cnt counters
}

var (
	_ ethdev.Driver          = (*ringDev)(nil)
	_ ethdev.QueueRunControl = (*ringDev)(nil)
	_ ethdev.MacController   = (*ringDev)(nil)
	_ ethdev.VlanController  = (*ringDev)(nil)
	_ ethdev.LinkController  = (*ringDev)(nil)
)

// New creates an EthDev from a set of software FIFOs.
// rxRings feed RxBurst and txRings absorb TxBurst; connecting one device's
// txRings to another's rxRings forms a bidirectional link.
func New(rxRings, txRings []*ringbuffer.Ring[*pktmbuf.Packet], socket numa.Socket) (ethdev.EthDev, error) {
	if len(rxRings) == 0 || len(rxRings) != len(txRings) {
		return ethdev.EthDev{}, errors.New("rxRings and txRings must be non-empty and equally sized")
	}
	drv := newRingDev(rxRings, txRings, socket)
	name := fmt.Sprintf("%s%d", ethdev.DriverRing, lastDevID.Add(1)-1)
	return ethdev.New(name, drv)
}

func newRingDev(rxRings, txRings []*ringbuffer.Ring[*pktmbuf.Packet], socket numa.Socket) *ringDev {
	return &ringDev{
		rxRings:  rxRings,
		txRings:  txRings,
		socket:   socket,
		mac:      macaddr.MakeRandom(false),
		rxQueues: make([]queueState, len(rxRings)),
		txQueues: make([]queueState, len(txRings)),
	}
}

func (drv *ringDev) DriverName() string {
	return ethdev.DriverRing
}

func (drv *ringDev) NumaSocket() numa.Socket {
	return drv.socket
}

func (drv *ringDev) Infos(info *ethdev.DevInfo) {
	info.DriverName = ethdev.DriverRing
	info.MaxRxQueues = len(drv.rxRings)
	info.MaxTxQueues = len(drv.txRings)
	info.MaxMacAddrs = 1
	info.TxOffloadCapa = ethdev.TxOffloadMultiSegs
	info.RxDesc = ethdev.DescLim{Min: 4, Max: 1 << 15, Align: 4}
	info.TxDesc = ethdev.DescLim{Min: 4, Max: 1 << 15, Align: 4}
	info.SpeedCapa = ethdev.Speed10G
}

func (drv *ringDev) Configure(cfg ethdev.Config, nRxQueues, nTxQueues int) error {
	drv.loopback = cfg.LoopbackMode != 0
	for q := range drv.rxQueues {
		drv.rxQueues[q].setup = false
		drv.rxQueues[q].started.Store(false)
	}
	for q := range drv.txQueues {
		drv.txQueues[q].setup = false
		drv.txQueues[q].started.Store(false)
	}
	return nil
}

func (drv *ringDev) RxQueueSetup(queue, capacity int, socket numa.Socket, conf ethdev.RxQueueConf, pool *pktmbuf.Pool) error {
	q := &drv.rxQueues[queue]
	q.setup, q.deferred = true, conf.DeferredStart
	q.started.Store(false)
	return nil
}

func (drv *ringDev) TxQueueSetup(queue, capacity int, socket numa.Socket, conf ethdev.TxQueueConf) error {
	q := &drv.txQueues[queue]
	q.setup, q.deferred = true, conf.DeferredStart
	q.started.Store(false)
	return nil
}

func (drv *ringDev) Start() error {
	for q := range drv.rxQueues {
		if drv.rxQueues[q].setup && !drv.rxQueues[q].deferred {
			drv.rxQueues[q].started.Store(true)
		}
	}
	for q := range drv.txQueues {
		if drv.txQueues[q].setup && !drv.txQueues[q].deferred {
			drv.txQueues[q].started.Store(true)
		}
	}
	drv.link.Store(ethdev.LinkState{Speed: 10000, Duplex: true, Up: true}.Word())
	return nil
}

func (drv *ringDev) Stop() error {
	for q := range drv.rxQueues {
		drv.rxQueues[q].started.Store(false)
	}
	for q := range drv.txQueues {
		drv.txQueues[q].started.Store(false)
	}
	drv.link.Store(ethdev.LinkState{}.Word())
	return nil
}

func (drv *ringDev) Close() error {
	return drv.Stop()
}

func (drv *ringDev) RxBurst(queue int, vec pktmbuf.Vector) int {
	if queue >= len(drv.rxRings) || !drv.rxQueues[queue].started.Load() {
		return 0
	}
	n := drv.rxRings[queue].Dequeue(vec)
	if n == 0 {
		return 0
	}
	nBytes := uint64(0)
	for _, pkt := range vec[:n] {
		nBytes += uint64(pkt.Len())
	}
	drv.cnt.ipackets.Add(uint64(n))
	drv.cnt.ibytes.Add(nBytes)
	if queue < ethdev.QueueStatsCntrs {
		drv.cnt.qIpackets[queue].Add(uint64(n))
		drv.cnt.qIbytes[queue].Add(nBytes)
	}
	return n
}

func (drv *ringDev) TxBurst(queue int, vec pktmbuf.Vector) int {
	if queue >= len(drv.txRings) || !drv.txQueues[queue].started.Load() {
		return 0
	}
	ring := drv.txRings[queue]
	if drv.loopback {
		ring = drv.rxRings[queue]
	}
	n := ring.Enqueue(vec)
	if n == 0 {
		return 0
	}
	nBytes := uint64(0)
	for _, pkt := range vec[:n] {
		nBytes += uint64(pkt.Len())
	}
	drv.cnt.opackets.Add(uint64(n))
	drv.cnt.obytes.Add(nBytes)
	if queue < ethdev.QueueStatsCntrs {
		drv.cnt.qOpackets[queue].Add(uint64(n))
		drv.cnt.qObytes[queue].Add(nBytes)
	}
	return n
}

func (drv *ringDev) Stats() (stats ethdev.Stats) {
	stats.Ipackets = drv.cnt.ipackets.Load()
	stats.Opackets = drv.cnt.opackets.Load()
	stats.Ibytes = drv.cnt.ibytes.Load()
	stats.Obytes = drv.cnt.obytes.Load()
	stats.Oerrors = drv.cnt.oerrors.Load()
	for q := 0; q < ethdev.QueueStatsCntrs; q++ {
		stats.QIpackets[q] = drv.cnt.qIpackets[q].Load()
		stats.QOpackets[q] = drv.cnt.qOpackets[q].Load()
		stats.QIbytes[q] = drv.cnt.qIbytes[q].Load()
		stats.QObytes[q] = drv.cnt.qObytes[q].Load()
	}
	return stats
}

func (drv *ringDev) ResetStats() {
	drv.cnt.ipackets.Store(0)
	drv.cnt.opackets.Store(0)
	drv.cnt.ibytes.Store(0)
	drv.cnt.obytes.Store(0)
	drv.cnt.oerrors.Store(0)
	for q := 0; q < ethdev.QueueStatsCntrs; q++ {
		drv.cnt.qIpackets[q].Store(0)
		drv.cnt.qOpackets[q].Store(0)
		drv.cnt.qIbytes[q].Store(0)
		drv.cnt.qObytes[q].Store(0)
	}
}

func (drv *ringDev) Link(wait bool) ethdev.LinkState {
	return ethdev.LinkStateFromWord(drv.link.Load())
}

func (drv *ringDev) MacAddr() net.HardwareAddr {
	drv.macLock.Lock()
	defer drv.macLock.Unlock()
	return drv.mac
}

func (drv *ringDev) SetMacAddr(addr net.HardwareAddr) error {
	drv.macLock.Lock()
	defer drv.macLock.Unlock()
	drv.mac = append(net.HardwareAddr{}, addr...)
	return nil
}

func (drv *ringDev) RxQueueStart(queue int) error {
	if queue >= len(drv.rxQueues) {
		return ethdev.ErrInvalidArgument
	}
	drv.rxQueues[queue].started.Store(true)
	return nil
}

func (drv *ringDev) RxQueueStop(queue int) error {
	if queue >= len(drv.rxQueues) {
		return ethdev.ErrInvalidArgument
	}
	drv.rxQueues[queue].started.Store(false)
	return nil
}

func (drv *ringDev) TxQueueStart(queue int) error {
	if queue >= len(drv.txQueues) {
		return ethdev.ErrInvalidArgument
	}
	drv.txQueues[queue].started.Store(true)
	return nil
}

func (drv *ringDev) TxQueueStop(queue int) error {
	if queue >= len(drv.txQueues) {
		return ethdev.ErrInvalidArgument
	}
	drv.txQueues[queue].started.Store(false)
	return nil
}

func (drv *ringDev) SetVlanFilter(vlan uint16, on bool) error {
	return nil
}

func (drv *ringDev) VlanOffload() ethdev.VlanOffloadMode {
	return ethdev.VlanOffloadMode(drv.vlan.Load())
}

func (drv *ringDev) SetVlanOffload(mode ethdev.VlanOffloadMode) error {
	drv.vlan.Store(uint32(mode))
	return nil
}

func (drv *ringDev) SetLinkUp() error {
	drv.link.Store(ethdev.LinkState{Speed: 10000, Duplex: true, Up: true}.Word())
	return nil
}

func (drv *ringDev) SetLinkDown() error {
	drv.link.Store(ethdev.LinkState{}.Word())
	return nil
}

func init() {
	ethdev.RegisterDriver(ethdev.DriverRing, func(name string, args map[string]string) (ethdev.Driver, error) {
		nQueues, capacity := 1, 1024
		if s, ok := args["queues"]; ok {
			n, e := strconv.Atoi(s)
			if e != nil || n <= 0 {
				return nil, fmt.Errorf("queues=%s: %w", s, ethdev.ErrInvalidArgument)
			}
			nQueues = n
		}
		if s, ok := args["capacity"]; ok {
			n, e := strconv.Atoi(s)
			if e != nil || n <= 0 {
				return nil, fmt.Errorf("capacity=%s: %w", s, ethdev.ErrInvalidArgument)
			}
			capacity = n
		}

		// a lone attached device loops transmissions back to itself
		rings := make([]*ringbuffer.Ring[*pktmbuf.Packet], nQueues)
		for i := range rings {
			rings[i] = ringbuffer.New[*pktmbuf.Packet](capacity)
		}
		return newRingDev(rings, rings, numa.Socket{}), nil
	})
}
