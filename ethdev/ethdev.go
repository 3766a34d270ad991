// Package ethdev provides a poll-mode abstraction of Ethernet devices.
package ethdev

import (
	"fmt"
	"net"
	"sync"

	"github.com/openpktio/pktio/core/logging"
	"github.com/openpktio/pktio/numa"
	"github.com/openpktio/pktio/pktmbuf"
	"go.uber.org/zap"
)

var logger = logging.New("EthDev")

// MaxEthPorts is the maximum number of Ethernet ports.
const MaxEthPorts = 32

// DefaultMTU is the MTU assigned to a port upon creation.
const DefaultMTU = 1500

type rxQueueEntry struct {
	present  bool
	capacity int
	conf     RxQueueConf
	pool     *pktmbuf.Pool
}

type txQueueEntry struct {
	present  bool
	capacity int
	conf     TxQueueConf
}

type deviceEntry struct {
	drv   Driver
	name  string
	state State

	conf     Config
	nRx, nTx int
	rxQueues [maxQueuesPerPort]rxQueueEntry
	txQueues [maxQueuesPerPort]txQueueEntry

	mtu     int
	promisc bool
}

const maxQueuesPerPort = 64

var (
	devicesLock sync.Mutex
	devices     [MaxEthPorts]*deviceEntry
)

// EthDev represents an Ethernet port.
// The zero value is invalid.
type EthDev struct {
	v int // ID+1
}

// New registers a device driver as a new port.
// It returns ErrOutOfResources when all port IDs are occupied.
func New(name string, drv Driver) (port EthDev, e error) {
	devicesLock.Lock()
	defer devicesLock.Unlock()

	for id, entry := range devices {
		if entry == nil {
			devices[id] = &deviceEntry{
				drv:   drv,
				name:  name,
				state: Unconfigured,
				mtu:   DefaultMTU,
			}
			port = EthDev{id + 1}
			logger.Info("port created",
				port.ZapField("port"),
				zap.String("name", name),
				zap.String("driver", drv.DriverName()),
			)
			return port, nil
		}
	}
	return EthDev{}, fmt.Errorf("create %s: %w", name, ErrOutOfResources)
}

// FromID converts port ID to EthDev.
func FromID(id int) EthDev {
	if id < 0 || id >= MaxEthPorts {
		return EthDev{}
	}
	return EthDev{id + 1}
}

// List returns all active ports.
func List() (list []EthDev) {
	devicesLock.Lock()
	defer devicesLock.Unlock()
	for id, entry := range devices {
		if entry != nil {
			list = append(list, EthDev{id + 1})
		}
	}
	return list
}

// Count returns the number of active ports.
func Count() int {
	return len(List())
}

// Find locates a port by name.
func Find(name string) EthDev {
	devicesLock.Lock()
	defer devicesLock.Unlock()
	for id, entry := range devices {
		if entry != nil && entry.name == name {
			return EthDev{id + 1}
		}
	}
	return EthDev{}
}

// ID returns the port ID.
func (port EthDev) ID() int {
	return port.v - 1
}

// Valid determines whether the port refers to an active device.
func (port EthDev) Valid() bool {
	if port.v == 0 {
		return false
	}
	devicesLock.Lock()
	defer devicesLock.Unlock()
	return devices[port.v-1] != nil
}

func (port EthDev) String() string {
	if port.v == 0 {
		return "invalid"
	}
	return fmt.Sprintf("%d", port.v-1)
}

// ZapField returns a zap.Field for logging.
func (port EthDev) ZapField(key string) zap.Field {
	return zap.Int(key, port.v-1)
}

// entry retrieves the registry entry, or nil if the port is invalid.
func (port EthDev) entry() *deviceEntry {
	if port.v == 0 {
		return nil
	}
	devicesLock.Lock()
	defer devicesLock.Unlock()
	return devices[port.v-1]
}

// Name returns the port name.
func (port EthDev) Name() string {
	entry := port.entry()
	if entry == nil {
		return ""
	}
	return entry.name
}

// DevInfo retrieves device capabilities and limits.
func (port EthDev) DevInfo() (info DevInfo, e error) {
	entry := port.entry()
	if entry == nil {
		return info, ErrInvalidPort
	}
	entry.drv.Infos(&info)
	if info.MaxRxQueues <= 0 || info.MaxRxQueues > maxQueuesPerPort {
		info.MaxRxQueues = maxQueuesPerPort
	}
	if info.MaxTxQueues <= 0 || info.MaxTxQueues > maxQueuesPerPort {
		info.MaxTxQueues = maxQueuesPerPort
	}
	return info, nil
}

// State returns the current state of the port.
func (port EthDev) State() State {
	entry := port.entry()
	if entry == nil {
		return Closed
	}
	return entry.state
}

// NumaSocket reports the NUMA socket where the device memory resides.
func (port EthDev) NumaSocket() numa.Socket {
	entry := port.entry()
	if entry == nil {
		return numa.Socket{}
	}
	return entry.drv.NumaSocket()
}

// MacAddr returns the primary MAC address.
func (port EthDev) MacAddr() (addr net.HardwareAddr, e error) {
	entry := port.entry()
	if entry == nil {
		return nil, ErrInvalidPort
	}
	return entry.drv.MacAddr(), nil
}

// Configure applies device-wide configuration and declares queue counts.
// It is legal on an unconfigured, stopped, or closed port; any queue setup
// from a previous configuration is discarded.
func (port EthDev) Configure(nRxQueues, nTxQueues int, cfg Config) error {
	entry := port.entry()
	if entry == nil {
		return ErrInvalidPort
	}
	switch entry.state {
	case Unconfigured, Stopped, Closed:
	default:
		return stateError("configure", entry.state)
	}

	info, e := port.DevInfo()
	if e != nil {
		return e
	}
	if nRxQueues <= 0 || nRxQueues > info.MaxRxQueues ||
		nTxQueues <= 0 || nTxQueues > info.MaxTxQueues {
		return fmt.Errorf("queue counts rx=%d tx=%d exceed device limits rx=%d tx=%d: %w",
			nRxQueues, nTxQueues, info.MaxRxQueues, info.MaxTxQueues, ErrInvalidArgument)
	}
	if cfg.RxMode != nil {
		if cfg.RxMode.Scatter && !info.canRxScatter() {
			return fmt.Errorf("scattered receive: %w", ErrUnsupported)
		}
		if cfg.RxMode.LRO && !info.RxOffloadCapa.Has(RxOffloadTCPLRO) {
			return fmt.Errorf("large receive offload: %w", ErrUnsupported)
		}
	}
	if cfg.RxAdvConf != nil && cfg.RxAdvConf.RSS != nil {
		rss := cfg.RxAdvConf.RSS
		if rss.Key != nil && len(rss.Key) != RssKeyLength {
			return fmt.Errorf("RSS key length %d, expected %d: %w",
				len(rss.Key), RssKeyLength, ErrInvalidArgument)
		}
		if unsupported := rss.Hash &^ info.FlowTypeRssOffloads; info.FlowTypeRssOffloads != 0 && unsupported != 0 {
			return fmt.Errorf("RSS flow types %#x: %w", uint64(unsupported), ErrUnsupported)
		}
	}

	if e := entry.drv.Configure(cfg, nRxQueues, nTxQueues); e != nil {
		return deviceError("configure", e)
	}

	entry.conf = cfg
	entry.nRx, entry.nTx = nRxQueues, nTxQueues
	entry.rxQueues = [maxQueuesPerPort]rxQueueEntry{}
	entry.txQueues = [maxQueuesPerPort]txQueueEntry{}
	entry.state = Configured
	logger.Info("port configured",
		port.ZapField("port"),
		zap.Int("rx-queues", nRxQueues),
		zap.Int("tx-queues", nTxQueues),
	)
	return nil
}

// RxQueueSetup prepares an RX queue with a descriptor ring of approximately
// the given capacity, drawing receive buffers from pool.
func (port EthDev) RxQueueSetup(queue, capacity int, socket numa.Socket, conf RxQueueConf, pool *pktmbuf.Pool) error {
	entry := port.entry()
	if entry == nil {
		return ErrInvalidPort
	}
	if entry.state != Configured {
		return stateError("rx-queue-setup", entry.state)
	}
	if queue < 0 || queue >= entry.nRx {
		return fmt.Errorf("rx queue %d of %d: %w", queue, entry.nRx, ErrInvalidArgument)
	}
	if pool == nil {
		return fmt.Errorf("rx queue %d: nil mempool: %w", queue, ErrInvalidArgument)
	}

	info, _ := port.DevInfo()
	capacity = info.RxDesc.adjustQueueCapacity(capacity)
	if e := entry.drv.RxQueueSetup(queue, capacity, socket, conf, pool); e != nil {
		return deviceError("rx-queue-setup", e)
	}
	entry.rxQueues[queue] = rxQueueEntry{present: true, capacity: capacity, conf: conf, pool: pool}
	return nil
}

// TxQueueSetup prepares a TX queue with a descriptor ring of approximately
// the given capacity.
func (port EthDev) TxQueueSetup(queue, capacity int, socket numa.Socket, conf TxQueueConf) error {
	entry := port.entry()
	if entry == nil {
		return ErrInvalidPort
	}
	if entry.state != Configured {
		return stateError("tx-queue-setup", entry.state)
	}
	if queue < 0 || queue >= entry.nTx {
		return fmt.Errorf("tx queue %d of %d: %w", queue, entry.nTx, ErrInvalidArgument)
	}

	info, _ := port.DevInfo()
	capacity = info.TxDesc.adjustQueueCapacity(capacity)
	if e := entry.drv.TxQueueSetup(queue, capacity, socket, conf); e != nil {
		return deviceError("tx-queue-setup", e)
	}
	entry.txQueues[queue] = txQueueEntry{present: true, capacity: capacity, conf: conf}
	return nil
}

// Start begins packet processing. Every declared queue must have been
// set up; otherwise the port stays in Configured state.
func (port EthDev) Start() error {
	entry := port.entry()
	if entry == nil {
		return ErrInvalidPort
	}
	if entry.state != Configured {
		return stateError("start", entry.state)
	}
	for q := 0; q < entry.nRx; q++ {
		if !entry.rxQueues[q].present {
			return fmt.Errorf("rx queue %d not set up: %w", q, ErrInvalidState)
		}
	}
	for q := 0; q < entry.nTx; q++ {
		if !entry.txQueues[q].present {
			return fmt.Errorf("tx queue %d not set up: %w", q, ErrInvalidState)
		}
	}

	if e := entry.drv.Start(); e != nil {
		return deviceError("start", e)
	}
	entry.state = Started
	logger.Info("port started", port.ZapField("port"))
	return nil
}

// Stop halts packet processing. Device and queue configuration survive,
// so the port can be restarted or reconfigured.
func (port EthDev) Stop() error {
	entry := port.entry()
	if entry == nil {
		return ErrInvalidPort
	}
	if entry.state != Started {
		return stateError("stop", entry.state)
	}
	if e := entry.drv.Stop(); e != nil {
		return deviceError("stop", e)
	}
	entry.state = Stopped
	logger.Info("port stopped", port.ZapField("port"))
	return nil
}

// Close releases device resources. The port remains registered and can be
// brought back with Configure.
func (port EthDev) Close() error {
	entry := port.entry()
	if entry == nil {
		return ErrInvalidPort
	}
	if entry.state != Stopped {
		return stateError("close", entry.state)
	}
	if e := entry.drv.Close(); e != nil {
		return deviceError("close", e)
	}
	entry.rxQueues = [maxQueuesPerPort]rxQueueEntry{}
	entry.txQueues = [maxQueuesPerPort]txQueueEntry{}
	entry.nRx, entry.nTx = 0, 0
	entry.state = Closed
	logger.Info("port closed", port.ZapField("port"))
	return nil
}

// Detach removes the port from the registry. The port must be closed
// or never configured.
func (port EthDev) Detach() error {
	devicesLock.Lock()
	defer devicesLock.Unlock()
	if port.v == 0 || devices[port.v-1] == nil {
		return ErrInvalidPort
	}
	entry := devices[port.v-1]
	switch entry.state {
	case Unconfigured, Closed:
	default:
		return stateError("detach", entry.state)
	}
	devices[port.v-1] = nil
	logger.Info("port detached", port.ZapField("port"), zap.String("name", entry.name))
	return nil
}
