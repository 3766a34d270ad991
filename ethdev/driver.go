package ethdev

import (
	"net"

	"github.com/openpktio/pktio/numa"
	"github.com/openpktio/pktio/pktmbuf"
)

// Driver provides device-specific operations behind an EthDev.
// All methods are invoked with the port-level state machine already checked,
// so a driver only deals with the mechanics of its device.
type Driver interface {
	// DriverName returns the name reported in DevInfo.
	DriverName() string

	// Infos fills in device capabilities and limits.
	Infos(info *DevInfo)

	// Configure applies device-wide configuration for the given queue counts.
	Configure(cfg Config, nRxQueues, nTxQueues int) error

	// RxQueueSetup prepares an RX queue.
	RxQueueSetup(queue, capacity int, socket numa.Socket, conf RxQueueConf, pool *pktmbuf.Pool) error

	// TxQueueSetup prepares a TX queue.
	TxQueueSetup(queue, capacity int, socket numa.Socket, conf TxQueueConf) error

	// Start begins packet processing.
	Start() error

	// Stop halts packet processing. Queue and device configuration survive.
	Stop() error

	// Close releases device resources.
	Close() error

	// RxBurst receives up to len(vec) packets on an RX queue.
	RxBurst(queue int, vec pktmbuf.Vector) int

	// TxBurst transmits up to len(vec) packets on a TX queue,
	// taking ownership of the packets it accepts.
	TxBurst(queue int, vec pktmbuf.Vector) int

	// Stats retrieves device counters.
	Stats() Stats

	// ResetStats clears device counters.
	ResetStats()

	// Link retrieves link status. wait requests blocking until resolution.
	Link(wait bool) LinkState

	// MacAddr returns the current primary MAC address.
	MacAddr() net.HardwareAddr

	// NumaSocket returns the NUMA socket where the device memory resides.
	NumaSocket() numa.Socket
}

// QueueRunControl is implemented by drivers that can start and stop
// individual queues while the device is running.
type QueueRunControl interface {
	RxQueueStart(queue int) error
	RxQueueStop(queue int) error
	TxQueueStart(queue int) error
	TxQueueStop(queue int) error
}

// MacController is implemented by drivers that allow changing the
// primary MAC address.
type MacController interface {
	SetMacAddr(addr net.HardwareAddr) error
}

// PromiscController is implemented by drivers that need to observe
// promiscuous mode changes.
type PromiscController interface {
	SetPromiscuous(enable bool) error
}

// MTUController is implemented by drivers that need to observe MTU changes.
type MTUController interface {
	SetMTU(mtu int) error
}

// VlanController is implemented by drivers supporting VLAN filtering
// and offloads.
type VlanController interface {
	SetVlanFilter(vlan uint16, on bool) error
	VlanOffload() VlanOffloadMode
	SetVlanOffload(mode VlanOffloadMode) error
}

// VFController is implemented by drivers managing virtual functions.
type VFController interface {
	SetVFRxMode(vf int, mode VmdqRxMode, on bool) error
	SetVFRx(vf int, on bool) error
	SetVFTx(vf int, on bool) error
}

// LinkController is implemented by drivers that can force link state.
type LinkController interface {
	SetLinkUp() error
	SetLinkDown() error
}

// VlanOffloadMode is a bitmask of VLAN offload features.
type VlanOffloadMode uint32

// VLAN offload flags.
const (
	VlanStripOffload  VlanOffloadMode = 1 << 0
	VlanFilterOffload VlanOffloadMode = 1 << 1
	VlanExtendOffload VlanOffloadMode = 1 << 2
)

// VmdqRxMode is a bitmask of VMDq RX modes applied to a virtual function.
type VmdqRxMode uint32

// VMDq RX mode flags.
const (
	VmdqAcceptUntag     VmdqRxMode = 1 << 0
	VmdqAcceptHashMC    VmdqRxMode = 1 << 1
	VmdqAcceptHashUC    VmdqRxMode = 1 << 2
	VmdqAcceptBroadcast VmdqRxMode = 1 << 3
	VmdqAcceptMulticast VmdqRxMode = 1 << 4
)
