package ethdev

import (
	"github.com/zyedidia/generic"
)

// DriverRing is the driver name of software ring-backed ports.
const DriverRing = "net_ring"

// RxOffloadCapa is a bitmask of RX offload capabilities.
type RxOffloadCapa uint64

// RX offload capability flags.
const (
	RxOffloadVlanStrip  RxOffloadCapa = 1 << 0
	RxOffloadIPv4Cksum  RxOffloadCapa = 1 << 1
	RxOffloadUDPCksum   RxOffloadCapa = 1 << 2
	RxOffloadTCPCksum   RxOffloadCapa = 1 << 3
	RxOffloadTCPLRO     RxOffloadCapa = 1 << 4
	RxOffloadQinQStrip  RxOffloadCapa = 1 << 5
	RxOffloadOuterCksum RxOffloadCapa = 1 << 6
	RxOffloadScatter    RxOffloadCapa = 1 << 13
)

// Has returns true if every flag in other is set in capa.
func (capa RxOffloadCapa) Has(other RxOffloadCapa) bool {
	return capa&other == other
}

// TxOffloadCapa is a bitmask of TX offload capabilities.
type TxOffloadCapa uint64

// TX offload capability flags.
const (
	TxOffloadVlanInsert TxOffloadCapa = 1 << 0
	TxOffloadIPv4Cksum  TxOffloadCapa = 1 << 1
	TxOffloadUDPCksum   TxOffloadCapa = 1 << 2
	TxOffloadTCPCksum   TxOffloadCapa = 1 << 3
	TxOffloadSCTPCksum  TxOffloadCapa = 1 << 4
	TxOffloadTCPTSO     TxOffloadCapa = 1 << 5
	TxOffloadQinQInsert TxOffloadCapa = 1 << 8
	TxOffloadMultiSegs  TxOffloadCapa = 1 << 15
)

// Has returns true if every flag in other is set in capa.
func (capa TxOffloadCapa) Has(other TxOffloadCapa) bool {
	return capa&other == other
}

// DescLim describes descriptor count limits of a queue.
type DescLim struct {
	Min   int `json:"min"`
	Max   int `json:"max"`
	Align int `json:"align"`
}

// adjustQueueCapacity clamps capacity into [Min,Max] and rounds down
// to a multiple of Align.
func (lim DescLim) adjustQueueCapacity(capacity int) int {
	capacity = generic.Clamp(capacity, lim.Min, lim.Max)
	if lim.Align > 1 {
		capacity -= capacity % lim.Align
	}
	return capacity
}

// DevInfo provides contextual information of a port.
type DevInfo struct {
	DriverName string `json:"driverName"`

	MinRxBufSize uint32 `json:"minRxBufSize,omitempty"`
	MaxRxPktLen  uint32 `json:"maxRxPktLen,omitempty"`

	MaxRxQueues int `json:"maxRxQueues"`
	MaxTxQueues int `json:"maxTxQueues"`
	MaxMacAddrs int `json:"maxMacAddrs,omitempty"`
	MaxVFs      int `json:"maxVfs,omitempty"`

	RxOffloadCapa RxOffloadCapa `json:"rxOffloadCapa,omitempty"`
	TxOffloadCapa TxOffloadCapa `json:"txOffloadCapa,omitempty"`

	RetaSize            int          `json:"retaSize,omitempty"`
	HashKeySize         int          `json:"hashKeySize,omitempty"`
	FlowTypeRssOffloads RssHashFlags `json:"flowTypeRssOffloads,omitempty"`

	RxDesc DescLim `json:"rxDesc"`
	TxDesc DescLim `json:"txDesc"`

	SpeedCapa LinkSpeeds `json:"speedCapa,omitempty"`
}

// HasTxMultiSegOffload determines whether the device can transmit
// segmented packets.
func (info DevInfo) HasTxMultiSegOffload() bool {
	return info.TxOffloadCapa.Has(TxOffloadMultiSegs)
}

// canRxScatter determines whether the device can receive into
// chained segments.
func (info DevInfo) canRxScatter() bool {
	return info.RxOffloadCapa.Has(RxOffloadScatter)
}
