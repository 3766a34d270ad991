package ethdev

// LinkSpeeds is a bitmask of speeds a port may advertise during negotiation.
// Zero (SpeedAutoneg) advertises every supported speed. SpeedFixed disables
// autonegotiation; exactly one speed must then be set.
type LinkSpeeds uint32

// Link speed flags.
const (
	SpeedAutoneg LinkSpeeds = 0
	SpeedFixed   LinkSpeeds = 1 << 0
	Speed10MHD   LinkSpeeds = 1 << 1
	Speed10M     LinkSpeeds = 1 << 2
	Speed100MHD  LinkSpeeds = 1 << 3
	Speed100M    LinkSpeeds = 1 << 4
	Speed1G      LinkSpeeds = 1 << 5
	Speed2_5G    LinkSpeeds = 1 << 6
	Speed5G      LinkSpeeds = 1 << 7
	Speed10G     LinkSpeeds = 1 << 8
	Speed20G     LinkSpeeds = 1 << 9
	Speed25G     LinkSpeeds = 1 << 10
	Speed40G     LinkSpeeds = 1 << 11
	Speed50G     LinkSpeeds = 1 << 12
	Speed56G     LinkSpeeds = 1 << 13
	Speed100G    LinkSpeeds = 1 << 14
)

// RxMqFlags selects how received packets are distributed to multiple queues.
type RxMqFlags uint32

// RX multi-queue distribution flags.
const (
	RxMqRSS  RxMqFlags = 1 << 0
	RxMqDCB  RxMqFlags = 1 << 1
	RxMqVMDq RxMqFlags = 1 << 2
)

// Has returns true if every flag in other is set in f.
func (f RxMqFlags) Has(other RxMqFlags) bool {
	return f&other == other
}

// TxMqMode selects how packets are transmitted using multiple traffic classes.
type TxMqMode int

// TX multi-queue modes.
const (
	TxMqNone TxMqMode = iota
	TxMqDCB
	TxMqVMDqDCB
	TxMqVMDqOnly
)

// RxMode configures the RX features of a port.
type RxMode struct {
	MqMode       RxMqFlags `json:"mqMode,omitempty"`
	SplitHdrSize uint16    `json:"splitHdrSize,omitempty"`
	Checksum     bool      `json:"checksum,omitempty"` // IP/UDP/TCP checksum offload
	VlanFilter   bool      `json:"vlanFilter,omitempty"`
	VlanStrip    bool      `json:"vlanStrip,omitempty"`
	VlanExtend   bool      `json:"vlanExtend,omitempty"`
	MaxRxPktLen  uint32    `json:"maxRxPktLen,omitempty"`
	StripCRC     bool      `json:"stripCRC,omitempty"`
	Scatter      bool      `json:"scatter,omitempty"` // multi-segment receive
	LRO          bool      `json:"lro,omitempty"`     // large receive offload
}

// TxMode configures the TX features of a port.
type TxMode struct {
	MqMode             TxMqMode `json:"mqMode,omitempty"`
	VlanRejectTagged   bool     `json:"vlanRejectTagged,omitempty"`
	VlanRejectUntagged bool     `json:"vlanRejectUntagged,omitempty"`
	VlanInsertPVID     bool     `json:"vlanInsertPVID,omitempty"`
}

// RssHashFlags selects which packet-header combinations participate in RSS
// hashing. Bit positions follow flow types; hardware support is reported in
// DevInfo.FlowTypeRssOffloads.
type RssHashFlags uint64

// RSS flow type flags.
const (
	RssIPv4            RssHashFlags = 1 << 2
	RssFragIPv4        RssHashFlags = 1 << 3
	RssNonfragIPv4TCP  RssHashFlags = 1 << 4
	RssNonfragIPv4UDP  RssHashFlags = 1 << 5
	RssNonfragIPv4SCTP RssHashFlags = 1 << 6
	RssNonfragIPv4OthR RssHashFlags = 1 << 7
	RssIPv6            RssHashFlags = 1 << 8
	RssFragIPv6        RssHashFlags = 1 << 9
	RssNonfragIPv6TCP  RssHashFlags = 1 << 10
	RssNonfragIPv6UDP  RssHashFlags = 1 << 11
	RssNonfragIPv6SCTP RssHashFlags = 1 << 12
	RssNonfragIPv6OthR RssHashFlags = 1 << 13
	RssL2Payload       RssHashFlags = 1 << 14
	RssIPv6Ex          RssHashFlags = 1 << 15
	RssIPv6TCPEx       RssHashFlags = 1 << 16
	RssIPv6UDPEx       RssHashFlags = 1 << 17

	RssIP = RssIPv4 | RssFragIPv4 | RssNonfragIPv4OthR |
		RssIPv6 | RssFragIPv6 | RssNonfragIPv6OthR | RssIPv6Ex
	RssUDP = RssNonfragIPv4UDP | RssNonfragIPv6UDP | RssIPv6UDPEx
	RssTCP = RssNonfragIPv4TCP | RssNonfragIPv6TCP | RssIPv6TCPEx
)

// Has returns true if every flag in other is set in f.
func (f RssHashFlags) Has(other RssHashFlags) bool {
	return f&other == other
}

// RssKeyLength is the length of an RSS hash key.
const RssKeyLength = 40

// RssConf configures receive-side scaling.
type RssConf struct {
	// Key is the hash key; nil keeps the driver default key.
	// If set, it must be exactly RssKeyLength octets.
	Key []byte `json:"key,omitempty"`

	// Hash selects flow types participating in hashing.
	Hash RssHashFlags `json:"hash"`
}

// RxAdvConf holds advanced RX filtering configuration.
// Absent sub-configurations leave driver defaults untouched.
type RxAdvConf struct {
	RSS *RssConf `json:"rss,omitempty"`
}

// FlowDirectorConf configures the flow director of a port.
type FlowDirectorConf struct {
	DropQueue       int `json:"dropQueue"`
	FlexBytesOffset int `json:"flexBytesOffset,omitempty"`
}

// InterruptConf enables interrupt-driven notifications.
type InterruptConf struct {
	LinkStatusChange bool `json:"lsc,omitempty"`
	RxQueue          bool `json:"rxq,omitempty"`
}

// Config contains device-wide configuration, applied by Configure.
// Optional sub-configurations that are nil leave hardware defaults untouched.
type Config struct {
	LinkSpeeds   LinkSpeeds        `json:"linkSpeeds,omitempty"`
	RxMode       *RxMode           `json:"rxMode,omitempty"`
	TxMode       *TxMode           `json:"txMode,omitempty"`
	LoopbackMode uint32            `json:"loopbackMode,omitempty"` // vendor-defined, 0 = disabled
	RxAdvConf    *RxAdvConf        `json:"rxAdvConf,omitempty"`
	FlowDirector *FlowDirectorConf `json:"fdirConf,omitempty"`
	Interrupt    *InterruptConf    `json:"intrConf,omitempty"`
}

// RxQueueConf contains per-queue RX configuration.
type RxQueueConf struct {
	FreeThresh    uint16 `json:"freeThresh,omitempty"`
	DropEnable    bool   `json:"dropEnable,omitempty"`
	DeferredStart bool   `json:"deferredStart,omitempty"`
}

// TxQueueConf contains per-queue TX configuration.
type TxQueueConf struct {
	FreeThresh    uint16 `json:"freeThresh,omitempty"`
	DeferredStart bool   `json:"deferredStart,omitempty"`
}
