package pktmbuf

import "strings"

// OffloadFlags carries per-packet offload metadata.
// RX flags start at bit 0 and grow upward; TX flags start at bit 60 and grow
// downward; the top bits are reserved for generic buffer flags. The layout is
// stable within one build of this library.
type OffloadFlags uint64

// RX offload flags.
const (
	RxVLAN        OffloadFlags = 1 << 0 // 802.1q VLAN present, tag stripped
	RxRSSHash     OffloadFlags = 1 << 1 // RSS hash result is valid
	RxFDir        OffloadFlags = 1 << 2 // flow director match
	RxL4CksumBad  OffloadFlags = 1 << 3
	RxIPCksumBad  OffloadFlags = 1 << 4
	RxEIPCksumBad OffloadFlags = 1 << 5 // external IP header checksum error

	RxIEEE1588PTP  OffloadFlags = 1 << 9
	RxIEEE1588Tmst OffloadFlags = 1 << 10
	RxFDirID       OffloadFlags = 1 << 13 // FD id reported if FDIR match
	RxFDirFlex     OffloadFlags = 1 << 14 // flexible bytes reported if FDIR match
	RxQinQ         OffloadFlags = 1 << 15 // double VLAN stripped
)

// TX offload flags.
const (
	TxQinQ         OffloadFlags = 1 << 49 // insert double VLAN
	TxTCPSeg       OffloadFlags = 1 << 50 // TCP segmentation offload, implies TxTCPCksum
	TxIEEE1588Tmst OffloadFlags = 1 << 51

	// Bits 52-53 form the L4 checksum request field.
	TxL4NoCksum   OffloadFlags = 0 << 52
	TxTCPCksum    OffloadFlags = 1 << 52
	TxSCTPCksum   OffloadFlags = 2 << 52
	TxUDPCksum    OffloadFlags = 3 << 52
	TxL4CksumMask OffloadFlags = 3 << 52

	TxIPCksum      OffloadFlags = 1 << 54
	TxIPv4         OffloadFlags = 1 << 55 // must accompany any offload on an IPv4 packet
	TxIPv6         OffloadFlags = 1 << 56
	TxVLAN         OffloadFlags = 1 << 57 // insert 802.1q VLAN tag
	TxOuterIPCksum OffloadFlags = 1 << 58
	TxOuterIPv4    OffloadFlags = 1 << 59
	TxOuterIPv6    OffloadFlags = 1 << 60
)

// Generic flags.
const (
	IndAttached OffloadFlags = 1 << 62 // buffer aliases memory owned by another buffer
)

// Has returns true if every flag in other is set in f.
func (f OffloadFlags) Has(other OffloadFlags) bool {
	return f&other == other
}

// With returns a copy of f with other set.
func (f OffloadFlags) With(other OffloadFlags) OffloadFlags {
	return f | other
}

// Without returns a copy of f with other cleared.
func (f OffloadFlags) Without(other OffloadFlags) OffloadFlags {
	return f &^ other
}

// TxL4Cksum extracts the L4 checksum request field.
func (f OffloadFlags) TxL4Cksum() OffloadFlags {
	return f & TxL4CksumMask
}

var offloadFlagNames = []struct {
	flag OffloadFlags
	name string
}{
	{RxVLAN, "RX_VLAN"},
	{RxRSSHash, "RX_RSS_HASH"},
	{RxFDir, "RX_FDIR"},
	{RxL4CksumBad, "RX_L4_CKSUM_BAD"},
	{RxIPCksumBad, "RX_IP_CKSUM_BAD"},
	{RxEIPCksumBad, "RX_EIP_CKSUM_BAD"},
	{RxIEEE1588PTP, "RX_IEEE1588_PTP"},
	{RxIEEE1588Tmst, "RX_IEEE1588_TMST"},
	{RxFDirID, "RX_FDIR_ID"},
	{RxFDirFlex, "RX_FDIR_FLX"},
	{RxQinQ, "RX_QINQ"},
	{TxQinQ, "TX_QINQ"},
	{TxTCPSeg, "TX_TCP_SEG"},
	{TxIEEE1588Tmst, "TX_IEEE1588_TMST"},
	{TxIPCksum, "TX_IP_CKSUM"},
	{TxIPv4, "TX_IPV4"},
	{TxIPv6, "TX_IPV6"},
	{TxVLAN, "TX_VLAN"},
	{TxOuterIPCksum, "TX_OUTER_IP_CKSUM"},
	{TxOuterIPv4, "TX_OUTER_IPV4"},
	{TxOuterIPv6, "TX_OUTER_IPV6"},
	{IndAttached, "IND_ATTACHED"},
}

func (f OffloadFlags) String() string {
	var names []string
	for _, fn := range offloadFlagNames {
		if f.Has(fn.flag) {
			names = append(names, fn.name)
		}
	}
	switch f.TxL4Cksum() {
	case TxTCPCksum:
		names = append(names, "TX_TCP_CKSUM")
	case TxSCTPCksum:
		names = append(names, "TX_SCTP_CKSUM")
	case TxUDPCksum:
		names = append(names, "TX_UDP_CKSUM")
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}
