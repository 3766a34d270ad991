package pktmbuf

import (
	"errors"
	"sync/atomic"
)

// MaxSegments is the maximum number of segments in a packet.
const MaxSegments = 64

// Errors from packet data window operations.
var (
	ErrHeadroom = errors.New("insufficient headroom")
	ErrTailroom = errors.New("insufficient tailroom")
	ErrLength   = errors.New("length exceeds packet data")
	ErrSegments = errors.New("too many segments")
)

// Packet represents a packet buffer, possibly chained from several segments.
// Chain-wide fields (total length, segment count, offload flags) live on the
// first segment only.
type Packet struct {
	pool    *Pool
	buf     []byte
	dataOff int
	dataLen int
	refcnt  atomic.Int32

	pktLen  int
	nbSegs  int
	next    *Packet
	port    uint16
	olFlags OffloadFlags
}

// reset prepares a freshly allocated segment.
func (pkt *Packet) reset() {
	pkt.dataOff = pkt.pool.cfg.Headroom
	pkt.dataLen = 0
	pkt.pktLen = 0
	pkt.nbSegs = 1
	pkt.next = nil
	pkt.port = 0
	pkt.olFlags = 0
	pkt.refcnt.Store(1)
}

// Pool returns the owning pool.
func (pkt *Packet) Pool() *Pool {
	return pkt.pool
}

// Close releases the packet to its pool, if this was the last reference.
// Every segment is handled independently.
func (pkt *Packet) Close() error {
	for seg := pkt; seg != nil; {
		next := seg.next
		if seg.refcnt.Add(-1) == 0 {
			seg.next = nil
			seg.pool.release(seg)
		}
		seg = next
	}
	return nil
}

// Clone creates a shallow copy: every segment's reference count is
// incremented and the same descriptor is returned. Packet bytes are shared,
// not copied; callers needing an independent mutable copy must allocate fresh
// buffers and copy bytes explicitly.
func (pkt *Packet) Clone() *Packet {
	for seg := pkt; seg != nil; seg = seg.next {
		seg.refcnt.Add(1)
	}
	return pkt
}

// RefcntRead reads the reference count of the first segment.
func (pkt *Packet) RefcntRead() int {
	return int(pkt.refcnt.Load())
}

// RefcntSet assigns the reference count of the first segment.
func (pkt *Packet) RefcntSet(v int) {
	pkt.refcnt.Store(int32(v))
}

// RefcntUpdate adds delta to the reference count of the first segment and
// returns the new value.
func (pkt *Packet) RefcntUpdate(delta int) int {
	return int(pkt.refcnt.Add(int32(delta)))
}

// Len returns packet length in octets, summed over all segments.
func (pkt *Packet) Len() int {
	return pkt.pktLen
}

// Port returns ingress network interface.
func (pkt *Packet) Port() uint16 {
	return pkt.port
}

// SetPort sets ingress network interface.
func (pkt *Packet) SetPort(port uint16) {
	pkt.port = port
}

// OffloadFlags returns per-packet offload metadata.
func (pkt *Packet) OffloadFlags() OffloadFlags {
	return pkt.olFlags
}

// SetOffloadFlags replaces per-packet offload metadata.
func (pkt *Packet) SetOffloadFlags(flags OffloadFlags) {
	pkt.olFlags = flags
}

// IsSegmented returns true if the packet occupies more than one segment.
func (pkt *Packet) IsSegmented() bool {
	return pkt.nbSegs > 1
}

// IsContiguous returns true if the packet occupies exactly one segment.
func (pkt *Packet) IsContiguous() bool {
	return pkt.nbSegs == 1
}

// SegmentLengths returns lengths of segments in this packet.
func (pkt *Packet) SegmentLengths() (list []int) {
	for seg := pkt; seg != nil; seg = seg.next {
		list = append(list, seg.dataLen)
	}
	return list
}

func (pkt *Packet) lastSegment() *Packet {
	seg := pkt
	for seg.next != nil {
		seg = seg.next
	}
	return seg
}

// Headroom returns headroom of the first segment.
func (pkt *Packet) Headroom() int {
	return pkt.dataOff
}

// SetHeadroom changes headroom of the first segment.
// It can only be used on an empty packet.
func (pkt *Packet) SetHeadroom(headroom int) error {
	if pkt.Len() > 0 {
		return errors.New("cannot change headroom of non-empty packet")
	}
	if headroom < 0 || headroom > len(pkt.buf) {
		return errors.New("headroom cannot exceed buffer length")
	}
	pkt.dataOff = headroom
	return nil
}

// Tailroom returns tailroom of the last segment.
func (pkt *Packet) Tailroom() int {
	seg := pkt.lastSegment()
	return len(seg.buf) - seg.dataOff - seg.dataLen
}

// Bytes returns a copy of the data in this packet.
func (pkt *Packet) Bytes() []byte {
	b := make([]byte, 0, pkt.Len())
	for seg := pkt; seg != nil; seg = seg.next {
		b = append(b, seg.buf[seg.dataOff:seg.dataOff+seg.dataLen]...)
	}
	return b
}

// ZeroCopyBytes returns the data in this packet.
// It aliases the buffer if the packet has only one segment.
func (pkt *Packet) ZeroCopyBytes() []byte {
	if pkt.nbSegs == 1 {
		return pkt.buf[pkt.dataOff : pkt.dataOff+pkt.dataLen]
	}
	return pkt.Bytes()
}

// Prepend grows the data window of the first segment toward the front and
// returns the newly exposed region. Fails with ErrHeadroom if count exceeds
// the current headroom; the packet is not modified on failure.
func (pkt *Packet) Prepend(count int) ([]byte, error) {
	if count < 0 || count > pkt.dataOff {
		return nil, ErrHeadroom
	}
	pkt.dataOff -= count
	pkt.dataLen += count
	pkt.pktLen += count
	return pkt.buf[pkt.dataOff : pkt.dataOff+count], nil
}

// PrependBytes prepends input to the packet in headroom of the first segment.
func (pkt *Packet) PrependBytes(input []byte) error {
	room, e := pkt.Prepend(len(input))
	if e != nil {
		return e
	}
	copy(room, input)
	return nil
}

// Append grows the data window of the last segment toward the back and
// returns the newly exposed region. Fails with ErrTailroom if count exceeds
// the remaining tailroom; the packet is not modified on failure.
func (pkt *Packet) Append(count int) ([]byte, error) {
	seg := pkt.lastSegment()
	if count < 0 || count > len(seg.buf)-seg.dataOff-seg.dataLen {
		return nil, ErrTailroom
	}
	room := seg.buf[seg.dataOff+seg.dataLen : seg.dataOff+seg.dataLen+count]
	seg.dataLen += count
	pkt.pktLen += count
	return room, nil
}

// AppendBytes appends input to the packet in tailroom of the last segment.
func (pkt *Packet) AppendBytes(input []byte) error {
	room, e := pkt.Append(len(input))
	if e != nil {
		return e
	}
	copy(room, input)
	return nil
}

// Adj removes count octets at the front of the packet and returns the
// remaining data of the first segment. Fails with ErrLength if count exceeds
// the data length of the first segment.
func (pkt *Packet) Adj(count int) ([]byte, error) {
	if count < 0 || count > pkt.dataLen {
		return nil, ErrLength
	}
	pkt.dataOff += count
	pkt.dataLen -= count
	pkt.pktLen -= count
	return pkt.buf[pkt.dataOff : pkt.dataOff+pkt.dataLen], nil
}

// Trim removes count octets at the end of the packet. Fails with ErrLength
// if count exceeds the data length of the last segment.
func (pkt *Packet) Trim(count int) error {
	seg := pkt.lastSegment()
	if count < 0 || count > seg.dataLen {
		return ErrLength
	}
	seg.dataLen -= count
	pkt.pktLen -= count
	return nil
}

// Chain appends tail to this packet.
// tail's segments join pkt's chain and will be released when pkt is closed.
func (pkt *Packet) Chain(tail *Packet) error {
	if pkt.nbSegs+tail.nbSegs > MaxSegments {
		return ErrSegments
	}
	pkt.lastSegment().next = tail
	pkt.nbSegs += tail.nbSegs
	pkt.pktLen += tail.pktLen
	tail.nbSegs = 1
	tail.pktLen = 0
	return nil
}
