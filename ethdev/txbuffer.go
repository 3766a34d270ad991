package ethdev

import (
	"sync/atomic"

	"github.com/openpktio/pktio/pktmbuf"
)

// ErrorPolicy handles packets a TxBuffer flush could not transmit.
// The policy takes ownership of the packets.
type ErrorPolicy interface {
	HandleUnsent(unsent pktmbuf.Vector)
}

// DropPolicy silently frees unsent packets.
// This is the policy of a newly created TxBuffer.
type DropPolicy struct{}

// HandleUnsent frees the packets.
func (DropPolicy) HandleUnsent(unsent pktmbuf.Vector) {
	unsent.Close()
}

// CountPolicy frees unsent packets and counts them.
type CountPolicy struct {
	nDropped atomic.Uint64
}

// HandleUnsent frees the packets and adds to the drop counter.
func (p *CountPolicy) HandleUnsent(unsent pktmbuf.Vector) {
	p.nDropped.Add(uint64(len(unsent)))
	unsent.Close()
}

// Dropped returns the number of packets dropped so far.
func (p *CountPolicy) Dropped() uint64 {
	return p.nDropped.Load()
}

// TxBuffer accumulates packets so they can be transmitted in bursts.
// It is not safe for concurrent use; typically each TX queue has its own
// buffer owned by one goroutine.
type TxBuffer struct {
	vec    pktmbuf.Vector
	count  int
	policy ErrorPolicy
}

// NewTxBuffer creates a TxBuffer holding up to capacity packets,
// with DropPolicy for unsent packets.
func NewTxBuffer(capacity int) *TxBuffer {
	if capacity <= 0 {
		capacity = 32
	}
	return &TxBuffer{
		vec:    make(pktmbuf.Vector, capacity),
		policy: DropPolicy{},
	}
}

// SetErrorPolicy changes how unsent packets are handled.
func (b *TxBuffer) SetErrorPolicy(policy ErrorPolicy) {
	if policy == nil {
		policy = DropPolicy{}
	}
	b.policy = policy
}

// Capacity returns the buffer capacity.
func (b *TxBuffer) Capacity() int {
	return len(b.vec)
}

// Count returns the number of buffered packets.
func (b *TxBuffer) Count() int {
	return b.count
}

// Append stores a packet for later transmission.
// If the buffer is already full, it is flushed on q first, so a flush
// triggered this way reports the previously buffered packets only.
// Returns the number of packets actually transmitted by such a flush.
func (b *TxBuffer) Append(q TxQueue, pkt *pktmbuf.Packet) int {
	sent := 0
	if b.count == len(b.vec) {
		sent = b.Flush(q)
	}
	b.vec[b.count] = pkt
	b.count++
	return sent
}

// Flush transmits all buffered packets on q.
// Packets the device does not accept go to the error policy.
// Returns the number of packets transmitted.
func (b *TxBuffer) Flush(q TxQueue) int {
	if b.count == 0 {
		return 0
	}
	vec := b.vec[:b.count]
	sent := q.TxBurst(vec)
	if sent < len(vec) {
		unsent := make(pktmbuf.Vector, len(vec)-sent)
		copy(unsent, vec[sent:])
		b.policy.HandleUnsent(unsent)
	}
	for i := range vec {
		vec[i] = nil
	}
	b.count = 0
	return sent
}
