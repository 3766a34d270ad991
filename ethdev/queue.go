package ethdev

import (
	"fmt"

	"github.com/openpktio/pktio/pktmbuf"
)

// RxQueue represents an RX queue of a started port.
type RxQueue struct {
	Port  EthDev
	Queue int

	drv Driver
}

// RxBurst receives a burst of up to len(vec) packets.
// Each received packet is stored at vec[i] and has port and length assigned.
// Returns the number of packets received; zero when the queue is empty.
func (q RxQueue) RxBurst(vec pktmbuf.Vector) int {
	if len(vec) == 0 {
		return 0
	}
	n := q.drv.RxBurst(q.Queue, vec)
	for _, pkt := range vec[:n] {
		pkt.SetPort(uint16(q.Port.ID()))
	}
	return n
}

func (q RxQueue) String() string {
	return fmt.Sprintf("%s-rx%d", q.Port, q.Queue)
}

// TxQueue represents a TX queue of a started port.
type TxQueue struct {
	Port  EthDev
	Queue int

	drv Driver
}

// TxBurst transmits a burst of up to len(vec) packets.
// Accepted packets are owned by the device; the caller keeps ownership of
// the rest, vec[n:], and normally retries or frees them.
func (q TxQueue) TxBurst(vec pktmbuf.Vector) int {
	if len(vec) == 0 {
		return 0
	}
	return q.drv.TxBurst(q.Queue, vec)
}

func (q TxQueue) String() string {
	return fmt.Sprintf("%s-tx%d", q.Port, q.Queue)
}

// RxQueues returns RX queue handles of a port.
// The port should be started before bursting on them.
func (port EthDev) RxQueues() (list []RxQueue) {
	entry := port.entry()
	if entry == nil {
		return nil
	}
	for q := 0; q < entry.nRx; q++ {
		list = append(list, RxQueue{Port: port, Queue: q, drv: entry.drv})
	}
	return list
}

// TxQueues returns TX queue handles of a port.
func (port EthDev) TxQueues() (list []TxQueue) {
	entry := port.entry()
	if entry == nil {
		return nil
	}
	for q := 0; q < entry.nTx; q++ {
		list = append(list, TxQueue{Port: port, Queue: q, drv: entry.drv})
	}
	return list
}

func (port EthDev) queueRunControl(op string) (*deviceEntry, QueueRunControl, error) {
	entry := port.entry()
	if entry == nil {
		return nil, nil, ErrInvalidPort
	}
	if entry.state != Started {
		return nil, nil, stateError(op, entry.state)
	}
	qrc, ok := entry.drv.(QueueRunControl)
	if !ok {
		return nil, nil, fmt.Errorf("%s: %w", op, ErrUnsupported)
	}
	return entry, qrc, nil
}

// RxQueueStart starts an individual RX queue, typically one configured
// with DeferredStart.
func (port EthDev) RxQueueStart(queue int) error {
	entry, qrc, e := port.queueRunControl("rx-queue-start")
	if e != nil {
		return e
	}
	if queue < 0 || queue >= entry.nRx {
		return fmt.Errorf("rx queue %d: %w", queue, ErrInvalidArgument)
	}
	if e := qrc.RxQueueStart(queue); e != nil {
		return deviceError("rx-queue-start", e)
	}
	return nil
}

// RxQueueStop stops an individual RX queue.
func (port EthDev) RxQueueStop(queue int) error {
	entry, qrc, e := port.queueRunControl("rx-queue-stop")
	if e != nil {
		return e
	}
	if queue < 0 || queue >= entry.nRx {
		return fmt.Errorf("rx queue %d: %w", queue, ErrInvalidArgument)
	}
	if e := qrc.RxQueueStop(queue); e != nil {
		return deviceError("rx-queue-stop", e)
	}
	return nil
}

// TxQueueStart starts an individual TX queue.
func (port EthDev) TxQueueStart(queue int) error {
	entry, qrc, e := port.queueRunControl("tx-queue-start")
	if e != nil {
		return e
	}
	if queue < 0 || queue >= entry.nTx {
		return fmt.Errorf("tx queue %d: %w", queue, ErrInvalidArgument)
	}
	if e := qrc.TxQueueStart(queue); e != nil {
		return deviceError("tx-queue-start", e)
	}
	return nil
}

// TxQueueStop stops an individual TX queue.
func (port EthDev) TxQueueStop(queue int) error {
	entry, qrc, e := port.queueRunControl("tx-queue-stop")
	if e != nil {
		return e
	}
	if queue < 0 || queue >= entry.nTx {
		return fmt.Errorf("tx queue %d: %w", queue, ErrInvalidArgument)
	}
	if e := qrc.TxQueueStop(queue); e != nil {
		return deviceError("tx-queue-stop", e)
	}
	return nil
}
