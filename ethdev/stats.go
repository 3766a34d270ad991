package ethdev

import "fmt"

// QueueStatsCntrs is the number of queues with per-queue counters.
const QueueStatsCntrs = 16

// Stats contains hardware statistics of a port.
type Stats struct {
	Ipackets uint64 `json:"ipackets"` // successfully received packets
	Opackets uint64 `json:"opackets"` // successfully transmitted packets
	Ibytes   uint64 `json:"ibytes"`
	Obytes   uint64 `json:"obytes"`
	Imissed  uint64 `json:"imissed"` // packets dropped for lack of RX descriptors
	Ierrors  uint64 `json:"ierrors"`
	Oerrors  uint64 `json:"oerrors"`
	RxNombuf uint64 `json:"rxNombuf"` // RX allocation failures

	QIpackets [QueueStatsCntrs]uint64 `json:"qIpackets"`
	QOpackets [QueueStatsCntrs]uint64 `json:"qOpackets"`
	QIbytes   [QueueStatsCntrs]uint64 `json:"qIbytes"`
	QObytes   [QueueStatsCntrs]uint64 `json:"qObytes"`
	QErrors   [QueueStatsCntrs]uint64 `json:"qErrors"`
}

func (stats Stats) String() string {
	return fmt.Sprintf("RX %d pkts, %d bytes, %d missed, %d errors, %d nombuf; TX %d pkts, %d bytes, %d errors",
		stats.Ipackets, stats.Ibytes, stats.Imissed, stats.Ierrors, stats.RxNombuf,
		stats.Opackets, stats.Obytes, stats.Oerrors)
}

// Stats retrieves hardware statistics.
func (port EthDev) Stats() (stats Stats) {
	entry := port.entry()
	if entry == nil {
		return stats
	}
	return entry.drv.Stats()
}

// ResetStats clears hardware statistics.
func (port EthDev) ResetStats() {
	if entry := port.entry(); entry != nil {
		entry.drv.ResetStats()
	}
}
