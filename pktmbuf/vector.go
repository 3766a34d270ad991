package pktmbuf

// Vector is a vector of packet buffers.
type Vector []*Packet

// Close releases the packets.
// nil elements are skipped.
func (vec Vector) Close() error {
	for _, pkt := range vec {
		if pkt != nil {
			pkt.Close()
		}
	}
	return nil
}
