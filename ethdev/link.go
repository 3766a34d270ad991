package ethdev

import "fmt"

// Bit layout of the packed link status word: the low 32 bits carry speed in
// Mbps, followed by one bit each for duplex, autonegotiation, and link-up.
const (
	linkSpeedMask  = 0xFFFFFFFF
	linkDuplexBit  = 1 << 32
	linkAutonegBit = 1 << 33
	linkUpBit      = 1 << 34
)

// LinkState is a point-in-time view of the physical link of a port.
type LinkState struct {
	Speed   uint32 `json:"speed"` // Mbps
	Duplex  bool   `json:"fullDuplex"`
	Autoneg bool   `json:"autoneg"`
	Up      bool   `json:"up"`
}

// LinkStateFromWord decodes a packed link status word.
func LinkStateFromWord(w uint64) LinkState {
	return LinkState{
		Speed:   uint32(w & linkSpeedMask),
		Duplex:  w&linkDuplexBit != 0,
		Autoneg: w&linkAutonegBit != 0,
		Up:      w&linkUpBit != 0,
	}
}

// Word encodes the link state as a packed status word.
func (ls LinkState) Word() (w uint64) {
	w = uint64(ls.Speed)
	if ls.Duplex {
		w |= linkDuplexBit
	}
	if ls.Autoneg {
		w |= linkAutonegBit
	}
	if ls.Up {
		w |= linkUpBit
	}
	return w
}

func (ls LinkState) String() string {
	if !ls.Up {
		return "down"
	}
	duplex := "HDX"
	if ls.Duplex {
		duplex = "FDX"
	}
	return fmt.Sprintf("up %dMbps %s", ls.Speed, duplex)
}
