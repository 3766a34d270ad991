package ethdev

// State is the position of a device in its configuration lifecycle.
type State int

// Device states.
const (
	Unconfigured State = iota
	Configured
	Started
	Stopped
	Closed
)

func (st State) String() string {
	switch st {
	case Unconfigured:
		return "unconfigured"
	case Configured:
		return "configured"
	case Started:
		return "started"
	case Stopped:
		return "stopped"
	case Closed:
		return "closed"
	}
	return "invalid"
}
