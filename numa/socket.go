// Package numa models NUMA socket identifiers.
package numa

import (
	"encoding/json"
	"strconv"

	"github.com/openpktio/pktio/core/hwinfo"
)

// MaxSockets is the upper bound of NUMA socket ID.
const MaxSockets = 32

// Socket represents a NUMA socket.
// Zero value means "any socket".
type Socket struct {
	v int // socket ID + 1
}

// FromID converts socket ID to Socket.
func FromID(id int) (socket Socket) {
	if id < 0 || id >= MaxSockets {
		return socket
	}
	socket.v = id + 1
	return socket
}

// ID returns NUMA socket ID.
func (socket Socket) ID() int {
	return socket.v - 1
}

// IsAny returns true if this represents "any socket".
func (socket Socket) IsAny() bool {
	return socket.v == 0
}

// Match returns true if either Socket is "any", or both are the same Socket.
func (socket Socket) Match(other Socket) bool {
	return socket.IsAny() || other.IsAny() || socket.v == other.v
}

func (socket Socket) String() string {
	if socket.IsAny() {
		return "any"
	}
	return strconv.Itoa(socket.ID())
}

// MarshalJSON encodes NUMA socket as number.
// Any is encoded as null.
func (socket Socket) MarshalJSON() ([]byte, error) {
	if socket.IsAny() {
		return json.Marshal(nil)
	}
	return json.Marshal(socket.ID())
}

// Sockets lists NUMA sockets reported by the hardware.
// There is at least one socket even on non-NUMA machines.
func Sockets() (list []Socket) {
	maxSocket := hwinfo.Default.Cores().MaxNumaSocket()
	if maxSocket < 0 {
		maxSocket = 0
	}
	for i := 0; i <= maxSocket; i++ {
		list = append(list, FromID(i))
	}
	return list
}

// WithSocket interface is implemented by types that have an associated or preferred NUMA socket.
type WithSocket interface {
	NumaSocket() Socket
}
