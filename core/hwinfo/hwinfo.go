// Package hwinfo gathers hardware information.
package hwinfo

import (
	"github.com/openpktio/pktio/core/logging"
	"github.com/zyedidia/generic"
)

var logger = logging.New("hwinfo")

// CoreInfo describes a logical CPU core.
type CoreInfo struct {
	LogicalCore  int `json:"logicalCore"`
	PhysicalCore int `json:"physicalCore"`
	NumaSocket   int `json:"numaSocket"`
}

// Cores contains information about CPU cores.
type Cores []CoreInfo

// ByNumaSocket classifies cores as map[NumaSocket]Cores.
func (cores Cores) ByNumaSocket() (m map[int]Cores) {
	m = map[int]Cores{}
	for _, core := range cores {
		m[core.NumaSocket] = append(m[core.NumaSocket], core)
	}
	return m
}

// MaxNumaSocket determines the maximum NUMA socket.
func (cores Cores) MaxNumaSocket() int {
	maxSocket := -1
	for _, core := range cores {
		maxSocket = generic.Max(maxSocket, core.NumaSocket)
	}
	return maxSocket
}

// ByLogicalCore converts to map[LogicalCore]CoreInfo.
func (cores Cores) ByLogicalCore() (m map[int]CoreInfo) {
	m = map[int]CoreInfo{}
	for _, core := range cores {
		m[core.LogicalCore] = core
	}
	return m
}

// Provider provides information about hardware.
type Provider interface {
	// Cores provides information about CPU cores.
	Cores() Cores
}

// Default is the default Provider implementation.
var Default Provider = &procinfoProvider{}
