package hwinfo

import (
	"fmt"

	procinfo "github.com/c9s/goprocinfo/linux"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

const (
	pathCPUInfo    = "/proc/cpuinfo"
	pathSystemNode = "/sys/devices/system/node"
	maxNumaNode    = 32
)

type procinfoProvider struct {
	cachedCores Cores
}

func (p *procinfoProvider) Cores() (cores Cores) {
	if len(p.cachedCores) > 0 {
		return p.cachedCores
	}

	cpuInfo, e := procinfo.ReadCPUInfo(pathCPUInfo)
	if e != nil {
		logger.Panic(pathCPUInfo, zap.Error(e))
	}

	for _, processor := range cpuInfo.Processors {
		numa, ok := p.findNumaSocket(processor)
		if !ok {
			// no NUMA information, assume socket 0
			numa = 0
		}
		cores = append(cores, CoreInfo{
			LogicalCore:  int(processor.Id),
			PhysicalCore: int(processor.CoreId),
			NumaSocket:   numa,
		})
	}

	p.cachedCores = cores
	return cores
}

func (procinfoProvider) findNumaSocket(processor procinfo.Processor) (int, bool) {
	for i := 0; i < maxNumaNode; i++ {
		path := fmt.Sprintf("%s/node%d/cpu%d", pathSystemNode, i, processor.Id)
		if unix.Access(path, unix.F_OK) == nil {
			return i, true
		}
	}
	return -1, false
}
