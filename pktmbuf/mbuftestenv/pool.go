// Package mbuftestenv provides packet buffer pools for unit tests.
package mbuftestenv

import (
	"github.com/openpktio/pktio/numa"
	"github.com/openpktio/pktio/pktmbuf"
)

func init() {
	pktmbuf.Direct.Update(pktmbuf.PoolConfig{
		Capacity: 4095,
	})
}

// DirectPool returns a pool created from DIRECT template.
func DirectPool() *pktmbuf.Pool {
	return pktmbuf.Direct.Get(numa.Socket{})
}
