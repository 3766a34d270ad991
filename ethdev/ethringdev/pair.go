package ethringdev

import (
	"fmt"

	"github.com/openpktio/pktio/ethdev"
	"github.com/openpktio/pktio/numa"
	"github.com/openpktio/pktio/pktmbuf"
	"github.com/openpktio/pktio/ringbuffer"
	"go.uber.org/multierr"
)

// PairConfig contains configuration for Pair.
type PairConfig struct {
	NQueues       int           // number of queues on each EthDev
	RingCapacity  int           // ring capacity connecting the pair
	QueueCapacity int           // queue capacity in each EthDev
	Socket        numa.Socket   // where to allocate data structures
	RxPool        *pktmbuf.Pool // mempool for packet reception
}

func (cfg *PairConfig) applyDefaults() {
	if cfg.RxPool == nil {
		logger.Panic("cfg.RxPool is missing")
	}
	if cfg.NQueues <= 0 {
		cfg.NQueues = 1
	}
	if cfg.RingCapacity <= 0 {
		cfg.RingCapacity = 1024
	}
	if cfg.QueueCapacity <= 0 {
		cfg.QueueCapacity = 64
	}
}

// Pair represents a pair of EthDevs connected via software FIFOs.
type Pair struct {
	cfg PairConfig

	PortA ethdev.EthDev
	PortB ethdev.EthDev
}

// ApplyConfig configures and starts a port of the pair.
func (pair *Pair) ApplyConfig(port ethdev.EthDev, cfg ethdev.Config) error {
	if e := port.Configure(pair.cfg.NQueues, pair.cfg.NQueues, cfg); e != nil {
		return fmt.Errorf("configure %s: %w", port, e)
	}
	for q := 0; q < pair.cfg.NQueues; q++ {
		if e := port.RxQueueSetup(q, pair.cfg.QueueCapacity, pair.cfg.Socket, ethdev.RxQueueConf{}, pair.cfg.RxPool); e != nil {
			return fmt.Errorf("rx queue %d on %s: %w", q, port, e)
		}
		if e := port.TxQueueSetup(q, pair.cfg.QueueCapacity, pair.cfg.Socket, ethdev.TxQueueConf{}); e != nil {
			return fmt.Errorf("tx queue %d on %s: %w", q, port, e)
		}
	}
	if e := port.Start(); e != nil {
		return fmt.Errorf("start %s: %w", port, e)
	}
	return nil
}

// Launch configures and starts both ports.
func (pair *Pair) Launch() error {
	return multierr.Append(
		pair.ApplyConfig(pair.PortA, ethdev.Config{}),
		pair.ApplyConfig(pair.PortB, ethdev.Config{}),
	)
}

// Close stops and detaches both ports.
func (pair *Pair) Close() error {
	var errs []error
	for _, port := range []ethdev.EthDev{pair.PortA, pair.PortB} {
		if !port.Valid() {
			continue
		}
		if port.State() == ethdev.Started {
			errs = append(errs, port.Stop())
		}
		switch port.State() {
		case ethdev.Configured, ethdev.Stopped:
			errs = append(errs, port.Close())
		}
		errs = append(errs, port.Detach())
	}
	return multierr.Combine(errs...)
}

// NewPair creates a pair of connected EthDevs.
func NewPair(cfg PairConfig) (pair *Pair, e error) {
	cfg.applyDefaults()
	pair = &Pair{cfg: cfg}

	ringsAB := make([]*ringbuffer.Ring[*pktmbuf.Packet], cfg.NQueues)
	ringsBA := make([]*ringbuffer.Ring[*pktmbuf.Packet], cfg.NQueues)
	for i := 0; i < cfg.NQueues; i++ {
		ringsAB[i] = ringbuffer.New[*pktmbuf.Packet](cfg.RingCapacity)
		ringsBA[i] = ringbuffer.New[*pktmbuf.Packet](cfg.RingCapacity)
	}

	if pair.PortA, e = New(ringsBA, ringsAB, cfg.Socket); e != nil {
		return nil, fmt.Errorf("ethringdev.New: %w", e)
	}
	if pair.PortB, e = New(ringsAB, ringsBA, cfg.Socket); e != nil {
		pair.Close()
		return nil, fmt.Errorf("ethringdev.New: %w", e)
	}
	return pair, nil
}
