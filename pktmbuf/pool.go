// Package pktmbuf implements pool-backed, reference-counted packet buffers.
package pktmbuf

import (
	"errors"
	"fmt"

	"github.com/openpktio/pktio/core/logging"
	"github.com/openpktio/pktio/mempool"
	"github.com/openpktio/pktio/numa"
)

var logger = logging.New("pktmbuf")

// Defaults.
//
// Some NICs need at least a 2048-octet buffer to receive a standard Ethernet
// frame without splitting it into multiple segments, so the default dataroom
// is 2048 plus the default headroom.
const (
	DefaultHeadroom = 128
	DefaultDataroom = 2048 + DefaultHeadroom
)

// PoolConfig contains Pool configuration.
type PoolConfig struct {
	// Capacity is the number of packet buffers owned by the pool.
	Capacity int `json:"capacity"`

	// Dataroom is the buffer capacity of each packet buffer, headroom included.
	// Default is DefaultDataroom.
	Dataroom int `json:"dataroom,omitempty"`

	// Headroom is the initial data offset of a freshly allocated packet buffer.
	// Default is DefaultHeadroom.
	Headroom int `json:"headroom,omitempty"`
}

func (cfg *PoolConfig) applyDefaults() error {
	if cfg.Capacity <= 0 {
		return errors.New("invalid capacity")
	}
	if cfg.Dataroom == 0 {
		cfg.Dataroom = DefaultDataroom
	}
	if cfg.Headroom == 0 {
		cfg.Headroom = DefaultHeadroom
	}
	if cfg.Headroom < 0 || cfg.Headroom > cfg.Dataroom {
		return errors.New("headroom cannot exceed dataroom")
	}
	return nil
}

// Pool is a packet buffer pool.
type Pool struct {
	mp  *mempool.Mempool[*Packet]
	cfg PoolConfig
}

// NewPool creates a Pool.
func NewPool(cfg PoolConfig, socket numa.Socket) (*Pool, error) {
	if e := cfg.applyDefaults(); e != nil {
		return nil, e
	}

	pool := &Pool{cfg: cfg}
	mp, e := mempool.New(mempool.Config{Capacity: cfg.Capacity, Socket: socket}, func(i int) *Packet {
		return &Packet{
			pool: pool,
			buf:  make([]byte, cfg.Dataroom),
		}
	})
	if e != nil {
		return nil, e
	}
	pool.mp = mp
	return pool, nil
}

func (pool *Pool) String() string {
	return pool.mp.String()
}

// NumaSocket returns the NUMA socket this pool prefers.
func (pool *Pool) NumaSocket() numa.Socket {
	return pool.mp.NumaSocket()
}

// Dataroom returns buffer capacity of each packet buffer.
func (pool *Pool) Dataroom() int {
	return pool.cfg.Dataroom
}

// Headroom returns configured initial headroom.
func (pool *Pool) Headroom() int {
	return pool.cfg.Headroom
}

// CountAvailable returns number of available packet buffers.
func (pool *Pool) CountAvailable() int {
	return pool.mp.CountAvailable()
}

// CountInUse returns number of allocated packet buffers.
func (pool *Pool) CountInUse() int {
	return pool.mp.CountInUse()
}

// Alloc allocates exactly count packet buffers.
// If the pool cannot satisfy the whole request, nothing is allocated and an error is returned.
func (pool *Pool) Alloc(count int) (Vector, error) {
	vec := make(Vector, count)
	if e := pool.mp.Alloc(vec); e != nil {
		return nil, e
	}
	for _, pkt := range vec {
		pkt.reset()
	}
	return vec, nil
}

// AllocBurst allocates up to count packet buffers.
// Pool exhaustion surfaces as a shorter-than-requested vector, not an error.
func (pool *Pool) AllocBurst(count int) Vector {
	vec := make(Vector, count)
	n := pool.mp.AllocBurst(vec)
	vec = vec[:n]
	for _, pkt := range vec {
		pkt.reset()
	}
	return vec
}

// MustAlloc allocates count packet buffers. Allocation failure causes panic.
func (pool *Pool) MustAlloc(count int) Vector {
	vec, e := pool.Alloc(count)
	if e != nil {
		panic(fmt.Errorf("pktmbuf alloc %w", e))
	}
	return vec
}

// release returns a single segment to the pool.
func (pool *Pool) release(pkt *Packet) {
	pool.mp.Free([]*Packet{pkt})
}

// Close releases the pool.
func (pool *Pool) Close() error {
	return pool.mp.Close()
}
