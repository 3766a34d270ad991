// Package mempool implements a capacity-bounded, NUMA-aware object pool.
package mempool

import (
	"errors"
	"math/bits"

	"github.com/openpktio/pktio/core/logging"
	"github.com/openpktio/pktio/numa"
	"github.com/openpktio/pktio/ringbuffer"
	"go.uber.org/zap"
)

var logger = logging.New("mempool")

// ErrNoObjects indicates the pool cannot satisfy a bulk allocation.
var ErrNoObjects = errors.New("mempool object allocation failed")

// ComputeOptimumCapacity adjusts mempool capacity to be a power of two minus one, if near.
func ComputeOptimumCapacity(capacity int) int {
	if bits.OnesCount64(uint64(capacity)) == 1 {
		capacity--
	}
	return capacity
}

// Config contains Mempool configuration.
type Config struct {
	Capacity int
	Socket   numa.Socket
}

// Mempool is a fixed-capacity pool of pre-created objects.
// Alloc and Free are safe for concurrent use.
type Mempool[T any] struct {
	name     string
	cfg      Config
	ring     *ringbuffer.Ring[T]
	capacity int
}

// New creates a Mempool.
// create is invoked once per object slot at creation time.
func New[T any](cfg Config, create func(i int) T) (mp *Mempool[T], e error) {
	if cfg.Capacity <= 0 {
		return nil, errors.New("invalid capacity")
	}

	mp = &Mempool[T]{
		name:     allocObjectID("mempool.Mempool"),
		cfg:      cfg,
		ring:     ringbuffer.New[T](cfg.Capacity),
		capacity: cfg.Capacity,
	}

	objs := make([]T, cfg.Capacity)
	for i := range objs {
		objs[i] = create(i)
	}
	if n := mp.ring.Enqueue(objs); n != cfg.Capacity {
		panic("mempool ring cannot hold all objects")
	}
	return mp, nil
}

func (mp *Mempool[T]) String() string {
	return mp.name
}

// NumaSocket returns the NUMA socket this pool prefers.
func (mp *Mempool[T]) NumaSocket() numa.Socket {
	return mp.cfg.Socket
}

// Capacity returns the total number of objects owned by the pool.
func (mp *Mempool[T]) Capacity() int {
	return mp.capacity
}

// CountAvailable returns number of available objects.
func (mp *Mempool[T]) CountAvailable() int {
	return mp.ring.CountInUse()
}

// CountInUse returns number of allocated objects.
func (mp *Mempool[T]) CountInUse() int {
	return mp.capacity - mp.ring.CountInUse()
}

// Alloc allocates exactly len(objs) objects.
// If the pool cannot satisfy the whole request, nothing is allocated and ErrNoObjects is returned.
func (mp *Mempool[T]) Alloc(objs []T) error {
	if len(objs) == 0 {
		return nil
	}
	n := mp.ring.Dequeue(objs)
	if n != len(objs) {
		mp.ring.Enqueue(objs[:n])
		return ErrNoObjects
	}
	return nil
}

// AllocBurst allocates up to len(objs) objects.
// Returns the number of allocated objects; exhaustion surfaces as a shorter count.
func (mp *Mempool[T]) AllocBurst(objs []T) int {
	return mp.ring.Dequeue(objs)
}

// Free returns several objects to the pool.
func (mp *Mempool[T]) Free(objs []T) {
	if len(objs) == 0 {
		return
	}
	// the ring rounds its capacity up to a power of two, so compare against
	// the declared pool capacity instead of relying on ring overflow
	if n := mp.ring.Enqueue(objs); n != len(objs) || mp.ring.CountInUse() > mp.capacity {
		panic("mempool overflow: object freed twice or into wrong pool")
	}
}

// Close releases the pool.
func (mp *Mempool[T]) Close() error {
	if inUse := mp.CountInUse(); inUse > 0 {
		logger.Warn("mempool closed with objects in use",
			zap.String("name", mp.name),
			zap.Int("in-use", inUse),
		)
	}
	mp.ring.Reset()
	return nil
}
