// Package ringbuffer implements a bounded multi-producer multi-consumer FIFO.
package ringbuffer

import (
	"sync"

	binutils "github.com/jfoster/binary-utilities"
	"github.com/pkg/math"
)

// Limits and defaults.
const (
	MinCapacity     = 4
	MaxCapacity     = 1 << 24
	DefaultCapacity = 256
)

// AlignCapacity adjusts Ring capacity to a power of two between minimum and maximum.
// Optional arguments: minimum capacity, default capacity, maximum capacity.
// Default capacity is used if input is zero.
func AlignCapacity(capacity int, opts ...int) int {
	min, dflt, max := MinCapacity, DefaultCapacity, MaxCapacity
	switch len(opts) {
	case 0:
	case 1:
		min, dflt = opts[0], opts[0]
	case 2:
		min, dflt = opts[0], opts[1]
	case 3:
		min, dflt, max = opts[0], opts[1], opts[2]
	default:
		panic("unexpected opts count")
	}
	if dflt < min || dflt > max ||
		binutils.NextPowerOfTwo(int64(min)) != int64(min) ||
		binutils.NextPowerOfTwo(int64(dflt)) != int64(dflt) ||
		binutils.NextPowerOfTwo(int64(max)) != int64(max) {
		panic("invalid min, dflt, max")
	}

	if capacity <= 0 {
		capacity = dflt
	} else {
		capacity = int(binutils.NextPowerOfTwo(int64(capacity)))
	}
	return math.MinInt(math.MaxInt(min, capacity), max)
}

// Ring is a FIFO ring buffer.
// Enqueue and Dequeue are safe for concurrent use.
type Ring[T any] struct {
	mu       sync.Mutex
	slots    []T
	head     int // next dequeue position
	count    int
	capacity int
}

// New creates a Ring.
// Capacity is aligned to a power of two.
func New[T any](capacity int) *Ring[T] {
	capacity = AlignCapacity(capacity)
	return &Ring[T]{
		slots:    make([]T, capacity),
		capacity: capacity,
	}
}

// Capacity returns ring capacity.
func (r *Ring[T]) Capacity() int {
	return r.capacity
}

// CountAvailable returns free space.
func (r *Ring[T]) CountAvailable() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.capacity - r.count
}

// CountInUse returns used space.
func (r *Ring[T]) CountInUse() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Enqueue enqueues as many objects as space permits.
// Returns the number of enqueued objects, taken from the front of objs.
func (r *Ring[T]) Enqueue(objs []T) (nEnqueued int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	nEnqueued = math.MinInt(len(objs), r.capacity-r.count)
	for i := 0; i < nEnqueued; i++ {
		r.slots[(r.head+r.count+i)&(r.capacity-1)] = objs[i]
	}
	r.count += nEnqueued
	return nEnqueued
}

// Dequeue dequeues up to len(objs) objects into objs.
// Returns the number of dequeued objects.
func (r *Ring[T]) Dequeue(objs []T) (nDequeued int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero T
	nDequeued = math.MinInt(len(objs), r.count)
	for i := 0; i < nDequeued; i++ {
		pos := (r.head + i) & (r.capacity - 1)
		objs[i] = r.slots[pos]
		r.slots[pos] = zero
	}
	r.head = (r.head + nDequeued) & (r.capacity - 1)
	r.count -= nDequeued
	return nDequeued
}

// Reset discards all queued objects.
func (r *Ring[T]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	var zero T
	for i := range r.slots {
		r.slots[i] = zero
	}
	r.head, r.count = 0, 0
}
