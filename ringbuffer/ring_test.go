package ringbuffer_test

import (
	"testing"

	"github.com/openpktio/pktio/core/testenv"
	"github.com/openpktio/pktio/ringbuffer"
)

var makeAR = testenv.MakeAR

func TestAlignCapacity(t *testing.T) {
	assert, _ := makeAR(t)

	assert.Equal(ringbuffer.DefaultCapacity, ringbuffer.AlignCapacity(0))
	assert.Equal(ringbuffer.MinCapacity, ringbuffer.AlignCapacity(1))
	assert.Equal(64, ringbuffer.AlignCapacity(33))
	assert.Equal(64, ringbuffer.AlignCapacity(64))
	assert.Equal(ringbuffer.MaxCapacity, ringbuffer.AlignCapacity(ringbuffer.MaxCapacity+1))
	assert.Equal(1024, ringbuffer.AlignCapacity(0, 16, 1024))
}

func TestRing(t *testing.T) {
	assert, _ := makeAR(t)

	r := ringbuffer.New[int](4)
	assert.Equal(4, r.Capacity())
	assert.Equal(0, r.CountInUse())
	assert.Equal(4, r.CountAvailable())

	assert.Equal(3, r.Enqueue([]int{101, 102, 103}))
	assert.Equal(3, r.CountInUse())

	// only one slot left
	assert.Equal(1, r.Enqueue([]int{104, 105}))
	assert.Equal(0, r.CountAvailable())

	out := make([]int, 3)
	assert.Equal(3, r.Dequeue(out))
	assert.Equal([]int{101, 102, 103}, out)

	assert.Equal(1, r.Dequeue(out))
	assert.Equal(104, out[0])
	assert.Equal(0, r.Dequeue(out))

	assert.Equal(2, r.Enqueue([]int{201, 202}))
	r.Reset()
	assert.Equal(0, r.CountInUse())
}
