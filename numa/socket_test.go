package numa_test

import (
	"testing"

	"github.com/openpktio/pktio/core/testenv"
	"github.com/openpktio/pktio/numa"
)

var makeAR = testenv.MakeAR

func TestSocket(t *testing.T) {
	assert, _ := makeAR(t)

	var any numa.Socket
	assert.True(any.IsAny())
	assert.Equal(-1, any.ID())
	assert.Equal("any", any.String())
	assert.Equal("null", testenv.ToJSON(any))

	s0, s1 := numa.FromID(0), numa.FromID(1)
	assert.False(s0.IsAny())
	assert.Equal(0, s0.ID())
	assert.Equal("1", s1.String())
	assert.Equal("0", testenv.ToJSON(s0))

	assert.True(any.Match(s0))
	assert.True(s0.Match(any))
	assert.True(s0.Match(s0))
	assert.False(s0.Match(s1))

	assert.True(numa.FromID(-1).IsAny())
	assert.True(numa.FromID(numa.MaxSockets).IsAny())

	assert.NotEmpty(numa.Sockets())
}
