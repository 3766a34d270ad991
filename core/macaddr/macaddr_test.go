package macaddr_test

import (
	"net"
	"testing"

	"github.com/openpktio/pktio/core/macaddr"
	"github.com/openpktio/pktio/core/testenv"
)

var makeAR = testenv.MakeAR

func TestMacAddr(t *testing.T) {
	assert, _ := makeAR(t)

	macZero, _ := net.ParseMAC("00:00:00:00:00:00")
	uA1, _ := net.ParseMAC("02:00:00:00:00:A1")
	uA2, _ := net.ParseMAC("02:00:00:00:00:A2")
	mA1, _ := net.ParseMAC("03:00:00:00:00:A1")
	mac64, _ := net.ParseMAC("02:00:00:00:00:00:00:64")

	assert.True(macaddr.Equal(uA1, uA1))
	assert.False(macaddr.Equal(uA1, uA2))
	assert.False(macaddr.Equal(uA1, mA1))

	assert.True(macaddr.IsValid(macZero))
	assert.True(macaddr.IsValid(uA1))
	assert.False(macaddr.IsValid(mac64))

	assert.False(macaddr.IsUnicast(macZero))
	assert.True(macaddr.IsUnicast(uA1))
	assert.False(macaddr.IsUnicast(mA1))

	assert.False(macaddr.IsMulticast(uA1))
	assert.True(macaddr.IsMulticast(mA1))

	r := macaddr.MakeRandom(false)
	assert.True(macaddr.IsUnicast(r))
	m := macaddr.MakeRandom(true)
	assert.True(macaddr.IsMulticast(m))
}
