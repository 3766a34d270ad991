package hwinfo_test

import (
	"testing"

	"github.com/openpktio/pktio/core/hwinfo"
	"github.com/openpktio/pktio/core/testenv"
)

var makeAR = testenv.MakeAR

func TestDefault(t *testing.T) {
	assert, _ := makeAR(t)

	cores := hwinfo.Default.Cores()
	assert.NotEmpty(cores)
	assert.GreaterOrEqual(cores.MaxNumaSocket(), 0)
	assert.Len(cores.ByLogicalCore(), len(cores))
}
