package pktmbuf_test

import (
	"os"
	"testing"

	"github.com/openpktio/pktio/core/testenv"
	"github.com/openpktio/pktio/pktmbuf"
	"github.com/openpktio/pktio/pktmbuf/mbuftestenv"
)

func TestMain(m *testing.M) {
	directMp = mbuftestenv.DirectPool()
	os.Exit(m.Run())
}

var (
	makeAR   = testenv.MakeAR
	directMp *pktmbuf.Pool
)
