package ethdev_test

import (
	"github.com/openpktio/pktio/core/testenv"
)

var makeAR = testenv.MakeAR
