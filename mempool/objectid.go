package mempool

import (
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
)

var lastObjectID uint64

// allocObjectID allocates an identifier/name for pool objects.
func allocObjectID(dbgtype string) string {
	id := fmt.Sprintf("K%016x", atomic.AddUint64(&lastObjectID, 1))
	logger.Debug("object ID allocated",
		zap.String("type", dbgtype),
		zap.String("id", id),
	)
	return id
}
