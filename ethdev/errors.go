package ethdev

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by control-plane operations.
// The hot path (RxBurst, TxBurst) never signals per-call errors.
var (
	ErrInvalidPort     = errors.New("invalid port")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidState    = errors.New("operation illegal in current device state")
	ErrUnsupported     = errors.New("feature not supported by device")
	ErrOutOfResources  = errors.New("out of descriptor resources")
	ErrDeviceError     = errors.New("device error")
)

// stateError reports an operation attempted in the wrong state.
func stateError(op string, state State) error {
	return fmt.Errorf("%w: %s in %v", ErrInvalidState, op, state)
}

// deviceError wraps an underlying driver status.
func deviceError(op string, e error) error {
	return fmt.Errorf("%w: %s: %w", ErrDeviceError, op, e)
}
