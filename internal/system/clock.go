// Package system is the local clock: reading it, stepping it, and checking
// whether this process is allowed to step it.
package system

import (
	"errors"
	"time"
)

var (
	ErrWriteProtected = errors.New("not permitted to set the system clock")
	ErrUnsupported    = errors.New("setting the clock is not supported on this platform")
)

type Clock interface {
	Now() time.Time
	// Set steps the clock to t. The error is returned directly from the
	// underlying call.
	Set(t time.Time) error
	// CanSet reports ErrWriteProtected when Set is bound to fail for lack of
	// privilege.
	CanSet() error
}

func New() Clock {
	return localClock{}
}
