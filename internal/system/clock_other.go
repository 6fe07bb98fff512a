//go:build !linux && !darwin

package system

import "time"

type localClock struct{}

func (localClock) Now() time.Time {
	return time.Now().UTC()
}

func (localClock) Set(time.Time) error {
	return ErrUnsupported
}

func (localClock) CanSet() error {
	return ErrUnsupported
}
