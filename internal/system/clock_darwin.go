//go:build darwin

package system

import (
	"time"

	"golang.org/x/sys/unix"
)

type localClock struct{}

func (localClock) Now() time.Time {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_REALTIME, &ts); err != nil {
		return time.Now().UTC()
	}
	return time.Unix(ts.Unix()).UTC()
}

func (localClock) Set(t time.Time) error {
	tv := unix.NsecToTimeval(t.UnixNano())
	return unix.Settimeofday(&tv)
}

func (localClock) CanSet() error {
	if unix.Geteuid() != 0 {
		return ErrWriteProtected
	}
	return nil
}
