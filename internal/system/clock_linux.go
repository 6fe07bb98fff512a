//go:build linux

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
	ts := unix.NsecToTimespec(t.UnixNano())
	return unix.ClockSettime(unix.CLOCK_REALTIME, &ts)
}

func (localClock) CanSet() error {
	header := unix.CapUserHeader{Version: unix.LINUX_CAPABILITY_VERSION_3}
	var data [2]unix.CapUserData
	if err := unix.Capget(&header, &data[0]); err != nil {
		return err
	}
	if data[0].Effective&(1<<unix.CAP_SYS_TIME) == 0 {
		return ErrWriteProtected
	}
	return nil
}
