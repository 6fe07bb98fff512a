package ntp

import (
	"math"
	"time"
)

const (
	EraLength     int64 = 4_294_967_296 // 2^32
	UnixEraOffset int64 = 2_208_988_800 // 1970 - 1900 in seconds
)

// Timestamp is the 64-bit NTP fixed-point time: seconds since 1900 plus a
// binary fraction of a second. Seconds wrap at 2^32 (era 0 only).
type Timestamp struct {
	Seconds  uint32
	Fraction uint32
}

// Time converts to UTC. No timezone adjustment is ever applied.
func (ts Timestamp) Time() time.Time {
	sec := int64(ts.Seconds) - UnixEraOffset
	nsec := int64(math.Round(float64(ts.Fraction) * 1e9 / float64(EraLength)))
	return time.Unix(sec, nsec).UTC()
}

func TimeToTimestamp(t time.Time) Timestamp {
	fraction := math.Round(float64(t.Nanosecond()) * float64(EraLength) / 1e9)
	sec := t.Unix() + UnixEraOffset
	// A nanosecond value close to 1s can round up to a full second.
	if fraction >= float64(EraLength) {
		fraction -= float64(EraLength)
		sec++
	}
	return Timestamp{
		Seconds:  uint32(sec),
		Fraction: uint32(fraction),
	}
}

func (ts Timestamp) String() string {
	return ts.Time().Format(time.RFC3339Nano)
}
