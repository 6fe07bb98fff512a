package clock

import "time"

// Delay is the round trip transit time minus server processing, in
// milliseconds: (t4 - t1) - (t3 - t2).
func (rt *RoundTrip) Delay() int64 {
	return (rt.T4.Sub(rt.T1) - rt.T3.Sub(rt.T2)).Milliseconds()
}

// Offset is |delay| / 2 in milliseconds. It is a magnitude only and carries
// no direction of skew.
func (rt *RoundTrip) Offset() int64 {
	delay := rt.Delay()
	if delay < 0 {
		delay = -delay
	}
	return delay / 2
}

// ClockOffset is the signed NTP offset ((t2 - t1) + (t3 - t4)) / 2. It is
// reported alongside samples but does not feed aggregation.
func (rt *RoundTrip) ClockOffset() time.Duration {
	return (rt.T2.Sub(rt.T1) + rt.T3.Sub(rt.T4)) / 2
}

func (rt *RoundTrip) Sample() Sample {
	return Sample{
		Offset: float64(rt.Offset()),
		Delay:  float64(rt.Delay()),
	}
}
