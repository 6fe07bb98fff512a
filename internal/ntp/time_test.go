package ntp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimestamp_Time(t *testing.T) {
	tests := []struct {
		name string
		ts   Timestamp
		want time.Time
	}{
		{
			name: "unix epoch",
			ts:   Timestamp{Seconds: uint32(UnixEraOffset)},
			want: time.Unix(0, 0).UTC(),
		},
		{
			name: "half second",
			ts:   Timestamp{Seconds: uint32(UnixEraOffset) + 1, Fraction: 1 << 31},
			want: time.Unix(1, 500_000_000).UTC(),
		},
		{
			name: "ntp epoch",
			ts:   Timestamp{},
			want: time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.ts.Time()
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestTimeToTimestamp(t *testing.T) {
	ts := TimeToTimestamp(time.Unix(1, 250_000_000))
	assert.Equal(t, uint32(UnixEraOffset+1), ts.Seconds)
	assert.Equal(t, uint32(1<<30), ts.Fraction)
}

func TestTimeToTimestamp_IgnoresZone(t *testing.T) {
	utc := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	zoned := utc.In(time.FixedZone("UTC+9", 9*3600))
	assert.Equal(t, TimeToTimestamp(utc), TimeToTimestamp(zoned))
}

func TestTimestampRoundTrip(t *testing.T) {
	samples := []time.Time{
		time.Date(2000, 1, 1, 0, 0, 0, 1_000, time.UTC),
		time.Date(2023, 10, 17, 8, 30, 12, 123_456_000, time.UTC),
		time.Date(2035, 12, 31, 23, 59, 59, 999_999_000, time.UTC),
		time.Unix(1_700_000_000, 987_654_321),
	}

	for _, sample := range samples {
		got := TimeToTimestamp(sample).Time()
		diff := got.Sub(sample)
		if diff < 0 {
			diff = -diff
		}
		assert.LessOrEqual(t, diff, time.Microsecond, "round trip of %v gave %v", sample, got)
	}
}
