package clock

import (
	"fmt"
	"math"
	"time"

	"github.com/AndrewLester/clock/internal/system"
)

// SystemClock is the local clock collaborator.
type SystemClock = system.Clock

func NewSystemClock() SystemClock {
	return system.New()
}

// SetTime steps the clock to t after checking write permission.
func SetTime(c SystemClock, t time.Time) error {
	if err := c.CanSet(); err != nil {
		return err
	}
	info("CURRENT:", c.Now(), "STEPPING TO:", t.UTC())
	if err := c.Set(t); err != nil {
		return fmt.Errorf("set clock: %w", err)
	}
	return nil
}

// ApplyOffset steps the clock by offset milliseconds relative to now and
// returns the time it was set to.
func ApplyOffset(c SystemClock, offset float64) (time.Time, error) {
	if isNonFinite(offset) {
		return time.Time{}, fmt.Errorf("invalid offset %v", offset)
	}
	delta := time.Duration(math.Round(offset * float64(time.Millisecond)))
	target := c.Now().Add(delta)
	if err := SetTime(c, target); err != nil {
		return time.Time{}, err
	}
	return target, nil
}
