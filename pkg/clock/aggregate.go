package clock

import (
	"errors"
	"math"
)

var ErrNoUsableSamples = errors.New("no usable samples")

// Sample pairs one server's offset and delay, both in milliseconds.
type Sample struct {
	Offset float64
	Delay  float64
}

// Weight is 1e6 / delay^2. Lower delay means higher confidence.
func (s Sample) Weight() float64 {
	return 1_000_000 / (s.Delay * s.Delay)
}

// Combine returns the weighted mean offset. Samples with a non-finite weight
// (zero delay) are skipped.
func Combine(samples []Sample) (float64, error) {
	var weightedSum, weightSum float64
	for _, sample := range samples {
		weight := sample.Weight()
		if isNonFinite(weight) {
			debug("skipping sample with non-finite weight:", sample)
			continue
		}
		weightedSum += sample.Offset * weight
		weightSum += weight
	}

	if weightSum == 0 || math.IsInf(weightSum, 0) {
		return 0, ErrNoUsableSamples
	}
	return weightedSum / weightSum, nil
}

func isNonFinite(f float64) bool {
	return math.IsInf(f, 0) || math.IsNaN(f)
}
