// Package trend synthesizes the illustrative monthly series shown on the
// equilibrium chart. The series carry no data; they interpolate toward the
// current metric and add Gaussian noise.
package trend

import (
	"math/rand/v2"
	"sync"

	"github.com/iwvelando/debt-dashboard/pkg/constants"
)

// Months labels the trend points.
var Months = [constants.TrendPoints]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// Series holds one synthesized health trend and one ROI trend.
type Series struct {
	Labels []string  `json:"labels" yaml:"labels"`
	Health []float64 `json:"health" yaml:"health"`
	ROI    []float64 `json:"roi" yaml:"roi"`
}

// Synthesizer draws trend series from a single random source. It is safe for
// concurrent use.
type Synthesizer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSynthesizer returns a Synthesizer. A zero seed draws from an unseeded
// source; any other seed makes the sequence of generated series reproducible.
func NewSynthesizer(seed uint64) *Synthesizer {
	var src rand.Source
	if seed == 0 {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	} else {
		src = rand.NewPCG(seed, seed)
	}
	return &Synthesizer{rng: rand.New(src)}
}

// Generate returns fresh health and ROI series ending at the given metrics.
func (s *Synthesizer) Generate(healthIndex, roi float64) Series {
	series := Baseline(healthIndex, roi)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range series.Health {
		series.Health[i] += s.rng.NormFloat64() * constants.HealthNoiseStdDev
	}
	for i := range series.ROI {
		series.ROI[i] += s.rng.NormFloat64() * constants.ROINoiseStdDev
	}
	return series
}

// Baseline returns the noise-free interpolation underlying Generate.
func Baseline(healthIndex, roi float64) Series {
	return Series{
		Labels: Months[:],
		Health: Linspace(healthIndex*constants.HealthTrendStartFactor, healthIndex, constants.TrendPoints),
		ROI:    Linspace(roi*constants.ROITrendStartFactor, roi, constants.TrendPoints),
	}
}

// Linspace returns n evenly spaced values from start to end inclusive. The
// last value is exactly end.
func Linspace(start, end float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	values := make([]float64, n)
	if n == 1 {
		values[0] = start
		return values
	}
	step := (end - start) / float64(n-1)
	for i := range values {
		values[i] = float64(i)*step + start
	}
	values[n-1] = end
	return values
}
