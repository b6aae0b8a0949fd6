// Package testutil provides common utility functions for testing.
package testutil

import (
	"sync"

	"github.com/iwvelando/debt-dashboard/internal/trend"
)

// BaselineTrend is a trend source without noise, so rendered views are
// deterministic. It records how many series it produced.
type BaselineTrend struct {
	mu    sync.Mutex
	calls int
}

// Generate returns the noise-free interpolation.
func (b *BaselineTrend) Generate(healthIndex, roi float64) trend.Series {
	b.mu.Lock()
	b.calls++
	b.mu.Unlock()
	return trend.Baseline(healthIndex, roi)
}

// Calls returns the number of series generated so far.
func (b *BaselineTrend) Calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}
