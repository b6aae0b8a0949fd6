// Package metrics evaluates the dashboard's closed-form economic model.
//
// Every value is a pure function of the two slider inputs. The formulas are
// fixed coefficients, not calibrated against data, and are evaluated in the
// same order and grouping as the published model so results are identical
// to the last bit.
package metrics

import (
	"math"

	"github.com/iwvelando/debt-dashboard/pkg/constants"
)

// Agent impact scores. Each agent has exactly two tiers.
const (
	HouseholdsFavorable   = 80.0
	HouseholdsUnfavorable = 40.0
	FirmsFavorable        = 85.0
	FirmsUnfavorable      = 45.0
	StateFavorable        = 90.0
	StateUnfavorable      = 50.0
)

// SliderState holds the two user-controlled inputs.
type SliderState struct {
	Capital float64 `json:"capital" yaml:"capital"` // $ billion
	Rate    float64 `json:"rate" yaml:"rate"`       // restructuring favorability, percent
}

// DerivedMetrics is the projection of a SliderState through the model.
type DerivedMetrics struct {
	ROI             float64 `json:"roi" yaml:"roi"`
	HealthIndex     float64 `json:"healthIndex" yaml:"healthIndex"`
	Inflation       float64 `json:"inflation" yaml:"inflation"`
	TaxAvoided      float64 `json:"taxAvoided" yaml:"taxAvoided"`
	HouseholdsScore float64 `json:"householdsScore" yaml:"householdsScore"`
	FirmsScore      float64 `json:"firmsScore" yaml:"firmsScore"`
	StateScore      float64 `json:"stateScore" yaml:"stateScore"`
}

// DefaultSliderState returns the slider positions of a new session.
func DefaultSliderState() SliderState {
	return SliderState{Capital: constants.DefaultCapital, Rate: constants.DefaultRate}
}

// Clamp constrains the state to the ranges and steps of the slider controls.
// NaN inputs fall back to the defaults; infinities clamp to the bounds.
func (s SliderState) Clamp() SliderState {
	capital := s.Capital
	if math.IsNaN(capital) {
		capital = constants.DefaultCapital
	}
	capital = math.Round(capital*constants.CapitalPrecision) / constants.CapitalPrecision
	capital = math.Min(constants.MaxCapital, math.Max(constants.MinCapital, capital))

	rate := s.Rate
	if math.IsNaN(rate) {
		rate = constants.DefaultRate
	}
	rate = math.Round(rate)
	rate = math.Min(constants.MaxRate, math.Max(constants.MinRate, rate))

	return SliderState{Capital: capital, Rate: rate}
}

// Compute evaluates the model. The state is expected to be within the slider
// ranges; callers accepting external input should Clamp first.
func Compute(state SliderState) DerivedMetrics {
	capital, rate := state.Capital, state.Rate

	roi := ROI(capital, rate)
	health := HealthIndex(capital, rate)
	inflation := Inflation(health)
	tax := TaxAvoided(capital, rate)

	return DerivedMetrics{
		ROI:             roi,
		HealthIndex:     health,
		Inflation:       inflation,
		TaxAvoided:      tax,
		HouseholdsScore: HouseholdsScore(inflation),
		FirmsScore:      FirmsScore(health),
		StateScore:      StateScore(tax),
	}
}

// ROI is the portfolio return on investment in percent.
func ROI(capital, rate float64) float64 {
	return (100-rate)*(capital/15) + 3.5
}

// HealthIndex is the composite economic health score, capped at 100.
func HealthIndex(capital, rate float64) float64 {
	return math.Min(100, (rate*0.7)+(capital*3))
}

// Inflation is the inflation rate in percent, floored at 1.8.
func Inflation(healthIndex float64) float64 {
	return math.Max(1.8, 6.0-(healthIndex/18))
}

// TaxAvoided is the treasury saving in $ billion.
func TaxAvoided(capital, rate float64) float64 {
	return (capital * (rate / 100)) * 1.25
}

// HouseholdsScore rewards inflation strictly below 3%.
func HouseholdsScore(inflation float64) float64 {
	if inflation < 3 {
		return HouseholdsFavorable
	}
	return HouseholdsUnfavorable
}

// FirmsScore rewards a health index strictly above 70.
func FirmsScore(healthIndex float64) float64 {
	if healthIndex > 70 {
		return FirmsFavorable
	}
	return FirmsUnfavorable
}

// StateScore rewards tax avoided strictly above $2B.
func StateScore(taxAvoided float64) float64 {
	if taxAvoided > 2 {
		return StateFavorable
	}
	return StateUnfavorable
}

// Scores returns the agent scores in radar axis order: households, firms, state.
func (m DerivedMetrics) Scores() []float64 {
	return []float64{m.HouseholdsScore, m.FirmsScore, m.StateScore}
}

// MinScore returns the lowest of the three agent scores.
func (m DerivedMetrics) MinScore() float64 {
	return math.Min(m.HouseholdsScore, math.Min(m.FirmsScore, m.StateScore))
}

// Favorable reports whether every agent score clears the favorable threshold.
func (m DerivedMetrics) Favorable() bool {
	return m.MinScore() > constants.FavorableScoreThreshold
}
