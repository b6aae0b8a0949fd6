// Package dashboard assembles and renders the restructuring dashboard: metric
// tiles, the equilibrium trend chart, the status panel, the agent impact
// radar and the explanatory panel.
package dashboard

import (
	"fmt"
	"html/template"

	"github.com/iwvelando/debt-dashboard/internal/metrics"
	"github.com/iwvelando/debt-dashboard/internal/trend"
	"github.com/iwvelando/debt-dashboard/pkg/constants"
	"github.com/iwvelando/debt-dashboard/pkg/format"
)

// Page and section headings.
const (
	PageTitle        = "Macro-Health Debt Dashboard"
	Title            = "Sovereign & Corporate Debt Restructuring Dashboard"
	EquilibriumTitle = "Systemic Equilibrium"
	StatusTitle      = "Tranquility Report"
	ImpactTitle      = "Impact on Economic Agents"
)

// Status panel messages.
const (
	FavorableMessage   = "Systemic Integrity High. No fiscal intervention required."
	UnfavorableMessage = "Systemic Distress. High risk of tax hikes"
)

// Chart colors.
const (
	HealthColor = "#2ecc71"
	ROIColor    = "#3498db"
	Green       = "green"
	Yellow      = "yellow"
	Red         = "red"
)

// AgentAxes labels the radar axes in score order.
var AgentAxes = []string{"Households", "Firms", "State"}

// ZoneLegend lists the legend-only radar markers.
var ZoneLegend = []LegendEntry{
	{Label: fmt.Sprintf("Vulnerable zone (<%g)", constants.VulnerableScoreThreshold), Color: Red},
	{Label: fmt.Sprintf("Intermediate zone (%g-%g)", constants.VulnerableScoreThreshold, constants.FavorableScoreThreshold), Color: Yellow},
	{Label: fmt.Sprintf("Favorable zone (>%g)", constants.FavorableScoreThreshold), Color: Green},
}

// TrendSource produces the synthetic series for the equilibrium chart.
type TrendSource interface {
	Generate(healthIndex, roi float64) trend.Series
}

// Tile is one formatted metric.
type Tile struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Status is the conditional tranquility panel.
type Status struct {
	Favorable bool   `json:"favorable" yaml:"favorable"`
	Message   string `json:"message" yaml:"message"`
}

// LegendEntry is a legend-only marker on the radar chart.
type LegendEntry struct {
	Label string `json:"label" yaml:"label"`
	Color string `json:"color" yaml:"color"`
}

// Control describes a sidebar slider.
type Control struct {
	Name  string
	Label string
	Min   float64
	Max   float64
	Step  float64
	Value float64
}

// View is everything one render of the dashboard needs.
type View struct {
	State      metrics.SliderState
	Metrics    metrics.DerivedMetrics
	Tiles      []Tile
	Trend      trend.Series
	Status     Status
	RadarColor string
	Controls   []Control

	EquilibriumChart template.HTML
	RadarChart       template.HTML
}

// Build recomputes the full view for a slider state. The state is clamped to
// the control ranges first.
func Build(state metrics.SliderState, source TrendSource) View {
	state = state.Clamp()
	m := metrics.Compute(state)
	series := source.Generate(m.HealthIndex, m.ROI)

	v := View{
		State:      state,
		Metrics:    m,
		Tiles:      Tiles(m),
		Trend:      series,
		Status:     StatusFor(state.Rate),
		RadarColor: RadarColor(m),
		Controls:   Controls(state),
	}
	v.EquilibriumChart = template.HTML(equilibriumChart(series))
	v.RadarChart = template.HTML(impactChart(m, v.RadarColor))
	return v
}

// Tiles formats the four headline metrics.
func Tiles(m metrics.DerivedMetrics) []Tile {
	return []Tile{
		{Label: "Portfolio ROI", Value: format.Percent(m.ROI)},
		{Label: "Economic Health", Value: format.Score(m.HealthIndex)},
		{Label: "Inflation Rate", Value: format.Percent(m.Inflation)},
		{Label: "Tax Burden Avoided", Value: format.Billions(m.TaxAvoided)},
	}
}

// StatusFor selects the tranquility message for a restructuring rate.
func StatusFor(rate float64) Status {
	if rate > constants.FavorableRateThreshold {
		return Status{Favorable: true, Message: FavorableMessage}
	}
	return Status{Favorable: false, Message: UnfavorableMessage}
}

// RadarColor is green when every agent score is favorable, red otherwise.
func RadarColor(m metrics.DerivedMetrics) string {
	if m.Favorable() {
		return Green
	}
	return Red
}

// Controls describes the sidebar sliders at the given state.
func Controls(state metrics.SliderState) []Control {
	return []Control{
		{
			Name:  "capital",
			Label: "Capital Allocation ($ Billion)",
			Min:   constants.MinCapital,
			Max:   constants.MaxCapital,
			Step:  constants.CapitalStep,
			Value: state.Capital,
		},
		{
			Name:  "rate",
			Label: "Restructuring Favorability (%)",
			Min:   constants.MinRate,
			Max:   constants.MaxRate,
			Step:  constants.RateStep,
			Value: state.Rate,
		},
	}
}

func equilibriumChart(series trend.Series) string {
	cfg := DefaultChartConfig()
	return LineChart([]LineSeries{
		{Name: "Health Index", Values: series.Health, Color: HealthColor, Width: 4},
		{Name: "ROI (%)", Values: series.ROI, Color: ROIColor, Width: 2, Dash: "2,4"},
	}, series.Labels, cfg)
}

func impactChart(m metrics.DerivedMetrics, color string) string {
	cfg := DefaultChartConfig()
	return RadarChart(AgentAxes, m.Scores(), 100, color, ZoneLegend, cfg)
}

// Snapshot is the serializable form of a view, without rendered markup.
type Snapshot struct {
	State      metrics.SliderState    `json:"state" yaml:"state"`
	Metrics    metrics.DerivedMetrics `json:"metrics" yaml:"metrics"`
	Tiles      []Tile                 `json:"tiles" yaml:"tiles"`
	Trend      trend.Series           `json:"trend" yaml:"trend"`
	Status     Status                 `json:"status" yaml:"status"`
	RadarColor string                 `json:"radarColor" yaml:"radarColor"`
}

// Snapshot returns the serializable form of the view.
func (v View) Snapshot() Snapshot {
	return Snapshot{
		State:      v.State,
		Metrics:    v.Metrics,
		Tiles:      v.Tiles,
		Trend:      v.Trend,
		Status:     v.Status,
		RadarColor: v.RadarColor,
	}
}
