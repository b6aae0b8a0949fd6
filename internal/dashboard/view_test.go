package dashboard

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/iwvelando/debt-dashboard/internal/metrics"
	"github.com/iwvelando/debt-dashboard/pkg/testutil"
)

func TestTiles(t *testing.T) {
	tests := []struct {
		name     string
		state    metrics.SliderState
		expected []Tile
	}{
		{
			name:  "Session defaults",
			state: metrics.DefaultSliderState(),
			expected: []Tile{
				{Label: "Portfolio ROI", Value: "5.50%"},
				{Label: "Economic Health", Value: "56.1/100"},
				{Label: "Inflation Rate", Value: "2.88%"},
				{Label: "Tax Burden Avoided", Value: "$1.12B"},
			},
		},
		{
			name:  "Maximum capital without restructuring",
			state: metrics.SliderState{Capital: 10, Rate: 0},
			expected: []Tile{
				{Label: "Portfolio ROI", Value: "70.17%"},
				{Label: "Economic Health", Value: "30.0/100"},
				{Label: "Inflation Rate", Value: "4.33%"},
				{Label: "Tax Burden Avoided", Value: "$0.00B"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tiles(metrics.Compute(tt.state))
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("Tiles mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		rate      float64
		favorable bool
		message   string
	}{
		{0, false, UnfavorableMessage},
		{70, false, UnfavorableMessage},
		{71, true, FavorableMessage},
		{100, true, FavorableMessage},
	}

	for _, tt := range tests {
		got := StatusFor(tt.rate)
		if got.Favorable != tt.favorable || got.Message != tt.message {
			t.Errorf("StatusFor(%v) = %+v, expected favorable=%v message=%q", tt.rate, got, tt.favorable, tt.message)
		}
	}
}

func TestRadarColor(t *testing.T) {
	if got := RadarColor(metrics.Compute(metrics.SliderState{Capital: 10, Rate: 100})); got != Green {
		t.Errorf("RadarColor for all favorable scores = %q, expected %q", got, Green)
	}
	if got := RadarColor(metrics.Compute(metrics.DefaultSliderState())); got != Red {
		t.Errorf("RadarColor for default state = %q, expected %q", got, Red)
	}
}

func TestBuildClampsAndRecomputes(t *testing.T) {
	source := &testutil.BaselineTrend{}
	v := Build(metrics.SliderState{Capital: 25, Rate: 140}, source)

	if v.State != (metrics.SliderState{Capital: 10, Rate: 100}) {
		t.Errorf("Build state = %+v, expected clamped to {10 100}", v.State)
	}
	if source.Calls() != 1 {
		t.Errorf("expected one trend generation, got %d", source.Calls())
	}
	if v.Metrics != metrics.Compute(v.State) {
		t.Errorf("Build metrics = %+v, expected %+v", v.Metrics, metrics.Compute(v.State))
	}
	if len(v.Trend.Health) != 12 || len(v.Trend.ROI) != 12 {
		t.Errorf("expected 12 trend points, got %d and %d", len(v.Trend.Health), len(v.Trend.ROI))
	}
	if !v.Status.Favorable {
		t.Error("expected favorable status at rate 100")
	}
	if v.RadarColor != Green {
		t.Errorf("RadarColor = %q, expected %q", v.RadarColor, Green)
	}
	if v.EquilibriumChart == "" || v.RadarChart == "" {
		t.Error("expected both charts to be rendered")
	}
}

func TestControls(t *testing.T) {
	controls := Controls(metrics.DefaultSliderState())
	if len(controls) != 2 {
		t.Fatalf("expected 2 controls, got %d", len(controls))
	}
	capital, rate := controls[0], controls[1]
	if capital.Label != "Capital Allocation ($ Billion)" || capital.Min != 0.1 || capital.Max != 10 || capital.Value != 1.2 {
		t.Errorf("unexpected capital control %+v", capital)
	}
	if rate.Label != "Restructuring Favorability (%)" || rate.Min != 0 || rate.Max != 100 || rate.Step != 1 || rate.Value != 75 {
		t.Errorf("unexpected rate control %+v", rate)
	}
}
