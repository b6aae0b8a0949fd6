// Package output provides utilities for writing dashboard snapshots to a
// terminal or file.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/iwvelando/debt-dashboard/internal/dashboard"
	"github.com/iwvelando/debt-dashboard/internal/metrics"
	"github.com/iwvelando/debt-dashboard/pkg/constants"
	"github.com/iwvelando/debt-dashboard/pkg/validation"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// Write renders the snapshot in the named format.
func Write(w io.Writer, format string, snapshot dashboard.Snapshot) error {
	if err := validation.ValidateOutputFormat(format); err != nil {
		return err
	}

	switch format {
	case constants.OutputFormatCSV:
		return CsvFormat(w, snapshot)
	case constants.OutputFormatJSON:
		return JSONFormat(w, snapshot)
	case constants.OutputFormatYAML:
		return YAMLFormat(w, snapshot)
	default:
		return PrettyFormat(w, snapshot)
	}
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, snapshot dashboard.Snapshot) error {
	p := message.NewPrinter(language.English)
	pw := &printer{w: w, p: p}

	pw.printf("--- %s ---\n", dashboard.Title)
	pw.printf("Capital Allocation: $%.2fB | Restructuring Favorability: %.0f%%\n\n",
		snapshot.State.Capital, snapshot.State.Rate)

	pw.printf("Metric             | Value\n")
	pw.printf("__________________ | _____\n")
	for _, tile := range snapshot.Tiles {
		pw.printf("%-18s | %s\n", tile.Label, tile.Value)
	}

	pw.printf("\nAgent              | Score\n")
	pw.printf("__________________ | _____\n")
	for i, score := range snapshot.Metrics.Scores() {
		pw.printf("%-18s | %.0f\n", dashboard.AgentAxes[i], score)
	}
	pw.printf("Radar: %s\n", snapshot.RadarColor)

	pw.printf("\n%s: %s\n\n", dashboard.StatusTitle, snapshot.Status.Message)

	pw.printf("Month | Health Index | ROI (%%)\n")
	pw.printf("_____ | ____________ | _______\n")
	for i, label := range snapshot.Trend.Labels {
		pw.printf("%-5s | %12.2f | %7.2f\n", label, valueAt(snapshot.Trend.Health, i), valueAt(snapshot.Trend.ROI, i))
	}

	return pw.err
}

// CsvFormat outputs in comma-separated value format: one metrics block and
// one trend block separated by an empty record.
func CsvFormat(w io.Writer, snapshot dashboard.Snapshot) error {
	cw := csv.NewWriter(w)
	m := snapshot.Metrics

	records := [][]string{
		{"metric", "value"},
		{"capital", formatFloat(snapshot.State.Capital)},
		{"rate", formatFloat(snapshot.State.Rate)},
		{"roi", formatFloat(m.ROI)},
		{"healthIndex", formatFloat(m.HealthIndex)},
		{"inflation", formatFloat(m.Inflation)},
		{"taxAvoided", formatFloat(m.TaxAvoided)},
		{"householdsScore", formatFloat(m.HouseholdsScore)},
		{"firmsScore", formatFloat(m.FirmsScore)},
		{"stateScore", formatFloat(m.StateScore)},
		{},
		{"month", "health", "roi"},
	}
	for i, label := range snapshot.Trend.Labels {
		records = append(records, []string{
			label,
			formatFloat(valueAt(snapshot.Trend.Health, i)),
			formatFloat(valueAt(snapshot.Trend.ROI, i)),
		})
	}

	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

// JSONFormat outputs the snapshot as indented JSON.
func JSONFormat(w io.Writer, snapshot dashboard.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snapshot); err != nil {
		return fmt.Errorf("failed to write json: %w", err)
	}
	return nil
}

// YAMLFormat outputs the snapshot as YAML.
func YAMLFormat(w io.Writer, snapshot dashboard.Snapshot) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(snapshot); err != nil {
		return fmt.Errorf("failed to write yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to write yaml: %w", err)
	}
	return nil
}

// Summary returns the one-line description used in log messages.
func Summary(state metrics.SliderState, m metrics.DerivedMetrics) string {
	return fmt.Sprintf("capital=%.2f rate=%.0f roi=%.2f health=%.1f inflation=%.2f tax=%.2f",
		state.Capital, state.Rate, m.ROI, m.HealthIndex, m.Inflation, m.TaxAvoided)
}

type printer struct {
	w   io.Writer
	p   *message.Printer
	err error
}

func (pw *printer) printf(format string, args ...interface{}) {
	if pw.err != nil {
		return
	}
	_, pw.err = pw.p.Fprintf(pw.w, format, args...)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func valueAt(values []float64, i int) float64 {
	if i < len(values) {
		return values[i]
	}
	return 0
}
