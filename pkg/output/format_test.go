package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/iwvelando/debt-dashboard/internal/dashboard"
	"github.com/iwvelando/debt-dashboard/internal/metrics"
	"github.com/iwvelando/debt-dashboard/pkg/testutil"
	"github.com/iwvelando/debt-dashboard/pkg/validation"
	"gopkg.in/yaml.v3"
)

func testSnapshot() dashboard.Snapshot {
	return dashboard.Build(metrics.DefaultSliderState(), &testutil.BaselineTrend{}).Snapshot()
}

func TestPrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := PrettyFormat(&buf, testSnapshot()); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}
	output := buf.String()

	expected := []string{
		"--- Sovereign & Corporate Debt Restructuring Dashboard ---",
		"Capital Allocation: $1.20B | Restructuring Favorability: 75%",
		"Portfolio ROI      | 5.50%",
		"Economic Health    | 56.1/100",
		"Inflation Rate     | 2.88%",
		"Tax Burden Avoided | $1.12B",
		"Households         | 80",
		"Firms              | 45",
		"State              | 50",
		"Radar: red",
		"Tranquility Report: Systemic Integrity High. No fiscal intervention required.",
		"Month | Health Index | ROI (%)",
		"Dec   |        56.10 |    5.50",
	}
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("PrettyFormat output missing %q\n%s", want, output)
		}
	}
}

func TestCsvFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, testSnapshot()); err != nil {
		t.Fatalf("CsvFormat() error = %v", err)
	}

	reader := csv.NewReader(&buf)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("failed to parse csv output: %v", err)
	}

	// The empty separator record is skipped by the reader.
	if len(records) != 10+1+12 {
		t.Fatalf("expected 23 records, got %d: %v", len(records), records)
	}
	if diff := cmp.Diff([]string{"metric", "value"}, records[0]); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"roi", "5.5"}, records[3]); diff != "" {
		t.Errorf("roi record mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"month", "health", "roi"}, records[10]); diff != "" {
		t.Errorf("trend header mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Dec", "56.1", "5.5"}, records[22]); diff != "" {
		t.Errorf("last trend record mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := JSONFormat(&buf, testSnapshot()); err != nil {
		t.Fatalf("JSONFormat() error = %v", err)
	}

	var decoded dashboard.Snapshot
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode json output: %v", err)
	}
	if decoded.State != metrics.DefaultSliderState() {
		t.Errorf("decoded state = %+v", decoded.State)
	}
	if decoded.Metrics.StateScore != 50 || decoded.RadarColor != "red" {
		t.Errorf("unexpected decoded snapshot %+v", decoded)
	}
}

func TestYAMLFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := YAMLFormat(&buf, testSnapshot()); err != nil {
		t.Fatalf("YAMLFormat() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode yaml output: %v", err)
	}
	for _, key := range []string{"state", "metrics", "tiles", "trend", "status", "radarColor"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("yaml output missing key %q", key)
		}
	}
}

func TestWriteRejectsUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, "xml", testSnapshot())
	if !errors.Is(err, validation.ErrInvalidOutputFormat) {
		t.Fatalf("Write() error = %v, expected ErrInvalidOutputFormat", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output for rejected format, got %q", buf.String())
	}
}

func TestWriteDispatches(t *testing.T) {
	for _, format := range []string{"pretty", "csv", "json", "yaml"} {
		var buf bytes.Buffer
		if err := Write(&buf, format, testSnapshot()); err != nil {
			t.Errorf("Write(%s) error = %v", format, err)
		}
		if buf.Len() == 0 {
			t.Errorf("Write(%s) produced no output", format)
		}
	}
}

func TestSummary(t *testing.T) {
	state := metrics.DefaultSliderState()
	got := Summary(state, metrics.Compute(state))
	want := "capital=1.20 rate=75 roi=5.50 health=56.1 inflation=2.88 tax=1.12"
	if got != want {
		t.Errorf("Summary() = %q, expected %q", got, want)
	}
}
