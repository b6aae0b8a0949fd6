package dashboard

import (
	"fmt"
	"html"
	"math"
	"strings"
)

// ChartConfig holds rendering parameters for SVG charts.
type ChartConfig struct {
	Width        int
	Height       int
	MarginTop    int
	MarginRight  int
	MarginBottom int
	MarginLeft   int
	BgColor      string
	GridColor    string
	TextColor    string
	FontSize     int
	Title        string
}

// DefaultChartConfig returns the chart geometry used by the dashboard.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Width:        720,
		Height:       360,
		MarginTop:    40,
		MarginRight:  30,
		MarginBottom: 40,
		MarginLeft:   50,
		BgColor:      "#ffffff",
		GridColor:    "#e8e8e8",
		TextColor:    "#333333",
		FontSize:     11,
	}
}

func (c ChartConfig) plotArea() (x, y, w, h int) {
	return c.MarginLeft, c.MarginTop,
		c.Width - c.MarginLeft - c.MarginRight,
		c.Height - c.MarginTop - c.MarginBottom
}

// LineSeries is one trace of a line chart.
type LineSeries struct {
	Name   string
	Values []float64
	Color  string
	Width  float64
	Dash   string // SVG stroke-dasharray, empty for solid
}

// LineChart renders the series against shared x labels as an SVG document.
func LineChart(series []LineSeries, labels []string, cfg ChartConfig) string {
	if cfg.Width == 0 {
		title := cfg.Title
		cfg = DefaultChartConfig()
		cfg.Title = title
	}
	if len(series) == 0 {
		return emptySVG(cfg, "No data")
	}

	px, py, pw, ph := cfg.plotArea()

	minVal, maxVal := math.MaxFloat64, -math.MaxFloat64
	maxLen := 0
	for _, s := range series {
		if len(s.Values) > maxLen {
			maxLen = len(s.Values)
		}
		for _, v := range s.Values {
			if math.IsNaN(v) {
				continue
			}
			minVal = math.Min(minVal, v)
			maxVal = math.Max(maxVal, v)
		}
	}
	if maxLen == 0 || minVal > maxVal {
		return emptySVG(cfg, "No data points")
	}

	vRange := maxVal - minVal
	if vRange < 0.001 {
		vRange = 1
	}
	minVal -= vRange * 0.05
	maxVal += vRange * 0.05
	vRange = maxVal - minVal

	xAt := func(i int) float64 {
		if maxLen == 1 {
			return float64(px) + float64(pw)/2
		}
		return float64(px) + float64(i)*float64(pw)/float64(maxLen-1)
	}

	var sb strings.Builder
	sb.WriteString(svgHeader(cfg))
	fmt.Fprintf(&sb, `<rect x="0" y="0" width="%d" height="%d" fill="%s"/>`, cfg.Width, cfg.Height, cfg.BgColor)
	if cfg.Title != "" {
		fmt.Fprintf(&sb, `<text x="%d" y="20" font-size="14" font-weight="bold" fill="%s" text-anchor="middle">%s</text>`,
			cfg.Width/2, cfg.TextColor, escapeXML(cfg.Title))
	}

	gridLines := 5
	for i := 0; i <= gridLines; i++ {
		val := minVal + vRange*float64(i)/float64(gridLines)
		y := py + ph - int(float64(ph)*float64(i)/float64(gridLines))
		fmt.Fprintf(&sb, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-dasharray="3,3"/>`,
			px, y, px+pw, y, cfg.GridColor)
		fmt.Fprintf(&sb, `<text x="%d" y="%d" font-size="%d" fill="%s" text-anchor="end">%.1f</text>`,
			px-5, y+4, cfg.FontSize, cfg.TextColor, val)
	}

	for si, s := range series {
		color := s.Color
		if color == "" {
			color = defaultColors[si%len(defaultColors)]
		}
		width := s.Width
		if width <= 0 {
			width = 2
		}

		var points []string
		for i, v := range s.Values {
			if math.IsNaN(v) {
				continue
			}
			cy := float64(py+ph) - (v-minVal)/vRange*float64(ph)
			points = append(points, fmt.Sprintf("%.1f,%.1f", xAt(i), cy))
		}
		dash := ""
		if s.Dash != "" {
			dash = fmt.Sprintf(` stroke-dasharray="%s"`, s.Dash)
		}
		fmt.Fprintf(&sb, `<polyline class="series" data-name="%s" points="%s" fill="none" stroke="%s" stroke-width="%g"%s/>`,
			escapeXML(s.Name), strings.Join(points, " "), color, width, dash)

		ly := py + 10 + si*16
		fmt.Fprintf(&sb, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="%g"%s/>`,
			px+10, ly, px+30, ly, color, width, dash)
		fmt.Fprintf(&sb, `<text x="%d" y="%d" font-size="10" fill="%s">%s</text>`,
			px+35, ly+4, cfg.TextColor, escapeXML(s.Name))
	}

	for i := 0; i < len(labels) && i < maxLen; i++ {
		fmt.Fprintf(&sb, `<text x="%.1f" y="%d" font-size="%d" fill="%s" text-anchor="middle">%s</text>`,
			xAt(i), py+ph+18, cfg.FontSize-1, cfg.TextColor, escapeXML(labels[i]))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// RadarChart renders a closed polygon over the given axes with a radial range
// of [0, maxValue]. Legend entries are drawn as markers only.
func RadarChart(axes []string, values []float64, maxValue float64, color string, legend []LegendEntry, cfg ChartConfig) string {
	if cfg.Width == 0 {
		title := cfg.Title
		cfg = DefaultChartConfig()
		cfg.Title = title
	}
	if len(axes) < 3 || len(values) < len(axes) {
		return emptySVG(cfg, "Not enough axes")
	}
	if maxValue <= 0 {
		maxValue = 100
	}

	px, py, pw, ph := cfg.plotArea()
	legendWidth := 0
	if len(legend) > 0 {
		legendWidth = pw / 3
	}
	cx := float64(px) + float64(pw-legendWidth)/2
	cy := float64(py) + float64(ph)/2
	radius := math.Min(float64(pw-legendWidth), float64(ph)) / 2 * 0.85

	// First axis points straight up, the rest follow clockwise.
	pointAt := func(axis int, value float64) (float64, float64) {
		angle := -math.Pi/2 + 2*math.Pi*float64(axis)/float64(len(axes))
		r := radius * math.Max(0, math.Min(value, maxValue)) / maxValue
		return cx + r*math.Cos(angle), cy + r*math.Sin(angle)
	}

	var sb strings.Builder
	sb.WriteString(svgHeader(cfg))
	fmt.Fprintf(&sb, `<rect x="0" y="0" width="%d" height="%d" fill="%s"/>`, cfg.Width, cfg.Height, cfg.BgColor)
	if cfg.Title != "" {
		fmt.Fprintf(&sb, `<text x="%d" y="20" font-size="14" font-weight="bold" fill="%s" text-anchor="middle">%s</text>`,
			cfg.Width/2, cfg.TextColor, escapeXML(cfg.Title))
	}

	rings := 5
	for i := 1; i <= rings; i++ {
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="%s"/>`,
			cx, cy, radius*float64(i)/float64(rings), cfg.GridColor)
		fmt.Fprintf(&sb, `<text x="%.1f" y="%.1f" font-size="%d" fill="%s">%g</text>`,
			cx+3, cy-radius*float64(i)/float64(rings)-2, cfg.FontSize-2, cfg.TextColor, maxValue*float64(i)/float64(rings))
	}
	for i, axis := range axes {
		x, y := pointAt(i, maxValue)
		fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>`, cx, cy, x, y, cfg.GridColor)
		lx, ly := pointAt(i, maxValue*1.12)
		fmt.Fprintf(&sb, `<text x="%.1f" y="%.1f" font-size="%d" fill="%s" text-anchor="middle">%s</text>`,
			lx, ly+4, cfg.FontSize, cfg.TextColor, escapeXML(axis))
	}

	closed := ClosePolygon(values[:len(axes)])
	points := make([]string, 0, len(closed))
	for i, v := range closed {
		x, y := pointAt(i%len(axes), v)
		points = append(points, fmt.Sprintf("%.1f,%.1f", x, y))
	}
	fmt.Fprintf(&sb, `<polygon class="impact" points="%s" fill="%s" fill-opacity="0.3" stroke="%s" stroke-width="2"/>`,
		strings.Join(points, " "), color, color)

	lx := float64(px + pw - legendWidth)
	for i, entry := range legend {
		ly := float64(py) + 20 + float64(i)*20
		fmt.Fprintf(&sb, `<circle class="legend-marker" cx="%.1f" cy="%.1f" r="5" fill="%s"/>`, lx, ly, entry.Color)
		fmt.Fprintf(&sb, `<text x="%.1f" y="%.1f" font-size="%d" fill="%s">%s</text>`,
			lx+10, ly+4, cfg.FontSize-1, cfg.TextColor, escapeXML(entry.Label))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// ClosePolygon returns values with the first value appended so the outline
// returns to its starting vertex.
func ClosePolygon(values []float64) []float64 {
	if len(values) == 0 {
		return nil
	}
	closed := make([]float64, 0, len(values)+1)
	closed = append(closed, values...)
	return append(closed, values[0])
}

var defaultColors = []string{"#2196f3", "#ff9800", "#4caf50", "#e91e63", "#9c27b0", "#00bcd4"}

func svgHeader(cfg ChartConfig) string {
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="sans-serif">`,
		cfg.Width, cfg.Height, cfg.Width, cfg.Height)
}

func emptySVG(cfg ChartConfig, msg string) string {
	if cfg.Width == 0 {
		cfg.Width = 400
	}
	if cfg.Height == 0 {
		cfg.Height = 200
	}
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d"><rect width="%d" height="%d" fill="#f5f5f5"/><text x="%d" y="%d" text-anchor="middle" fill="#999" font-size="14">%s</text></svg>`,
		cfg.Width, cfg.Height, cfg.Width, cfg.Height, cfg.Width/2, cfg.Height/2, escapeXML(msg))
}

func escapeXML(s string) string {
	return html.EscapeString(s)
}
