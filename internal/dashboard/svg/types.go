// Package svg renders the dashboard charts as server-side SVG snippets.
package svg

// LineOpts customises the trend line chart renderer.
type LineOpts struct {
	Title       string
	Description string
	StrokeColor string
	FillColor   string
	AxisColor   string
	GridColor   string
	Padding     float64
	ShowDots    bool
	TickCount   int
}

// FunnelOpts customises the horizontal funnel chart renderer.
type FunnelOpts struct {
	Title       string
	Description string
	AxisColor   string
	TrackColor  string
	LabelColor  string
	Padding     float64
}

// FunnelSegment is one stage bar of the funnel chart.
type FunnelSegment struct {
	Stage string
	Count int64
	Color string
	Label string
}

// Defaults for the dashboard charts.
const (
	DefaultWidth   = 720
	DefaultHeight  = 240
	DefaultPadding = 24.0
	DefaultTicks   = 6
)
