package svg

import (
	"strings"
	"testing"
)

func TestLineRendersSeries(t *testing.T) {
	out, err := Line(0, 0, []float64{1.2, 1.5, 1.9}, []string{"2026-06", "2026-07", "2026-08"}, LineOpts{
		Title:    "CTR trend",
		ShowDots: true,
	})
	if err != nil {
		t.Fatalf("render line: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, "<svg") || !strings.Contains(html, "</svg>") {
		t.Fatalf("expected svg envelope, got %q", html)
	}
	for _, label := range []string{"2026-06", "2026-07", "2026-08"} {
		if !strings.Contains(html, label) {
			t.Fatalf("expected month label %s in output", label)
		}
	}
	if strings.Count(html, "<circle") != 3 {
		t.Fatalf("expected 3 point markers, got %d", strings.Count(html, "<circle"))
	}
	if !strings.Contains(html, "ctr-trend-line-title") {
		t.Fatalf("expected deterministic title id in output")
	}
}

func TestLineRejectsMismatchedLabels(t *testing.T) {
	if _, err := Line(720, 240, []float64{1, 2}, []string{"a"}, LineOpts{}); err == nil {
		t.Fatalf("expected error for mismatched labels")
	}
	if _, err := Line(720, 240, nil, nil, LineOpts{}); err == nil {
		t.Fatalf("expected error for empty series")
	}
}

func TestLineFlatSeries(t *testing.T) {
	out, err := Line(720, 240, []float64{5, 5, 5}, []string{"a", "b", "c"}, LineOpts{})
	if err != nil {
		t.Fatalf("flat series should render: %v", err)
	}
	if !strings.Contains(string(out), "<path") {
		t.Fatalf("expected line path in output")
	}
}
