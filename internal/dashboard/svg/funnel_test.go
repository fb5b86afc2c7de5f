package svg

import (
	"strings"
	"testing"
)

func testSegments() []FunnelSegment {
	return []FunnelSegment{
		{Stage: "Impression", Count: 2_150_000, Color: "#5B5CFF", Label: "2.15M · Base"},
		{Stage: "Click", Count: 38_700, Color: "#7B2FF7", Label: "38.7K · 1.80%"},
		{Stage: "Lead", Count: 2_709, Color: "#B44CFF", Label: "2.7K · 7.00%"},
		{Stage: "MQL", Count: 1_219, Color: "#FF2BD6", Label: "1.2K · 45.00%"},
		{Stage: "SQL", Count: 426, Color: "#FF3D7F", Label: "426 · 34.95%"},
		{Stage: "Won", Count: 76, Color: "#FF6A3D", Label: "76 · 17.84%"},
	}
}

func TestFunnelRendersSegments(t *testing.T) {
	out, err := Funnel(0, 320, testSegments(), FunnelOpts{Title: "Marketing funnel"})
	if err != nil {
		t.Fatalf("render funnel: %v", err)
	}
	html := string(out)
	for _, seg := range testSegments() {
		if !strings.Contains(html, seg.Stage) {
			t.Fatalf("expected stage %s in output", seg.Stage)
		}
		if !strings.Contains(html, seg.Color) {
			t.Fatalf("expected color %s in output", seg.Color)
		}
		if !strings.Contains(html, seg.Label) {
			t.Fatalf("expected label %q in output", seg.Label)
		}
	}
	// One track plus one filled bar per segment.
	if got := strings.Count(html, "<rect"); got != 2*len(testSegments()) {
		t.Fatalf("expected %d rects, got %d", 2*len(testSegments()), got)
	}
}

func TestFunnelRequiresSegments(t *testing.T) {
	if _, err := Funnel(720, 240, nil, FunnelOpts{}); err == nil {
		t.Fatalf("expected error for empty segments")
	}
}

func TestFunnelZeroCounts(t *testing.T) {
	segments := []FunnelSegment{
		{Stage: "Impression", Count: 0, Label: "0 · Base"},
		{Stage: "Click", Count: 0, Label: "0 · 0.00%"},
	}
	out, err := Funnel(720, 240, segments, FunnelOpts{})
	if err != nil {
		t.Fatalf("zero counts should render: %v", err)
	}
	if !strings.Contains(string(out), "Impression") {
		t.Fatalf("expected stage names in output")
	}
}
