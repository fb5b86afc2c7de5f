package format

import "testing"

func TestCompact(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1.0K"},
		{1500, "1.5K"},
		{999_999, "1000.0K"},
		{1_000_000, "1.00M"},
		{2_300_000, "2.30M"},
	}
	for _, tc := range cases {
		if got := Compact(tc.in); got != tc.want {
			t.Fatalf("Compact(%d): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(1.8); got != "1.80%" {
		t.Fatalf("expected 1.80%%, got %q", got)
	}
	if got := Percent(0); got != "0.00%" {
		t.Fatalf("expected 0.00%%, got %q", got)
	}
}

func TestGrouped(t *testing.T) {
	if got := Grouped(2_150_000); got != "2,150,000" {
		t.Fatalf("expected 2,150,000, got %q", got)
	}
	if got := Grouped(999); got != "999" {
		t.Fatalf("expected 999, got %q", got)
	}
}
