package funnel

import "testing"

func TestConversionRateSafeDivision(t *testing.T) {
	if got := ConversionRate(0, 0); got != 0 {
		t.Fatalf("0/0 should be 0, got %f", got)
	}
	if got := ConversionRate(42, 0); got != 0 {
		t.Fatalf("x/0 should be 0, got %f", got)
	}
	if got := ConversionRate(25, 100); got != 25 {
		t.Fatalf("expected 25, got %f", got)
	}
}

func TestComputeRates(t *testing.T) {
	counts := StageCounts{1000, 100, 50, 25, 10, 2}
	rates := ComputeRates(counts)
	expect := map[KPI]float64{
		KPICTR:         10,
		KPIClickToLead: 50,
		KPILeadToMQL:   50,
		KPIMQLToSQL:    40,
		KPISQLToWon:    20,
	}
	for k, want := range expect {
		if rates[k] != want {
			t.Fatalf("%s: expected %f, got %f", k, want, rates[k])
		}
	}
}

func TestRankRatesTieBreak(t *testing.T) {
	rates := Rates{
		KPICTR:         50,
		KPIClickToLead: 50,
		KPILeadToMQL:   10,
		KPIMQLToSQL:    10,
		KPISQLToWon:    10,
	}
	best, worst := RankRates(rates)
	if best != KPICTR {
		t.Fatalf("tied maximum should resolve to CTR, got %s", best)
	}
	if worst != KPILeadToMQL {
		t.Fatalf("tied minimum should resolve to Lead → MQL, got %s", worst)
	}
}

func TestRatesValue(t *testing.T) {
	counts := StageCounts{2_000_000, 40_000, 2_800, 1_260, 441, 79}
	rates := ComputeRates(counts)
	if got := rates.Value(KPIImpressions, counts); got != 2_000_000 {
		t.Fatalf("impressions value should be the raw count, got %f", got)
	}
	if got := rates.Value(KPICTR, counts); got != rates[KPICTR] {
		t.Fatalf("rate value mismatch: %f vs %f", got, rates[KPICTR])
	}
}

func TestParseKPI(t *testing.T) {
	if got := ParseKPI("ctr"); got != KPICTR {
		t.Fatalf("expected ctr, got %s", got)
	}
	if got := ParseKPI("bogus"); got != KPIImpressions {
		t.Fatalf("unknown KPI should normalize to impressions, got %s", got)
	}
	if got := ParseKPI(""); got != KPIImpressions {
		t.Fatalf("empty KPI should normalize to impressions, got %s", got)
	}
}

func TestKPIMetaExhaustive(t *testing.T) {
	for _, k := range KPIs {
		meta := k.Meta()
		if meta.Title == "" || meta.Subtitle == "" || meta.Help == "" || meta.Color == "" {
			t.Fatalf("%s: incomplete metadata %+v", k, meta)
		}
	}
}
