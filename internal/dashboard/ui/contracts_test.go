package ui

import (
	"strings"
	"testing"

	"github.com/funnelboard/funnelboard/internal/funnel"
)

func testCounts() funnel.StageCounts {
	return funnel.StageCounts{2_150_000, 38_700, 2_709, 1_219, 426, 76}
}

func TestToFunnelSegments(t *testing.T) {
	segments := ToFunnelSegments(testCounts())
	if len(segments) != funnel.StageCount {
		t.Fatalf("expected %d segments, got %d", funnel.StageCount, len(segments))
	}
	if segments[0].Label != "2.15M · Base" {
		t.Fatalf("unexpected base label %q", segments[0].Label)
	}
	if !strings.HasSuffix(segments[1].Label, "%") {
		t.Fatalf("later segments should carry a percentage, got %q", segments[1].Label)
	}
	if segments[1].Label != "38.7K · 1.80%" {
		t.Fatalf("unexpected click label %q", segments[1].Label)
	}
	for i, seg := range segments {
		if seg.Color == "" || seg.Stage == "" {
			t.Fatalf("segment %d incomplete: %+v", i, seg)
		}
	}
}

func TestToKPICards(t *testing.T) {
	counts := testCounts()
	rates := funnel.ComputeRates(counts)
	cards := ToKPICards(counts, rates, funnel.KPICTR)

	if len(cards) != len(funnel.KPIs) {
		t.Fatalf("expected %d cards, got %d", len(funnel.KPIs), len(cards))
	}
	if cards[0].ID != "impressions" || cards[0].Value != "2,150,000" {
		t.Fatalf("unexpected impressions card %+v", cards[0])
	}
	if cards[1].ID != "ctr" || !cards[1].Selected {
		t.Fatalf("ctr card should be selected: %+v", cards[1])
	}
	if cards[1].Value != "1.80%" {
		t.Fatalf("unexpected ctr value %q", cards[1].Value)
	}
	for _, card := range cards[2:] {
		if card.Selected {
			t.Fatalf("only one card may be selected: %+v", card)
		}
	}
}

func TestToInsights(t *testing.T) {
	rates := funnel.Rates{
		funnel.KPICTR:         50,
		funnel.KPIClickToLead: 50,
		funnel.KPILeadToMQL:   10,
		funnel.KPIMQLToSQL:    10,
		funnel.KPISQLToWon:    10,
	}
	insights := ToInsights(testCounts(), rates)
	if insights.BestKPI != "CTR" {
		t.Fatalf("tied maximum should resolve to CTR, got %s", insights.BestKPI)
	}
	if insights.WorstKPI != "Lead → MQL" {
		t.Fatalf("tied minimum should resolve to Lead → MQL, got %s", insights.WorstKPI)
	}
	if insights.TotalWon != "76" {
		t.Fatalf("unexpected total won %q", insights.TotalWon)
	}
}

func TestToTrendPointsAndHistoryRows(t *testing.T) {
	rows := funnel.GenerateHistory(testCounts(), 77, historyAnchor())
	points := ToTrendPoints(rows, funnel.KPICTR)
	if len(points) != funnel.HistoryMonths {
		t.Fatalf("expected %d points, got %d", funnel.HistoryMonths, len(points))
	}
	for i, p := range points {
		if p.Month != rows[i].Month {
			t.Fatalf("point %d: month mismatch", i)
		}
		if p.Value != rows[i].Rates[funnel.KPICTR] {
			t.Fatalf("point %d: value mismatch", i)
		}
	}

	table := ToHistoryRows(rows, funnel.KPIImpressions)
	for i, row := range table {
		if !strings.Contains(row.Value, ",") && rows[i].Counts[funnel.StageImpression] >= 1000 {
			t.Fatalf("count rows should be thousands-grouped, got %q", row.Value)
		}
	}
	rateTable := ToHistoryRows(rows, funnel.KPISQLToWon)
	for _, row := range rateTable {
		if !strings.HasSuffix(row.Value, "%") {
			t.Fatalf("rate rows should be percentages, got %q", row.Value)
		}
	}
}

func TestDetailText(t *testing.T) {
	text := DetailText("Mateo", funnel.KPICTR)
	if !strings.Contains(text, "Mateo") || !strings.Contains(text, "click-through") {
		t.Fatalf("unexpected detail text %q", text)
	}
}

func TestObjectivesAreThreeStaticLines(t *testing.T) {
	if len(Objectives) != 3 {
		t.Fatalf("expected 3 objectives, got %d", len(Objectives))
	}
	for i, objective := range Objectives {
		if objective == "" {
			t.Fatalf("objective %d is empty", i)
		}
	}
}
