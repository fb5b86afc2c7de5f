// Package ui projects dashboard state and funnel data into renderable view
// models. Everything here is pure: inputs are never mutated.
package ui

import (
	"fmt"
	"html/template"

	"github.com/funnelboard/funnelboard/internal/dashboard/svg"
	"github.com/funnelboard/funnelboard/internal/format"
	"github.com/funnelboard/funnelboard/internal/funnel"
)

// KPICard exposes one clickable KPI summary element.
type KPICard struct {
	ID       string
	Title    string
	Help     string
	Value    string
	Subtitle string
	Color    string
	Selected bool
}

// TrendPoint is one month of the selected KPI's history.
type TrendPoint struct {
	Month string
	Value float64
}

// HistoryRow is one formatted row of the details table.
type HistoryRow struct {
	Month string
	Value string
}

// Insights summarises the best and worst conversion stages plus the total
// closed deals.
type Insights struct {
	BestKPI    string
	BestValue  string
	WorstKPI   string
	WorstValue string
	TotalWon   string
}

// Objectives lists what the dashboard is for, shown as a static note on
// the overview.
var Objectives = []string{
	"Measure funnel efficiency per stage (conversion against the previous step).",
	"Spot bottlenecks to prioritise optimisations (landing, scoring, sales).",
	"Compare performance per employee to evaluate impact and coaching.",
}

// TabState captures the tab control for templates.
type TabState struct {
	OverviewActive bool
	DetailsActive  bool
}

// DashboardViewModel combines everything the dashboard page renders.
type DashboardViewModel struct {
	Employees  []string
	Employee   string
	KPI        string
	KPITitle   string
	Tab        TabState
	Cards      []KPICard
	FunnelSVG  template.HTML
	TrendSVG   template.HTML
	Insights   Insights
	Objectives []string
	DetailText string
	History    []HistoryRow
}

// FunnelRenderer abstracts the horizontal funnel chart rendering.
type FunnelRenderer interface {
	Funnel(width, height int, segments []svg.FunnelSegment, opts svg.FunnelOpts) (template.HTML, error)
}

// TrendRenderer abstracts the trend line chart rendering.
type TrendRenderer interface {
	Line(width, height int, series []float64, labels []string, opts svg.LineOpts) (template.HTML, error)
}

// ToFunnelSegments builds the funnel chart series: every stage with its
// count, accent color, and in-bar label. The first stage is labelled as the
// base; later stages carry their share of the immediately preceding stage.
func ToFunnelSegments(counts funnel.StageCounts) []svg.FunnelSegment {
	segments := make([]svg.FunnelSegment, 0, funnel.StageCount)
	for i, stage := range funnel.Stages() {
		label := format.Compact(counts[i]) + " · Base"
		if i > 0 {
			label = fmt.Sprintf("%s · %s", format.Compact(counts[i]), format.Percent(funnel.ConversionRate(counts[i], counts[i-1])))
		}
		segments = append(segments, svg.FunnelSegment{
			Stage: stage.Label(),
			Count: counts[i],
			Color: stage.Color(),
			Label: label,
		})
	}
	return segments
}

// ToKPICards builds the six KPI cards in fixed order, marking the selected
// one. The impressions card shows the thousands-grouped raw count; rate
// cards show percentages.
func ToKPICards(counts funnel.StageCounts, rates funnel.Rates, selected funnel.KPI) []KPICard {
	cards := make([]KPICard, 0, len(funnel.KPIs))
	for _, k := range funnel.KPIs {
		meta := k.Meta()
		value := format.Grouped(counts[funnel.StageImpression])
		if k.IsRate() {
			value = format.Percent(rates[k])
		}
		cards = append(cards, KPICard{
			ID:       string(k),
			Title:    meta.Title,
			Help:     meta.Help,
			Value:    value,
			Subtitle: meta.Subtitle,
			Color:    meta.Color,
			Selected: k == selected,
		})
	}
	return cards
}

// ToInsights derives the insights panel from the live rates and counts,
// using the stable rate ranking.
func ToInsights(counts funnel.StageCounts, rates funnel.Rates) Insights {
	best, worst := funnel.RankRates(rates)
	return Insights{
		BestKPI:    best.Meta().Title,
		BestValue:  format.Percent(rates[best]),
		WorstKPI:   worst.Meta().Title,
		WorstValue: format.Percent(rates[worst]),
		TotalWon:   format.Grouped(counts.Won()),
	}
}

// ToTrendPoints extracts the selected KPI's series from the history rows,
// oldest to newest.
func ToTrendPoints(rows []funnel.MonthlyKpiRow, kpi funnel.KPI) []TrendPoint {
	points := make([]TrendPoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, TrendPoint{Month: row.Month, Value: row.Value(kpi)})
	}
	return points
}

// ToHistoryRows formats the details table: month plus the selected KPI's
// value, thousands-grouped for counts and two-decimal percentages for
// rates.
func ToHistoryRows(rows []funnel.MonthlyKpiRow, kpi funnel.KPI) []HistoryRow {
	out := make([]HistoryRow, 0, len(rows))
	for _, row := range rows {
		value := format.Grouped(row.Counts[funnel.StageImpression])
		if kpi.IsRate() {
			value = format.Percent(row.Rates[kpi])
		}
		out = append(out, HistoryRow{Month: row.Month, Value: value})
	}
	return out
}

// DetailText combines the current employee with the KPI's explanation for
// the details view header.
func DetailText(employee string, kpi funnel.KPI) string {
	return fmt.Sprintf("%s: %s over the last %d months.", employee, kpi.Meta().Detail, funnel.HistoryMonths)
}
