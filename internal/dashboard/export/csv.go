// Package export serialises dashboard data for download.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/funnelboard/funnelboard/internal/format"
	"github.com/funnelboard/funnelboard/internal/funnel"
)

// WriteFunnelCSV serialises the live funnel for one employee: stage, raw
// count, and the share of the immediately preceding stage.
func WriteFunnelCSV(w io.Writer, employee string, counts funnel.StageCounts) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Employee", employee}); err != nil {
		return err
	}
	if err := writer.Write([]string{"Stage", "Count", "Pct of Previous"}); err != nil {
		return err
	}
	for i, stage := range funnel.Stages() {
		pct := ""
		if i > 0 {
			pct = format.Percent(funnel.ConversionRate(counts[i], counts[i-1]))
		}
		if err := writer.Write([]string{stage.Label(), strconv.FormatInt(counts[i], 10), pct}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteHistoryCSV emits the monthly history: the six raw stage counts plus
// the five conversion percentages per month, oldest to newest.
func WriteHistoryCSV(w io.Writer, rows []funnel.MonthlyKpiRow) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{"Month"}
	for _, stage := range funnel.Stages() {
		header = append(header, stage.Label())
	}
	for _, k := range funnel.RateKPIs {
		header = append(header, k.Meta().Title)
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, row := range rows {
		record := []string{row.Month}
		for i := range funnel.Stages() {
			record = append(record, strconv.FormatInt(row.Counts[i], 10))
		}
		for _, k := range funnel.RateKPIs {
			record = append(record, format.Percent(row.Rates[k]))
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
