// Command dataset dumps the generated funnel dataset as JSON so changes to
// the generator can be diffed across seeds.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/funnelboard/funnelboard/internal/funnel"
)

type dump struct {
	Seed      int64                             `json:"seed"`
	Base      funnel.StageCounts                `json:"base"`
	Breakdown funnel.EmployeeBreakdown          `json:"breakdown"`
	History   map[string][]funnel.MonthlyKpiRow `json:"history"`
}

func main() {
	seed := flag.Int64("seed", 11, "dataset seed")
	anchor := flag.String("anchor", "", "history anchor month (YYYY-MM, defaults to current month)")
	flag.Parse()

	anchorTime := time.Now().UTC()
	if *anchor != "" {
		parsed, err := time.Parse("2006-01", *anchor)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid anchor %q: %v\n", *anchor, err)
			os.Exit(1)
		}
		anchorTime = parsed
	}

	dataset := funnel.NewDataset(*seed)
	out := dump{
		Seed:      *seed,
		Base:      dataset.Base,
		Breakdown: dataset.Breakdown,
		History:   make(map[string][]funnel.MonthlyKpiRow, len(funnel.Employees)),
	}
	for _, employee := range funnel.Employees {
		out.History[employee] = dataset.HistoryFor(employee, anchorTime)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		fmt.Fprintf(os.Stderr, "encode dataset: %v\n", err)
		os.Exit(1)
	}
}
