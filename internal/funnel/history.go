package funnel

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand"
	"time"
)

// HistoryMonths is the length of the historical detail window.
const HistoryMonths = 3

// allHistorySeed is the fixed seed used for the aggregate's history.
const allHistorySeed = 77

// MonthlyKpiRow carries the raw stage counts and derived conversion
// percentages for one historical month.
type MonthlyKpiRow struct {
	Month  string      `json:"month"`
	Counts StageCounts `json:"counts"`
	Rates  Rates       `json:"rates"`
}

// Value resolves the selected KPI's value for this month.
func (r MonthlyKpiRow) Value(k KPI) float64 {
	return r.Rates.Value(k, r.Counts)
}

const (
	driftBase   = 0.90
	driftStep   = 0.06
	driftNoise  = 0.03
	driftClamp  = 0.05
	monthLayout = "2006-01"
)

// HistorySeed derives the deterministic history seed for an employee:
// 77 for the aggregate, otherwise the first four bytes of the SHA-256 of
// the name, big-endian, modulo 10000. The reference implementation used a
// runtime-dependent object hash here; this derivation is stable across
// processes and runtimes.
func HistorySeed(employee string) int64 {
	if employee == EmployeeAll {
		return allHistorySeed
	}
	sum := sha256.Sum256([]byte(employee))
	return int64(binary.BigEndian.Uint32(sum[:4]) % 10_000)
}

// FirstOfMonth normalizes t to midnight UTC on the first of its month. Date
// arithmetic on month windows starts from this anchor so day-of-month never
// skews AddDate.
func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// GenerateHistory projects the counts over the three calendar months ending
// at the anchor's month, oldest to newest. Month index idx applies a drift
// multiplier 0.90 + 0.06*idx plus clamped Gaussian noise within ±0.05, one
// draw per month in month order, then re-applies the monotone clamp and
// derives the conversion percentages.
func GenerateHistory(counts StageCounts, seed int64, anchor time.Time) []MonthlyKpiRow {
	rng := rand.New(rand.NewSource(seed))
	start := FirstOfMonth(anchor).AddDate(0, -(HistoryMonths - 1), 0)

	rows := make([]MonthlyKpiRow, 0, HistoryMonths)
	for idx := 0; idx < HistoryMonths; idx++ {
		drift := driftBase + driftStep*float64(idx)
		noise := clampFloat(rng.NormFloat64()*driftNoise, -driftClamp, driftClamp)
		scaled := counts.Scale(drift + noise).Monotone()
		rows = append(rows, MonthlyKpiRow{
			Month:  start.AddDate(0, idx, 0).Format(monthLayout),
			Counts: scaled,
			Rates:  ComputeRates(scaled),
		})
	}
	return rows
}

// HistoryFor is the canonical per-employee projection: counts for the
// employee with the employee's documented seed.
func (d *Dataset) HistoryFor(employee string, anchor time.Time) []MonthlyKpiRow {
	employee = ParseEmployee(employee)
	return GenerateHistory(d.Counts(employee), HistorySeed(employee), anchor)
}
