package funnel

import (
	"math/rand"
)

// EmployeeAll is the synthetic aggregate over all named employees.
const EmployeeAll = "All"

// Employees lists every selectable employee, aggregate first.
var Employees = []string{EmployeeAll, "Sofía", "Mateo", "Valentina", "Juan"}

// namedEmployees are the four real employees; order matters because the
// split draws one perturbation per employee in sequence.
var namedEmployees = []string{"Sofía", "Mateo", "Valentina", "Juan"}

var employeeWeights = []float64{0.28, 0.25, 0.25, 0.22}

// ParseEmployee normalizes a wire value to a known employee, falling back to
// the aggregate for anything outside the set.
func ParseEmployee(value string) string {
	for _, e := range Employees {
		if e == value {
			return e
		}
	}
	return EmployeeAll
}

// EmployeeBreakdown maps employee identifiers (including EmployeeAll) to
// their funnel counts.
type EmployeeBreakdown map[string]StageCounts

// ratioDist describes the clamped normal distribution for one
// stage-to-stage conversion ratio.
type ratioDist struct {
	mean, stdev, lo, hi float64
}

var stageRatios = [StageCount - 1]ratioDist{
	{mean: 0.018, stdev: 0.006, lo: 0.006, hi: 0.06}, // CTR
	{mean: 0.07, stdev: 0.02, lo: 0.02, hi: 0.22},    // Click → Lead
	{mean: 0.45, stdev: 0.12, lo: 0.10, hi: 0.85},    // Lead → MQL
	{mean: 0.35, stdev: 0.10, lo: 0.08, hi: 0.80},    // MQL → SQL
	{mean: 0.18, stdev: 0.07, lo: 0.02, hi: 0.55},    // SQL → Won
}

const (
	baseImpressionsMin  = 1_800_000
	baseImpressionsSpan = 700_000
)

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampedNormal(rng *rand.Rand, mean, stdev, lo, hi float64) float64 {
	return clampFloat(rng.NormFloat64()*stdev+mean, lo, hi)
}

// GenerateBase produces the aggregate funnel counts for a seed. Impressions
// are drawn uniformly from [1.8M, 2.5M); each later stage multiplies its
// predecessor by a clamped-normal ratio, truncating to integer. A final
// monotone pass guards against sampling noise inverting the funnel.
func GenerateBase(seed int64) StageCounts {
	rng := rand.New(rand.NewSource(seed))

	var counts StageCounts
	counts[StageImpression] = baseImpressionsMin + rng.Int63n(baseImpressionsSpan)
	for i := 1; i < StageCount; i++ {
		dist := stageRatios[i-1]
		ratio := clampedNormal(rng, dist.mean, dist.stdev, dist.lo, dist.hi)
		counts[i] = int64(float64(counts[i-1]) * ratio)
	}
	return counts.Monotone()
}

// SplitByEmployee distributes the base counts over the four named employees
// using fixed weights perturbed per employee by a clamped-normal factor,
// then computes EmployeeAll as the exact element-wise sum of the clamped
// per-employee results. Because each employee is truncated and clamped
// independently, the aggregate may differ slightly from the original base.
func SplitByEmployee(base StageCounts, seed int64) EmployeeBreakdown {
	rng := rand.New(rand.NewSource(seed))

	breakdown := make(EmployeeBreakdown, len(namedEmployees)+1)
	var total StageCounts
	for i, name := range namedEmployees {
		factor := clampedNormal(rng, 1.0, 0.08, 0.85, 1.15)
		counts := base.Scale(employeeWeights[i] * factor).Monotone()
		breakdown[name] = counts
		total = total.Add(counts)
	}
	breakdown[EmployeeAll] = total
	return breakdown
}

// Dataset is the immutable synthetic dataset shared across sessions. It is
// built once at startup and never mutated afterward.
type Dataset struct {
	Seed      int64
	Base      StageCounts
	Breakdown EmployeeBreakdown
}

// NewDataset builds the dataset for a seed. The base draw and the employee
// split each use their own source seeded with the same value.
func NewDataset(seed int64) *Dataset {
	base := GenerateBase(seed)
	return &Dataset{
		Seed:      seed,
		Base:      base,
		Breakdown: SplitByEmployee(base, seed),
	}
}

// Counts returns the funnel counts for an employee, normalizing unknown
// identifiers to the aggregate.
func (d *Dataset) Counts(employee string) StageCounts {
	counts, ok := d.Breakdown[ParseEmployee(employee)]
	if !ok {
		return d.Breakdown[EmployeeAll]
	}
	return counts
}
