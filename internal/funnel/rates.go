package funnel

// ConversionRate returns numerator/denominator as a percentage. A zero
// denominator yields exactly 0, never an error or NaN.
func ConversionRate(numerator, denominator int64) float64 {
	if denominator == 0 {
		return 0
	}
	return float64(numerator) / float64(denominator) * 100
}

// Rates holds the five stage-to-stage conversion percentages keyed by their
// rate KPI.
type Rates map[KPI]float64

// ComputeRates derives every conversion percentage from the counts.
func ComputeRates(counts StageCounts) Rates {
	rates := make(Rates, len(RateKPIs))
	for i, k := range RateKPIs {
		rates[k] = ConversionRate(counts[i+1], counts[i])
	}
	return rates
}

// RankRates picks the best (maximum) and worst (minimum) rate KPI. Ties
// resolve to the first KPI in RateKPIs order, which makes the result stable
// when several rates coincide.
func RankRates(rates Rates) (best, worst KPI) {
	best, worst = RateKPIs[0], RateKPIs[0]
	for _, k := range RateKPIs[1:] {
		if rates[k] > rates[best] {
			best = k
		}
		if rates[k] < rates[worst] {
			worst = k
		}
	}
	return best, worst
}

// Value resolves the KPI's current value from counts and rates: the raw
// impression count for KPIImpressions, the percentage otherwise.
func (r Rates) Value(k KPI, counts StageCounts) float64 {
	if k.IsRate() {
		return r[k]
	}
	return float64(counts[StageImpression])
}
