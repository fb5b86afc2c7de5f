// Package funnel generates the synthetic marketing funnel dataset and the
// derived conversion metrics the dashboard is built on. All generation is
// deterministic per seed; nothing in this package touches global random state.
package funnel

// Stage identifies one step of the marketing funnel, ordered from first
// exposure to closed deal.
type Stage int

const (
	StageImpression Stage = iota
	StageClick
	StageLead
	StageMQL
	StageSQL
	StageWon
)

// StageCount is the number of funnel stages.
const StageCount = 6

var stageLabels = [StageCount]string{"Impression", "Click", "Lead", "MQL", "SQL", "Won"}

var stageColors = [StageCount]string{"#5B5CFF", "#7B2FF7", "#B44CFF", "#FF2BD6", "#FF3D7F", "#FF6A3D"}

// Stages lists all stages in funnel order.
func Stages() [StageCount]Stage {
	return [StageCount]Stage{StageImpression, StageClick, StageLead, StageMQL, StageSQL, StageWon}
}

// Label returns the display name of the stage.
func (s Stage) Label() string {
	if s < 0 || int(s) >= StageCount {
		return ""
	}
	return stageLabels[s]
}

// Color returns the accent color assigned to the stage.
func (s Stage) Color() string {
	if s < 0 || int(s) >= StageCount {
		return ""
	}
	return stageColors[s]
}

// StageCounts holds one count per funnel stage. Value semantics keep the
// shared dataset immutable: callers always receive copies.
type StageCounts [StageCount]int64

// At returns the count for the given stage.
func (c StageCounts) At(s Stage) int64 {
	if s < 0 || int(s) >= StageCount {
		return 0
	}
	return c[s]
}

// Won returns the closed-deal count.
func (c StageCounts) Won() int64 {
	return c[StageWon]
}

// Monotone caps every count at the count of the preceding stage, enforcing
// the funnel invariant count[i] >= count[i+1]. Sampling noise must never
// expose an inverted funnel to callers.
func (c StageCounts) Monotone() StageCounts {
	out := c
	for i := 1; i < StageCount; i++ {
		if out[i] > out[i-1] {
			out[i] = out[i-1]
		}
		if out[i] < 0 {
			out[i] = 0
		}
	}
	return out
}

// Add returns the element-wise sum of both count vectors.
func (c StageCounts) Add(other StageCounts) StageCounts {
	out := c
	for i := range out {
		out[i] += other[i]
	}
	return out
}

// Scale multiplies every count by the factor, truncating to integer.
func (c StageCounts) Scale(factor float64) StageCounts {
	var out StageCounts
	for i, v := range c {
		out[i] = int64(float64(v) * factor)
	}
	return out
}
