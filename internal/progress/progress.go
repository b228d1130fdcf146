// Package progress derives a construction-progress percentage from the status
// of the four construction stages.
//
// Two formulas exist:
//
//   - StageWeighted: 15 points per stage in progress, plus a completion term that
//     grows faster as more stages finish. This is what intake stores.
//   - SplitWeighted: 70% of the weight is earned by completed stages and 30% at
//     half rate by stages in progress. This is what the progress-update form shows.
//
// The two disagree (all stages completed gives 100 and 70 respectively), so every
// caller names the strategy it uses. Intake stores StageWeighted.
package progress

import (
	"math"

	"github.com/sristy17/sgay-v1/internal/model"
)

// Strategy names.
const (
	StageWeightedName = "stage_weighted"
	SplitWeightedName = "split_weighted"
)

const stageCount = 4

// Strategy computes progress in [0, 100]. A nil details value yields 0.
type Strategy interface {
	Name() string
	Compute(details *model.ConstructionDetails) int
}

// StageWeighted formula 1.
type StageWeighted struct{}

// SplitWeighted formula 2.
type SplitWeighted struct{}

// Name implements Strategy.
func (StageWeighted) Name() string { return StageWeightedName }

// Compute implements Strategy.
func (StageWeighted) Compute(details *model.ConstructionDetails) int {
	if details == nil {
		return 0
	}
	completed, inProgress := count(details)

	partial := 15.0 * float64(inProgress)
	score := partial + (float64(completed)/stageCount)*(100-15*float64(stageCount-completed))
	return clamp(score)
}

// Name implements Strategy.
func (SplitWeighted) Name() string { return SplitWeightedName }

// Compute implements Strategy.
func (SplitWeighted) Compute(details *model.ConstructionDetails) int {
	if details == nil {
		return 0
	}
	completed, inProgress := count(details)

	completedWeight := 70.0 / stageCount
	inProgressWeight := 30.0 / stageCount
	score := float64(completed)*completedWeight + float64(inProgress)*inProgressWeight/2
	return clamp(score)
}

// Report both formulas evaluated over the same details.
type Report struct {
	StageWeighted int `json:"stageWeighted"`
	SplitWeighted int `json:"splitWeighted"`
}

// Evaluate runs both strategies.
func Evaluate(details *model.ConstructionDetails) Report {
	return Report{
		StageWeighted: StageWeighted{}.Compute(details),
		SplitWeighted: SplitWeighted{}.Compute(details),
	}
}

func count(details *model.ConstructionDetails) (completed, inProgress int) {
	for _, st := range details.Stages() {
		switch st.Status {
		case model.StageCompleted:
			completed++
		case model.StageInProgress:
			inProgress++
		}
	}
	return completed, inProgress
}

// clamp rounds half away from zero and caps at 100.
func clamp(score float64) int {
	n := int(math.Round(score))
	if n > 100 {
		return 100
	}
	if n < 0 {
		return 0
	}
	return n
}
