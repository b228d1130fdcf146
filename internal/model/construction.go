package model

import (
	"database/sql/driver"
	"fmt"
)

// StageStatus status of one construction stage
type StageStatus string

const (
	StageNotStarted StageStatus = "Not Started"
	StageInProgress StageStatus = "In Progress"
	StageCompleted  StageStatus = "Completed"
	StageDelayed    StageStatus = "Delayed"
)

// DefaultStageLabel is the stage label given to a beneficiary created without one.
const DefaultStageLabel = "Not Started"

// ParseStageStatus accepts the four wire values. An empty value means the stage
// has not started.
func ParseStageStatus(s string) (StageStatus, error) {
	switch StageStatus(s) {
	case "":
		return StageNotStarted, nil
	case StageNotStarted, StageInProgress, StageCompleted, StageDelayed:
		return StageStatus(s), nil
	}
	return "", fmt.Errorf("unknown stage status %q", s)
}

// ConstructionStageRecord status of a stage and, once completed, the date it finished.
type ConstructionStageRecord struct {
	Status         StageStatus `json:"status"`
	CompletionDate string      `json:"completionDate,omitempty"`
}

// ConstructionDetails the four fixed construction stages. Field order is the
// weighting order used by the progress calculator.
type ConstructionDetails struct {
	Foundation ConstructionStageRecord `json:"foundation"`
	Walls      ConstructionStageRecord `json:"walls"`
	Roof       ConstructionStageRecord `json:"roof"`
	Finishing  ConstructionStageRecord `json:"finishing"`
}

// DefaultConstructionDetails all four stages not started.
func DefaultConstructionDetails() ConstructionDetails {
	return ConstructionDetails{
		Foundation: ConstructionStageRecord{Status: StageNotStarted},
		Walls:      ConstructionStageRecord{Status: StageNotStarted},
		Roof:       ConstructionStageRecord{Status: StageNotStarted},
		Finishing:  ConstructionStageRecord{Status: StageNotStarted},
	}
}

// Stages returns the stages in weighting order.
func (d ConstructionDetails) Stages() [4]ConstructionStageRecord {
	return [4]ConstructionStageRecord{d.Foundation, d.Walls, d.Roof, d.Finishing}
}

// Normalize fills empty statuses with NotStarted, rejects unknown statuses and
// drops completion dates on stages that are not completed.
func (d *ConstructionDetails) Normalize() error {
	stages := []struct {
		name string
		rec  *ConstructionStageRecord
	}{
		{"foundation", &d.Foundation},
		{"walls", &d.Walls},
		{"roof", &d.Roof},
		{"finishing", &d.Finishing},
	}
	for _, st := range stages {
		status, err := ParseStageStatus(string(st.rec.Status))
		if err != nil {
			return fmt.Errorf("%s: %w", st.name, err)
		}
		st.rec.Status = status
		if status != StageCompleted {
			st.rec.CompletionDate = ""
		}
	}
	return nil
}

// Scan decodes the JSONB column.
func (d *ConstructionDetails) Scan(src interface{}) error {
	if src == nil {
		*d = DefaultConstructionDetails()
		return nil
	}
	return scanJSON(src, d, "ConstructionDetails")
}

// Value encodes the JSONB column.
func (d ConstructionDetails) Value() (driver.Value, error) {
	return valueJSON(d)
}
