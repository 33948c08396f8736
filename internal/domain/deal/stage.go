// internal/domain/deal/stage.go
package deal

import "strings"

// Stage is a deal's pipeline position and the board's only grouping key.
type Stage string

const (
	StageProspect    Stage = "prospect"
	StageQualified   Stage = "qualified"
	StageProposal    Stage = "proposal"
	StageNegotiation Stage = "negotiation"
	StageWon         Stage = "won"
	StageLost        Stage = "lost"
)

// Stages is the fixed pipeline in board display order.
var Stages = []Stage{
	StageProspect,
	StageQualified,
	StageProposal,
	StageNegotiation,
	StageWon,
	StageLost,
}

// Known reports whether s is one of Stages.
func (s Stage) Known() bool {
	return s.Index() >= 0
}

// Index is the stage's board column, or -1 for a stage outside the pipeline.
func (s Stage) Index() int {
	for i, known := range Stages {
		if s == known {
			return i
		}
	}
	return -1
}

// Label is the column heading.
func (s Stage) Label() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// StageOrDefault returns the trimmed raw stage when known, otherwise prospect.
func StageOrDefault(raw string) Stage {
	s := Stage(strings.TrimSpace(raw))
	if s.Known() {
		return s
	}
	return StageProspect
}

// CountsTowardPipeline reports whether a deal's value belongs in the
// dealValue stat; lost deals are excluded.
func (s Stage) CountsTowardPipeline() bool {
	return s != StageLost
}
