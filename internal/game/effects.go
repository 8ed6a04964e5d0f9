package game

import "time"

// Effect is a side effect requested by a state transition. The caller
// performs effects; the engine never blocks on them.
type Effect interface {
	effect()
}

// ScheduleAdvance asks the caller to call Engine.FireAutoAdvance with
// Token after Delay.
type ScheduleAdvance struct {
	Token uint64
	Delay time.Duration
}

// ScheduleNoticeClear asks the caller to call Engine.ClearNotice with
// Token after Delay.
type ScheduleNoticeClear struct {
	Token uint64
	Delay time.Duration
}

// PersistOutcome asks the caller to record the outcome of a run.
type PersistOutcome struct {
	Outcome Outcome
}

func (ScheduleAdvance) effect()     {}
func (ScheduleNoticeClear) effect() {}
func (PersistOutcome) effect()      {}

// OutcomeStatus is the persisted status of a finished run.
type OutcomeStatus string

const (
	OutcomeCompleted OutcomeStatus = "completed"
	OutcomeReset     OutcomeStatus = "reset"
)

// Outcome is the durable summary of a run handed to persistence.
type Outcome struct {
	SessionID string
	Score     int
	Lives     int
	HintsUsed int
	StartedAt time.Time
	EndedAt   time.Time
	Status    OutcomeStatus
	Reason    CompletionReason
}
