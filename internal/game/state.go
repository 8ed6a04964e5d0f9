package game

import (
	"time"

	"github.com/abhisek/waddle/internal/threat"
)

// Status is the lifecycle state of a run.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// CompletionReason records why a run completed.
type CompletionReason string

const (
	ReasonNone             CompletionReason = ""
	ReasonLivesExhausted   CompletionReason = "lives_exhausted"
	ReasonFinalNodeCleared CompletionReason = "final_node_cleared"
)

// RunState is the state of one playthrough. It is mutated only by Engine
// methods and replaced wholesale on restart.
type RunState struct {
	SessionID string
	StartedAt time.Time
	EndedAt   time.Time

	// Position is the ordinal of the current node.
	Position int
	Score    int
	Lives    int

	Status Status
	Reason CompletionReason

	// Seen holds threat ids that have been answered this run.
	Seen map[string]bool

	// Answers maps threat id to the literal choice text submitted.
	Answers map[string]string

	// Assigned maps node id to its memoized assignment. A present key with
	// a nil value means the node was visited and has no threat.
	Assigned map[string]*threat.Assignment

	// Hinted holds threat ids for which the hint was shown.
	Hinted map[string]bool

	// Blocked is true while the "answer first" notice is visible.
	Blocked bool

	// Saved is set once the run outcome has been handed to persistence.
	Saved bool

	timers timers
}

// timers tracks the generation of each cancellable callback. A callback
// fires only if its token still matches the current generation.
type timers struct {
	advance uint64
	notice  uint64
}

func newRunState(sessionID string, lives int, now time.Time) *RunState {
	return &RunState{
		SessionID: sessionID,
		StartedAt: now,
		Lives:     lives,
		Status:    StatusActive,
		Seen:      make(map[string]bool),
		Answers:   make(map[string]string),
		Assigned:  make(map[string]*threat.Assignment),
		Hinted:    make(map[string]bool),
	}
}

// Completed reports whether the run has reached its terminal state.
func (s *RunState) Completed() bool {
	return s.Status == StatusCompleted
}

// HintsUsed returns the number of threats for which a hint was shown.
func (s *RunState) HintsUsed() int {
	return len(s.Hinted)
}
