package game

import (
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/waddle/internal/catalog"
	"github.com/abhisek/waddle/internal/threat"
)

// Engine applies player events to a RunState. It owns no run state of its
// own, so one Engine serves every run of a process.
type Engine struct {
	catalog  *catalog.Catalog
	assigner *threat.Assigner
	rules    Rules
	now      func() time.Time
	newID    func() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithSessionIDs overrides session id generation.
func WithSessionIDs(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

// NewEngine creates an Engine over the given catalog.
func NewEngine(cat *catalog.Catalog, assigner *threat.Assigner, rules Rules, opts ...Option) *Engine {
	e := &Engine{
		catalog:  cat,
		assigner: assigner,
		rules:    rules,
		now:      time.Now,
		newID:    NewSessionID,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewSessionID returns a fresh session identifier.
func NewSessionID() string {
	return "sess_" + uuid.NewString()
}

// Rules returns the rules the engine plays by.
func (e *Engine) Rules() Rules {
	return e.rules
}

// Catalog returns the engine's catalog.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Start creates a fresh run positioned on the first node.
func (e *Engine) Start() *RunState {
	s := newRunState(e.newID(), e.rules.Lives, e.now().UTC())
	e.enterNode(s)
	return s
}

// Restart discards s and returns a fresh run. If s was never persisted its
// outcome is emitted with status reset.
func (e *Engine) Restart(s *RunState) (*RunState, []Effect) {
	var effects []Effect
	if s != nil && !s.Saved {
		s.Saved = true
		s.timers.advance++
		s.timers.notice++
		effects = append(effects, PersistOutcome{Outcome: e.outcome(s, OutcomeReset, e.now().UTC())})
	}
	return e.Start(), effects
}

// CurrentNode returns the node at the run's position.
func (e *Engine) CurrentNode(s *RunState) catalog.Node {
	n, _ := e.catalog.NodeAt(s.Position)
	return n
}

// CurrentAssignment returns the threat assigned at the current node, or
// nil when the node has none.
func (e *Engine) CurrentAssignment(s *RunState) *threat.Assignment {
	return s.Assigned[e.CurrentNode(s).ID]
}

// AnswerFor returns the recorded answer for a, if any.
func AnswerFor(s *RunState, a *threat.Assignment) (string, bool) {
	if a == nil {
		return "", false
	}
	choice, ok := s.Answers[a.Threat.ID]
	return choice, ok
}

// enterNode assigns a threat to the current node on first visit. Later
// visits keep the memoized assignment, including "no threat".
func (e *Engine) enterNode(s *RunState) {
	node := e.CurrentNode(s)
	existing, visited := s.Assigned[node.ID]
	if visited && existing == nil {
		return
	}
	s.Assigned[node.ID] = e.assigner.Assign(node, e.excluded(s, node.ID), existing)
}

// excluded returns the threat ids that may not be assigned at nodeID:
// every answered threat plus any threat already bound to another node.
func (e *Engine) excluded(s *RunState, nodeID string) map[string]bool {
	out := make(map[string]bool, len(s.Seen)+len(s.Assigned))
	for id := range s.Seen {
		out[id] = true
	}
	for n, a := range s.Assigned {
		if a != nil && n != nodeID {
			out[a.Threat.ID] = true
		}
	}
	return out
}

// complete moves s to the terminal state. It is a no-op on a completed
// run, so the outcome is emitted at most once.
func (e *Engine) complete(s *RunState, reason CompletionReason) []Effect {
	if s.Completed() {
		return nil
	}
	s.Status = StatusCompleted
	s.Reason = reason
	s.EndedAt = e.now().UTC()
	s.Blocked = false
	s.timers.advance++
	s.timers.notice++

	if s.Saved {
		return nil
	}
	s.Saved = true
	return []Effect{PersistOutcome{Outcome: e.outcome(s, OutcomeCompleted, s.EndedAt)}}
}

func (e *Engine) outcome(s *RunState, status OutcomeStatus, endedAt time.Time) Outcome {
	return Outcome{
		SessionID: s.SessionID,
		Score:     s.Score,
		Lives:     s.Lives,
		HintsUsed: s.HintsUsed(),
		StartedAt: s.StartedAt,
		EndedAt:   endedAt,
		Status:    status,
		Reason:    s.Reason,
	}
}
