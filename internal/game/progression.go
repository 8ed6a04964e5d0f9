package game

import "github.com/abhisek/waddle/internal/threat"

// CanAdvance reports whether the gate past a node is open. A node without
// a threat is always open.
func CanAdvance(policy GatePolicy, a *threat.Assignment, answer string, answered bool) bool {
	if a == nil {
		return true
	}
	if !answered {
		return false
	}
	if policy == GateCorrect {
		return a.IsCorrect(answer)
	}
	return true
}

// CanAdvance reports whether the current node's gate is open.
func (e *Engine) CanAdvance(s *RunState) bool {
	a := e.CurrentAssignment(s)
	answer, answered := AnswerFor(s, a)
	return CanAdvance(e.rules.Gate, a, answer, answered)
}

// Move shifts the position by delta, clamped to the node range. Forward
// moves through a closed gate are ignored.
func (e *Engine) Move(s *RunState, delta int) []Effect {
	if s.Completed() {
		return nil
	}
	if delta > 0 && !e.CanAdvance(s) {
		return nil
	}
	e.moveTo(s, s.Position+delta)
	return nil
}

// GoTo jumps to target, clamped to the node range. A forward jump through
// a closed gate shows the blocked notice instead.
func (e *Engine) GoTo(s *RunState, target int) []Effect {
	if s.Completed() {
		return nil
	}
	if target > s.Position && !e.CanAdvance(s) {
		return e.block(s)
	}
	e.moveTo(s, target)
	return nil
}

// AttemptAdvance is the forward action. Through a closed gate it shows
// the blocked notice. On the last node it completes the run; elsewhere it
// moves forward one node.
func (e *Engine) AttemptAdvance(s *RunState) []Effect {
	if s.Completed() {
		return nil
	}
	if !e.CanAdvance(s) {
		return e.block(s)
	}
	if s.Position >= e.catalog.LastIndex() {
		return e.complete(s, ReasonFinalNodeCleared)
	}
	e.moveTo(s, s.Position+1)
	return nil
}

// FireAutoAdvance runs a scheduled forward attempt. Stale tokens, from
// callbacks superseded by a later action, are ignored.
func (e *Engine) FireAutoAdvance(s *RunState, token uint64) []Effect {
	if s.Completed() || token != s.timers.advance {
		return nil
	}
	return e.AttemptAdvance(s)
}

// ClearNotice hides the blocked notice if token is the latest one.
func (e *Engine) ClearNotice(s *RunState, token uint64) bool {
	if token != s.timers.notice {
		return false
	}
	s.Blocked = false
	return true
}

func (e *Engine) block(s *RunState) []Effect {
	s.Blocked = true
	s.timers.notice++
	return []Effect{ScheduleNoticeClear{Token: s.timers.notice, Delay: e.rules.NoticeDuration}}
}

func (e *Engine) moveTo(s *RunState, target int) {
	last := e.catalog.LastIndex()
	if target < 0 {
		target = 0
	}
	if target > last {
		target = last
	}
	// Any accepted movement supersedes a pending auto-advance.
	s.timers.advance++
	s.Position = target
	e.enterNode(s)
}
