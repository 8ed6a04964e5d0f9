package game

// Verdict is the result of judging an answer.
type Verdict string

const (
	VerdictCorrect   Verdict = "correct"
	VerdictIncorrect Verdict = "incorrect"
)

// AnswerResult describes the effect of SubmitAnswer.
type AnswerResult struct {
	// Accepted is false when the submission was ignored: no threat at the
	// node, the threat already answered, or the run completed.
	Accepted   bool
	Verdict    Verdict
	ScoreDelta int
	LivesDelta int
}

// SubmitAnswer records choice as the answer to the current node's threat.
// Answers are final; resubmission is ignored.
func (e *Engine) SubmitAnswer(s *RunState, choice string) (AnswerResult, []Effect) {
	if s.Completed() {
		return AnswerResult{}, nil
	}
	a := e.CurrentAssignment(s)
	if a == nil {
		return AnswerResult{}, nil
	}
	if _, answered := s.Answers[a.Threat.ID]; answered {
		return AnswerResult{}, nil
	}

	s.Answers[a.Threat.ID] = choice
	s.Seen[a.Threat.ID] = true
	s.timers.advance++

	if a.IsCorrect(choice) {
		points := e.rules.CorrectPoints
		if s.Hinted[a.Threat.ID] {
			points = e.rules.HintedPoints
		}
		s.Score += points
		res := AnswerResult{Accepted: true, Verdict: VerdictCorrect, ScoreDelta: points}
		return res, []Effect{ScheduleAdvance{Token: s.timers.advance, Delay: e.rules.AutoAdvance}}
	}

	s.Lives--
	res := AnswerResult{Accepted: true, Verdict: VerdictIncorrect, LivesDelta: -1}
	if s.Lives <= 0 {
		s.Lives = 0
		return res, e.complete(s, ReasonLivesExhausted)
	}
	return res, nil
}

// UseHint reveals the hint for the current threat. It only lowers the
// points awarded for that threat. Returns false when there is nothing to
// hint: no threat, already answered, or the run completed.
func (e *Engine) UseHint(s *RunState) (string, bool) {
	if s.Completed() {
		return "", false
	}
	a := e.CurrentAssignment(s)
	if a == nil {
		return "", false
	}
	if _, answered := s.Answers[a.Threat.ID]; answered {
		return "", false
	}
	s.Hinted[a.Threat.ID] = true
	return a.Threat.Hint, true
}

// HintShown reports whether the hint for the current threat is visible.
func (e *Engine) HintShown(s *RunState) bool {
	a := e.CurrentAssignment(s)
	return a != nil && s.Hinted[a.Threat.ID]
}
