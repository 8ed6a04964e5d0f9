package game

// Requirement is one answered threat as shown in the completion summary.
type Requirement struct {
	NodeID       string
	NodeLabel    string
	ThreatID     string
	CategoryCode string
	Prompt       string
	Choice       string
	Mitigation   string
	Correct      bool
	Hinted       bool
}

// Requirements lists the answered threats of s in node order.
func (e *Engine) Requirements(s *RunState) []Requirement {
	var out []Requirement
	for _, n := range e.catalog.Nodes() {
		a := s.Assigned[n.ID]
		choice, ok := AnswerFor(s, a)
		if !ok {
			continue
		}
		out = append(out, Requirement{
			NodeID:       n.ID,
			NodeLabel:    n.Label,
			ThreatID:     a.Threat.ID,
			CategoryCode: a.Threat.CategoryCode,
			Prompt:       a.Threat.Prompt,
			Choice:       choice,
			Mitigation:   a.Threat.Mitigation,
			Correct:      a.IsCorrect(choice),
			Hinted:       s.Hinted[a.Threat.ID],
		})
	}
	return out
}

// Standing is how a node stands in the current run.
type Standing int

const (
	StandingAhead   Standing = iota // not visited yet
	StandingOpen                    // visited, no threat or not answered
	StandingCorrect                 // threat answered with the mitigation
	StandingWrong                   // threat answered with a distractor
)

// Standings returns one Standing per node in path order.
func (e *Engine) Standings(s *RunState) []Standing {
	nodes := e.catalog.Nodes()
	out := make([]Standing, len(nodes))
	for i, n := range nodes {
		a, visited := s.Assigned[n.ID]
		if !visited {
			continue
		}
		answer, answered := AnswerFor(s, a)
		switch {
		case !answered:
			out[i] = StandingOpen
		case a.IsCorrect(answer):
			out[i] = StandingCorrect
		default:
			out[i] = StandingWrong
		}
	}
	return out
}
