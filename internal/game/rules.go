package game

import (
	"fmt"
	"time"
)

// GatePolicy decides what opens the gate past a node that has a threat.
type GatePolicy string

const (
	// GateAnswered opens the gate once the threat has any recorded answer.
	GateAnswered GatePolicy = "answered"

	// GateCorrect opens the gate only after the correct mitigation was chosen.
	GateCorrect GatePolicy = "correct"
)

// ParseGatePolicy converts a config string to a GatePolicy.
func ParseGatePolicy(s string) (GatePolicy, error) {
	switch GatePolicy(s) {
	case GateAnswered, GateCorrect:
		return GatePolicy(s), nil
	case "":
		return GateAnswered, nil
	}
	return "", fmt.Errorf("unknown gate policy %q", s)
}

// Rules holds the tunable constants of a run.
type Rules struct {
	Lives          int
	CorrectPoints  int
	HintedPoints   int
	AutoAdvance    time.Duration
	NoticeDuration time.Duration
	Gate           GatePolicy
}

// DefaultRules returns the standard game rules.
func DefaultRules() Rules {
	return Rules{
		Lives:          3,
		CorrectPoints:  10,
		HintedPoints:   5,
		AutoAdvance:    700 * time.Millisecond,
		NoticeDuration: 1200 * time.Millisecond,
		Gate:           GateAnswered,
	}
}
