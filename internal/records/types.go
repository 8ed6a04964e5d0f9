package records

import (
	"errors"
	"time"
)

// Storage keys.
const (
	KeyPlayer      = "waddle_player_name"
	KeyLeaderboard = "waddle_leaderboard"
	KeySessions    = "waddle_sessions"
)

// DefaultName is recorded when the player never entered a name.
const DefaultName = "Anonymous"

// DefaultCap bounds the stored leaderboard.
const DefaultCap = 100

// Status values of a SessionRecord.
const (
	StatusCompleted = "completed"
	StatusReset     = "reset"
)

var (
	// ErrUnknownScope is returned by Wipe for an unrecognized scope.
	ErrUnknownScope = errors.New("unknown wipe scope")

	// ErrEmptyName is returned when saving a blank player name.
	ErrEmptyName = errors.New("player name is empty")
)

// SessionRecord is the durable outcome of one run. Records are appended
// and never changed afterwards.
type SessionRecord struct {
	SessionID string    `json:"sessionId"`
	Name      string    `json:"name"`
	Score     int       `json:"score"`
	Lives     int       `json:"lives"`
	StartedAt time.Time `json:"startedAt"`
	EndedAt   time.Time `json:"endedAt"`
	Status    string    `json:"status"`
}

// ScoreEntry is one row of the leaderboard.
type ScoreEntry struct {
	Name  string    `json:"name"`
	Score int       `json:"score"`
	Lives int       `json:"lives"`
	Date  time.Time `json:"date"`
}

// Scope selects what Wipe removes.
type Scope string

const (
	ScopeSessionsAndScores Scope = "sessions"
	ScopeEverything        Scope = "everything"
)

// Mirror receives each appended session after the local write commits.
// Implementations must not block.
type Mirror interface {
	Dispatch(rec SessionRecord)
}
