package run

import (
	"github.com/abhisek/waddle/internal/records"
)

// autoAdvanceMsg fires the forward attempt scheduled after a correct
// answer. It reaches the run screen even while another screen is on top.
// Tokens restart with every run, so the session id ties the message to
// the run that scheduled it.
type autoAdvanceMsg struct {
	session string
	token   uint64
}

func (autoAdvanceMsg) StackMsg() {}

// noticeClearMsg hides the "answer first" notice.
type noticeClearMsg struct {
	session string
	token   uint64
}

func (noticeClearMsg) StackMsg() {}

// playerLoadedMsg carries the stored player name.
type playerLoadedMsg struct {
	name string
	err  error
}

// persistedMsg is sent once a run outcome has been recorded.
type persistedMsg struct {
	top []records.ScoreEntry
	err error
}

// restartedMsg is sent once the previous run is recorded and the player
// identity cleared.
type restartedMsg struct {
	err error
}

// exportedMsg reports the result of a CSV export.
type exportedMsg struct {
	path string
	err  error
}
