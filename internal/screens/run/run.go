package run

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/waddle/internal/game"
	"github.com/abhisek/waddle/internal/records"
	"github.com/abhisek/waddle/internal/router"
	"github.com/abhisek/waddle/internal/screen"
	"github.com/abhisek/waddle/internal/screens/history"
	"github.com/abhisek/waddle/internal/screens/onboarding"
	"github.com/abhisek/waddle/internal/ui/components"
	"github.com/abhisek/waddle/internal/ui/layout"
)

// DefaultTopN is the number of leaderboard rows shown on completion.
const DefaultTopN = 5

// Options tunes the run screen.
type Options struct {
	// TopN is the number of leaderboard rows shown on completion.
	TopN int

	// ExportDir is where the session CSV is written.
	ExportDir string
}

// RunScreen plays one run at a time over the engine and records outcomes
// in the book.
type RunScreen struct {
	engine *game.Engine
	book   *records.Book
	opts   Options

	state  *game.RunState
	choice components.MultiChoice
	player string
	top    []records.ScoreEntry

	jumping        bool
	confirmRestart bool
	statusLine     string

	// schedule delivers msg after d. Tests replace it to fire at once.
	schedule func(d time.Duration, msg tea.Msg) tea.Cmd
}

var _ screen.Screen = (*RunScreen)(nil)
var _ screen.KeyHintProvider = (*RunScreen)(nil)
var _ screen.StatusProvider = (*RunScreen)(nil)

// New creates a RunScreen and starts its first run.
func New(engine *game.Engine, book *records.Book, opts Options) *RunScreen {
	if opts.TopN <= 0 {
		opts.TopN = DefaultTopN
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}
	s := &RunScreen{
		engine:   engine,
		book:     book,
		opts:     opts,
		schedule: tick,
	}
	s.begin(engine.Start())
	return s
}

func tick(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

func (s *RunScreen) Init() tea.Cmd {
	book := s.book
	return func() tea.Msg {
		name, err := book.PlayerName(context.Background())
		return playerLoadedMsg{name: name, err: err}
	}
}

func (s *RunScreen) Title() string {
	return "Data Flow"
}

func (s *RunScreen) Status() layout.Status {
	return layout.Status{
		Player:   s.player,
		Score:    s.state.Score,
		Lives:    s.state.Lives,
		MaxLives: s.engine.Rules().Lives,
		Show:     true,
	}
}

func (s *RunScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.confirmRestart:
		return []layout.KeyHint{
			{Key: "Y", Description: "Restart"},
			{Key: "N", Description: "Keep playing"},
		}
	case s.jumping:
		return []layout.KeyHint{
			{Key: fmt.Sprintf("1-%d", s.engine.Catalog().NodeCount()), Description: "Node"},
			{Key: "any", Description: "Cancel"},
		}
	case s.state.Completed():
		return []layout.KeyHint{
			{Key: "P", Description: "Play again"},
			{Key: "E", Description: "Export CSV"},
			{Key: "S", Description: "Sessions"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "←→", Description: "Move"},
		{Key: "1-4", Description: "Answer"},
		{Key: "H", Description: "Hint"},
		{Key: "G", Description: "Jump"},
		{Key: "R", Description: "Restart"},
		{Key: "S", Description: "Sessions"},
	}
}

func (s *RunScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case playerLoadedMsg:
		if msg.err != nil {
			s.statusLine = "Could not load player: " + msg.err.Error()
			return s, nil
		}
		s.player = msg.name
		if s.player == "" {
			return s, s.openOnboarding()
		}
		return s, nil

	case onboarding.PlayerNameMsg:
		s.player = msg.Name
		return s, nil

	case autoAdvanceMsg:
		if msg.session != s.state.SessionID {
			return s, nil
		}
		effects := s.engine.FireAutoAdvance(s.state, msg.token)
		s.syncChoice()
		return s, s.apply(effects)

	case noticeClearMsg:
		if msg.session != s.state.SessionID {
			return s, nil
		}
		s.engine.ClearNotice(s.state, msg.token)
		return s, nil

	case persistedMsg:
		if msg.err != nil {
			s.statusLine = "Could not save run: " + msg.err.Error()
			return s, nil
		}
		if msg.top != nil {
			s.top = msg.top
		}
		return s, nil

	case restartedMsg:
		if msg.err != nil {
			s.statusLine = "Could not record restart: " + msg.err.Error()
		}
		s.player = ""
		return s, s.openOnboarding()

	case exportedMsg:
		if msg.err != nil {
			s.statusLine = "Export failed: " + msg.err.Error()
		} else {
			s.statusLine = "Exported sessions to " + msg.path
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *RunScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirmRestart {
		s.confirmRestart = false
		if key == "y" || key == "Y" {
			return s, s.restart()
		}
		return s, nil
	}

	if s.jumping {
		s.jumping = false
		if n := jumpTarget(key); n >= 0 {
			effects := s.engine.GoTo(s.state, n)
			s.syncChoice()
			return s, s.apply(effects)
		}
		return s, nil
	}

	switch key {
	case "s":
		return s, s.openHistory()
	case "e":
		return s, s.export()
	}

	if s.state.Completed() {
		if key == "p" {
			return s, s.restart()
		}
		return s, nil
	}

	switch key {
	case "left":
		s.engine.Move(s.state, -1)
		s.syncChoice()
		return s, nil
	case "right":
		effects := s.engine.AttemptAdvance(s.state)
		s.syncChoice()
		return s, s.apply(effects)
	case "h":
		s.engine.UseHint(s.state)
		return s, nil
	case "g":
		s.jumping = true
		return s, nil
	case "r":
		s.confirmRestart = true
		return s, nil
	}

	var pick int
	s.choice, pick = s.choice.Update(msg)
	if pick >= 0 {
		return s, s.submit(pick)
	}
	return s, nil
}

// jumpTarget maps "1"-"9" to a node index, or -1.
func jumpTarget(key string) int {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return -1
	}
	return int(key[0] - '1')
}

func (s *RunScreen) submit(pick int) tea.Cmd {
	a := s.engine.CurrentAssignment(s.state)
	if a == nil || pick >= len(a.Choices) {
		return nil
	}
	_, effects := s.engine.SubmitAnswer(s.state, a.Choices[pick])
	s.syncChoice()
	return s.apply(effects)
}

// begin installs a fresh run.
func (s *RunScreen) begin(state *game.RunState) {
	s.state = state
	s.top = nil
	s.jumping = false
	s.confirmRestart = false
	s.statusLine = ""
	s.syncChoice()
}

// syncChoice rebuilds the choice list for the current node. The verdict
// always comes from the recorded answer, so revisiting a node shows it.
func (s *RunScreen) syncChoice() {
	a := s.engine.CurrentAssignment(s.state)
	if a == nil {
		s.choice = components.MultiChoice{ChosenIndex: -1}
		return
	}

	nodeChanged := len(s.choice.Options) != len(a.Choices)
	for i := 0; !nodeChanged && i < len(a.Choices); i++ {
		nodeChanged = s.choice.Options[i] != a.Choices[i]
	}
	if nodeChanged {
		s.choice = components.NewMultiChoice(a.Choices, a.CorrectIndex())
	}

	s.choice.ChosenIndex = -1
	if answer, ok := game.AnswerFor(s.state, a); ok {
		for i, c := range a.Choices {
			if c == answer {
				s.choice.ChosenIndex = i
			}
		}
	}
}

// apply turns engine effects into commands.
func (s *RunScreen) apply(effects []game.Effect) tea.Cmd {
	var cmds []tea.Cmd
	for _, eff := range effects {
		switch e := eff.(type) {
		case game.ScheduleAdvance:
			cmds = append(cmds, s.schedule(e.Delay, autoAdvanceMsg{session: s.state.SessionID, token: e.Token}))
		case game.ScheduleNoticeClear:
			cmds = append(cmds, s.schedule(e.Delay, noticeClearMsg{session: s.state.SessionID, token: e.Token}))
		case game.PersistOutcome:
			cmds = append(cmds, s.persist(e.Outcome))
		}
	}
	return tea.Batch(cmds...)
}

// persist records a finished run under the current player name and
// fetches the leaderboard for the completion view.
func (s *RunScreen) persist(out game.Outcome) tea.Cmd {
	book, name, topN := s.book, s.player, s.opts.TopN
	return func() tea.Msg {
		ctx := context.Background()
		if err := book.Ingest(ctx, records.SessionFromOutcome(out, name)); err != nil {
			return persistedMsg{err: err}
		}
		top, err := book.Top(ctx, topN)
		if err != nil {
			return persistedMsg{err: err}
		}
		if top == nil {
			top = []records.ScoreEntry{}
		}
		return persistedMsg{top: top}
	}
}

// restart records an unsaved run as reset, clears the player identity
// and starts a fresh run. Onboarding opens once the writes finish.
func (s *RunScreen) restart() tea.Cmd {
	next, effects := s.engine.Restart(s.state)

	var outcomes []game.Outcome
	for _, eff := range effects {
		if p, ok := eff.(game.PersistOutcome); ok {
			outcomes = append(outcomes, p.Outcome)
		}
	}
	s.begin(next)

	book, name := s.book, s.player
	return func() tea.Msg {
		ctx := context.Background()
		for _, out := range outcomes {
			if err := book.Ingest(ctx, records.SessionFromOutcome(out, name)); err != nil {
				return restartedMsg{err: err}
			}
		}
		return restartedMsg{err: book.ClearPlayerName(ctx)}
	}
}

func (s *RunScreen) export() tea.Cmd {
	book := s.book
	path := filepath.Join(s.opts.ExportDir, records.ExportFileName)
	return func() tea.Msg {
		data, err := book.ExportSessions(context.Background())
		if err != nil {
			return exportedMsg{err: err}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return exportedMsg{err: fmt.Errorf("write %s: %w", path, err)}
		}
		return exportedMsg{path: path}
	}
}

func (s *RunScreen) openOnboarding() tea.Cmd {
	next := onboarding.New(s.book, s.engine.Catalog().Categories())
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: next}
	}
}

func (s *RunScreen) openHistory() tea.Cmd {
	next := history.New(s.book, s.opts.ExportDir)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: next}
	}
}
