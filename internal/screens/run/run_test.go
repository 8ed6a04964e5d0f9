package run

import (
	"context"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/waddle/internal/catalog"
	"github.com/abhisek/waddle/internal/game"
	"github.com/abhisek/waddle/internal/records"
	"github.com/abhisek/waddle/internal/router"
	"github.com/abhisek/waddle/internal/screens/onboarding"
	"github.com/abhisek/waddle/internal/store"
	"github.com/abhisek/waddle/internal/threat"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func newTestBook(t *testing.T) *records.Book {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return records.NewBook(st.KV())
}

func immediate(_ time.Duration, msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func newTestScreen(t *testing.T, player string) (*RunScreen, *records.Book) {
	t.Helper()
	book := newTestBook(t)
	if player != "" {
		if err := book.SetPlayerName(context.Background(), player); err != nil {
			t.Fatalf("set player: %v", err)
		}
	}

	cat := catalog.Default()
	eng := game.NewEngine(cat, threat.NewAssigner(cat, rand.New(rand.NewPCG(1, 2))), game.DefaultRules())
	s := New(eng, book, Options{ExportDir: t.TempDir()})
	s.schedule = immediate
	drain(t, s, s.Init())
	return s, book
}

// drain runs cmd and feeds every resulting message back into s. Router
// navigation messages are collected instead of delivered.
func drain(t *testing.T, s *RunScreen, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	var nav []tea.Msg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch m := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, m...)
		case router.PushScreenMsg, router.PopScreenMsg:
			nav = append(nav, m)
		default:
			_, next := s.Update(m)
			queue = append(queue, next)
		}
	}
	return nav
}

func press(t *testing.T, s *RunScreen, msg tea.Msg) []tea.Msg {
	t.Helper()
	_, cmd := s.Update(msg)
	return drain(t, s, cmd)
}

func correctKey(s *RunScreen) tea.KeyPressMsg {
	idx := s.engine.CurrentAssignment(s.state).CorrectIndex()
	return keyPress(rune('1' + idx))
}

func wrongKey(s *RunScreen) tea.KeyPressMsg {
	idx := s.engine.CurrentAssignment(s.state).CorrectIndex()
	return keyPress(rune('a' + (idx+1)%4))
}

func TestInitWithoutNameOpensOnboarding(t *testing.T) {
	book := newTestBook(t)
	cat := catalog.Default()
	s := New(game.NewEngine(cat, threat.NewAssigner(cat, nil), game.DefaultRules()), book, Options{})

	nav := drain(t, s, s.Init())
	if len(nav) != 1 {
		t.Fatalf("expected one navigation message, got %d", len(nav))
	}
	push, ok := nav[0].(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", nav[0])
	}
	if _, ok := push.Screen.(*onboarding.OnboardingScreen); !ok {
		t.Errorf("expected onboarding, got %T", push.Screen)
	}
}

func TestInitWithNameSkipsOnboarding(t *testing.T) {
	s, _ := newTestScreen(t, "Ada")

	if s.player != "Ada" {
		t.Errorf("player = %q", s.player)
	}
	st := s.Status()
	if st.Player != "Ada" || st.Lives != 3 || st.MaxLives != 3 || !st.Show {
		t.Errorf("status = %+v", st)
	}
}

func TestPlayerNameMsgUpdatesHeader(t *testing.T) {
	s, _ := newTestScreen(t, "")
	s.Update(onboarding.PlayerNameMsg{Name: "Grace"})

	if s.Status().Player != "Grace" {
		t.Errorf("player = %q", s.Status().Player)
	}
}

func TestCorrectAnswerScoresAndAutoAdvances(t *testing.T) {
	s, _ := newTestScreen(t, "Ada")

	press(t, s, correctKey(s))

	if s.state.Score != 10 {
		t.Errorf("score = %d, want 10", s.state.Score)
	}
	if s.state.Position != 1 {
		t.Errorf("position = %d, want 1 after auto-advance", s.state.Position)
	}
}

func TestArrowAndEnterSubmit(t *testing.T) {
	s, _ := newTestScreen(t, "Ada")
	idx := s.engine.CurrentAssignment(s.state).CorrectIndex()

	for i := 0; i < idx; i++ {
		press(t, s, specialKey(tea.KeyDown))
	}
	press(t, s, specialKey(tea.KeyEnter))

	if s.state.Score != 10 {
		t.Errorf("score = %d, want 10", s.state.Score)
	}
}

func TestForwardBeforeAnswerShowsNotice(t *testing.T) {
	s, _ := newTestScreen(t, "Ada")

	_, cmd := s.Update(specialKey(tea.KeyRight))
	if !s.state.Blocked {
		t.Fatal("forward through a closed gate should show the notice")
	}
	if s.state.Position != 0 {
		t.Errorf("position = %d, want 0", s.state.Position)
	}
	if !strings.Contains(s.View(100, 40), "Answer the threat") {
		t.Error("notice should be rendered")
	}

	drain(t, s, cmd)
	if s.state.Blocked {
		t.Error("notice should clear once its timer fires")
	}
}

func TestWrongAnswerThenAdvance(t *testing.T) {
	s, _ := newTestScreen(t, "Ada")

	press(t, s, wrongKey(s))
	if s.state.Lives != 2 {
		t.Errorf("lives = %d, want 2", s.state.Lives)
	}
	if s.state.Position != 0 {
		t.Errorf("wrong answer must not auto-advance, position = %d", s.state.Position)
	}
	if !strings.Contains(s.View(100, 40), "Not quite") {
		t.Error("verdict should be shown")
	}

	press(t, s, specialKey(tea.KeyRight))
	if s.state.Position != 1 {
		t.Errorf("position = %d, want 1", s.state.Position)
	}
}

func TestStaleAutoAdvanceIgnored(t *testing.T) {
	s, _ := newTestScreen(t, "Ada")

	var pending []tea.Msg
	s.schedule = func(_ time.Duration, msg tea.Msg) tea.Cmd {
		pending = append(pending, msg)
		return nil
	}

	press(t, s, correctKey(s))
	if len(pending) != 1 {
		t.Fatalf("expected one scheduled advance, got %d", len(pending))
	}

	// Any accepted movement supersedes the pending advance.
	press(t, s, specialKey(tea.KeyLeft))
	press(t, s, pending[0])

	if s.state.Position != 0 {
		t.Errorf("stale advance moved the run to %d", s.state.Position)
	}
}

func TestAutoAdvanceReachesRunUnderOverlay(t *testing.T) {
	s, _ := newTestScreen(t, "Ada")

	var pending []tea.Msg
	s.schedule = func(_ time.Duration, msg tea.Msg) tea.Cmd {
		pending = append(pending, msg)
		return nil
	}
	press(t, s, correctKey(s))

	r := router.New(s)
	r.Update(router.PushScreenMsg{Screen: onboarding.New(newTestBook(t), nil)})
	r.Update(pending[0])

	if s.state.Position != 1 {
		t.Errorf("position = %d, want 1", s.state.Position)
	}
}

func finishByLosingLives(t *testing.T, s *RunScreen) {
	t.Helper()
	for i := 0; i < 20 && !s.state.Completed(); i++ {
		if s.engine.CurrentAssignment(s.state) != nil {
			if _, answered := game.AnswerFor(s.state, s.engine.CurrentAssignment(s.state)); !answered {
				press(t, s, wrongKey(s))
				continue
			}
		}
		press(t, s, specialKey(tea.KeyRight))
	}
	if !s.state.Completed() {
		t.Fatal("run did not complete")
	}
}

func TestLivesExhaustedRecordsRun(t *testing.T) {
	s, book := newTestScreen(t, "Ada")
	finishByLosingLives(t, s)

	if s.state.Reason != game.ReasonLivesExhausted {
		t.Errorf("reason = %q", s.state.Reason)
	}

	ctx := context.Background()
	sessions, err := book.Sessions(ctx)
	if err != nil {
		t.Fatalf("sessions: %v", err)
	}
	if len(sessions) != 1 || sessions[0].Status != records.StatusCompleted || sessions[0].Name != "Ada" {
		t.Fatalf("sessions = %+v", sessions)
	}
	scores, err := book.Scores(ctx)
	if err != nil || len(scores) != 1 {
		t.Fatalf("scores = %+v, %v", scores, err)
	}
	if len(s.top) != 1 {
		t.Errorf("top = %+v", s.top)
	}

	view := s.View(100, 40)
	for _, want := range []string{"Out of lives", "Security requirements", "Hints used 0"} {
		if !strings.Contains(view, want) {
			t.Errorf("completion view missing %q", want)
		}
	}
}

func TestPlayAgainDoesNotRecordTwice(t *testing.T) {
	s, book := newTestScreen(t, "Ada")
	finishByLosingLives(t, s)
	first := s.state.SessionID

	nav := press(t, s, keyPress('p'))

	if s.state.SessionID == first {
		t.Error("play again should start a new session")
	}
	if len(nav) != 1 {
		t.Errorf("play again should reopen onboarding, nav = %v", nav)
	}
	sessions, _ := book.Sessions(context.Background())
	if len(sessions) != 1 {
		t.Errorf("sessions = %d, want 1", len(sessions))
	}
}

func TestRestartRecordsResetAndClearsPlayer(t *testing.T) {
	s, book := newTestScreen(t, "Ada")
	press(t, s, correctKey(s))
	first := s.state.SessionID

	press(t, s, keyPress('r'))
	if !s.confirmRestart {
		t.Fatal("r should ask for confirmation")
	}
	nav := press(t, s, keyPress('y'))

	if len(nav) != 1 {
		t.Fatalf("restart should reopen onboarding, nav = %v", nav)
	}
	if s.state.SessionID == first || s.state.Score != 0 || s.state.Lives != 3 || s.state.Position != 0 {
		t.Errorf("restart state = %+v", s.state)
	}

	ctx := context.Background()
	sessions, _ := book.Sessions(ctx)
	if len(sessions) != 1 || sessions[0].Status != records.StatusReset || sessions[0].Score != 10 {
		t.Fatalf("sessions = %+v", sessions)
	}
	if scores, _ := book.Scores(ctx); len(scores) != 0 {
		t.Errorf("reset runs must not enter the leaderboard, got %+v", scores)
	}
	if name, _ := book.PlayerName(ctx); name != "" {
		t.Errorf("player name = %q, want cleared", name)
	}
}

func TestTimerFromPreviousRunIgnored(t *testing.T) {
	s, _ := newTestScreen(t, "Ada")

	var pending []tea.Msg
	s.schedule = func(_ time.Duration, msg tea.Msg) tea.Cmd {
		pending = append(pending, msg)
		return nil
	}

	press(t, s, correctKey(s))
	press(t, s, keyPress('r'))
	press(t, s, keyPress('y'))
	press(t, s, onboarding.PlayerNameMsg{Name: "Bo"})

	press(t, s, correctKey(s))
	if len(pending) != 2 {
		t.Fatalf("expected two scheduled advances, got %d", len(pending))
	}

	press(t, s, pending[0])
	if s.state.Position != 0 {
		t.Fatalf("advance from the previous run moved the new run to %d", s.state.Position)
	}

	press(t, s, pending[1])
	if s.state.Position != 1 {
		t.Errorf("position = %d, want 1", s.state.Position)
	}
}

func TestRestartCancelled(t *testing.T) {
	s, _ := newTestScreen(t, "Ada")
	first := s.state.SessionID

	press(t, s, keyPress('r'))
	press(t, s, keyPress('n'))

	if s.confirmRestart || s.state.SessionID != first {
		t.Error("n should keep the current run")
	}
}

func TestJumpBackToNode(t *testing.T) {
	s, _ := newTestScreen(t, "Ada")
	press(t, s, correctKey(s))

	press(t, s, keyPress('g'))
	press(t, s, keyPress('1'))

	if s.state.Position != 0 {
		t.Errorf("position = %d, want 0", s.state.Position)
	}
	if !s.choice.IsCorrect() {
		t.Error("revisited node should show its recorded verdict")
	}
}

func TestHintHalvesPoints(t *testing.T) {
	s, _ := newTestScreen(t, "Ada")

	press(t, s, keyPress('h'))
	if !strings.Contains(s.View(100, 40), "Hint:") {
		t.Error("hint should be rendered")
	}
	press(t, s, correctKey(s))

	if s.state.Score != 5 {
		t.Errorf("score = %d, want 5", s.state.Score)
	}
}

func TestExportWritesCSV(t *testing.T) {
	s, _ := newTestScreen(t, "Ada")
	finishByLosingLives(t, s)

	press(t, s, keyPress('e'))

	data, err := os.ReadFile(filepath.Join(s.opts.ExportDir, records.ExportFileName))
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.HasPrefix(string(data), "sessionId,name,score,lives,startedAt,endedAt,status\n") {
		t.Errorf("unexpected header: %q", data)
	}
	if !strings.Contains(s.statusLine, "Exported") {
		t.Errorf("status line = %q", s.statusLine)
	}
}
