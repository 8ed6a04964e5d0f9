package app

import (
	"math/rand/v2"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/waddle/internal/catalog"
	"github.com/abhisek/waddle/internal/game"
	"github.com/abhisek/waddle/internal/records"
	"github.com/abhisek/waddle/internal/router"
	"github.com/abhisek/waddle/internal/screens/run"
	"github.com/abhisek/waddle/internal/store"
	"github.com/abhisek/waddle/internal/threat"
)

func newTestModel(t *testing.T) AppModel {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	cat := catalog.Default()
	eng := game.NewEngine(cat, threat.NewAssigner(cat, rand.New(rand.NewPCG(7, 7))), game.DefaultRules())
	m := newAppModel(Options{Engine: eng, Book: records.NewBook(st.KV()), ExportDir: t.TempDir()})

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(AppModel)
}

func TestSplashHandsOverToRun(t *testing.T) {
	m := newTestModel(t)

	updated, cmd := m.Update(tea.KeyPressMsg{Code: ' ', Text: " "})
	m = updated.(AppModel)
	if cmd == nil {
		t.Fatal("key press on splash should transition")
	}
	replace, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	updated, _ = m.Update(replace)
	m = updated.(AppModel)

	if _, ok := m.router.Active().(*run.RunScreen); !ok {
		t.Fatalf("active screen = %T, want run", m.router.Active())
	}
	if m.router.Depth() != 1 {
		t.Errorf("depth = %d, want 1", m.router.Depth())
	}

	view := m.render()
	if !strings.Contains(view, "WADDLE") {
		t.Error("header should carry the game name")
	}
	if !strings.Contains(view, "Hint") {
		t.Error("footer should show the run key hints")
	}
}

func TestEscAtRootIsNoop(t *testing.T) {
	m := newTestModel(t)

	if _, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape}); cmd != nil {
		t.Error("esc with a single screen should do nothing")
	}
}

func TestTooSmallTerminal(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})

	view := updated.(AppModel).render()
	if strings.Contains(view, "WADDLE") {
		t.Error("tiny terminals should get the size message only")
	}
}
