package history

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/waddle/internal/records"
	"github.com/abhisek/waddle/internal/router"
	"github.com/abhisek/waddle/internal/screen"
	"github.com/abhisek/waddle/internal/ui/layout"
	"github.com/abhisek/waddle/internal/ui/theme"
)

type historyLoadedMsg struct {
	Sessions []records.SessionRecord
	Err      error
}

type exportedMsg struct {
	Path string
	Err  error
}

// HistoryScreen displays the session log, newest first.
type HistoryScreen struct {
	book      *records.Book
	exportDir string
	sessions  []records.SessionRecord
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
	notice    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen. Exports are written to exportDir.
func New(book *records.Book, exportDir string) *HistoryScreen {
	return &HistoryScreen{
		book:      book,
		exportDir: exportDir,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	book := s.book
	return func() tea.Msg {
		sessions, err := book.Sessions(context.Background())
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		slices.Reverse(sessions)
		return historyLoadedMsg{Sessions: sessions}
	}
}

func (s *HistoryScreen) Title() string {
	return "Sessions"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "E", Description: "Export CSV"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case exportedMsg:
		if msg.Err != nil {
			s.notice = "Export failed: " + msg.Err.Error()
		} else {
			s.notice = "Exported to " + msg.Path
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		case "e":
			return s, s.export()
		}
	}
	return s, nil
}

func (s *HistoryScreen) export() tea.Cmd {
	book := s.book
	path := filepath.Join(s.exportDir, records.ExportFileName)
	return func() tea.Msg {
		data, err := book.ExportSessions(context.Background())
		if err != nil {
			return exportedMsg{Err: err}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return exportedMsg{Err: fmt.Errorf("write %s: %w", path, err)}
		}
		return exportedMsg{Path: path}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading sessions...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sessions yet. Go waddle!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sess := range s.sessions {
		dateStr := sess.EndedAt.Local().Format("Jan 02, 2006 15:04")
		dur := sess.EndedAt.Sub(sess.StartedAt).Round(time.Second)

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-16s  %4d pts  %d lives  %-9s  %s",
			prefix, dateStr, truncate(sess.Name, 16), sess.Score, sess.Lives, sess.Status, dur)

		style := lipgloss.NewStyle().Foreground(statusColor(sess.Status))
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := fmt.Sprintf("    %s  started %s", sess.SessionID,
				sess.StartedAt.Local().Format("15:04:05"))
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(detail)))
			b.WriteString("\n")
		}
	}

	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
			Foreground(theme.TextDim).Render(s.notice))
	}

	return b.String()
}

func statusColor(status string) color.Color {
	switch status {
	case records.StatusCompleted:
		return theme.Text
	case records.StatusReset:
		return theme.TextDim
	default:
		return theme.Text
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
