package app

import (
	"fmt"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/waddle/internal/game"
	"github.com/abhisek/waddle/internal/logging"
	"github.com/abhisek/waddle/internal/records"
	"github.com/abhisek/waddle/internal/router"
	"github.com/abhisek/waddle/internal/screen"
	"github.com/abhisek/waddle/internal/screens/run"
	"github.com/abhisek/waddle/internal/screens/welcome"
	"github.com/abhisek/waddle/internal/ui/layout"
)

// Options holds the dependencies of the interactive game.
type Options struct {
	Engine    *game.Engine
	Book      *records.Book
	Logger    *slog.Logger
	ExportDir string
	TopN      int
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel opening on the welcome splash.
func newAppModel(opts Options) AppModel {
	splash := welcome.New(func() screen.Screen {
		return run.New(opts.Engine, opts.Book, run.Options{
			TopN:      opts.TopN,
			ExportDir: opts.ExportDir,
		})
	})
	return AppModel{
		router: router.New(splash),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current terminal size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status(), m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// status returns the header status of the nearest screen that owns a run,
// so overlays keep showing the score beneath them.
func (m AppModel) status() layout.Status {
	for _, s := range m.router.Stack() {
		if p, ok := s.(screen.StatusProvider); ok {
			return p.Status()
		}
	}
	return layout.Status{}
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "any key", Description: "Start"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	opts.Logger.Info("starting game", "nodes", opts.Engine.Catalog().NodeCount(), "gate", opts.Engine.Rules().Gate)

	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		opts.Logger.Error("program exited", "error", err)
		return err
	}
	opts.Logger.Info("game closed")
	return nil
}
