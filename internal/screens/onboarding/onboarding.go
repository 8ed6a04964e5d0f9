package onboarding

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/waddle/internal/catalog"
	"github.com/abhisek/waddle/internal/records"
	"github.com/abhisek/waddle/internal/router"
	"github.com/abhisek/waddle/internal/screen"
	"github.com/abhisek/waddle/internal/ui/components"
	"github.com/abhisek/waddle/internal/ui/layout"
	"github.com/abhisek/waddle/internal/ui/theme"
)

const maxNameLen = 32

// PlayerNameMsg announces a newly saved player name to every screen on
// the stack.
type PlayerNameMsg struct {
	Name string
}

func (PlayerNameMsg) StackMsg() {}

type savedMsg struct {
	name string
	err  error
}

// OnboardingScreen asks for the player's name and explains the WADDLE
// categories. Esc dismisses it without saving.
type OnboardingScreen struct {
	book       *records.Book
	categories []catalog.Category
	input      components.TextInput
	saving     bool
	errMsg     string
}

var _ screen.Screen = (*OnboardingScreen)(nil)
var _ screen.KeyHintProvider = (*OnboardingScreen)(nil)

// New creates the onboarding screen.
func New(book *records.Book, categories []catalog.Category) *OnboardingScreen {
	return &OnboardingScreen{
		book:       book,
		categories: categories,
		input:      components.NewTextInput("Your name", maxNameLen),
	}
}

func (s *OnboardingScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *OnboardingScreen) Title() string {
	return "Welcome aboard"
}

func (s *OnboardingScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Skip"},
	}
}

func (s *OnboardingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		s.saving = false
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		name := msg.name
		return s, tea.Batch(
			func() tea.Msg { return router.PopScreenMsg{} },
			func() tea.Msg { return PlayerNameMsg{Name: name} },
		)

	case tea.KeyMsg:
		if msg.String() == "enter" {
			return s, s.submit()
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// submit saves a non-empty trimmed name. Blank input is ignored.
func (s *OnboardingScreen) submit() tea.Cmd {
	name := s.input.Trimmed()
	if name == "" || s.saving {
		return nil
	}
	s.saving = true
	s.errMsg = ""
	book := s.book
	return func() tea.Msg {
		return savedMsg{name: name, err: book.SetPlayerName(context.Background(), name)}
	}
}

func (s *OnboardingScreen) View(width, height int) string {
	var b strings.Builder

	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Text).Bold(true).
		Render("Follow the data as it waddles through the system."))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).
		Render("At each stop, pick the mitigation that stops the threat."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderGuide()))
	b.WriteString("\n\n")

	prompt := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Name: ")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, prompt+s.input.View()))
	b.WriteString("\n")

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.Error).Render("Could not save name: " + s.errMsg))
	}

	return b.String()
}

// renderGuide renders the WADDLE to STRIDE mapping table.
func (s *OnboardingScreen) renderGuide() string {
	var b strings.Builder

	head := lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true)
	b.WriteString(head.Render(fmt.Sprintf("%-4s %-22s %s", "", "WADDLE", "STRIDE")))
	b.WriteString("\n")

	for _, c := range s.categories {
		badge := theme.Badge(c.Letter(), theme.CategoryColor(c.ColorTag))
		line := fmt.Sprintf(" %-22s %s", c.Name, c.Stride)
		b.WriteString(badge)
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
