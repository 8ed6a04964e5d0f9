package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/waddle/internal/ui/theme"
)

// ChoiceLabels are the letters shown beside each option.
var ChoiceLabels = []string{"A", "B", "C", "D"}

// MultiChoice is a multiple-choice selector component. Once Chosen is set
// the component is locked and shows the verdict.
type MultiChoice struct {
	Options      []string
	CorrectIndex int
	Selected     int
	ChosenIndex  int
	Width        int
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(options []string, correctIndex int) MultiChoice {
	return MultiChoice{
		Options:      options,
		CorrectIndex: correctIndex,
		Selected:     0,
		ChosenIndex:  -1,
	}
}

// Submitted reports whether a choice has been locked in.
func (m MultiChoice) Submitted() bool {
	return m.ChosenIndex >= 0
}

// Update handles cursor movement. It returns the index to submit, or -1
// when the key did not pick an option.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, int) {
	if m.Submitted() {
		return m, -1
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, -1
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
		return m, -1
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
		return m, -1
	case "enter":
		return m, m.Selected
	}

	if idx := ChoiceIndex(key); idx >= 0 && idx < len(m.Options) {
		m.Selected = idx
		return m, idx
	}
	return m, -1
}

// ChoiceIndex maps "1"-"4" and "a"-"d" to an option index, or -1.
func ChoiceIndex(key string) int {
	if len(key) != 1 {
		return -1
	}
	c := key[0]
	switch {
	case c >= '1' && c <= '4':
		return int(c - '1')
	case c >= 'a' && c <= 'd':
		return int(c - 'a')
	}
	return -1
}

// View renders the multiple-choice component.
func (m MultiChoice) View() string {
	var b strings.Builder

	lineStyle := lipgloss.NewStyle()
	if m.Width > 0 {
		lineStyle = lineStyle.Width(m.Width)
	}

	for i, opt := range m.Options {
		label := ChoiceLabels[i%len(ChoiceLabels)]
		prefix := "  "
		if i == m.Selected && !m.Submitted() {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s)  %s", prefix, label, opt)

		var style lipgloss.Style
		switch {
		case m.Submitted() && i == m.CorrectIndex:
			style = lineStyle.Foreground(theme.Success).Bold(true)
		case m.Submitted() && i == m.ChosenIndex:
			style = lineStyle.Foreground(theme.Error).Bold(true)
		case m.Submitted():
			style = lineStyle.Foreground(theme.TextDim)
		case i == m.Selected:
			style = lineStyle.Foreground(theme.Primary).Bold(true)
		default:
			style = lineStyle.Foreground(theme.Text)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

// IsCorrect returns true if the user chose the correct answer.
func (m MultiChoice) IsCorrect() bool {
	return m.Submitted() && m.ChosenIndex == m.CorrectIndex
}
