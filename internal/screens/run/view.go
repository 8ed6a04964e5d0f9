package run

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/waddle/internal/game"
	"github.com/abhisek/waddle/internal/ui/components"
	"github.com/abhisek/waddle/internal/ui/theme"
)

func (s *RunScreen) View(width, height int) string {
	var body string
	switch {
	case s.confirmRestart:
		body = renderRestartConfirm(width)
	case s.state.Completed():
		body = s.renderCompletion(width)
	default:
		body = s.renderRun(width)
	}

	if s.statusLine != "" {
		body += "\n" + lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Italic(true).
			Render(s.statusLine)
	}
	return body
}

// renderRun renders the data-flow strip and the threat panel.
func (s *RunScreen) renderRun(width int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderFlow(width-4)))
	b.WriteString("\n\n")

	track := components.NewNodeTrack(s.segments(), s.state.Position, min(width-8, 60))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, track.View()))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", width)))
	b.WriteString("\n\n")

	panelWidth := min(width-8, 76)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderThreat(panelWidth)))

	if s.state.Blocked {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Bold(true).
			Render("Answer the threat before moving on."))
	}

	if s.jumping {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(fmt.Sprintf("Jump to node 1-%d", s.engine.Catalog().NodeCount())))
	}

	return b.String()
}

// renderFlow renders the node strip with the current node highlighted.
func (s *RunScreen) renderFlow(width int) string {
	arrow := lipgloss.NewStyle().Foreground(theme.TextDim).Render(" → ")

	var parts []string
	for _, n := range s.engine.Catalog().Nodes() {
		label := fmt.Sprintf("%d %s", n.Ordinal+1, n.Label)
		style := lipgloss.NewStyle().Padding(0, 1)
		switch {
		case n.Ordinal == s.state.Position:
			style = style.Background(theme.Primary).Foreground(theme.Text).Bold(true)
		case s.cleared(n.ID):
			style = style.Foreground(theme.Success)
		default:
			style = style.Foreground(theme.TextDim)
		}
		parts = append(parts, style.Render(label))
	}

	return lipgloss.NewStyle().MaxWidth(width).Render(strings.Join(parts, arrow))
}

// segments maps each node's standing to a track segment.
func (s *RunScreen) segments() []components.Segment {
	standings := s.engine.Standings(s.state)
	out := make([]components.Segment, len(standings))
	for i, st := range standings {
		switch st {
		case game.StandingOpen:
			out[i] = components.SegmentOpen
		case game.StandingCorrect:
			out[i] = components.SegmentCorrect
		case game.StandingWrong:
			out[i] = components.SegmentWrong
		}
	}
	return out
}

// cleared reports whether the node has been visited and its gate opened.
func (s *RunScreen) cleared(nodeID string) bool {
	a, visited := s.state.Assigned[nodeID]
	if !visited {
		return false
	}
	answer, answered := game.AnswerFor(s.state, a)
	return game.CanAdvance(s.engine.Rules().Gate, a, answer, answered)
}

func (s *RunScreen) renderThreat(width int) string {
	node := s.engine.CurrentNode(s.state)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(node.Label))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("  " + node.Description))
	b.WriteString("\n\n")

	a := s.engine.CurrentAssignment(s.state)
	if a == nil {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).
			Render("No threat waddles here. Press → to continue."))
		return panel(width, b.String())
	}

	if c, ok := s.engine.Catalog().Category(a.Threat.CategoryCode); ok {
		b.WriteString(theme.Badge(c.Letter(), theme.CategoryColor(c.ColorTag)))
		b.WriteString(" ")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("%s (%s)", c.Name, c.Stride)))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().Width(width - 4).Foreground(theme.Text).Bold(true).Render(a.Threat.Prompt))
	b.WriteString("\n\n")

	choice := s.choice
	choice.Width = width - 4
	b.WriteString(choice.View())

	if s.engine.HintShown(s.state) {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(width - 4).Foreground(theme.Accent).Italic(true).
			Render("Hint: " + a.Threat.Hint))
		b.WriteString("\n")
	}

	if answer, ok := game.AnswerFor(s.state, a); ok {
		b.WriteString("\n")
		if a.IsCorrect(answer) {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Bold(true).
				Render("Correct! Waddling on..."))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Bold(true).
				Render("Not quite. The mitigation is: " + a.Threat.Mitigation))
		}
	}

	return panel(width, b.String())
}

func panel(width int, content string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Width(width).
		Render(content)
}

// renderCompletion renders the end-of-run summary.
func (s *RunScreen) renderCompletion(width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n")

	if s.state.Reason == game.ReasonLivesExhausted {
		b.WriteString(center.Foreground(theme.Error).Bold(true).Render("Out of lives!"))
	} else {
		b.WriteString(center.Foreground(theme.Success).Bold(true).Render("The data made it through!"))
	}
	b.WriteString("\n\n")

	stats := fmt.Sprintf("Score %d   Lives left %d   Hints used %d",
		s.state.Score, s.state.Lives, s.state.HintsUsed())
	b.WriteString(center.Foreground(theme.Text).Render(stats))
	b.WriteString("\n\n")

	inner := min(width-8, 76)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderRequirements(inner)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderTop(inner)))

	return b.String()
}

func (s *RunScreen) renderRequirements(width int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("Security requirements"))
	b.WriteString("\n")

	reqs := s.engine.Requirements(s.state)
	if len(reqs) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("No threats answered."))
		return lipgloss.NewStyle().Width(width).Render(b.String())
	}

	for _, r := range reqs {
		mark := lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		if !r.Correct {
			mark = lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
		line := fmt.Sprintf("%s [%s] %s: %s", mark, r.CategoryCode, r.NodeLabel, r.Mitigation)
		if r.Hinted {
			line += lipgloss.NewStyle().Foreground(theme.Accent).Render(" (hint)")
		}
		b.WriteString(lipgloss.NewStyle().Width(width).Foreground(theme.Text).Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *RunScreen) renderTop(width int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("Top %d", s.opts.TopN)))
	b.WriteString("\n")

	if s.top == nil {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Saving..."))
		return b.String()
	}
	for i, e := range s.top {
		line := fmt.Sprintf("%d. %-20s %4d  %s", i+1, e.Name, e.Score, e.Date.Local().Format("Jan 02 15:04"))
		b.WriteString(lipgloss.NewStyle().Width(width).Foreground(theme.Text).Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func renderRestartConfirm(width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(center.Foreground(theme.Text).Bold(true).Render("Restart the run?"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render("This run is logged as reset and you will be asked for a name again."))
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.Success).Render("[Y] Yes, restart"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Primary).Render("[N] No, keep going"))
	return b.String()
}
