package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/waddle/internal/ui/theme"
)

// Segment is the state of one node on the track.
type Segment int

const (
	SegmentAhead Segment = iota
	SegmentOpen
	SegmentCorrect
	SegmentWrong
)

// NodeTrack draws the run path as one bar segment per node, led by a
// "Node 3/6" label.
type NodeTrack struct {
	Segments []Segment
	Current  int
	Width    int
}

// NewNodeTrack creates a track with current clamped to the segment range.
func NewNodeTrack(segments []Segment, current, width int) NodeTrack {
	current = max(0, min(current, len(segments)-1))
	return NodeTrack{Segments: segments, Current: current, Width: width}
}

// Label returns the 1-based position, e.g. "Node 3/6".
func (t NodeTrack) Label() string {
	return fmt.Sprintf("Node %d/%d", t.Current+1, len(t.Segments))
}

// View renders the label and the segments.
func (t NodeTrack) View() string {
	if len(t.Segments) == 0 {
		return ""
	}
	label := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(t.Label()) + "  "

	n := len(t.Segments)
	segWidth := (t.Width - lipgloss.Width(label) - (n - 1)) / n
	if segWidth < 2 {
		segWidth = 2
	}

	parts := make([]string, n)
	for i, seg := range t.Segments {
		fill := " "
		if i == t.Current {
			fill = "▼"
		}
		parts[i] = lipgloss.NewStyle().
			Background(segmentColor(seg)).
			Foreground(theme.Text).
			Render(centerFill(fill, segWidth))
	}
	return label + strings.Join(parts, " ")
}

func segmentColor(s Segment) color.Color {
	switch s {
	case SegmentCorrect:
		return theme.Success
	case SegmentWrong:
		return theme.Error
	case SegmentOpen:
		return theme.Secondary
	default:
		return theme.Border
	}
}

// centerFill returns a blank run of width with mark in the middle.
func centerFill(mark string, width int) string {
	if mark == " " {
		return strings.Repeat(" ", width)
	}
	left := (width - 1) / 2
	return strings.Repeat(" ", left) + mark + strings.Repeat(" ", width-left-1)
}
