package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"trustview/internal/transparency"
	"trustview/internal/types"
)

// RenderCounters draws the Total / Success / Failed / Pending cards.
func RenderCounters(c transparency.Counters, s Styles) string {
	card := func(label string, n int, value lipgloss.Style) string {
		body := value.Render(humanize.Comma(int64(n))) + "\n" + s.Muted.Render(label)
		return s.Card.Width(16).Render(body)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("Total", c.Total, s.Bold),
		card("Success", c.Success, s.StatusStyle(types.StatusSuccess)),
		card("Failed", c.Failed, s.StatusStyle(types.StatusFailed)),
		card("Pending", c.Pending, s.StatusStyle(types.StatusPending)),
	)
}
