// Package ui provides the bubbletea dashboard for trustview: overview
// counters, the activity log, and the per-intent trust report.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"trustview/internal/types"
)

var (
	// Light Mode Colors (Default)
	LightForeground = lipgloss.Color("#101F38")
	LightPrimary    = lipgloss.Color("#101F38")
	LightAccent     = lipgloss.Color("#3b82f6")
	LightMuted      = lipgloss.Color("#6b7280")
	LightBorder     = lipgloss.Color("#d1d5db")
	LightCard       = lipgloss.Color("#ffffff")

	// Dark Mode Colors
	DarkForeground = lipgloss.Color("#f2f2f2")
	DarkPrimary    = lipgloss.Color("#93c5fd")
	DarkAccent     = lipgloss.Color("#60a5fa")
	DarkMuted      = lipgloss.Color("#9ca3af")
	DarkBorder     = lipgloss.Color("#374151")
	DarkCard       = lipgloss.Color("#1f2937")

	// Status colors (same in both modes)
	StatusGreen  = lipgloss.Color("#2ecc71")
	StatusRed    = lipgloss.Color("#e74c3c")
	StatusOrange = lipgloss.Color("#f39c12")
	StatusGrey   = lipgloss.Color("#95a5a6")
)

// Theme holds the current color scheme
type Theme struct {
	Name       string
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Name:       "light",
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Muted:      LightMuted,
		Border:     LightBorder,
		Card:       LightCard,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Name:       "dark",
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Card:       DarkCard,
		IsDark:     true,
	}
}

// DetectTheme resolves a ui.theme value. "auto" inspects COLORFGBG and
// TRUSTVIEW_DARK_MODE and falls back to light.
func DetectTheme(pref string) Theme {
	switch strings.ToLower(pref) {
	case "dark":
		return DarkTheme()
	case "light":
		return LightTheme()
	}

	// Format is usually "foreground;background"
	if parts := strings.Split(os.Getenv("COLORFGBG"), ";"); len(parts) == 2 {
		if bg, err := strconv.Atoi(parts[1]); err == nil {
			if (bg >= 0 && bg <= 6) || bg == 8 {
				return DarkTheme()
			}
		}
	}

	if os.Getenv("TRUSTVIEW_DARK_MODE") == "1" {
		return DarkTheme()
	}

	return LightTheme()
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	// Layout
	Header lipgloss.Style
	Footer lipgloss.Style

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style

	// Status
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Components
	Card    lipgloss.Style
	Banner  lipgloss.Style
	Spinner lipgloss.Style
	Divider lipgloss.Style
	Badge   lipgloss.Style

	// status is resolved once per Status; see StatusStyle.
	status map[types.Status]lipgloss.Style
	other  lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	s := Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Success: lipgloss.NewStyle().Foreground(StatusGreen).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(StatusRed).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(StatusOrange).Bold(true),
		Info:    lipgloss.NewStyle().Foreground(theme.Accent),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 2).
			Align(lipgloss.Center),

		Banner: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(StatusRed).
			PaddingLeft(1),

		Spinner: lipgloss.NewStyle().Foreground(theme.Accent),
		Divider: lipgloss.NewStyle().Foreground(theme.Border),

		Badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1).
			Bold(true),
	}

	s.status = map[types.Status]lipgloss.Style{
		types.StatusSuccess: lipgloss.NewStyle().Foreground(StatusGreen).Bold(true),
		types.StatusFailed:  lipgloss.NewStyle().Foreground(StatusRed).Bold(true),
		types.StatusPending: lipgloss.NewStyle().Foreground(StatusOrange).Bold(true),
	}
	s.other = lipgloss.NewStyle().Foreground(StatusGrey).Bold(true)
	return s
}

// DefaultStyles returns styles for the auto-detected theme
func DefaultStyles() Styles {
	return NewStyles(DetectTheme("auto"))
}

// StatusStyle returns the style for an intent or step status. Unknown
// statuses share the grey "other" style.
func (s Styles) StatusStyle(status types.Status) lipgloss.Style {
	if !status.IsKnown() {
		return s.other
	}
	return s.status[status]
}

// StatusColor returns the foreground color StatusStyle uses.
func (s Styles) StatusColor(status types.Status) lipgloss.TerminalColor {
	return s.StatusStyle(status).GetForeground()
}

// RenderStatus renders a status label in its color.
func (s Styles) RenderStatus(status types.Status) string {
	label := string(status)
	if label == "" {
		label = "unknown"
	}
	return s.StatusStyle(status).Render(label)
}

// RenderDivider returns a horizontal divider
func (s Styles) RenderDivider(width int) string {
	if width <= 0 {
		return ""
	}
	return s.Divider.Render(strings.Repeat("─", width))
}

// GlamourStyle picks the markdown style matching the theme.
func (s Styles) GlamourStyle() string {
	if s.Theme.IsDark {
		return "dark"
	}
	return "light"
}

// StatusGlyph is the plain-text marker used where ANSI styling cannot be
// embedded, such as bubbles table cells.
func StatusGlyph(status types.Status) string {
	switch status {
	case types.StatusSuccess:
		return "✔"
	case types.StatusFailed:
		return "✘"
	case types.StatusPending:
		return "…"
	default:
		return "?"
	}
}
