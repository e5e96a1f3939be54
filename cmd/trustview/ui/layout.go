package ui

// Layout constants for viewport and panel sizing
const (
	HeaderHeight   = 1
	CountersHeight = 4
	FooterHeight   = 2
	BannerHeight   = 3
	FilterHeight   = 1

	// Activity table column widths
	TimestampColWidth = 24
	StatusColWidth    = 11
	IntentIDColWidth  = 38
	MinMessageWidth   = 20

	MinimumTerminalWidth  = 80
	MinimumTerminalHeight = 20
	CompactModeWidth      = 100
)

// LayoutConfig provides computed layout dimensions based on terminal size
type LayoutConfig struct {
	TerminalWidth  int
	TerminalHeight int
	IsCompact      bool
}

// NewLayoutConfig creates a layout configuration for the given terminal size
func NewLayoutConfig(width, height int) LayoutConfig {
	if width < MinimumTerminalWidth {
		width = MinimumTerminalWidth
	}
	if height < MinimumTerminalHeight {
		height = MinimumTerminalHeight
	}
	return LayoutConfig{
		TerminalWidth:  width,
		TerminalHeight: height,
		IsCompact:      width < CompactModeWidth,
	}
}

// BodyHeight is what remains for a page below the header and counters.
func (l LayoutConfig) BodyHeight() int {
	return l.TerminalHeight - HeaderHeight - CountersHeight - FooterHeight
}

// TableHeight leaves room for the filter line and the table header.
func (l LayoutConfig) TableHeight() int {
	h := l.BodyHeight() - FilterHeight - 2
	if h < 3 {
		return 3
	}
	return h
}

// MessageColWidth fills the remaining width with the message column.
func (l LayoutConfig) MessageColWidth() int {
	used := TimestampColWidth + StatusColWidth + 8
	if !l.IsCompact {
		used += IntentIDColWidth
	} else {
		used += IntentIDColWidth / 2
	}
	w := l.TerminalWidth - used
	if w < MinMessageWidth {
		return MinMessageWidth
	}
	return w
}

// IntentIDWidth shrinks the id column on narrow terminals.
func (l LayoutConfig) IntentIDWidth() int {
	if l.IsCompact {
		return IntentIDColWidth / 2
	}
	return IntentIDColWidth
}
