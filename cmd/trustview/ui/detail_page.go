package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/dustin/go-humanize"

	"trustview/internal/orchestrator"
	"trustview/internal/transparency"
	"trustview/internal/types"
)

// DetailPageModel shows the trust report for one intent.
type DetailPageModel struct {
	viewport viewport.Model
	styles   Styles
	loc      *time.Location
	now      func() time.Time

	glamourStyle string
	renderer     *glamour.TermRenderer
	rendererW    int
	cache        *RenderCache

	intentID string
	detail   *types.IntentDetail
	err      error
	loading  bool
	width    int
}

// NewDetailPageModel creates an empty detail page. glamourStyle is a
// glamour standard style name ("dark", "light", "notty").
func NewDetailPageModel(styles Styles, loc *time.Location, glamourStyle string) DetailPageModel {
	if loc == nil {
		loc = time.Local
	}
	if glamourStyle == "" {
		glamourStyle = styles.GlamourStyle()
	}
	return DetailPageModel{
		viewport:     viewport.New(MinimumTerminalWidth, MinimumTerminalHeight),
		styles:       styles,
		loc:          loc,
		now:          time.Now,
		glamourStyle: glamourStyle,
		cache:        NewRenderCache(32),
		width:        MinimumTerminalWidth,
	}
}

// SetSize updates the size of the viewport.
func (m *DetailPageModel) SetSize(w, h int) {
	l := NewLayoutConfig(w, h)
	m.width = l.TerminalWidth
	m.viewport.Width = l.TerminalWidth
	m.viewport.Height = l.BodyHeight() - 2 // header line and divider
	m.refreshContent()
}

// IntentID returns the intent being shown.
func (m DetailPageModel) IntentID() string {
	return m.intentID
}

// SetLoading switches to a new intent and clears the previous result.
func (m *DetailPageModel) SetLoading(intentID string) {
	if intentID != m.intentID {
		m.detail = nil
		m.viewport.GotoTop()
	}
	m.intentID = intentID
	m.err = nil
	m.loading = true
	m.refreshContent()
}

// SetDetail stores a fetch result. A result for another intent is ignored.
// A failed fetch drops the previous record so no stale report is shown.
func (m *DetailPageModel) SetDetail(intentID string, detail *types.IntentDetail, err error) {
	if intentID != m.intentID {
		return
	}
	m.loading = false
	m.err = err
	m.detail = nil
	if err == nil {
		m.detail = detail
	}
	m.refreshContent()
}

// Detail returns the loaded record, or nil.
func (m DetailPageModel) Detail() *types.IntentDetail {
	return m.detail
}

func (m *DetailPageModel) refreshContent() {
	switch {
	case m.err != nil:
		m.viewport.SetContent(m.renderError())
	case m.detail == nil && m.loading:
		m.viewport.SetContent(m.styles.Muted.Render("Loading details..."))
	case m.detail == nil:
		m.viewport.SetContent(m.styles.Muted.Render("Select an intent to see its trust report."))
	default:
		m.viewport.SetContent(m.renderReport())
	}
}

func (m *DetailPageModel) renderError() string {
	if errors.Is(m.err, orchestrator.ErrNotFound) {
		return m.styles.Warning.Render(fmt.Sprintf("Intent %s not found.", m.intentID))
	}
	ce := transparency.ClassifyTransportError(m.err)
	return m.styles.Warning.Render("Could not load details.") + "\n\n" + m.styles.Muted.Render(ce.Format())
}

func (m *DetailPageModel) renderReport() string {
	d := m.detail
	key := ComputeKey(d.IntentID, string(d.Status), d.Message, d.RawIntent, len(d.Steps),
		stepsFingerprint(d.Steps), m.width, m.glamourStyle, m.loc.String())

	return m.cache.GetOrCompute(key, func() string {
		md := transparency.FormatReport(*d, m.loc)
		r, err := m.markdownRenderer()
		if err != nil {
			return md
		}
		out, err := r.Render(md)
		if err != nil {
			return md
		}
		return strings.TrimRight(out, "\n")
	})
}

func stepsFingerprint(steps []types.Step) string {
	var sb strings.Builder
	for _, s := range steps {
		sb.WriteString(string(s.Status))
		sb.WriteString(s.TxHash)
		sb.WriteString(s.Error)
		sb.WriteByte('|')
	}
	return sb.String()
}

// markdownRenderer builds a glamour renderer for the current width,
// reusing it until the width changes.
func (m *DetailPageModel) markdownRenderer() (*glamour.TermRenderer, error) {
	if m.renderer != nil && m.rendererW == m.width {
		return m.renderer, nil
	}
	wrap := m.width - 4
	if wrap < 40 {
		wrap = 40
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.glamourStyle),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return nil, err
	}
	m.renderer = r
	m.rendererW = m.width
	return r, nil
}

// Header is the one-line summary above the report.
func (m DetailPageModel) Header() string {
	if m.detail == nil {
		return m.styles.Title.Render("Intent " + m.intentID)
	}
	created := time.Unix(m.detail.CreatedAt, 0)
	return fmt.Sprintf("%s  %s  %s",
		m.styles.Title.Render("Intent "+m.detail.IntentID),
		m.styles.RenderStatus(m.detail.Status),
		m.styles.Muted.Render(humanize.RelTime(created, m.now(), "ago", "from now")),
	)
}

// Update handles scrolling.
func (m DetailPageModel) Update(msg tea.Msg) (DetailPageModel, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the page.
func (m DetailPageModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.Header())
	sb.WriteString("\n")
	sb.WriteString(m.styles.RenderDivider(m.viewport.Width))
	sb.WriteString("\n")
	sb.WriteString(m.viewport.View())
	return sb.String()
}
