package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"trustview/internal/types"
)

// TimestampLayout is how the activity log shows created_at.
const TimestampLayout = "2 Jan 2006, 3:04:05 PM"

// SortMode orders the activity log.
type SortMode int

const (
	SortNewest SortMode = iota
	SortOldest
	SortStatus
)

func (s SortMode) String() string {
	switch s {
	case SortOldest:
		return "oldest first"
	case SortStatus:
		return "by status"
	default:
		return "newest first"
	}
}

// statusRank groups failures first when sorting by status.
func statusRank(s types.Status) int {
	switch s {
	case types.StatusFailed:
		return 0
	case types.StatusPending:
		return 1
	case types.StatusSuccess:
		return 2
	default:
		return 3
	}
}

// ActivityPageModel is the sortable, filterable activity log.
type ActivityPageModel struct {
	table       table.Model
	filterInput textinput.Model
	filtering   bool

	intents []types.Intent
	visible []types.Intent
	sort    SortMode
	loc     *time.Location

	styles Styles
	layout LayoutConfig
}

// NewActivityPageModel creates an empty activity log.
func NewActivityPageModel(styles Styles, loc *time.Location) ActivityPageModel {
	if loc == nil {
		loc = time.Local
	}
	layout := NewLayoutConfig(MinimumTerminalWidth, MinimumTerminalHeight)

	t := table.New(
		table.WithColumns(columnsFor(layout)),
		table.WithFocused(true),
		table.WithHeight(layout.TableHeight()),
	)

	fi := textinput.New()
	fi.Prompt = "/ "
	fi.Placeholder = "filter by intent id or message"
	fi.CharLimit = 80
	fi.Width = 40

	m := ActivityPageModel{
		table:       t,
		filterInput: fi,
		loc:         loc,
		styles:      styles,
		layout:      layout,
	}
	m.applyTableStyles(types.Status(""))
	return m
}

func columnsFor(l LayoutConfig) []table.Column {
	return []table.Column{
		{Title: "Timestamp", Width: TimestampColWidth},
		{Title: "Status", Width: StatusColWidth},
		{Title: "Intent ID", Width: l.IntentIDWidth()},
		{Title: "Message", Width: l.MessageColWidth()},
	}
}

// SetSize resizes the table.
func (m *ActivityPageModel) SetSize(w, h int) {
	m.layout = NewLayoutConfig(w, h)
	m.table.SetColumns(columnsFor(m.layout))
	m.table.SetHeight(m.layout.TableHeight())
	m.table.SetWidth(m.layout.TerminalWidth)
}

// SetIntents replaces the data, keeping the selection on the same intent
// when it is still present.
func (m *ActivityPageModel) SetIntents(intents []types.Intent) {
	selected := ""
	if in := m.Selected(); in != nil {
		selected = in.IntentID
	}
	m.intents = intents
	m.rebuild(selected)
}

// Intents returns the unfiltered data.
func (m ActivityPageModel) Intents() []types.Intent {
	return m.intents
}

// Visible returns the rows currently shown, in display order.
func (m ActivityPageModel) Visible() []types.Intent {
	return m.visible
}

// Selected returns the highlighted intent, or nil.
func (m ActivityPageModel) Selected() *types.Intent {
	c := m.table.Cursor()
	if c < 0 || c >= len(m.visible) {
		return nil
	}
	in := m.visible[c]
	return &in
}

// SortMode returns the current order.
func (m ActivityPageModel) SortMode() SortMode {
	return m.sort
}

// CycleSort advances to the next sort mode.
func (m *ActivityPageModel) CycleSort() {
	m.sort = (m.sort + 1) % 3
	m.rebuild("")
}

// Filtering reports whether the filter input has focus.
func (m ActivityPageModel) Filtering() bool {
	return m.filtering
}

// FilterValue returns the current filter text.
func (m ActivityPageModel) FilterValue() string {
	return m.filterInput.Value()
}

// FocusFilter gives the filter input focus.
func (m *ActivityPageModel) FocusFilter() tea.Cmd {
	m.filtering = true
	return m.filterInput.Focus()
}

// ClearFilter drops the filter text and leaves filter mode.
func (m *ActivityPageModel) ClearFilter() {
	m.filtering = false
	m.filterInput.Blur()
	m.filterInput.SetValue("")
	m.rebuild("")
}

// Update handles table navigation and filter typing.
func (m ActivityPageModel) Update(msg tea.Msg) (ActivityPageModel, tea.Cmd) {
	var cmd tea.Cmd

	if m.filtering {
		if km, ok := msg.(tea.KeyMsg); ok {
			switch km.Type {
			case tea.KeyEsc:
				m.ClearFilter()
				return m, nil
			case tea.KeyEnter:
				m.filtering = false
				m.filterInput.Blur()
				return m, nil
			}
		}
		m.filterInput, cmd = m.filterInput.Update(msg)
		m.rebuild("")
		return m, cmd
	}

	m.table, cmd = m.table.Update(msg)
	if in := m.Selected(); in != nil {
		m.applyTableStyles(in.Status)
	}
	return m, cmd
}

// rebuild sorts, filters and pushes rows into the table.
func (m *ActivityPageModel) rebuild(keepID string) {
	sorted := make([]types.Intent, len(m.intents))
	copy(sorted, m.intents)

	switch m.sort {
	case SortOldest:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CreatedAt < sorted[j].CreatedAt })
	case SortStatus:
		sort.SliceStable(sorted, func(i, j int) bool {
			ri, rj := statusRank(sorted[i].Status), statusRank(sorted[j].Status)
			if ri != rj {
				return ri < rj
			}
			return sorted[i].CreatedAt > sorted[j].CreatedAt
		})
	default:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CreatedAt > sorted[j].CreatedAt })
	}

	m.visible = filterIntents(sorted, m.filterInput.Value())

	rows := make([]table.Row, 0, len(m.visible))
	cursor := 0
	for i, in := range m.visible {
		if in.IntentID == keepID {
			cursor = i
		}
		rows = append(rows, table.Row{
			FormatTimestamp(in.CreatedAt, m.loc),
			fmt.Sprintf("%s %s", StatusGlyph(in.Status), in.Status),
			in.IntentID,
			strings.ReplaceAll(in.Message, "\n", " "),
		})
	}
	m.table.SetRows(rows)
	if len(rows) > 0 {
		m.table.SetCursor(cursor)
		m.applyTableStyles(m.visible[cursor].Status)
	}
}

// filterIntents keeps intents whose id or message fuzzy-matches pattern,
// preserving the incoming order.
func filterIntents(intents []types.Intent, pattern string) []types.Intent {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return intents
	}

	haystack := make([]string, len(intents))
	for i, in := range intents {
		haystack[i] = in.IntentID + " " + in.Message
	}

	matches := fuzzy.Find(pattern, haystack)
	keep := make([]bool, len(intents))
	for _, match := range matches {
		keep[match.Index] = true
	}

	out := make([]types.Intent, 0, len(matches))
	for i, in := range intents {
		if keep[i] {
			out = append(out, in)
		}
	}
	return out
}

// applyTableStyles colors the selected row with its status color.
func (m *ActivityPageModel) applyTableStyles(selected types.Status) {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderForeground(m.styles.Theme.Border).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(m.styles.StatusColor(selected)).
		Bold(true)
	m.table.SetStyles(s)
}

// FormatTimestamp renders epoch seconds in the activity log layout.
func FormatTimestamp(epoch int64, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(epoch, 0).In(loc).Format(TimestampLayout)
}

// View renders the filter line and the table.
func (m ActivityPageModel) View() string {
	var sb strings.Builder

	switch {
	case m.filtering:
		sb.WriteString(m.filterInput.View())
	case m.filterInput.Value() != "":
		sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("filter: %q (%d of %d) · %s",
			m.filterInput.Value(), len(m.visible), len(m.intents), m.sort)))
	default:
		sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("%d intents · %s", len(m.intents), m.sort)))
	}
	sb.WriteString("\n")

	if len(m.visible) == 0 {
		if len(m.intents) == 0 {
			sb.WriteString(m.styles.Warning.Render("No intents found or server unreachable."))
		} else {
			sb.WriteString(m.styles.Muted.Render("No intents match the filter."))
		}
		return sb.String()
	}

	sb.WriteString(m.table.View())
	return sb.String()
}
