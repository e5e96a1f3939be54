package ui

import (
	"strings"
	"testing"
)

func TestSimpleTableView(t *testing.T) {
	tbl := NewSimpleTable("Activity", []string{"Status", "Intent ID"})
	if tbl.View(NewStyles(LightTheme())) != "" {
		t.Fatalf("empty table should render nothing")
	}

	tbl.AddRow("success", "intent-1")
	tbl.AddRow("failed") // short rows are padded
	view := tbl.View(NewStyles(LightTheme()))

	for _, s := range []string{"Activity", "Status", "Intent ID", "success", "intent-1", "failed"} {
		if !strings.Contains(view, s) {
			t.Fatalf("expected %q in table", s)
		}
	}
	if lines := strings.Count(view, "\n"); lines != 5 {
		t.Fatalf("expected title, header, divider and two rows, got %d lines", lines)
	}
}

func TestSimpleTableTruncatesWideCells(t *testing.T) {
	tbl := NewSimpleTable("", []string{"Message"})
	tbl.MaxCellWidth = 8
	tbl.AddRow("execution reverted: out of gas")

	if got := tbl.Rows[0][0]; got != "executi…" {
		t.Fatalf("expected truncated cell, got %q", got)
	}
}

func TestTruncateCellLeavesStyledText(t *testing.T) {
	styled := "\x1b[1mbold text that is long\x1b[0m"
	if got := TruncateCell(styled, 4); got != styled {
		t.Fatalf("styled text must not be cut")
	}
	if got := TruncateCell("abc", 0); got != "abc" {
		t.Fatalf("zero width disables truncation")
	}
}
