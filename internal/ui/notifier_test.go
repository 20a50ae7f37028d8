package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/nconklindev/sheetcsv/internal/types"
)

func containsText(s, sub string) bool {
	return strings.Contains(ansi.Strip(s), sub)
}

func TestNotifierFileEvents(t *testing.T) {
	var buf bytes.Buffer
	n := NewNotifier(&buf, 200)

	n.Notify(types.Event{
		Kind:     types.EventFileOutcome,
		Severity: types.SeverityInfo,
		Message:  "converted 'report.xlsx' to 'report.csv'",
		Outcome:  &types.ConversionOutcome{SourceFile: "report.xlsx"},
		Index:    1,
		Total:    2,
	})
	n.Notify(types.Event{
		Kind:     types.EventFileOutcome,
		Severity: types.SeverityError,
		Message:  "could not read 'bad.xlsx'",
		Outcome:  &types.ConversionOutcome{SourceFile: "bad.xlsx"},
		Index:    2,
		Total:    2,
	})

	lines := strings.Split(strings.TrimSpace(ansi.Strip(buf.String())), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines; want 2:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "[1/2] ✓ converted 'report.xlsx'") {
		t.Errorf("line 1 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "[2/2] ✗ could not read 'bad.xlsx'") {
		t.Errorf("line 2 = %q", lines[1])
	}
	if !strings.Contains(lines[1], "100%") {
		t.Errorf("line 2 should show a full progress bar: %q", lines[1])
	}
}

func TestNotifierTerminalEvents(t *testing.T) {
	tests := []struct {
		name  string
		event types.Event
		title string
	}{
		{"complete", types.Event{Kind: types.EventBatchComplete, Severity: types.SeverityInfo, Message: "All files processed"}, "Complete"},
		{"aborted", types.Event{Kind: types.EventBatchAborted, Severity: types.SeverityError, Message: "directory not found"}, "Error"},
		{"no directory", types.Event{Kind: types.EventNoDirectory, Severity: types.SeverityWarning, Message: "No input directory selected"}, "Warning"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewNotifier(&buf, 80).Notify(tt.event)

			if !containsText(buf.String(), tt.title) {
				t.Errorf("output missing title %q:\n%s", tt.title, buf.String())
			}
			if !containsText(buf.String(), tt.event.Message) {
				t.Errorf("output missing message %q:\n%s", tt.event.Message, buf.String())
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("converted 'a-very-long-name.xlsx'", 12); got != "converted..." {
		t.Errorf("truncate() = %q", got)
	}
	if got := truncate("short", 40); got != "short" {
		t.Errorf("truncate() = %q", got)
	}
}
