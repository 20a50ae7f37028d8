package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/nconklindev/sheetcsv/internal/types"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// Notifier prints one line per event instead of blocking on a dialog, so a
// batch of hundreds of files stays readable. Terminal events are boxed.
type Notifier struct {
	w        io.Writer
	progress progress.Model
	width    int
}

func NewNotifier(w io.Writer, width int) *Notifier {
	if width <= 0 {
		width = 80
	}
	return &Notifier{
		w:        w,
		progress: progress.New(progress.WithGradient("#FF8C42", "#FF9F5A"), progress.WithWidth(24)),
		width:    width,
	}
}

func (n *Notifier) Notify(ev types.Event) {
	switch ev.Kind {
	case types.EventFileOutcome:
		fmt.Fprintln(n.w, n.fileLine(ev))
	default:
		fmt.Fprintln(n.w, n.box(ev))
	}
}

func (n *Notifier) fileLine(ev types.Event) string {
	var s strings.Builder
	if ev.Total > 0 {
		s.WriteString(n.progress.ViewAs(float64(ev.Index) / float64(ev.Total)))
		s.WriteString(" ")
		s.WriteString(SubtitleStyle.Render(fmt.Sprintf("[%d/%d]", ev.Index, ev.Total)))
		s.WriteString(" ")
	}
	s.WriteString(severityStyle(ev.Severity).Render(symbol(ev.Severity)))
	s.WriteString(" ")
	s.WriteString(truncate(ev.Message, n.width-lipgloss.Width(s.String())))
	return s.String()
}

func (n *Notifier) box(ev types.Event) string {
	var s strings.Builder

	title := "✓ Complete"
	switch ev.Kind {
	case types.EventBatchAborted:
		title = "✗ Error"
	case types.EventNoDirectory:
		title = "! Warning"
	}
	s.WriteString(severityStyle(ev.Severity).Render(title))
	s.WriteString("\n\n")
	s.WriteString(lipgloss.NewStyle().Width(n.width - 8).Render(ev.Message))

	return BoxStyle.Render(s.String())
}

func severityStyle(sev types.Severity) lipgloss.Style {
	switch sev {
	case types.SeverityWarning:
		return WarningStyle
	case types.SeverityError:
		return ErrorStyle
	}
	return InfoStyle
}

func symbol(sev types.Severity) string {
	switch sev {
	case types.SeverityWarning:
		return "!"
	case types.SeverityError:
		return "✗"
	}
	return "✓"
}

// truncate cuts s to max cells, keeping the start.
func truncate(s string, max int) string {
	if max < 10 {
		max = 10
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

// truncatePath keeps the end of a path, which is the part that changes as
// the user navigates.
func truncatePath(p string, max int) string {
	if max < 30 {
		max = 30
	}
	r := []rune(p)
	if len(r) <= max {
		return p
	}
	return "..." + string(r[len(r)-max+3:])
}
