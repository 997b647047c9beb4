package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/roach88/taskstore/internal/store"
)

// taskStyles renders tasks for text output. Styles are bound to the output
// writer, so piped or captured output carries no escape codes.
type taskStyles struct {
	pending  lipgloss.Style
	done     lipgloss.Style
	doneText lipgloss.Style
	id       lipgloss.Style
}

func newTaskStyles(w io.Writer) taskStyles {
	r := lipgloss.NewRenderer(w)
	return taskStyles{
		pending:  r.NewStyle().Foreground(lipgloss.Color("3")),
		done:     r.NewStyle().Foreground(lipgloss.Color("2")),
		doneText: r.NewStyle().Strikethrough(true).Faint(true),
		id:       r.NewStyle().Faint(true),
	}
}

// task renders one line: "[ ] 1 Example task" or "[x] 1 Example task".
func (s taskStyles) task(t store.Task) string {
	box, text := s.pending.Render("[ ]"), t.Text
	if t.Completed {
		box, text = s.done.Render("[x]"), s.doneText.Render(t.Text)
	}
	return box + " " + s.id.Render(strconv.FormatInt(t.ID, 10)) + " " + text
}

func (s taskStyles) list(tasks []store.Task) string {
	if len(tasks) == 0 {
		return "No tasks."
	}
	lines := make([]string, len(tasks))
	for i, t := range tasks {
		lines[i] = s.task(t)
	}
	return strings.Join(lines, "\n")
}
