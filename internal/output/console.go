package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Console writes the live transcript of a run. Styling is applied only when
// the underlying writer is a terminal.
type Console struct {
	out     io.Writer
	command lipgloss.Style
	pass    lipgloss.Style
	fail    lipgloss.Style
}

// NewConsole creates a Console writing to out.
func NewConsole(out io.Writer) *Console {
	if out == nil {
		out = io.Discard
	}
	r := lipgloss.NewRenderer(out)
	return &Console{
		out:     out,
		command: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")),
		pass:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#3FB950")),
		fail:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")),
	}
}

// Writer exposes the raw writer used for streamed command output.
func (c *Console) Writer() io.Writer {
	return c.out
}

// Command announces a command before it starts.
func (c *Console) Command(printable string) {
	fmt.Fprintf(c.out, "\n%s\n", c.command.Render("$ "+printable))
}

// Status prints a one-line pass/fail banner.
func (c *Console) Status(ok bool, msg string) {
	if ok {
		fmt.Fprintln(c.out, c.pass.Render(statusGlyph("passed")+" "+msg))
		return
	}
	fmt.Fprintln(c.out, c.fail.Render(statusGlyph("failed")+" "+msg))
}

func statusGlyph(status string) string {
	switch status {
	case "passed":
		return "✓"
	case "failed":
		return "✗"
	default:
		return "•"
	}
}
