package console

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/kballard/go-shellquote"
)

// Tag identifies the external engine an invocation belongs to. Each tag
// renders in its own color so interleaved engine output stays readable.
type Tag string

const (
	TagFFmpeg  Tag = "ffmpeg"
	TagFFprobe Tag = "ffprobe"
	TagSox     Tag = "sox"
)

var (
	transcoderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("6")) // cyan

	effectsStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("5")) // magenta

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("1"))
)

func (t Tag) render() string {
	switch t {
	case TagSox:
		return effectsStyle.Render("[" + string(t) + "]")
	default:
		return transcoderStyle.Render("[" + string(t) + "]")
	}
}

// Printer writes operator-visible command traces
type Printer struct {
	out io.Writer
}

// NewPrinter creates a Printer writing to out
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Command prints a tagged, shell-quoted command line before execution
func (p *Printer) Command(tag Tag, name string, args []string) {
	fmt.Fprintf(p.out, "%s %s\n", tag.render(), shellquote.Join(append([]string{name}, args...)...))
}

// Plan prints the bare shell-quoted command line a dry run would execute.
// No tag prefix, so the output can be pasted back into a shell.
func (p *Printer) Plan(name string, args []string) {
	fmt.Fprintln(p.out, shellquote.Join(append([]string{name}, args...)...))
}

// PrintError prints an error message to stderr
func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", errorStyle.Render("Error:"), message)
}
