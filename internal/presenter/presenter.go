// Package presenter renders user-facing CLI output with lipgloss styles.
package presenter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	Green  = lipgloss.Color("#22C55E")
	Yellow = lipgloss.Color("#EAB308")
	Red    = lipgloss.Color("#EF4444")
	Blue   = lipgloss.Color("#3B82F6")
	Cyan   = lipgloss.Color("#06B6D4")
	Dim    = lipgloss.Color("#6B7280")

	errorStyle   = lipgloss.NewStyle().Foreground(Red).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(Green).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(Yellow).Bold(true)
	sectionStyle = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(Dim)
	labelStyle   = lipgloss.NewStyle().Foreground(Cyan)
)

// Presenter writes styled messages. Quiet suppresses everything but errors.
type Presenter struct {
	out    io.Writer
	errOut io.Writer
	in     *bufio.Reader
	quiet  bool
}

func New() *Presenter {
	return NewWithOptions(os.Stdout, os.Stderr, os.Stdin)
}

func NewWithOptions(out, errOut io.Writer, in io.Reader) *Presenter {
	return &Presenter{out: out, errOut: errOut, in: bufio.NewReader(in)}
}

func (p *Presenter) SetQuiet(quiet bool) { p.quiet = quiet }

func (p *Presenter) Error(err error, context string) {
	if err == nil {
		return
	}
	msg := err.Error()
	if context != "" {
		msg = context + ": " + msg
	}
	fmt.Fprintln(p.errOut, errorStyle.Render("✗ "+msg))
}

func (p *Presenter) Success(message string) {
	p.println(successStyle.Render("✓ " + message))
}

func (p *Presenter) Warning(message string) {
	p.println(warningStyle.Render("⚠ " + message))
}

func (p *Presenter) Info(message string) {
	p.println(message)
}

func (p *Presenter) Dim(message string) {
	p.println(dimStyle.Render(message))
}

// Field prints "label: value" with a highlighted label.
func (p *Presenter) Field(label, value string) {
	p.println(labelStyle.Render(label+":") + " " + value)
}

func (p *Presenter) Section(title string) {
	p.println("")
	p.println(sectionStyle.Render(title))
	p.println(sectionStyle.Render(strings.Repeat("-", lipgloss.Width(title))))
}

// Bullets prints one indented bullet per item.
func (p *Presenter) Bullets(items []string) {
	for _, item := range items {
		p.println("  • " + item)
	}
}

// Panel draws body inside a rounded border in color, with title on top.
func (p *Presenter) Panel(title, body string, color lipgloss.Color) {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1)
	p.println("")
	p.println(lipgloss.NewStyle().Bold(true).Foreground(color).Render(title))
	p.println(box.Render(body))
}

// Table renders rows under headers.
func (p *Presenter) Table(title string, headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(Dim)).
		Headers(headers...).
		Rows(rows...)
	if title != "" {
		p.println("")
		p.println(sectionStyle.Render(title))
	}
	p.println(t.Render())
}

// Confirm asks a yes/no question. An empty line returns def; end of input
// or a read error declines.
func (p *Presenter) Confirm(question string, def bool) bool {
	options := "y/N"
	if def {
		options = "Y/n"
	}
	fmt.Fprintf(p.out, "%s [%s]: ", question, options)

	answer, err := p.in.ReadString('\n')
	if err != nil && answer == "" {
		fmt.Fprintln(p.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	default:
		return def
	}
}

func (p *Presenter) println(s string) {
	if p.quiet {
		return
	}
	fmt.Fprintln(p.out, s)
}
