package tui

// TUI package provides interactive terminal helpers:
//   - Colored status lines ([OK], Error:, [INFO])
//   - Line prompts and numbered menus
//
// Colors are only emitted when the output is a terminal.

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// =============================================================================
// COLORS
// =============================================================================

const (
	ColorReset = "\033[0m"
	ColorBold  = "\033[1m"
	ColorGreen = "\033[0;32m"
	ColorBlue  = "\033[0;34m"
	ColorCyan  = "\033[0;36m"
	ColorRed   = "\033[0;31m"
)

// =============================================================================
// PROMPTER
// =============================================================================

// Prompter reads answers from in and writes prompts to out.
type Prompter struct {
	in    *bufio.Reader
	out   io.Writer
	color bool
}

// NewPrompter creates a prompter. Color is enabled when out is a terminal.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	color := false
	if f, ok := out.(*os.File); ok {
		color = term.IsTerminal(int(f.Fd()))
	}
	return &Prompter{in: bufio.NewReader(in), out: out, color: color}
}

// Stdio returns a prompter over stdin/stdout.
func Stdio() *Prompter {
	return NewPrompter(os.Stdin, os.Stdout)
}

func (p *Prompter) paint(color, s string) string {
	if !p.color {
		return s
	}
	return color + s + ColorReset
}

// Println writes a plain line.
func (p *Prompter) Println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

// Printf writes formatted text.
func (p *Prompter) Printf(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...)
}

// PrintHeader prints a "--- title ---" section header.
func (p *Prompter) PrintHeader(title string) {
	fmt.Fprintln(p.out, p.paint(ColorBold+ColorCyan, "--- "+title+" ---"))
}

// PrintSuccess prints a success message with green [OK] prefix.
func (p *Prompter) PrintSuccess(msg string) {
	fmt.Fprintf(p.out, "%s %s\n", p.paint(ColorGreen, "[OK]"), msg)
}

// PrintInfo prints an info message with blue [INFO] prefix.
func (p *Prompter) PrintInfo(msg string) {
	fmt.Fprintf(p.out, "%s %s\n", p.paint(ColorBlue, "[INFO]"), msg)
}

// PrintError prints an error message preceded by a blank line.
func (p *Prompter) PrintError(msg string) {
	fmt.Fprintf(p.out, "\n%s %s\n", p.paint(ColorRed, "Error:"), msg)
}

// =============================================================================
// MENUS
// =============================================================================

// MenuItem represents an item in a numbered menu.
type MenuItem struct {
	Key   string // What the user types
	Label string // Display label
}

// PrintMenu lists items as "  <key>: <label>" under a title.
func (p *Prompter) PrintMenu(title string, items []MenuItem) {
	fmt.Fprintln(p.out, title)
	for _, item := range items {
		fmt.Fprintf(p.out, "  %s: %s\n", p.paint(ColorGreen, item.Key), item.Label)
	}
}

// =============================================================================
// PROMPTS
// =============================================================================

// PromptString prints prompt and returns the trimmed answer. End of input
// yields whatever was typed so far, possibly "".
func (p *Prompter) PromptString(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	input, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(input), nil
}
