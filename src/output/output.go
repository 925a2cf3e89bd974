// Package output presents generated badges and command results on a terminal.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"

	"github.com/sofmeright/reviewbadge/src/colors"
)

var (
	warningStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFB007"))
	copiedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#2EB67D"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#868686"))
)

// highlightStyle is the chroma style used for HTML shown on a terminal.
const highlightStyle = "monokai"

// Display writes html to w, syntax-highlighted when highlight is set. If the
// highlighter fails the plain document is written instead.
func Display(w io.Writer, html string, highlight bool) error {
	if highlight {
		if err := quick.Highlight(w, html, "html", "terminal256", highlightStyle); err == nil {
			_, err = fmt.Fprintln(w)
			return err
		}
	}
	_, err := fmt.Fprintln(w, html)
	return err
}

// Warning writes a single warning line.
func Warning(w io.Writer, msg string, color bool) {
	if color {
		msg = warningStyle.Render(msg)
	}
	fmt.Fprintln(w, msg)
}

// Copied confirms a clipboard copy.
func Copied(w io.Writer, color bool) {
	msg := "✓ Copied to clipboard"
	if color {
		msg = copiedStyle.Render(msg)
	}
	fmt.Fprintln(w, msg)
}

// Swatch renders a small colour sample followed by the value. Values that would
// vanish against a light terminal are bracketed.
func Swatch(v colors.Value, color bool) string {
	label := string(v)
	if v.IsTransparent() {
		label = colors.Transparent
	}
	if !color {
		return label
	}

	block := "   "
	if v.IsTransparent() {
		block = dimStyle.Render("░░░")
	} else {
		block = lipgloss.NewStyle().Background(lipgloss.Color(v.Opaque())).Render(block)
	}
	if colors.NeedsBorder(v) {
		block = dimStyle.Render("[") + block + dimStyle.Render("]")
	}
	return block + " " + label
}

// Dimmed returns dimmed text if color is enabled.
func Dimmed(text string, color bool) string {
	if !color {
		return text
	}
	return dimStyle.Render(text)
}

func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// IsCI reports whether we are running under a CI system.
func IsCI() bool {
	return os.Getenv("CI") == "true"
}

// UseColor returns true if colored output should be used.
// Respects NO_COLOR env, TERM=dumb, and terminal detection.
func UseColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTerminal() || IsCI()
}
