package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const (
	sectionIndent = "    "
	sectionWidth  = 61
	teeLeft       = "├"
)

var (
	frame = lipgloss.NormalBorder()

	headerStyle = lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("6"))
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	skipStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// Section is a titled block of aligned rows, framed on the left.
type Section struct {
	w     io.Writer
	color bool
}

// NewSection writes the title rule for name and returns the section.
func NewSection(w io.Writer, name string, color bool) *Section {
	s := &Section{w: w, color: color}

	title := frame.Top + frame.Top + " " + name + " "
	fill := max(sectionWidth+1-lipgloss.Width(title), 2)
	header := title + strings.Repeat(frame.Top, fill)
	if color {
		header = headerStyle.Render(header)
	}
	fmt.Fprintf(w, "\n%s%s\n", sectionIndent, header)
	return s
}

// Row writes one framed line.
func (s *Section) Row(format string, args ...any) {
	fmt.Fprintf(s.w, "%s%s %s\n", sectionIndent, frame.Left, fmt.Sprintf(format, args...))
}

// KV writes a key column padded to 16 cells followed by value.
func (s *Section) KV(key, value string) {
	s.Row("%-16s%s", key, value)
}

// Separator splits the section into groups.
func (s *Section) Separator() {
	s.rule(teeLeft)
}

// Close writes the bottom corner rule.
func (s *Section) Close() {
	s.rule(frame.BottomLeft)
}

func (s *Section) rule(corner string) {
	fmt.Fprintf(s.w, "%s%s%s\n", sectionIndent, corner, strings.Repeat(frame.Bottom, sectionWidth))
}

// StatusIcon maps "success", "failed" and anything else (skipped) to an icon.
func StatusIcon(status string, color bool) string {
	icon, style := "⊘", skipStyle
	switch status {
	case "success":
		icon, style = "✓", passStyle
	case "failed":
		icon, style = "✗", failStyle
	}
	if !color {
		return icon
	}
	return style.Render(icon)
}

// RowStatus writes label padded to 24 cells, then detail and the status icon.
func RowStatus(sec *Section, label, detail, status string, color bool) {
	parts := []string{fmt.Sprintf("%-24s", label)}
	if detail != "" {
		parts = append(parts, detail)
	}
	sec.Row("%s", strings.Join(append(parts, StatusIcon(status, color)), " "))
}

// Elapsed renders a generation time: "<1ms" below a millisecond, otherwise
// rounded to the millisecond.
func Elapsed(d time.Duration) string {
	if d < time.Millisecond {
		return "<1ms"
	}
	return d.Round(time.Millisecond).String()
}
