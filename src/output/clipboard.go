package output

import (
	"fmt"
	"io"
	"os"

	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

// Branding is prepended to every copied badge.
const Branding = "<!-- Review badge generated with reviewbadge -->"

// Clipboard receives copied text.
type Clipboard interface {
	Write(text string) error
}

// OSC52 copies through the terminal's OSC 52 escape sequence, which works over
// SSH and inside tmux or screen.
type OSC52 struct {
	W io.Writer
}

// NewOSC52 returns a clipboard writing to stderr so stdout stays clean for output.
func NewOSC52() *OSC52 {
	return &OSC52{W: os.Stderr}
}

func (c *OSC52) Write(text string) error {
	seq := osc52.New(text)
	switch {
	case os.Getenv("TMUX") != "":
		seq = seq.Tmux()
	case os.Getenv("STY") != "":
		seq = seq.Screen()
	}
	if _, err := seq.WriteTo(c.W); err != nil {
		return fmt.Errorf("osc52: %w", err)
	}
	return nil
}

// WithBranding returns html as it is copied: the attribution line, a newline,
// then the document.
func WithBranding(html string) string {
	return Branding + "\n" + html
}

// Copy puts html on the clipboard, prefixed with the attribution line when
// branding is set.
func Copy(cb Clipboard, html string, branding bool) error {
	if branding {
		html = WithBranding(html)
	}
	if err := cb.Write(html); err != nil {
		return fmt.Errorf("copying to clipboard: %w", err)
	}
	return nil
}
