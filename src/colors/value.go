package colors

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Transparent is the sentinel colour value. It is never resolved to a hex value.
const Transparent = "transparent"

// ErrMalformedHex is returned for colour strings that are neither hex nor "transparent".
var ErrMalformedHex = errors.New("malformed hex color")

var hexPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{3,8}$`)

// Value is a colour as stored in a badge configuration: "#hex" or "transparent".
// The empty Value means "unset" and falls back to a layout default.
type Value string

// Parse validates s and returns it as a Value. Case is preserved so the
// generated markup carries exactly what the user typed.
func Parse(s string) (Value, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, Transparent) {
		return Value(Transparent), nil
	}
	if !hexPattern.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrMalformedHex, s)
	}
	switch len(s) - 1 {
	case 3, 4, 6, 8:
		return Value(s), nil
	}
	return "", fmt.Errorf("%w: %q has %d digits", ErrMalformedHex, s, len(s)-1)
}

// IsTransparent reports whether v is the transparent sentinel.
func (v Value) IsTransparent() bool {
	return v == "" || strings.EqualFold(string(v), Transparent)
}

// HSBA converts the value with HexToHSBA.
func (v Value) HSBA() (HSBA, error) {
	return HexToHSBA(string(v))
}

// Opaque returns the colour as "#rrggbb" with alpha dropped, for terminal swatches.
// Transparent and malformed values return "".
func (v Value) Opaque() string {
	if v.IsTransparent() {
		return ""
	}
	r, g, b, _, err := hexToRGBA(string(v))
	if err != nil {
		return ""
	}
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// NeedsBorder reports whether a swatch of v would vanish against a white
// background: transparent values and near-white colours.
func NeedsBorder(v Value) bool {
	if v.IsTransparent() {
		return true
	}
	r, g, b, a, err := hexToRGBA(string(v))
	if err != nil {
		return false
	}
	if a < 0.1 {
		return true
	}
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	l, _, _ := c.Lab()
	return l > 0.97
}
