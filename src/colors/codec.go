// Package colors converts between the colour picker's hue/saturation/brightness/alpha
// representation and the hex strings stored in badge configurations.
package colors

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// HSBA is a colour in the picker's native representation.
// Hue is in degrees [0,360), the other channels are in [0,1].
type HSBA struct {
	Hue        float64 `json:"hue"`
	Saturation float64 `json:"saturation"`
	Brightness float64 `json:"brightness"`
	Alpha      float64 `json:"alpha"`
}

// Rounded returns the colour rounded the way a picker displays it:
// whole-degree hue, two-decimal saturation and brightness.
func (c HSBA) Rounded() HSBA {
	return HSBA{
		Hue:        math.Round(c.Hue),
		Saturation: math.Round(c.Saturation*100) / 100,
		Brightness: math.Round(c.Brightness*100) / 100,
		Alpha:      c.Alpha,
	}
}

// HSBAToHex converts an HSBA colour to "#rrggbb", or "#rrggbbaa" when alpha is not fully opaque.
func HSBAToHex(h, s, v, a float64) string {
	r, g, b, alpha := hsbaToRGBA(h, s, v, a)
	if alpha == 255 {
		return fmt.Sprintf("#%02x%02x%02x", r, g, b)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", r, g, b, alpha)
}

// Hex is HSBAToHex for an HSBA value.
func (c HSBA) Hex() string {
	return HSBAToHex(c.Hue, c.Saturation, c.Brightness, c.Alpha)
}

// hsbaToRGBA is the six-sector HSB to RGB conversion, channels scaled to [0,255].
func hsbaToRGBA(h, s, v, a float64) (r, g, b, alpha int) {
	var rf, gf, bf float64

	i := math.Floor(h / 60)
	f := h/60 - i
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	sector := int(i) % 6
	if sector < 0 {
		sector += 6
	}

	switch sector {
	case 0:
		rf, gf, bf = v, t, p
	case 1:
		rf, gf, bf = q, v, p
	case 2:
		rf, gf, bf = p, v, t
	case 3:
		rf, gf, bf = p, q, v
	case 4:
		rf, gf, bf = t, p, v
	case 5:
		rf, gf, bf = v, p, q
	}

	return channel(rf), channel(gf), channel(bf), channel(a)
}

// channel scales a [0,1] float to a rounded, clamped [0,255] byte value.
func channel(x float64) int {
	n := int(math.Round(x * 255))
	switch {
	case n < 0:
		return 0
	case n > 255:
		return 255
	}
	return n
}

// HexToHSBA parses a 3, 4, 6 or 8 digit hex colour.
// "transparent" and the empty string are rgba(0,0,0,0).
func HexToHSBA(hex string) (HSBA, error) {
	r, g, b, a, err := hexToRGBA(hex)
	if err != nil {
		return HSBA{}, err
	}
	return rgbaToHSBA(r, g, b, a), nil
}

// hexToRGBA returns channels in [0,255] and alpha in [0,1].
func hexToRGBA(hex string) (r, g, b int, a float64, err error) {
	if hex == "" || strings.EqualFold(hex, Transparent) {
		return 0, 0, 0, 0, nil
	}
	if !hexPattern.MatchString(hex) {
		return 0, 0, 0, 0, fmt.Errorf("%w: %q", ErrMalformedHex, hex)
	}

	digits := strings.TrimPrefix(hex, "#")
	switch len(digits) {
	case 3, 4:
		var expanded strings.Builder
		for _, d := range digits {
			expanded.WriteRune(d)
			expanded.WriteRune(d)
		}
		digits = expanded.String()
	case 6, 8:
	default:
		return 0, 0, 0, 0, fmt.Errorf("%w: %q has %d digits", ErrMalformedHex, hex, len(digits))
	}

	r = parseByte(digits[0:2])
	g = parseByte(digits[2:4])
	b = parseByte(digits[4:6])
	a = 1
	if len(digits) == 8 {
		a = float64(parseByte(digits[6:8])) / 255
	}
	return r, g, b, a, nil
}

func parseByte(s string) int {
	n, _ := strconv.ParseUint(s, 16, 8)
	return int(n)
}

func rgbaToHSBA(r, g, b int, a float64) HSBA {
	rf := float64(r) / 255
	gf := float64(g) / 255
	bf := float64(b) / 255

	hi := math.Max(rf, math.Max(gf, bf))
	lo := math.Min(rf, math.Min(gf, bf))
	delta := hi - lo

	var h, s float64
	if hi != 0 {
		s = delta / hi
	}

	if delta != 0 {
		switch hi {
		case rf:
			h = (gf - bf) / delta
			if gf < bf {
				h += 6
			}
		case gf:
			h = (bf-rf)/delta + 2
		default:
			h = (rf-gf)/delta + 4
		}
		h /= 6
	}

	return HSBA{
		Hue:        h * 360,
		Saturation: s,
		Brightness: hi,
		Alpha:      a,
	}
}
