package badge

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// starPath is a five-pointed star on a 25x25 viewBox.
const starPath = "M25 9.55915H15.4354L12.5 0L9.56458 9.55915H0L7.82344 15.4408L4.77656 25L12.5 19.0759L20.2234 25L17.1708 15.4408L25 9.55915Z"

// emptyStarFill is the colour of the unfilled background layer.
const emptyStarFill = "#E0E0E0"

// StarSize is a layout's star glyph size and spacing in pixels.
type StarSize struct {
	Size int
	Gap  int
}

// Stars renders a five-star rating.
type Stars struct {
	Rating float64
	Color  string
	StarSize
}

// StarPercentage is the share of the star row that is filled, in [0, 100].
func StarPercentage(rating float64) float64 {
	return math.Min(math.Max(rating/5*100, 0), 100)
}

// HTML draws five grey stars with five coloured stars stacked on top. The
// coloured layer is clipped to the rating's percentage of the row width, so a
// fractional rating may cut a star anywhere along its width.
func (s Stars) HTML() string {
	var b strings.Builder

	b.WriteString(`<div style="position: relative; display: inline-flex; line-height: 0;">`)

	fmt.Fprintf(&b, `<div style="display: inline-flex; gap: %dpx;">`, s.Gap)
	for range 5 {
		s.writeGlyph(&b, emptyStarFill, "")
	}
	b.WriteString(`</div>`)

	fmt.Fprintf(&b, `<div style="position: absolute; top: 0; left: 0; display: inline-flex; gap: %dpx; width: %s%%; overflow: hidden;">`,
		s.Gap, formatPercent(StarPercentage(s.Rating)))
	for range 5 {
		s.writeGlyph(&b, s.Color, " flex-shrink: 0;")
	}
	b.WriteString(`</div>`)

	b.WriteString(`</div>`)
	return b.String()
}

func (s Stars) writeGlyph(b *strings.Builder, fill, extra string) {
	fmt.Fprintf(b, `<div style="width: %dpx; height: %dpx;%s">`, s.Size, s.Size, extra)
	fmt.Fprintf(b, `<svg width="%d" height="%d" viewBox="0 0 25 25" fill="none" xmlns="http://www.w3.org/2000/svg">`, s.Size, s.Size)
	fmt.Fprintf(b, `<path d="%s" fill="%s"/>`, starPath, fill)
	b.WriteString(`</svg></div>`)
}

// formatPercent prints p with at most two decimals and no trailing zeros.
func formatPercent(p float64) string {
	return strconv.FormatFloat(math.Round(p*100)/100, 'f', -1, 64)
}
