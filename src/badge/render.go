package badge

import (
	"fmt"
	"strings"

	"github.com/sofmeright/reviewbadge/src/colors"
	"github.com/sofmeright/reviewbadge/src/config"
)

// view is everything a layout body needs, resolved and escaped.
type view struct {
	layout *Layout
	badge  config.Badge
	colors colors.Config
	rating string
	stars  string
	logos  []string // image sources, already inlined when exporting
}

func newView(l *Layout, b config.Badge, logos []string) *view {
	c := config.FillColors(b.Colors, l.ID)
	stars := Stars{
		Rating:   b.RatingValue(),
		Color:    escape(string(c.Stars)),
		StarSize: l.Stars,
	}
	return &view{
		layout: l,
		badge:  b,
		colors: c,
		rating: b.AverageRating(),
		stars:  stars.HTML(),
		logos:  logos,
	}
}

// color returns slot s as an attribute-safe literal.
func (v *view) color(s colors.Slot) string {
	return escape(string(v.colors.Get(s)))
}

// render builds the badge container for l.
func (l *Layout) render(b config.Badge, logos []string) string {
	v := newView(l, b, logos)

	var s strings.Builder
	fmt.Fprintf(&s, `<div style="%s">`, l.Box.Style(v.colors))
	l.body(&s, v)
	s.WriteString(`</div>`)
	return s.String()
}

// writeLogos writes every logo image, or the placeholder when there are none.
func (v *view) writeLogos(s *strings.Builder) {
	if len(v.logos) == 0 {
		v.writePlaceholder(s)
		return
	}
	for _, src := range v.logos {
		if v.layout.LogoStyle != "" {
			fmt.Fprintf(s, `<img src="%s" alt="logo" style="%s" />`, escape(src), v.layout.LogoStyle)
			continue
		}
		fmt.Fprintf(s, `<img src="%s" alt="logo" />`, escape(src))
	}
}

func (v *view) writePlaceholder(s *strings.Builder) {
	style := v.layout.Placeholder
	if v.layout.PlaceholderColors {
		style += fmt.Sprintf(" background-color: %s; color: %s;", v.color(colors.Background), v.color(colors.Text))
	}
	fmt.Fprintf(s, `<div style="%s">Logo</div>`, style)
}

// layout1: logo strip, big rating number beside the stars, free text.
func layout1(s *strings.Builder, v *view) {
	s.WriteString(`<div style="display: flex; align-items: center; justify-content: center; gap: 10px;">`)
	v.writeLogos(s)
	s.WriteString(`</div>`)

	s.WriteString(`<div style="display: flex; align-items: center; justify-content: center; gap: 10px; padding: 10px;">`)
	fmt.Fprintf(s, `<p style="margin: 5px 0; font-size: 50px; font-weight: bold; font-family: 'Inter', sans-serif; color: %s;">%s</p>`,
		v.color(colors.RatingNumber), escape(v.rating))
	s.WriteString(v.stars)
	s.WriteString(`</div>`)

	fmt.Fprintf(s, `<div><p style="margin: 5px 0; color: %s;">%s</p></div>`, v.color(colors.Text), escape(v.badge.Text))
}

// layout2: store name, stars, rating with free text, single logo.
func layout2(s *strings.Builder, v *view) {
	fmt.Fprintf(s, `<h3 style="padding: 5px 0; color: %s; font-size: 20px; font-weight: bold;">%s</h3>`,
		v.color(colors.StoreName), escape(v.badge.StoreName))
	fmt.Fprintf(s, `<div style="font-size: 30px;">%s</div>`, v.stars)
	fmt.Fprintf(s, `<p><span style="font-weight: bold;">%s </span>%s</p>`, escape(v.rating), escape(v.badge.Text))
	v.writeLogos(s)
}

const wrapText = "margin: 5px 0; word-wrap: break-word; overflow-wrap: break-word; line-height: 1.4; text-align: center;"

// layout3: stars with review text, then verified text with the logo.
func layout3(s *strings.Builder, v *view) {
	const row = `<div style="display: flex; text-align: center; justify-content: center; align-items: center; gap: 10px;">`

	s.WriteString(`<div style="display: flex; flex-direction: column; gap: 10px;">`)

	s.WriteString(row)
	s.WriteString(v.stars)
	fmt.Fprintf(s, `<p style="font-size: 20px; color: %s; %s max-width: 130px;">%s</p>`,
		v.color(colors.Text), wrapText, escape(v.badge.ReviewText))
	s.WriteString(`</div>`)

	s.WriteString(row)
	fmt.Fprintf(s, `<p style="font-size: 20px; color: %s; %s max-width: 150px;">%s</p>`,
		v.color(colors.Text), wrapText, escape(v.badge.VerifiedText))
	v.writeLogos(s)
	s.WriteString(`</div>`)

	s.WriteString(`</div>`)
}

// layout4: stars with rating/5, review text led by a bold word, footer bar.
func layout4(s *strings.Builder, v *view) {
	s.WriteString(`<div style="display: flex; flex-direction: column; gap: 10px; padding: 20px; height: 100%;">`)
	s.WriteString(`<div style="display: flex; gap: 10px; justify-content: center; align-items: center;">`)
	s.WriteString(v.stars)
	fmt.Fprintf(s, `<p style="font-size: 20px; font-weight: bold;"><span>%s</span>/5</p>`, escape(v.rating))
	s.WriteString(`</div>`)
	fmt.Fprintf(s, `<div><p style="font-size: 20px; margin-top: 20px;">%s</p></div>`, boldFirstWord(v.badge.ReviewText))
	s.WriteString(`</div>`)

	fmt.Fprintf(s, `<div style="height: 35px; width: 100%%; display: flex; justify-content: center; align-content: center; text-align: center; gap: 10px; align-items: center; background-color: %s;">`,
		v.color(colors.FooterBackground))
	fmt.Fprintf(s, `<p style="font-size: 12px; color: white;">%s</p>`, escape(v.badge.VerifiedText))
	v.writeLogos(s)
	s.WriteString(`</div>`)
}

// boldFirstWord wraps the first space-delimited word of the trimmed review text
// in a bold span and appends the rest after a single space.
func boldFirstWord(review string) string {
	first, rest, found := strings.Cut(strings.TrimSpace(review), " ")
	out := `<span style="font-weight: bold;">` + escape(first) + `</span>`
	if found {
		out += " " + escape(rest)
	}
	return out
}

var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"'", "&#39;",
	`"`, "&quot;",
)

// escape makes s safe as element content or a double-quoted attribute value.
func escape(s string) string {
	return htmlReplacer.Replace(s)
}
