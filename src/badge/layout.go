package badge

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/sofmeright/reviewbadge/src/colors"
	"github.com/sofmeright/reviewbadge/src/config"
)

// LogoMode is how a layout shows logos.
type LogoMode int

const (
	// LogoStrip shows every non-empty LogoList entry in a row.
	LogoStrip LogoMode = iota
	// LogoSingle shows the resolved LogoURL.
	LogoSingle
)

func (m LogoMode) String() string {
	if m == LogoStrip {
		return "strip"
	}
	return "single"
}

// Field is an editable badge field, named as in the config file.
type Field string

// Editable fields.
const (
	FieldLogoList     Field = "logo_list"
	FieldLogo         Field = "logo"
	FieldRating       Field = "rating"
	FieldText         Field = "text"
	FieldStoreName    Field = "store_name"
	FieldReviewText   Field = "review_text"
	FieldVerifiedText Field = "verified_text"
	FieldOpenLink     Field = "open_link"
)

// Box is the outer container's geometry. Colours come from the badge.
type Box struct {
	Lead      string // declarations emitted before the border
	Radius    string
	Padding   string
	Gap       string
	Width     string
	MinWidth  string
	MinHeight string
}

// Style renders the container style for the given colours.
func (b Box) Style(c colors.Config) string {
	decls := []string{
		"font-family: 'Inter', sans-serif",
		"display: flex",
		"flex-direction: column",
		"align-items: center",
		b.Lead,
		"border: 1px solid " + escape(string(c.Stroke)),
		prop("border-radius", b.Radius),
		prop("padding", b.Padding),
		prop("gap", b.Gap),
		"background-color: " + escape(string(c.Background)),
		"color: " + escape(string(c.Text)),
		prop("width", b.Width),
		prop("min-width", b.MinWidth),
		prop("min-height", b.MinHeight),
	}
	return strings.Join(lo.Compact(decls), "; ") + ";"
}

// Layout describes one badge template. Preview and Generate both render from
// these descriptors, so the two outputs cannot drift apart.
type Layout struct {
	ID    config.LayoutID
	Box   Box
	Logo  LogoMode
	Stars StarSize

	// Placeholder styles the "Logo" box shown when there is nothing to display.
	// When PlaceholderColors is set it also takes the badge background and text colours.
	Placeholder       string
	PlaceholderColors bool

	// LogoStyle, when set, constrains rendered logo images.
	LogoStyle string

	Fields []Field
	Slots  []colors.Slot

	body func(*strings.Builder, *view)
}

var layouts = []*Layout{
	{
		ID: config.Layout1,
		Box: Box{
			Radius:    "10px",
			Padding:   "15px",
			Width:     "300px",
			MinHeight: "150px",
		},
		Logo:              LogoStrip,
		Stars:             StarSize{Size: 28, Gap: 2},
		Placeholder:       "border: 1px dotted; padding: 10px; margin: 5px 0 10px; border-radius: 10px; width: 100%; height: 100%;",
		PlaceholderColors: true,
		Fields:            []Field{FieldLogoList, FieldRating, FieldText, FieldOpenLink},
		Slots:             []colors.Slot{colors.Stars, colors.Text, colors.Background, colors.Stroke, colors.RatingNumber},
		body:              layout1,
	},
	{
		ID: config.Layout2,
		Box: Box{
			Radius:    "10px",
			Padding:   "10px",
			Gap:       "10px",
			Width:     "300px",
			MinHeight: "150px",
		},
		Logo:              LogoSingle,
		Stars:             StarSize{Size: 38, Gap: 5},
		Placeholder:       "border: 1px dotted; padding: 10px; text-align: center; margin: 5px 0 10px; border-radius: 10px; width: 100%; height: 100%;",
		PlaceholderColors: true,
		Fields:            []Field{FieldLogo, FieldRating, FieldStoreName, FieldText, FieldOpenLink},
		Slots:             []colors.Slot{colors.Stars, colors.Text, colors.Background, colors.Stroke, colors.StoreName},
		body:              layout2,
	},
	{
		ID: config.Layout3,
		Box: Box{
			Padding:   "10px",
			Gap:       "10px",
			Width:     "320px",
			MinWidth:  "320px",
			MinHeight: "100px",
		},
		Logo:        LogoSingle,
		Stars:       StarSize{Size: 28, Gap: 5},
		Placeholder: "border: 1px dotted; padding: 10px; margin: 5px 0 10px; border-radius: 10px; width: 100px;",
		LogoStyle:   "max-height: 40px; max-width: 120px; height: auto; width: auto;",
		Fields:      []Field{FieldLogo, FieldRating, FieldReviewText, FieldVerifiedText, FieldOpenLink},
		Slots:       []colors.Slot{colors.Stars, colors.Text, colors.Background, colors.Stroke},
		body:        layout3,
	},
	{
		ID: config.Layout4,
		Box: Box{
			Lead:      "text-align: center; justify-content: space-between",
			Width:     "300px",
			MinWidth:  "300px",
			MinHeight: "150px",
		},
		Logo:        LogoSingle,
		Stars:       StarSize{Size: 25, Gap: 5},
		Placeholder: "border: 1px dotted; margin: 5px 0 5px; border-radius: 10px; width: 100px; border-color: white; color: white;",
		Fields:      []Field{FieldLogo, FieldRating, FieldReviewText, FieldVerifiedText, FieldOpenLink},
		Slots:       []colors.Slot{colors.Stars, colors.Text, colors.Background, colors.Stroke, colors.FooterBackground},
		body:        layout4,
	},
}

// Layouts returns the descriptors of every supported layout in display order.
func Layouts() []*Layout {
	return append([]*Layout(nil), layouts...)
}

// Lookup returns the descriptor for id, or ErrUnsupportedLayout.
func Lookup(id config.LayoutID) (*Layout, error) {
	for _, l := range layouts {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedLayout, id)
}

// FieldsFor lists the editable fields and colour slots a layout displays.
func FieldsFor(id config.LayoutID) ([]Field, []colors.Slot, error) {
	l, err := Lookup(id)
	if err != nil {
		return nil, nil, err
	}
	return append([]Field(nil), l.Fields...), append([]colors.Slot(nil), l.Slots...), nil
}

// Shows reports whether the layout displays field f.
func (l *Layout) Shows(f Field) bool {
	return lo.Contains(l.Fields, f)
}

// LogoRefs returns the image references this layout renders for b, in order.
// Layout-1 uses the non-empty LogoList entries; the others use LogoURL when set.
func (l *Layout) LogoRefs(b config.Badge) []string {
	if l.Logo == LogoStrip {
		return lo.Compact(b.LogoList)
	}
	if b.LogoURL == "" {
		return nil
	}
	return []string{b.LogoURL}
}

func prop(name, value string) string {
	if value == "" {
		return ""
	}
	return name + ": " + value
}
