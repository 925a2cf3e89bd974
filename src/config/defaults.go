package config

import (
	"dario.cat/mergo"

	"github.com/sofmeright/reviewbadge/src/colors"
)

// Default text content for a new badge.
const (
	DefaultText       = "From 100 verified reviews"
	DefaultStoreName  = "Your store name"
	DefaultReviewText = "Excellent reviews"
)

// Default colours shared by every layout.
const (
	DefaultStarColor       colors.Value = "#FFB007"
	DefaultBackgroundColor colors.Value = "#FFFFFF"
	DefaultStrokeColor     colors.Value = "#AAAAAA"
	DefaultFooterColor     colors.Value = "#000000"

	// lightTextColor suits layouts 1 and 2, darkTextColor layouts 3 and 4.
	lightTextColor colors.Value = "#686868"
	darkTextColor  colors.Value = "#202223"
)

// DefaultVerifiedText returns the verified-text label a layout starts with.
func DefaultVerifiedText(layout LayoutID) string {
	if layout == Layout3 {
		return "Verified by"
	}
	return "Powered by"
}

// DefaultTextColor returns the body text colour a layout starts with.
func DefaultTextColor(layout LayoutID) colors.Value {
	switch layout {
	case Layout3, Layout4:
		return darkTextColor
	}
	return lightTextColor
}

// DefaultColors returns the full colour set a layout starts with.
func DefaultColors(layout LayoutID) colors.Config {
	text := DefaultTextColor(layout)
	return colors.Config{
		Stars:            DefaultStarColor,
		Text:             text,
		Background:       DefaultBackgroundColor,
		Stroke:           DefaultStrokeColor,
		RatingNumber:     text,
		StoreName:        text,
		FooterBackground: DefaultFooterColor,
	}
}

// FillColors returns c with every unset slot taken from the layout defaults.
// Slots that are set, including "transparent", are kept.
func FillColors(c colors.Config, layout LayoutID) colors.Config {
	defaults := DefaultColors(layout)
	if err := mergo.Merge(&c, defaults); err != nil {
		// unreachable: both sides are colors.Config
		panic(err)
	}
	return c
}

// DefaultBadge returns the configuration a new session starts with.
func DefaultBadge() Badge {
	return Badge{
		Layout:         Layout1,
		Logo:           LogoGoogle,
		RatingWhole:    "5",
		RatingFraction: ".0",
		Text:           DefaultText,
		StoreName:      DefaultStoreName,
		ReviewText:     DefaultReviewText,
		VerifiedText:   DefaultVerifiedText(Layout1),
		Colors:         DefaultColors(Layout1),
	}
}
