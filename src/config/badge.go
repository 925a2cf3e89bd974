package config

import (
	"github.com/sofmeright/reviewbadge/src/colors"
)

// LayoutID selects one of the four badge templates.
type LayoutID string

// Supported layouts.
const (
	Layout1 LayoutID = "layout-1" // multi-logo strip, big rating number
	Layout2 LayoutID = "layout-2" // store name, stars, rating line, logo
	Layout3 LayoutID = "layout-3" // stars + review text, verified text + logo
	Layout4 LayoutID = "layout-4" // stars + rating/5, review text, dark footer
)

// Layouts returns every supported layout in display order.
func Layouts() []LayoutID {
	return []LayoutID{Layout1, Layout2, Layout3, Layout4}
}

// Valid reports whether l is a supported layout.
func (l LayoutID) Valid() bool {
	switch l {
	case Layout1, Layout2, Layout3, Layout4:
		return true
	}
	return false
}

// LogoSelection picks a built-in logo or the user's own upload.
type LogoSelection string

// Logo choices.
const (
	LogoGoogle   LogoSelection = "google"
	LogoFacebook LogoSelection = "facebook"
	LogoOther    LogoSelection = "other"
)

// Valid reports whether s is a known logo choice.
func (s LogoSelection) Valid() bool {
	switch s {
	case LogoGoogle, LogoFacebook, LogoOther:
		return true
	}
	return false
}

// MaxLogos is the most logos layout-1 can show.
const MaxLogos = 5

// Badge is the badge configuration record. Every edit produces a new value;
// nothing holds a Badge by reference.
type Badge struct {
	Layout LayoutID      `yaml:"layout" toml:"layout"`
	Logo   LogoSelection `yaml:"logo" toml:"logo"`

	// LogoList feeds layout-1 only. Entries are image references or local file
	// paths and may be empty.
	LogoList []string `yaml:"logo_list,omitempty" toml:"logo_list,omitempty"`

	// LogoURL is the resolved single logo for layouts 2-4. It is never derived from LogoList.
	LogoURL string `yaml:"logo_url,omitempty" toml:"logo_url,omitempty"`

	// Uploads are local image files offered as the "other" logo.
	Uploads []string `yaml:"uploads,omitempty" toml:"uploads,omitempty"`

	RatingWhole    string `yaml:"rating_whole" toml:"rating_whole"`
	RatingFraction string `yaml:"rating_fraction" toml:"rating_fraction"`

	Text         string `yaml:"text,omitempty" toml:"text,omitempty"`
	StoreName    string `yaml:"store_name,omitempty" toml:"store_name,omitempty"`
	ReviewText   string `yaml:"review_text,omitempty" toml:"review_text,omitempty"`
	VerifiedText string `yaml:"verified_text,omitempty" toml:"verified_text,omitempty"`
	OpenLink     string `yaml:"open_link,omitempty" toml:"open_link,omitempty"`

	Colors colors.Config `yaml:"colors" toml:"colors"`

	// GeneratedHTML caches the last generated document.
	GeneratedHTML string `yaml:"-" toml:"-"`
}

// Clone returns a copy of b that shares no slices with it.
func (b Badge) Clone() Badge {
	c := b
	if b.LogoList != nil {
		c.LogoList = append([]string(nil), b.LogoList...)
	}
	if b.Uploads != nil {
		c.Uploads = append([]string(nil), b.Uploads...)
	}
	return c
}
