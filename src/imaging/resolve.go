// Package imaging decides which image represents a badge's logo and checks
// uploaded logos against each layout's recommended dimensions.
package imaging

import (
	"fmt"

	"github.com/sofmeright/reviewbadge/src/assets"
	"github.com/sofmeright/reviewbadge/src/config"
)

// Size is a layout's recommended maximum logo size in pixels.
type Size struct {
	Width  int
	Height int
	Label  string // e.g. "50x50 pixels"
}

func size(w, h int) Size {
	return Size{Width: w, Height: h, Label: fmt.Sprintf("%dx%d pixels", w, h)}
}

// RecommendedSize returns the advised logo dimensions for a layout.
// Unknown layouts get the layout-1 size.
func RecommendedSize(layout config.LayoutID) Size {
	switch layout {
	case config.Layout2, config.Layout3:
		return size(160, 55)
	case config.Layout4:
		return size(100, 25)
	default:
		return size(50, 50)
	}
}

// DefaultAsset maps a built-in logo choice to its asset path. Layout-4 draws the
// logo on a dark footer and uses the small/white variants. "other" has no asset.
func DefaultAsset(sel config.LogoSelection, layout config.LayoutID) string {
	footer := layout == config.Layout4
	switch sel {
	case config.LogoOther:
		return ""
	case config.LogoFacebook:
		if footer {
			return assets.FacebookLogoWhite
		}
		return assets.FacebookLogo
	default:
		if footer {
			return assets.GoogleLogoSmall
		}
		return assets.GoogleLogo
	}
}

// ResolveLogo returns the single-logo reference for layouts 2-4: the built-in
// asset for google/facebook, the first upload for "other", or "" when nothing
// is available and a placeholder should render.
func ResolveLogo(sel config.LogoSelection, layout config.LayoutID, uploads []string) string {
	if sel == config.LogoOther {
		if len(uploads) > 0 {
			return uploads[0]
		}
		return ""
	}
	return DefaultAsset(sel, layout)
}

// OversizeWarning is the message shown when an upload exceeds the recommended size.
func OversizeWarning(name string, layout config.LayoutID) string {
	return fmt.Sprintf("Warning: Image \"%s\" exceeds recommended size of %s.", name, RecommendedSize(layout).Label)
}
