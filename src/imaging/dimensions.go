package imaging

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"

	// Raster formats accepted as uploads.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/srwiley/oksvg"

	"github.com/sofmeright/reviewbadge/src/blob"
	"github.com/sofmeright/reviewbadge/src/config"
)

// ErrUndecodable is returned when an image's dimensions cannot be read.
var ErrUndecodable = errors.New("cannot decode image dimensions")

// Dimensions reads the pixel size of a raster image or an SVG document.
// SVG size comes from the root width/height attributes, as a browser renders
// it. A missing attribute is derived from the viewBox aspect ratio.
func Dimensions(data []byte) (width, height int, err error) {
	cfg, _, rerr := image.DecodeConfig(bytes.NewReader(data))
	if rerr == nil {
		return cfg.Width, cfg.Height, nil
	}

	if !blob.IsSVG(data) {
		return 0, 0, fmt.Errorf("%w: %v", ErrUndecodable, rerr)
	}
	icon, serr := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.IgnoreErrorMode)
	if serr != nil {
		return 0, 0, fmt.Errorf("%w: svg: %v", ErrUndecodable, serr)
	}
	w, h := svgSize(data, icon.ViewBox.W, icon.ViewBox.H)
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("%w: svg has no size", ErrUndecodable)
	}
	return int(math.Ceil(w)), int(math.Ceil(h)), nil
}

// ValidateImageSize reports whether the image fits within the layout's
// recommended size. Undecodable images and a cancelled ctx report false;
// callers warn but still accept the upload.
func ValidateImageSize(ctx context.Context, data []byte, layout config.LayoutID) bool {
	if ctx.Err() != nil {
		return false
	}
	w, h, err := Dimensions(data)
	if err != nil {
		return false
	}
	rec := RecommendedSize(layout)
	return w <= rec.Width && h <= rec.Height
}

// svgSize applies the root element's width and height over the viewBox size
// (vw, vh). Only unitless and px lengths are honoured.
func svgSize(data []byte, vw, vh float64) (float64, float64) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = false
	for {
		tok, err := dec.Token()
		if err != nil {
			return vw, vh
		}
		el, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if el.Name.Local != "svg" {
			return vw, vh
		}
		var w, h float64
		for _, a := range el.Attr {
			switch a.Name.Local {
			case "width":
				w = svgLength(a.Value)
			case "height":
				h = svgLength(a.Value)
			}
		}
		switch {
		case w > 0 && h > 0:
			return w, h
		case w > 0 && vw > 0:
			return w, w * vh / vw
		case h > 0 && vh > 0:
			return h * vw / vh, h
		}
		return vw, vh
	}
}

func svgLength(s string) float64 {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0
	}
	return v
}
