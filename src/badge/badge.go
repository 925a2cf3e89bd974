// Package badge renders review badges as self-contained HTML. Four fixed
// layouts are described by one descriptor table that both the exported
// document and the preview fragment are built from.
package badge

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sofmeright/reviewbadge/src/config"
)

// ErrUnsupportedLayout is returned for a layout id outside layout-1..layout-4.
var ErrUnsupportedLayout = errors.New("unsupported layout")

// Inliner converts image references to data URIs, keeping input order.
type Inliner interface {
	InlineAll(ctx context.Context, refs []string) ([]string, error)
}

// Generator produces exported badge documents.
type Generator struct {
	inliner Inliner
	log     zerolog.Logger
}

// New creates a generator. A nil inliner leaves image references as they are.
func New(inliner Inliner, log zerolog.Logger) *Generator {
	return &Generator{inliner: inliner, log: log}
}

// Generate renders b with the given layout as a standalone HTML document with
// every logo inlined. Only an unknown layout or a cancelled context fails.
func (g *Generator) Generate(ctx context.Context, b config.Badge, id config.LayoutID) (string, error) {
	l, err := Lookup(id)
	if err != nil {
		return "", err
	}

	logos := l.LogoRefs(b)
	if g.inliner != nil && len(logos) > 0 {
		logos, err = g.inliner.InlineAll(ctx, logos)
		if err != nil {
			return "", fmt.Errorf("inlining logos: %w", err)
		}
	}

	g.log.Debug().
		Str("layout", string(id)).
		Int("logos", len(logos)).
		Msg("generated badge")

	return document(b.OpenLink, l.render(b, logos)), nil
}

// Preview renders the badge container for b without inlining images or
// wrapping it in a document.
func Preview(b config.Badge, id config.LayoutID) (string, error) {
	l, err := Lookup(id)
	if err != nil {
		return "", err
	}
	return l.render(b, l.LogoRefs(b)), nil
}

const fontStylesheet = "https://fonts.googleapis.com/css2?family=Inter:wght@400;700&display=swap"

// document wraps a badge in a page whose body links the badge to href.
func document(href, badge string) string {
	if href == "" {
		href = "#"
	}

	var s strings.Builder
	s.WriteString("<!DOCTYPE html>\n")
	s.WriteString(`<html lang="en">` + "\n")
	s.WriteString("<head>\n")
	s.WriteString(`<meta charset="UTF-8">` + "\n")
	s.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1.0">` + "\n")
	s.WriteString("<title>Review Badge</title>\n")
	fmt.Fprintf(&s, `<link href="%s" rel="stylesheet">`+"\n", escape(fontStylesheet))
	s.WriteString("</head>\n")
	s.WriteString("<body>\n")
	fmt.Fprintf(&s, `<a style="text-decoration:none" href="%s" target="_blank">`+"\n", escape(href))
	s.WriteString(badge)
	s.WriteString("\n</a>\n")
	s.WriteString("</body>\n")
	s.WriteString("</html>\n")
	return s.String()
}
