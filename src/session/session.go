// Package session holds the badge configuration being edited, together with
// the upload handles it owns. Every edit goes through a Session method that
// validates first and leaves the configuration untouched on failure.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/sofmeright/reviewbadge/src/badge"
	"github.com/sofmeright/reviewbadge/src/blob"
	"github.com/sofmeright/reviewbadge/src/colors"
	"github.com/sofmeright/reviewbadge/src/config"
	"github.com/sofmeright/reviewbadge/src/imaging"
	"github.com/sofmeright/reviewbadge/src/inline"
)

// ErrSlotOutOfRange is returned for a layout-1 logo slot index that does not exist,
// or when adding a slot beyond config.MaxLogos.
var ErrSlotOutOfRange = errors.New("logo slot out of range")

// ErrNoLogoSlots is returned when a logo slot is filled on a layout without a logo strip.
var ErrNoLogoSlots = errors.New("only layout-1 has logo slots")

// Generator renders a badge configuration.
type Generator interface {
	Generate(ctx context.Context, b config.Badge, id config.LayoutID) (string, error)
}

// slot is one layout-1 drop zone. An empty ref is an empty slot; handle is
// set only when the session owns the image.
type slot struct {
	ref    string
	handle *blob.Handle
}

func (s *slot) release() {
	s.handle.Release()
	*s = slot{}
}

// Session is the single owner of a badge configuration.
type Session struct {
	mu sync.Mutex

	badge       config.Badge
	validRating bool
	warning     string
	overrides   map[string]bool

	store   *blob.Store
	uploads []*blob.Handle
	slots   []slot

	gen       Generator
	generated string
	seq       uint64 // last Generate call started
	stored    uint64 // Generate call whose result is cached

	baseDir string
	log     zerolog.Logger
}

// Option customises a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Session) { s.log = log }
}

// WithGenerator replaces the default inlining generator.
func WithGenerator(g Generator) Option {
	return func(s *Session) { s.gen = g }
}

// WithBaseDir resolves relative logo file paths in the configuration against dir.
func WithBaseDir(dir string) Option {
	return func(s *Session) { s.baseDir = dir }
}

// New starts a session from cfg. Local image files named in the logo list or
// uploads are read into session-owned handles.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Session, error) {
	s := &Session{
		badge:       config.DefaultBadge(),
		validRating: true,
		overrides:   make(map[string]bool),
		store:       blob.NewStore(),
		slots:       []slot{{}},
		log:         zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.gen == nil {
		in := inline.New(cfg.Inline, s.store, inline.WithLogger(s.log))
		s.gen = badge.New(in, s.log)
	}

	if err := s.hydrate(ctx, cfg.Badge); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Snapshot returns a copy of the current configuration.
func (s *Session) Snapshot() config.Badge {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.badge.Clone()
}

// Update applies fn to a copy of the configuration and keeps the result if it
// validates. The logo list and uploads are owned by the session and are
// restored after fn runs. A layout change goes through the same defaulting as
// SetLayout, a logo change re-resolves the logo as SelectLogo does, and changed
// colours or verified text count as user overrides.
func (s *Session) Update(fn func(config.Badge) config.Badge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.badge
	next := fn(prev.Clone())
	next.LogoList = prev.LogoList
	next.Uploads = prev.Uploads
	next.GeneratedHTML = prev.GeneratedHTML

	check := config.Config{Badge: next, Inline: config.DefaultInlineConfig()}
	if _, err := config.Validate(&check); err != nil {
		return err
	}

	if next.VerifiedText != prev.VerifiedText {
		s.overrides[string(badge.FieldVerifiedText)] = true
	}
	for _, sl := range colors.Slots() {
		if next.Colors.Get(sl) != prev.Colors.Get(sl) {
			s.overrides[sl.String()] = true
		}
	}

	layout := next.Layout
	next.Layout = prev.Layout
	s.badge = next
	s.validRating = true
	switch {
	case layout != prev.Layout:
		s.applyLayout(layout)
	case next.Logo != prev.Logo:
		s.badge.LogoURL = s.resolveLogo()
	}
	return nil
}

// SetLayout switches layouts. Fields the user has not edited take the new
// layout's defaults, the single logo is re-resolved, and leaving layout-1
// releases every logo slot.
func (s *Session) SetLayout(id config.LayoutID) error {
	if _, err := badge.Lookup(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyLayout(id)
	return nil
}

func (s *Session) applyLayout(id config.LayoutID) {
	from := s.badge.Layout
	s.badge.Layout = id

	if !s.overrides[string(badge.FieldVerifiedText)] {
		s.badge.VerifiedText = config.DefaultVerifiedText(id)
	}
	defaults := config.DefaultColors(id)
	for _, sl := range colors.Slots() {
		if !s.overrides[sl.String()] {
			s.badge.Colors = s.badge.Colors.With(sl, defaults.Get(sl))
		}
	}

	if from == config.Layout1 && id != config.Layout1 {
		for i := range s.slots {
			s.slots[i].release()
		}
		s.slots = []slot{{}}
	}

	s.badge.LogoURL = s.resolveLogo()
	s.syncLogos()

	s.log.Debug().Str("from", string(from)).Str("to", string(id)).Msg("layout changed")
}

// resolveLogo picks the single logo for the current layout and selection.
// Layout-1 has no single logo. An "other" selection keeps the upload already chosen.
func (s *Session) resolveLogo() string {
	if s.badge.Layout == config.Layout1 {
		return ""
	}
	if s.badge.Logo == config.LogoOther && s.badge.LogoURL != "" && s.ownsUpload(s.badge.LogoURL) {
		return s.badge.LogoURL
	}
	return imaging.ResolveLogo(s.badge.Logo, s.badge.Layout, s.uploadRefs())
}

func (s *Session) ownsUpload(ref string) bool {
	return lo.Contains(s.uploadRefs(), ref)
}

func (s *Session) uploadRefs() []string {
	return lo.Map(s.uploads, func(h *blob.Handle, _ int) string { return h.Ref() })
}

// syncLogos rebuilds the derived logo fields from the slots and uploads.
func (s *Session) syncLogos() {
	if s.badge.Layout == config.Layout1 {
		s.badge.LogoList = lo.Map(s.slots, func(sl slot, _ int) string { return sl.ref })
	} else {
		s.badge.LogoList = nil
	}
	s.badge.Uploads = s.uploadRefs()
}

// SelectRatingWhole sets the whole part of the rating. A combination above 5.0
// is rejected, except that choosing "5" forces the fraction to ".0".
func (s *Session) SelectRatingWhole(whole string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := config.ParseRating(whole, s.badge.RatingFraction)
	switch {
	case err == nil:
		s.badge.RatingWhole = whole
	case errors.Is(err, config.ErrRatingTooHigh) && whole == "5":
		s.badge.RatingWhole = whole
		s.badge.RatingFraction = ".0"
	case errors.Is(err, config.ErrRatingTooHigh):
		s.validRating = false
		return err
	default:
		return err
	}
	s.validRating = true
	return nil
}

// SelectRatingFraction sets the fractional part of the rating. A combination
// above 5.0 is rejected and marks the rating invalid.
func (s *Session) SelectRatingFraction(fraction string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := config.ParseRating(s.badge.RatingWhole, fraction); err != nil {
		if errors.Is(err, config.ErrRatingTooHigh) {
			s.validRating = false
		}
		return err
	}
	s.badge.RatingFraction = fraction
	s.validRating = true
	return nil
}

// RatingValid reports whether the last rating edit was accepted.
func (s *Session) RatingValid() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.validRating
}

// SetLink sets the click-through URL.
func (s *Session) SetLink(link string) error {
	if err := config.ValidateLink(link); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.badge.OpenLink = link
	return nil
}

// SetColor sets one colour slot from a hex string or "transparent".
func (s *Session) SetColor(sl colors.Slot, raw string) error {
	v, err := colors.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", sl, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.badge.Colors = s.badge.Colors.With(sl, v)
	s.overrides[sl.String()] = true
	return nil
}

// SetText sets one of the free-text fields.
func (s *Session) SetText(f badge.Field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch f {
	case badge.FieldText:
		s.badge.Text = value
	case badge.FieldStoreName:
		s.badge.StoreName = value
	case badge.FieldReviewText:
		s.badge.ReviewText = value
	case badge.FieldVerifiedText:
		s.badge.VerifiedText = value
	default:
		return fmt.Errorf("%s is not a text field", f)
	}
	s.overrides[string(f)] = true
	return nil
}

// SelectLogo chooses a built-in logo or the user's upload.
func (s *Session) SelectLogo(sel config.LogoSelection) error {
	if !sel.Valid() {
		return fmt.Errorf("unknown logo %q", sel)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.badge.Logo = sel
	s.badge.LogoURL = s.resolveLogo()
	return nil
}

// Warning returns the current upload warning, or "".
func (s *Session) Warning() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.warning
}

// DismissWarning clears the upload warning.
func (s *Session) DismissWarning() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warning = ""
}

// Generate renders the configuration as it is when the call starts. The
// result is cached unless a later call has already cached its own. On error
// the cached document is left as it was.
func (s *Session) Generate(ctx context.Context) (string, error) {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	snap := s.badge.Clone()
	s.mu.Unlock()

	html, err := s.gen.Generate(ctx, snap, snap.Layout)
	if err != nil {
		s.log.Error().Err(err).Str("layout", string(snap.Layout)).Msg("generating badge")
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq > s.stored {
		s.stored = seq
		s.generated = html
		s.badge.GeneratedHTML = html
	}
	return html, nil
}

// GeneratedHTML returns the most recent cached document.
func (s *Session) GeneratedHTML() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generated
}

// Preview renders the badge fragment without inlining images.
func (s *Session) Preview() (string, error) {
	snap := s.Snapshot()
	return badge.Preview(snap, snap.Layout)
}

// Store exposes the blob store backing the session's uploads.
func (s *Session) Store() *blob.Store {
	return s.store
}

// Close releases every handle the session owns.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, h := range s.uploads {
		h.Release()
	}
	s.uploads = nil
	for i := range s.slots {
		s.slots[i].release()
	}
	s.slots = []slot{{}}
	s.syncLogos()
	s.store.Close()
}
