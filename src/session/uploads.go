package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sofmeright/reviewbadge/src/badge"
	"github.com/sofmeright/reviewbadge/src/blob"
	"github.com/sofmeright/reviewbadge/src/colors"
	"github.com/sofmeright/reviewbadge/src/config"
	"github.com/sofmeright/reviewbadge/src/imaging"
	"github.com/sofmeright/reviewbadge/src/inline"
)

// Upload adds an image to the uploads offered as the "other" logo and returns
// the size warning, if any. When "other" is selected the upload becomes the logo.
func (s *Session) Upload(ctx context.Context, name string, data []byte) (string, error) {
	s.mu.Lock()
	s.warning = ""
	layout := s.badge.Layout
	s.mu.Unlock()

	fits := imaging.ValidateImageSize(ctx, data, layout)
	h, err := s.store.Create(name, data)
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.uploads = append(s.uploads, h)
	if s.badge.Logo == config.LogoOther {
		s.badge.LogoURL = h.Ref()
	}
	s.syncLogos()
	if !fits {
		s.warn(imaging.OversizeWarning(name, layout))
	}
	return s.warning, nil
}

// RemoveUpload releases upload i. With "other" selected the first remaining
// upload, if any, becomes the logo.
func (s *Session) RemoveUpload(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.uploads) {
		return fmt.Errorf("upload %d: %w", i, ErrSlotOutOfRange)
	}
	s.uploads[i].Release()
	s.uploads = append(s.uploads[:i], s.uploads[i+1:]...)
	s.warning = ""

	if s.badge.Logo == config.LogoOther {
		s.badge.LogoURL = imaging.ResolveLogo(config.LogoOther, s.badge.Layout, s.uploadRefs())
	}
	s.syncLogos()
	return nil
}

// Uploads returns the file names of the current uploads in order.
func (s *Session) Uploads() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, len(s.uploads))
	for i, h := range s.uploads {
		names[i] = h.Name()
	}
	return names
}

// DropSlot puts an image into layout-1 logo slot i, releasing whatever the slot
// held. The image is checked against the layout-1 recommended size. Other
// layouts have no slots and are rejected with ErrNoLogoSlots.
func (s *Session) DropSlot(ctx context.Context, i int, name string, data []byte) (string, error) {
	s.mu.Lock()
	if s.badge.Layout != config.Layout1 {
		s.mu.Unlock()
		return "", fmt.Errorf("slot %d: %w", i, ErrNoLogoSlots)
	}
	if i < 0 || i >= len(s.slots) {
		s.mu.Unlock()
		return "", fmt.Errorf("slot %d: %w", i, ErrSlotOutOfRange)
	}
	s.warning = ""
	s.mu.Unlock()

	fits := imaging.ValidateImageSize(ctx, data, config.Layout1)
	h, err := s.store.Create(name, data)
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The layout may have changed while the image was being checked.
	if s.badge.Layout != config.Layout1 {
		h.Release()
		return "", fmt.Errorf("slot %d: %w", i, ErrNoLogoSlots)
	}
	if i >= len(s.slots) {
		h.Release()
		return "", fmt.Errorf("slot %d: %w", i, ErrSlotOutOfRange)
	}
	s.slots[i].release()
	s.slots[i] = slot{ref: h.Ref(), handle: h}
	s.syncLogos()
	if !fits {
		s.warn(imaging.OversizeWarning(name, config.Layout1))
	}
	return s.warning, nil
}

// RemoveSlot empties layout-1 logo slot i and releases its image.
func (s *Session) RemoveSlot(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.slots) {
		return fmt.Errorf("slot %d: %w", i, ErrSlotOutOfRange)
	}
	s.slots[i].release()
	s.warning = ""
	s.syncLogos()
	return nil
}

// AddSlot appends an empty layout-1 logo slot.
func (s *Session) AddSlot() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.slots) >= config.MaxLogos {
		return fmt.Errorf("at most %d logos: %w", config.MaxLogos, ErrSlotOutOfRange)
	}
	s.slots = append(s.slots, slot{})
	s.syncLogos()
	return nil
}

// LogoSlots returns the layout-1 slot references in order, "" for empty slots.
func (s *Session) LogoSlots() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	refs := make([]string, len(s.slots))
	for i, sl := range s.slots {
		refs[i] = sl.ref
	}
	return refs
}

// warn replaces the current warning; only the latest is kept.
func (s *Session) warn(msg string) {
	s.warning = msg
	s.log.Warn().Msg(msg)
}

// hydrate loads b into the session. Logo entries that name local files are
// uploaded; anything else is kept as a plain reference.
func (s *Session) hydrate(ctx context.Context, b config.Badge) error {
	if !b.Layout.Valid() {
		b.Layout = config.Layout1
	}
	if !b.Logo.Valid() {
		b.Logo = config.LogoGoogle
	}

	layoutDefaults := config.DefaultColors(b.Layout)
	for _, sl := range colorSlots(b, layoutDefaults) {
		s.overrides[sl] = true
	}
	if b.VerifiedText != "" && b.VerifiedText != config.DefaultVerifiedText(b.Layout) {
		s.overrides[string(badge.FieldVerifiedText)] = true
	}

	logoURL := b.LogoURL
	s.badge = b.Clone()
	s.badge.LogoURL = ""
	s.badge.Colors = config.FillColors(b.Colors, b.Layout)
	if s.badge.VerifiedText == "" {
		s.badge.VerifiedText = config.DefaultVerifiedText(b.Layout)
	}
	if _, err := config.ParseRating(b.RatingWhole, b.RatingFraction); err != nil {
		s.validRating = false
	}

	for _, path := range b.Uploads {
		data, ok, err := s.readLocal(path)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		h, err := s.store.Create(filepath.Base(path), data)
		if err != nil {
			return fmt.Errorf("upload %s: %w", path, err)
		}
		s.uploads = append(s.uploads, h)
		if !imaging.ValidateImageSize(ctx, data, b.Layout) {
			s.warn(imaging.OversizeWarning(filepath.Base(path), b.Layout))
		}
		if logoURL == path {
			logoURL = h.Ref()
		}
	}

	if logoURL != "" && !blob.IsRef(logoURL) {
		data, ok, err := s.readLocal(logoURL)
		if err != nil {
			return err
		}
		if ok {
			h, err := s.store.Create(filepath.Base(logoURL), data)
			if err != nil {
				return fmt.Errorf("logo_url %s: %w", logoURL, err)
			}
			s.uploads = append(s.uploads, h)
			logoURL = h.Ref()
		}
	}

	if b.Layout == config.Layout1 {
		if len(b.LogoList) > config.MaxLogos {
			return fmt.Errorf("logo_list: at most %d logos: %w", config.MaxLogos, ErrSlotOutOfRange)
		}
		s.slots = s.slots[:0]
		for _, entry := range b.LogoList {
			sl, err := s.hydrateSlot(ctx, entry)
			if err != nil {
				return err
			}
			s.slots = append(s.slots, sl)
		}
		if len(s.slots) == 0 {
			s.slots = []slot{{}}
		}
	}

	switch {
	case logoURL != "" && b.Logo == config.LogoOther:
		s.badge.LogoURL = logoURL
	case logoURL != "" && b.Layout != config.Layout1 && !isBuiltinAsset(logoURL):
		// An explicit logo reference the selection would not produce.
		s.badge.LogoURL = logoURL
	default:
		s.badge.LogoURL = s.resolveLogo()
	}
	s.syncLogos()
	return nil
}

func (s *Session) hydrateSlot(ctx context.Context, entry string) (slot, error) {
	if entry == "" {
		return slot{}, nil
	}
	data, ok, err := s.readLocal(entry)
	if err != nil {
		return slot{}, err
	}
	if !ok {
		return slot{ref: entry}, nil
	}
	name := filepath.Base(entry)
	h, err := s.store.Create(name, data)
	if err != nil {
		return slot{}, fmt.Errorf("logo %s: %w", entry, err)
	}
	if !imaging.ValidateImageSize(ctx, data, config.Layout1) {
		s.warn(imaging.OversizeWarning(name, config.Layout1))
	}
	return slot{ref: h.Ref(), handle: h}, nil
}

// readLocal reads path when it names an existing local file. References with
// a scheme, and paths that do not exist on disk, are reported as not local.
func (s *Session) readLocal(path string) ([]byte, bool, error) {
	if blob.IsRef(path) || inline.IsDataURI(path) || strings.Contains(path, "://") {
		return nil, false, nil
	}
	full := path
	if !filepath.IsAbs(full) && s.baseDir != "" {
		full = filepath.Join(s.baseDir, full)
	}
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		return nil, false, nil
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, true, nil
}

// colorSlots names the colour slots in b that differ from the layout defaults.
func colorSlots(b config.Badge, defaults colors.Config) []string {
	var out []string
	for _, sl := range colors.Slots() {
		v := b.Colors.Get(sl)
		if v != "" && v != defaults.Get(sl) {
			out = append(out, sl.String())
		}
	}
	return out
}

// isBuiltinAsset reports whether ref is a built-in logo asset.
func isBuiltinAsset(ref string) bool {
	for _, sel := range []config.LogoSelection{config.LogoGoogle, config.LogoFacebook} {
		for _, l := range config.Layouts() {
			if imaging.DefaultAsset(sel, l) == ref {
				return true
			}
		}
	}
	return false
}
