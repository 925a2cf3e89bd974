package config

import (
	"fmt"
	"strings"

	"github.com/sofmeright/reviewbadge/src/colors"
)

// Validate checks structural invariants of a loaded Config.
// Returns warnings (soft issues) and a hard error if the config is invalid.
func Validate(cfg *Config) (warnings []string, err error) {
	var errs []string
	b := cfg.Badge

	// ── Layout ────────────────────────────────────────────────────────────

	if !b.Layout.Valid() {
		errs = append(errs, fmt.Sprintf("badge.layout: unknown layout %q (supported: %s)", b.Layout, joinLayouts()))
	}

	// ── Logo ──────────────────────────────────────────────────────────────

	if b.Logo != "" && !b.Logo.Valid() {
		errs = append(errs, fmt.Sprintf("badge.logo: unknown logo %q (supported: google, facebook, other)", b.Logo))
	}
	if len(b.LogoList) > MaxLogos {
		errs = append(errs, fmt.Sprintf("badge.logo_list: at most %d logos, got %d", MaxLogos, len(b.LogoList)))
	}
	if b.Layout == Layout1 && b.LogoURL != "" {
		warnings = append(warnings, "badge.logo_url: ignored by layout-1 (uses logo_list)")
	}
	if b.Layout != Layout1 && len(b.LogoList) > 0 {
		warnings = append(warnings, fmt.Sprintf("badge.logo_list: ignored by %s (uses logo)", b.Layout))
	}
	if b.Logo == LogoOther && b.Layout != Layout1 && len(b.Uploads) == 0 && b.LogoURL == "" {
		warnings = append(warnings, "badge.uploads: logo is \"other\" but nothing is uploaded; a placeholder will render")
	}

	// ── Rating ────────────────────────────────────────────────────────────

	if _, rerr := ParseRating(b.RatingWhole, b.RatingFraction); rerr != nil {
		errs = append(errs, fmt.Sprintf("badge.rating: %v", rerr))
	}

	// ── Link ──────────────────────────────────────────────────────────────

	if lerr := ValidateLink(b.OpenLink); lerr != nil {
		errs = append(errs, fmt.Sprintf("badge.open_link: %v", lerr))
	}

	// ── Colors ────────────────────────────────────────────────────────────

	for _, slot := range colors.Slots() {
		v := b.Colors.Get(slot)
		if v == "" {
			continue
		}
		if _, cerr := colors.Parse(string(v)); cerr != nil {
			errs = append(errs, fmt.Sprintf("badge.colors.%s: %v", slot, cerr))
		}
	}

	// ── Inline ────────────────────────────────────────────────────────────

	if cfg.Inline.Timeout < 0 {
		errs = append(errs, fmt.Sprintf("inline.timeout: must not be negative, got %d", cfg.Inline.Timeout))
	}
	if cfg.Inline.MaxBytes < 0 {
		errs = append(errs, fmt.Sprintf("inline.max_bytes: must not be negative, got %d", cfg.Inline.MaxBytes))
	}

	if len(errs) > 0 {
		return warnings, fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return warnings, nil
}

func joinLayouts() string {
	names := make([]string, 0, 4)
	for _, l := range Layouts() {
		names = append(names, string(l))
	}
	return strings.Join(names, ", ")
}
