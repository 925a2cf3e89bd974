package config

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// ErrInvalidURL is returned for click-through links that are neither absolute
// URLs nor site-internal paths.
var ErrInvalidURL = errors.New("please enter a valid URL (e.g., https://example.com)")

// bareDomain accepts scheme-less links such as "www.example.com/reviews".
var bareDomain = regexp.MustCompile(`^(?i)(www\.)?[a-z0-9](?:[a-z0-9-]*[a-z0-9])?(?:\.[a-z0-9](?:[a-z0-9-]*[a-z0-9])?)*\.[a-z]{2,}(?::\d+)?(?:[/?#]\S*)?$`)

// ValidateLink checks a click-through URL. Empty is allowed and renders as "#".
func ValidateLink(s string) error {
	if s == "" {
		return nil
	}
	if strings.HasPrefix(s, "/") || bareDomain.MatchString(s) {
		return nil
	}
	u, err := url.Parse(s)
	if err == nil && u.Scheme != "" && (u.Host != "" || u.Opaque != "") {
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidURL, s)
}
