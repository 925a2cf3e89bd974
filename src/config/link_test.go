package config

import (
	"errors"
	"testing"
)

func TestValidateLink(t *testing.T) {
	valid := []string{
		"",
		"https://example.com",
		"http://shop.example.co.uk/reviews?page=2",
		"mailto:owner@example.com",
		"/reviews",
		"www.example.com",
		"example.com/reviews",
	}
	for _, in := range valid {
		if err := ValidateLink(in); err != nil {
			t.Errorf("ValidateLink(%q): %v", in, err)
		}
	}

	invalid := []string{"not a url", "reviews", "http//missing-colon", "javascript"}
	for _, in := range invalid {
		if err := ValidateLink(in); !errors.Is(err, ErrInvalidURL) {
			t.Errorf("ValidateLink(%q) = %v, want ErrInvalidURL", in, err)
		}
	}
}
