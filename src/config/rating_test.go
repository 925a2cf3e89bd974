package config

import (
	"errors"
	"strconv"
	"testing"
)

func TestParseRatingGrid(t *testing.T) {
	for _, w := range RatingWholes() {
		for _, f := range RatingFractions() {
			want, _ := strconv.ParseFloat(w+f, 64)
			d, err := ParseRating(w, f)
			if want > 5.0 {
				if !errors.Is(err, ErrRatingTooHigh) {
					t.Errorf("ParseRating(%s, %s) error = %v, want ErrRatingTooHigh", w, f, err)
				}
				continue
			}
			if err != nil {
				t.Fatalf("ParseRating(%s, %s): %v", w, f, err)
			}
			if got := d.StringFixed(1); got != strconv.FormatFloat(want, 'f', 1, 64) {
				t.Errorf("ParseRating(%s, %s) = %s, want %.1f", w, f, got, want)
			}
		}
	}
}

func TestParseRatingRejectsUnknownParts(t *testing.T) {
	cases := [][2]string{{"0", ".5"}, {"6", ".0"}, {"4", "5"}, {"", ""}, {"4", ".55"}}
	for _, c := range cases {
		if _, err := ParseRating(c[0], c[1]); err == nil {
			t.Errorf("ParseRating(%q, %q) succeeded", c[0], c[1])
		}
	}
}

func TestAverageRating(t *testing.T) {
	b := Badge{RatingWhole: "4", RatingFraction: ".5"}
	if got := b.AverageRating(); got != "4.5" {
		t.Errorf("AverageRating = %q", got)
	}
	if got := b.RatingValue(); got != 4.5 {
		t.Errorf("RatingValue = %v", got)
	}
	if got := (Badge{}).AverageRating(); got != "0.0" {
		t.Errorf("unset AverageRating = %q, want 0.0", got)
	}
}
