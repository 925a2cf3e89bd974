package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

// ErrRatingTooHigh is returned when whole+fraction would exceed 5.0.
var ErrRatingTooHigh = errors.New("rating must be less than or equal to 5.0")

var (
	ratingWholes    = []string{"1", "2", "3", "4", "5"}
	ratingFractions = []string{".0", ".1", ".2", ".3", ".4", ".5", ".6", ".7", ".8", ".9"}
	maxRating       = decimal.NewFromInt(5)
)

// RatingWholes lists the selectable whole parts.
func RatingWholes() []string { return slices.Clone(ratingWholes) }

// RatingFractions lists the selectable fraction parts.
func RatingFractions() []string { return slices.Clone(ratingFractions) }

// ParseRating concatenates the two selector values and parses the result as a decimal.
func ParseRating(whole, fraction string) (decimal.Decimal, error) {
	if !slices.Contains(ratingWholes, whole) {
		return decimal.Zero, fmt.Errorf("rating whole part %q: must be one of %v", whole, ratingWholes)
	}
	if !slices.Contains(ratingFractions, fraction) {
		return decimal.Zero, fmt.Errorf("rating fraction %q: must be one of %v", fraction, ratingFractions)
	}
	d, err := decimal.NewFromString(whole + fraction)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing rating %s%s: %w", whole, fraction, err)
	}
	if d.GreaterThan(maxRating) {
		return decimal.Zero, fmt.Errorf("%w (got %s)", ErrRatingTooHigh, d.StringFixed(1))
	}
	return d, nil
}

// RatingValue returns the rating in [0,5]. An unset or invalid pair yields 0.
func (b Badge) RatingValue() float64 {
	d, err := ParseRating(b.RatingWhole, b.RatingFraction)
	if err != nil {
		return 0
	}
	return d.InexactFloat64()
}

// AverageRating returns the rating as a one-decimal string, "0.0" when unset or invalid.
func (b Badge) AverageRating() string {
	d, err := ParseRating(b.RatingWhole, b.RatingFraction)
	if err != nil {
		return "0.0"
	}
	return d.StringFixed(1)
}
