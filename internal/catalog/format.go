package catalog

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/temberanawe/ussd/internal/domain"
)

// PriceLabel renders a place price for menu and SMS copy.
func PriceLabel(price int, lang domain.Language) string {
	if price == 0 {
		if lang == domain.LangKinyarwanda {
			return "Ubuntu"
		}
		return "Free"
	}
	return humanize.Comma(int64(price)) + " RWF"
}

// RatingStars renders a 0..5 rating as a star bar, e.g. "★★★★☆ (4.5/5)".
func RatingStars(rating float64) string {
	full := int(rating)
	if full > 5 {
		full = 5
	}
	return strings.Repeat("★", full) + strings.Repeat("☆", 5-full) +
		fmt.Sprintf(" (%.1f/5)", rating)
}
