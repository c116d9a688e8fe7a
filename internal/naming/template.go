package naming

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Per-field fallback constants. A fallback applies only when the resolved
// value is empty after trimming.
const (
	FallbackOwner    = "Anonymous"
	FallbackItem     = "Unknown Item"
	FallbackBagDate  = "Unknown Roast"
	FallbackBrewDate = "Unknown Date"
	FallbackPhase    = "anytime"
)

// Emergency name prefixes. Emergency names are owner-agnostic placeholders
// built with zero external calls.
const (
	emergencyBagPrefix  = "New Coffee Bag"
	emergencyBrewPrefix = "Espresso Brew"
)

// normalizeField trims the value, substitutes the fallback when empty, and
// applies Unicode canonical normalization (NFC). Normalization only:
// nothing is stripped, escaped, or rejected; composed and decomposed forms
// of the same visible character render identically.
func normalizeField(value, fallback string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		v = fallback
	}
	return norm.NFC.String(v)
}

// renderBagName renders "{ownerName}'s {itemName} {dateLabel}".
func renderBagName(owner, item, dateLabel string) string {
	return normalizeField(owner, FallbackOwner) + "'s " +
		normalizeField(item, FallbackItem) + " " +
		normalizeField(dateLabel, FallbackBagDate)
}

// renderBrewName renders "{ownerName}'s {ordinal} {dayPhase} {itemName}
// {dateLabel}". When ordinal is 1 the token and its surrounding whitespace
// collapse entirely; first-of-bucket brews never read "1st".
func renderBrewName(owner string, ordinal int, phase DayPhase, item, dateLabel string) string {
	parts := []string{normalizeField(owner, FallbackOwner) + "'s"}
	if ordinal > 1 {
		parts = append(parts, formatOrdinal(ordinal))
	}
	parts = append(parts,
		normalizeField(string(phase), FallbackPhase),
		normalizeField(item, FallbackItem),
		normalizeField(dateLabel, FallbackBrewDate),
	)
	return strings.Join(parts, " ")
}

// formatOrdinal renders n with its English ordinal suffix: 2nd, 3rd, 4th,
// 11th-13th take "th", otherwise the last digit decides.
func formatOrdinal(n int) string {
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}

// emergencyBagName builds the zero-lookup placeholder for a bag.
func emergencyBagName(now time.Time) string {
	return emergencyBagPrefix + " " + now.UTC().Format("2006-01-02")
}

// emergencyBrewName builds the zero-lookup placeholder for a brew, with a
// coarse (minute-precision) timestamp.
func emergencyBrewName(at time.Time) string {
	return emergencyBrewPrefix + " " + at.UTC().Format("2006-01-02 15:04")
}
