package domain

import (
	"regexp"
	"strings"
)

const (
	// MinAmount and MaxAmount bound a single STK push, in KES.
	MinAmount int64 = 1
	MaxAmount int64 = 150000

	CountryCode = "254"

	MaxReferenceLength   = 12
	MaxDescriptionLength = 20
)

var (
	subscriberPattern = regexp.MustCompile(`^[17]\d{8}$`)
	nonAlphanumeric   = regexp.MustCompile(`[^a-zA-Z0-9]`)
	phoneSeparators   = strings.NewReplacer(" ", "", "-", "")
)

// NormalizePhone converts 07XXXXXXXX, +2547XXXXXXXX and 2547XXXXXXXX into the
// canonical 2547XXXXXXXX form the upstream expects.
func NormalizePhone(raw string) (string, error) {
	number := phoneSeparators.Replace(strings.TrimSpace(raw))
	if number == "" {
		return "", NewMissingRequiredFieldError("phone")
	}

	number = strings.TrimPrefix(number, "0")
	number = strings.TrimPrefix(number, "+254")
	number = strings.TrimPrefix(number, CountryCode)

	if !subscriberPattern.MatchString(number) {
		return "", NewInvalidPhoneError(raw)
	}
	return CountryCode + number, nil
}

// ValidateAmount checks the upstream per-transaction bounds.
func ValidateAmount(amount int64) error {
	if amount < MinAmount || amount > MaxAmount {
		return NewInvalidAmountError(amount)
	}
	return nil
}

// SanitizeReference strips everything but letters and digits and truncates to
// the upstream AccountReference limit. Falls back to def when nothing is left.
func SanitizeReference(raw, def string) string {
	return sanitize(raw, def, MaxReferenceLength)
}

// SanitizeDescription is SanitizeReference for TransactionDesc.
func SanitizeDescription(raw, def string) string {
	return sanitize(raw, def, MaxDescriptionLength)
}

func sanitize(raw, def string, limit int) string {
	clean := truncate(nonAlphanumeric.ReplaceAllString(raw, ""), limit)
	if clean == "" {
		clean = truncate(nonAlphanumeric.ReplaceAllString(def, ""), limit)
	}
	return clean
}

func truncate(s string, limit int) string {
	if len(s) > limit {
		return s[:limit]
	}
	return s
}
