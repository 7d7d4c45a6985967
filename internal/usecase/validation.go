package usecase

import (
	"strings"
	"unicode/utf8"
)

// Field bounds. Anything longer is truncated, never rejected.
const (
	MaxEmailLen       = 320
	MaxProductLen     = 64
	MaxReferrerLen    = 1024
	MaxUTMSourceLen   = 128
	MaxUTMMediumLen   = 128
	MaxUTMCampaignLen = 256
)

// NormalizeEmail trims, validates and lower-cases an address. The only
// structural requirement is a single "@" with something on both sides;
// anything stricter rejects real addresses. Returns false when the value
// is unusable.
func NormalizeEmail(raw string) (string, bool) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", false
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || at != strings.LastIndex(email, "@") {
		return "", false
	}
	return truncate(email, MaxEmailLen), true
}

// OptionalField extracts an optional string from an untyped request value.
// Non-string values and empty-after-trim strings count as absent; optional
// metadata never blocks a signup.
func OptionalField(v any, max int) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	s = truncate(s, max)
	return &s
}

// truncate cuts s to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
