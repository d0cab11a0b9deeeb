package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ttacon/libphonenumber"
)

// Default region for parsing legacy phone numbers that were stored without a
// country prefix.
var CountryCode = "PH"

func IsValidEmail(email string) bool {
	// Basic email validation regex pattern
	pattern := `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	regex := regexp.MustCompile(pattern)
	return regex.MatchString(email)
}

// NormalizePhone parses a legacy phone value and returns it in E.164 form.
// Returns "" for anything that does not parse as a valid number; the caller
// stores the empty string rather than carrying garbage into the new schema.
func NormalizePhone(phoneNumber string) string {
	trimmed := strings.TrimSpace(phoneNumber)
	if trimmed == "" {
		return ""
	}
	p, err := libphonenumber.Parse(trimmed, CountryCode)
	if err != nil {
		return ""
	}
	if !libphonenumber.IsValidNumber(p) {
		return ""
	}
	return libphonenumber.Format(p, libphonenumber.E164)
}

// SlugFromLegacyID derives the deterministic natural key for entities whose
// legacy primary key is an auto-increment integer, e.g. ("job", 42) -> "job-42".
func SlugFromLegacyID(prefix string, id int) string {
	return fmt.Sprintf("%s-%d", prefix, id)
}

func NewTrue() *bool {
	b := true
	return &b
}

func NewFalse() *bool {
	b := false
	return &b
}

func UniqueSlice[T comparable](in []T) []T {
	seen := make(map[T]struct{}, len(in))
	out := make([]T, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
