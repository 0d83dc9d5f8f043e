package onboarding

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// maxAnswerLength caps the length of any stored answer.
const maxAnswerLength = 500

var (
	controlReplacer = strings.NewReplacer("\r", " ", "\n", " ", "\t", " ")

	asciiLetterPattern = regexp.MustCompile(`[a-zA-Z]`)

	// Simplified RFC-5322 shape: permissive local part, then at least two
	// dot-separated labels, each alphanumeric with internal hyphens only.
	emailPattern = regexp.MustCompile(
		`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]*[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]*[a-zA-Z0-9])?)+$`)
)

// Sanitize normalizes free-text input before validation: carriage returns,
// line feeds and tabs become single spaces, surrounding whitespace is
// trimmed, and the result is truncated to maxAnswerLength characters.
func Sanitize(s string) string {
	s = controlReplacer.Replace(s)
	s = strings.TrimSpace(s)
	if runes := []rune(s); len(runes) > maxAnswerLength {
		s = string(runes[:maxAnswerLength])
	}
	return s
}

// IsValidName reports whether s looks like a human name: at least two
// characters after trimming, containing at least one ASCII letter.
func IsValidName(s string) bool {
	trimmed := strings.TrimSpace(s)
	return utf8.RuneCountInString(trimmed) >= 2 && asciiLetterPattern.MatchString(trimmed)
}

// IsValidEmail reports whether the trimmed string matches the simplified
// email pattern. A bare host with no dot ("a@b") is rejected.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// IsValidPhone strips everything but ASCII digits and accepts between 10
// and 15 digits inclusive.
func IsValidPhone(s string) bool {
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 10 && digits <= 15
}
