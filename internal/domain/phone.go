package domain

import (
	"fmt"
	"strings"
)

const (
	// PhoneDigits is how many trailing digits identify a member (DDD + number).
	PhoneDigits = 11
	// MinPhoneLength rejects numbers too short to dial.
	MinPhoneLength = 10
)

// NormalizePhone strips everything but digits and keeps the last 11.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) > PhoneDigits {
		digits = digits[len(digits)-PhoneDigits:]
	}
	return digits
}

// ValidPhone reports whether a normalized phone is long enough to use.
func ValidPhone(phone string) bool {
	return len(phone) >= MinPhoneLength
}

// ParsePhone normalizes and validates in one step.
func ParsePhone(raw string) (string, error) {
	phone := NormalizePhone(raw)
	if !ValidPhone(phone) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPhone, raw)
	}
	return phone, nil
}
