// Package verify checks that a participant controls a phone number.
package verify

import (
	"context"
	"errors"
	"strings"
)

var ErrInvalidPhone = errors.New("phone number must be in international format, e.g. +15555550100")

// Verifier sends and checks one-time codes.
type Verifier interface {
	// Start sends a code to phone. The returned challenge, if non-empty,
	// must be passed back to Check.
	Start(ctx context.Context, phone string) (challenge string, err error)

	// Check reports whether code is the one sent to phone. A wrong or
	// expired code is (false, nil); errors mean the provider failed.
	Check(ctx context.Context, phone, challenge, code string) (bool, error)
}

// NormalizePhone returns phone in E.164 form. Ten digit numbers without a
// country code are taken as North American.
func NormalizePhone(phone string) (string, error) {
	phone = strings.TrimSpace(phone)
	plus := strings.HasPrefix(phone, "+")

	var digits strings.Builder
	for _, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case r == ' ', r == '-', r == '(', r == ')', r == '.', r == '+':
		default:
			return "", ErrInvalidPhone
		}
	}

	d := digits.String()
	switch {
	case plus:
	case len(d) == 10:
		d = "1" + d
	case len(d) == 11 && d[0] == '1':
	default:
		return "", ErrInvalidPhone
	}
	if len(d) < 8 || len(d) > 15 || d[0] == '0' {
		return "", ErrInvalidPhone
	}
	return "+" + d, nil
}

// MaskPhone hides all but the last four digits, for logs.
func MaskPhone(phone string) string {
	if len(phone) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
}
