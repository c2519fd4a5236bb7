package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// CodeDigits is the length of generated verification codes.
const CodeDigits = 6

// GenerateCode returns a random numeric code of CodeDigits digits.
func GenerateCode() (string, error) {
	var b strings.Builder
	for i := 0; i < CodeDigits; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate code: %w", err)
		}
		b.WriteByte(byte('0' + n.Int64()))
	}
	return b.String(), nil
}
