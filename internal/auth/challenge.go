package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"
)

var ErrInvalidChallenge = errors.New("invalid or expired verification challenge")

// ChallengeManager issues signed verification challenges. A challenge
// carries the phone number and a keyed MAC of the code sent to it, so
// nothing about pending verifications has to be stored server side and
// the code cannot be recovered from the challenge without the secret.
type ChallengeManager struct {
	signingKey []byte
	macKey     []byte
	ttl        time.Duration
	now        func() time.Time
}

// ChallengeClaims are the JWT claims of a verification challenge.
type ChallengeClaims struct {
	Phone   string `json:"phone"`
	CodeMAC string `json:"code_mac"`
	jwt.RegisteredClaims
}

// NewChallengeManager creates a manager keyed by secretKey. Challenges
// expire after ttl.
func NewChallengeManager(secretKey string, ttl time.Duration) *ChallengeManager {
	return &ChallengeManager{
		signingKey: deriveKey(secretKey, "tabsplit challenge signing"),
		macKey:     deriveKey(secretKey, "tabsplit challenge code"),
		ttl:        ttl,
		now:        time.Now,
	}
}

// deriveKey expands secret into a 32 byte key bound to purpose.
func deriveKey(secret, purpose string) []byte {
	key := make([]byte, sha256.Size)
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte(purpose))
	if _, err := io.ReadFull(r, key); err != nil {
		panic(fmt.Sprintf("hkdf: %v", err))
	}
	return key
}

func (m *ChallengeManager) codeMAC(phone, code string) []byte {
	mac := hmac.New(sha256.New, m.macKey)
	mac.Write([]byte(phone + "|" + code))
	return mac.Sum(nil)
}

// Issue creates a challenge binding code to phone.
func (m *ChallengeManager) Issue(phone, code string) (string, error) {
	now := m.now()
	claims := &ChallengeClaims{
		Phone:   phone,
		CodeMAC: base64.RawURLEncoding.EncodeToString(m.codeMAC(phone, code)),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign challenge: %w", err)
	}
	return signed, nil
}

// Verify reports whether code is the one issued for phone in challenge.
// A tampered or expired challenge returns ErrInvalidChallenge; a wrong
// phone or code returns false with no error.
func (m *ChallengeManager) Verify(challenge, phone, code string) (bool, error) {
	token, err := jwt.ParseWithClaims(
		challenge,
		&ChallengeClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.signingKey, nil
		},
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidChallenge, err)
	}

	claims, ok := token.Claims.(*ChallengeClaims)
	if !ok || !token.Valid {
		return false, ErrInvalidChallenge
	}
	if claims.Phone != phone {
		return false, nil
	}
	want, err := base64.RawURLEncoding.DecodeString(claims.CodeMAC)
	if err != nil {
		return false, ErrInvalidChallenge
	}
	return hmac.Equal(want, m.codeMAC(phone, code)), nil
}
