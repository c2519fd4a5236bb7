package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChallengeRoundTrip(t *testing.T) {
	m := NewChallengeManager("test-secret", 10*time.Minute)

	challenge, err := m.Issue("+15555550100", "123456")
	require.NoError(t, err)
	assert.NotContains(t, challenge, "123456")

	ok, err := m.Verify(challenge, "+15555550100", "123456")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.Verify(challenge, "+15555550100", "654321")
	require.NoError(t, err)
	assert.False(t, ok, "wrong code")

	ok, err = m.Verify(challenge, "+15555550199", "123456")
	require.NoError(t, err)
	assert.False(t, ok, "wrong phone")
}

func TestChallengeExpired(t *testing.T) {
	m := NewChallengeManager("test-secret", time.Minute)
	issued := time.Now()
	m.now = func() time.Time { return issued }

	challenge, err := m.Issue("+15555550100", "123456")
	require.NoError(t, err)

	m.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = m.Verify(challenge, "+15555550100", "123456")
	assert.ErrorIs(t, err, ErrInvalidChallenge)
}

func TestChallengeWrongSecret(t *testing.T) {
	challenge, err := NewChallengeManager("secret-a", time.Minute).Issue("+15555550100", "123456")
	require.NoError(t, err)

	_, err = NewChallengeManager("secret-b", time.Minute).Verify(challenge, "+15555550100", "123456")
	assert.ErrorIs(t, err, ErrInvalidChallenge)

	_, err = NewChallengeManager("secret-a", time.Minute).Verify("not-a-jwt", "+15555550100", "123456")
	assert.ErrorIs(t, err, ErrInvalidChallenge)
}

func TestGenerateCode(t *testing.T) {
	code, err := GenerateCode()
	require.NoError(t, err)
	assert.Regexp(t, `^[0-9]{6}$`, code)
}

func TestChallengeCodeNotRecoverable(t *testing.T) {
	m := NewChallengeManager("test-secret", time.Minute)
	challenge, err := m.Issue("+15555550100", "123456")
	require.NoError(t, err)

	claims := &ChallengeClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(challenge, claims)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.CodeMAC)

	// Unkeyed hashes of the code do not match.
	for _, candidate := range []string{"123456", "+15555550100|123456"} {
		sum := sha256.Sum256([]byte(candidate))
		assert.NotEqual(t, base64.RawURLEncoding.EncodeToString(sum[:]), claims.CodeMAC)
	}

	// The MAC depends on the secret.
	other, err := NewChallengeManager("other-secret", time.Minute).Issue("+15555550100", "123456")
	require.NoError(t, err)
	otherClaims := &ChallengeClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(other, otherClaims)
	require.NoError(t, err)
	assert.NotEqual(t, claims.CodeMAC, otherClaims.CodeMAC)

	// A forged MAC for a guessed code is rejected even with a valid signature.
	claims.CodeMAC = "not base64!"
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.signingKey)
	require.NoError(t, err)
	_, err = m.Verify(forged, "+15555550100", "123456")
	assert.ErrorIs(t, err, ErrInvalidChallenge)
}
