package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mmynk/tabsplit/internal/apperr"
	"github.com/mmynk/tabsplit/internal/models"
	"github.com/mmynk/tabsplit/internal/storage"
)

var (
	ErrInvalidToken = errors.New("invalid or unknown token")
	ErrMissingToken = errors.New("authorization token required")
)

const (
	// tokenBytes gives 192 bits of entropy per token.
	tokenBytes = 24

	// maxSlugLen bounds the readable venue prefix on share tokens.
	maxSlugLen  = 32
	maxTokenLen = maxSlugLen + 1 + 64
)

// TokenStore resolves a token of a given kind to the resource it unlocks.
// Implementations return an error for unknown tokens; the Authority
// collapses every such error into one uniform NotFound.
type TokenStore interface {
	ResolveToken(ctx context.Context, kind models.TokenKind, token string) (*models.ResourceRef, error)
}

// Authority mints and resolves bearer tokens.
type Authority struct {
	store   TokenStore
	entropy io.Reader
}

// NewAuthority creates an Authority backed by store.
func NewAuthority(store TokenStore) *Authority {
	return &Authority{store: store, entropy: rand.Reader}
}

// Mint returns a fresh random token.
func (a *Authority) Mint() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := io.ReadFull(a.entropy, buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// MintShare returns a share token prefixed with a readable slug of venue,
// e.g. "joes-diner-<random>", or "bill-<random>" when venue has no usable
// characters. The random part alone carries full entropy.
func (a *Authority) MintShare(venue string) (string, error) {
	token, err := a.Mint()
	if err != nil {
		return "", err
	}
	slug := Slugify(venue)
	if slug == "" {
		slug = "bill"
	}
	return slug + "-" + token, nil
}

// Resolve looks up token as a token of kind. Missing, malformed, unknown
// and wrong-kind tokens all return the same NotFound error. Other store
// failures are reported as internal errors.
func (a *Authority) Resolve(ctx context.Context, kind models.TokenKind, token string) (*models.ResourceRef, error) {
	if !wellFormed(token) {
		return nil, notFound()
	}
	ref, err := a.store.ResolveToken(ctx, kind, token)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound()
		}
		return nil, apperr.Internal(fmt.Errorf("failed to resolve token: %w", err))
	}
	if ref == nil || ref.Kind != kind {
		return nil, notFound()
	}
	return ref, nil
}

// Slugify lowercases s and keeps ASCII letters and digits, joining runs of
// anything else with a single hyphen.
func Slugify(s string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(s) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			pendingHyphen = b.Len() > 0
			continue
		}
		if pendingHyphen {
			if b.Len() >= maxSlugLen-1 {
				break
			}
			b.WriteByte('-')
			pendingHyphen = false
		}
		if b.Len() >= maxSlugLen {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

func wellFormed(token string) bool {
	if len(token) < base64.RawURLEncoding.EncodedLen(tokenBytes) || len(token) > maxTokenLen {
		return false
	}
	for _, r := range token {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

func notFound() error {
	return &apperr.Error{Kind: apperr.KindNotFound, Message: "bill not found", Err: ErrInvalidToken}
}

func isNotFound(err error) bool {
	return errors.Is(err, storage.ErrNotFound) || apperr.Is(err, apperr.KindNotFound)
}
