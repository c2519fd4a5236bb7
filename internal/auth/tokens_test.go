package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/mmynk/tabsplit/internal/apperr"
	"github.com/mmynk/tabsplit/internal/models"
	"github.com/mmynk/tabsplit/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTokenStore struct {
	refs map[string]*models.ResourceRef
	err  error
}

func (f *fakeTokenStore) ResolveToken(_ context.Context, kind models.TokenKind, token string) (*models.ResourceRef, error) {
	if f.err != nil {
		return nil, f.err
	}
	ref, ok := f.refs[token]
	if !ok || ref.Kind != kind {
		return nil, storage.ErrNotFound
	}
	return ref, nil
}

func TestMint(t *testing.T) {
	a := NewAuthority(&fakeTokenStore{})

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := a.Mint()
		require.NoError(t, err)
		assert.Len(t, token, 32)
		assert.True(t, wellFormed(token))
		assert.False(t, seen[token], "duplicate token")
		seen[token] = true
	}
}

func TestMintShare(t *testing.T) {
	a := NewAuthority(&fakeTokenStore{})

	token, err := a.MintShare("Joe's Diner")
	require.NoError(t, err)
	assert.Regexp(t, `^joe-s-diner-[A-Za-z0-9_-]{32}$`, token)
	assert.True(t, wellFormed(token))

	token, err = a.MintShare("  ")
	require.NoError(t, err)
	assert.Regexp(t, `^bill-[A-Za-z0-9_-]{32}$`, token)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Joe's Diner", "joe-s-diner"},
		{"  --Café 42!!", "caf-42"},
		{"", ""},
		{"!!!", ""},
		{"The Extraordinarily Long Restaurant Name Of Doom", "the-extraordinarily-long-restaur"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Slugify(tt.in)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), maxSlugLen)
		})
	}
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	creator := "c" + "CCCCCCCCCCCCCCCCCCCCCCCCCCCCCCC"
	share := "diner-" + "SSSSSSSSSSSSSSSSSSSSSSSSSSSSSSSS"
	store := &fakeTokenStore{refs: map[string]*models.ResourceRef{
		creator: {Kind: models.TokenCreator, BillID: "bill-1"},
		share:   {Kind: models.TokenShare, BillID: "bill-1"},
	}}
	a := NewAuthority(store)

	ref, err := a.Resolve(ctx, models.TokenCreator, creator)
	require.NoError(t, err)
	assert.Equal(t, "bill-1", ref.BillID)

	ref, err = a.Resolve(ctx, models.TokenShare, share)
	require.NoError(t, err)
	assert.Equal(t, models.TokenShare, ref.Kind)

	cases := map[string]struct {
		kind  models.TokenKind
		token string
	}{
		"missing":    {models.TokenCreator, ""},
		"too short":  {models.TokenCreator, "abc"},
		"bad chars":  {models.TokenCreator, "cCCCCCCCCCCCCCCCCCCCCCCCCCCCCC/="},
		"unknown":    {models.TokenCreator, "UUUUUUUUUUUUUUUUUUUUUUUUUUUUUUUU"},
		"wrong kind": {models.TokenShare, creator},
	}

	var messages []string
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := a.Resolve(ctx, tc.kind, tc.token)
			require.Error(t, err)
			assert.True(t, apperr.Is(err, apperr.KindNotFound))
			messages = append(messages, err.Error())
		})
	}
	for _, m := range messages {
		assert.Equal(t, messages[0], m, "resolution failures must be indistinguishable")
	}
}

func TestResolveStoreFailure(t *testing.T) {
	a := NewAuthority(&fakeTokenStore{err: errors.New("disk on fire")})

	_, err := a.Resolve(context.Background(), models.TokenCreator, "CCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCC")
	require.Error(t, err)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
}
