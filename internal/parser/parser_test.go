package parser

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeReceipt(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
		check   func(t *testing.T, r *Receipt)
	}{
		{
			name: "plain json",
			text: `{"venue":"Joe's Diner","items":[{"name":"Burger","price":12.99},{"name":" Fries ","price":4}],"subtotal":16.99,"tax":1.50,"tip":null}`,
			check: func(t *testing.T, r *Receipt) {
				assert.Equal(t, "Joe's Diner", r.Venue)
				require.Len(t, r.Items, 2)
				assert.Equal(t, "Fries", r.Items[1].Name)
				assert.True(t, r.Items[0].Price.Equal(decimal.RequireFromString("12.99")))
				assert.True(t, r.Subtotal.Valid)
				assert.True(t, r.Tax.Decimal.Equal(decimal.RequireFromString("1.5")))
				assert.False(t, r.Tip.Valid)
			},
		},
		{
			name: "fenced",
			text: "```json\n{\"items\":[{\"name\":\"Tea\",\"price\":3}]}\n```",
			check: func(t *testing.T, r *Receipt) {
				require.Len(t, r.Items, 1)
				assert.False(t, r.Subtotal.Valid)
			},
		},
		{
			name:    "not json",
			text:    "Sorry, I can't read that receipt.",
			wantErr: true,
		},
		{
			name:    "negative price",
			text:    `{"items":[{"name":"Refund","price":-3}]}`,
			wantErr: true,
		},
		{
			name:    "huge exponent price",
			text:    `{"items":[{"name":"Steak","price":1e400000000}]}`,
			wantErr: true,
		},
		{
			name:    "tiny exponent tax",
			text:    `{"items":[{"name":"Steak","price":30}],"tax":1E-400000000}`,
			wantErr: true,
		},
		{
			name:    "unnamed item",
			text:    `{"items":[{"name":"","price":3}]}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := decodeReceipt(tt.text)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrBadResponse)
				return
			}
			require.NoError(t, err)
			tt.check(t, r)
		})
	}
}

func TestOpenAIParse(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"venue\":\"Cafe\",\"items\":[{\"name\":\"Latte\",\"price\":4.75}],\"subtotal\":4.75,\"tax\":null,\"tip\":null}"}}]}`))
	}))
	defer srv.Close()

	p := NewOpenAI("sk-test", "", srv.URL, 5*time.Second)
	r, err := p.Parse(context.Background(), []byte{0xff, 0xd8, 0xff}, "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, "Cafe", r.Venue)
	require.Len(t, r.Items, 1)
	assert.Equal(t, DefaultModel, got.Model)
	assert.Equal(t, maxTokens, got.MaxTokens)
	require.Len(t, got.Messages, 1)
	require.Len(t, got.Messages[0].Content, 2)
	assert.True(t, strings.HasPrefix(got.Messages[0].Content[1].ImageURL.URL, "data:image/jpeg;base64,"))
}

func TestOpenAIParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantBad bool
	}{
		{name: "api error", status: http.StatusUnauthorized, body: `{"error":{"message":"bad key"}}`},
		{name: "no choices", status: http.StatusOK, body: `{"choices":[]}`, wantBad: true},
		{name: "garbage", status: http.StatusBadGateway, body: `<html>`, wantBad: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewOpenAI("sk-test", "gpt-4o-mini", srv.URL, time.Second).Parse(context.Background(), []byte("img"), "image/png")
			require.Error(t, err)
			assert.Equal(t, tt.wantBad, errors.Is(err, ErrBadResponse))
		})
	}
}

func TestDisabled(t *testing.T) {
	_, err := Disabled{}.Parse(context.Background(), nil, "")
	assert.ErrorIs(t, err, ErrDisabled)
}
