package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisLimiter(t *testing.T) {
	rule := Rule{Limit: 2, Window: time.Minute}
	key := "tabsplit:rate_limit:verify:+15555550100"

	tests := []struct {
		name      string
		setupMock func(redismock.ClientMock)
		wantAllow bool
		wantRetry time.Duration
		wantErr   bool
	}{
		{
			name: "first event allowed",
			setupMock: func(mock redismock.ClientMock) {
				mock.ExpectIncr(key).SetVal(1)
				mock.ExpectExpireNX(key, time.Minute).SetVal(true)
			},
			wantAllow: true,
		},
		{
			name: "at limit allowed",
			setupMock: func(mock redismock.ClientMock) {
				mock.ExpectIncr(key).SetVal(2)
				mock.ExpectExpireNX(key, time.Minute).SetVal(false)
			},
			wantAllow: true,
		},
		{
			name: "over limit reports ttl",
			setupMock: func(mock redismock.ClientMock) {
				mock.ExpectIncr(key).SetVal(3)
				mock.ExpectExpireNX(key, time.Minute).SetVal(false)
				mock.ExpectTTL(key).SetVal(42 * time.Second)
			},
			wantAllow: false,
			wantRetry: 42 * time.Second,
		},
		{
			name: "redis failure",
			setupMock: func(mock redismock.ClientMock) {
				mock.ExpectIncr(key).SetErr(errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, mock := redismock.NewClientMock()
			tt.setupMock(mock)

			allowed, retry, err := NewRedisLimiter(client).Allow(context.Background(), "verify:+15555550100", rule)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAllow, allowed)
			assert.Equal(t, tt.wantRetry, retry)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRedisLimiterPing(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectPing().SetVal("PONG")

	assert.NoError(t, NewRedisLimiter(client).Ping(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoop(t *testing.T) {
	allowed, retry, err := Noop{}.Allow(context.Background(), "k", Rule{Limit: 0, Window: time.Second})
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Zero(t, retry)
}
