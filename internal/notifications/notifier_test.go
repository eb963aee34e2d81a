package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_PublishUser(t *testing.T) {
	// Notifier with nil Redis should return nil error (fail-open/noop)
	n := NewNotifier(nil)
	err := n.PublishUser(context.Background(), 1, "test payload")
	assert.NoError(t, err)
}

func TestUserChannel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		userID   uint
		expected string
	}{
		{1, "notifications:user:1"},
		{100, "notifications:user:100"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, UserChannel(tt.userID))
	}
}

func TestReactionChannel(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "reactions:post:5", ReactionChannel(5))
}

func TestNotifier_PatternSubscriberReceivesUserMessage(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	n := NewNotifier(rdb)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	payloads := make(chan string, 1)
	require.NoError(t, n.StartPatternSubscriber(ctx, func(_ string, payload string) {
		payloads <- payload
	}))

	// Subscription is asynchronous; retry until it lands.
	deadline := time.After(2 * time.Second)
	for {
		require.NoError(t, n.PublishUser(ctx, 7, `{"type":"like"}`))
		select {
		case got := <-payloads:
			assert.Equal(t, `{"type":"like"}`, got)
			return
		case <-deadline:
			t.Fatal("no message received before deadline")
		case <-time.After(50 * time.Millisecond):
		}
	}
}

func TestNotifier_ReactionSubscriberRoutesByPost(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	n := NewNotifier(rdb)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	channels := make(chan string, 1)
	require.NoError(t, n.StartReactionSubscriber(ctx, func(channel string, _ string) {
		channels <- channel
	}))

	deadline := time.After(2 * time.Second)
	for {
		require.NoError(t, n.PublishReactionCounts(ctx, 42, `{"wow":3}`))
		select {
		case got := <-channels:
			assert.Equal(t, "reactions:post:42", got)
			return
		case <-deadline:
			t.Fatal("no message received before deadline")
		case <-time.After(50 * time.Millisecond):
		}
	}
}
