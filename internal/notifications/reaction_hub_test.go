package notifications

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReactionHub_WatchAndBroadcast(t *testing.T) {
	hub := NewReactionHub()

	watcher := hub.Register(1, nil)
	other := hub.Register(2, nil)
	hub.Watch(watcher, 10)
	hub.Watch(other, 20)

	hub.BroadcastPost(10, `{"like":1}`)

	select {
	case msg := <-watcher.Send:
		assert.JSONEq(t, `{"like":1}`, string(msg))
	default:
		t.Fatal("watcher did not receive broadcast")
	}

	select {
	case <-other.Send:
		t.Fatal("client watching another post received broadcast")
	default:
	}
}

func TestReactionHub_UnregisterCleansSubscriptions(t *testing.T) {
	hub := NewReactionHub()

	client := hub.Register(1, nil)
	hub.Watch(client, 10)
	hub.Watch(client, 11)
	require.Equal(t, 1, hub.WatcherCount(10))

	hub.UnregisterClient(client)
	assert.Zero(t, hub.WatcherCount(10))
	assert.Zero(t, hub.WatcherCount(11))

	// Watching after unregister is a no-op.
	hub.Watch(client, 10)
	assert.Zero(t, hub.WatcherCount(10))
}

func TestReactionHub_Unwatch(t *testing.T) {
	hub := NewReactionHub()

	client := hub.Register(1, nil)
	hub.Watch(client, 10)
	hub.Unwatch(client, 10)

	hub.BroadcastPost(10, `{"like":1}`)
	select {
	case <-client.Send:
		t.Fatal("unwatched client received broadcast")
	default:
	}
}
