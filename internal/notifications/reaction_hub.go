package notifications

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/gofiber/websocket/v2"
)

// ReactionHub manages WebSocket connections watching live reaction counts.
// Unlike Hub (which is user-centric), ReactionHub is post-centric: a viewer
// subscribes to the posts currently on screen and receives count updates
// for exactly those.
type ReactionHub struct {
	mu sync.RWMutex

	// Map: postID -> set of watching clients
	watchers map[uint]map[*Client]struct{}

	// Map: client -> set of postIDs it watches
	clientPosts map[*Client]map[uint]struct{}
}

// Name returns a human-readable identifier for this hub.
func (h *ReactionHub) Name() string { return "reaction hub" }

// NewReactionHub creates a new ReactionHub instance.
func NewReactionHub() *ReactionHub {
	return &ReactionHub{
		watchers:    make(map[uint]map[*Client]struct{}),
		clientPosts: make(map[*Client]map[uint]struct{}),
	}
}

// Register creates a client for the connection. The client starts watching
// nothing; Watch adds posts as the viewer scrolls.
func (h *ReactionHub) Register(userID uint, conn *websocket.Conn) *Client {
	client := NewClient(h, conn, userID)
	h.mu.Lock()
	h.clientPosts[client] = make(map[uint]struct{})
	h.mu.Unlock()
	return client
}

// Watch subscribes a client to count updates for a post.
func (h *ReactionHub) Watch(client *Client, postID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clientPosts[client]; !ok {
		return
	}
	if h.watchers[postID] == nil {
		h.watchers[postID] = make(map[*Client]struct{})
	}
	h.watchers[postID][client] = struct{}{}
	h.clientPosts[client][postID] = struct{}{}
}

// Unwatch removes a client's subscription to a post.
func (h *ReactionHub) Unwatch(client *Client, postID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.watchers[postID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.watchers, postID)
		}
	}
	if posts, ok := h.clientPosts[client]; ok {
		delete(posts, postID)
	}
}

// UnregisterClient removes a client and all its post subscriptions.
func (h *ReactionHub) UnregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	posts, ok := h.clientPosts[client]
	if !ok {
		return
	}
	for postID := range posts {
		if clients, exists := h.watchers[postID]; exists {
			delete(clients, client)
			if len(clients) == 0 {
				delete(h.watchers, postID)
			}
		}
	}
	delete(h.clientPosts, client)
}

// BroadcastPost sends a payload to every client watching postID.
func (h *ReactionHub) BroadcastPost(postID uint, payload string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if clients, ok := h.watchers[postID]; ok {
		data := []byte(payload)
		for c := range clients {
			c.TrySend(data)
		}
	}
}

// WatcherCount returns how many clients watch a post.
func (h *ReactionHub) WatcherCount(postID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.watchers[postID])
}

// Shutdown gracefully closes all websocket connections watching reactions.
func (h *ReactionHub) Shutdown(_ context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clientPosts {
		if client.Conn == nil {
			continue
		}
		if err := client.Conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "Server shutting down")); err != nil {
			log.Printf("failed to write close message for reaction watcher: %v", err)
		}
		if err := client.Conn.Close(); err != nil {
			log.Printf("failed to close reaction websocket: %v", err)
		}
	}
	h.watchers = make(map[uint]map[*Client]struct{})
	h.clientPosts = make(map[*Client]map[uint]struct{})
	return nil
}

// StartWiring connects the Notifier's reaction channel to this hub.
func (h *ReactionHub) StartWiring(ctx context.Context, n *Notifier) error {
	return n.StartReactionSubscriber(ctx, func(channel, payload string) {
		var postID uint
		if _, err := fmt.Sscanf(channel, "reactions:post:%d", &postID); err != nil {
			log.Printf("invalid reaction channel: %s", channel)
			return
		}
		h.BroadcastPost(postID, payload)
	})
}
