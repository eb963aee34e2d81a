package server

import (
	"encoding/json"
	"log"

	"nabta/internal/middleware"
	"nabta/internal/notifications"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebsocketHandler handles WebSocket connections for real-time notifications
func (s *Server) WebsocketHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		middleware.ActiveWebSockets.Inc()
		defer middleware.ActiveWebSockets.Dec()

		// Get userID from context locals (set by AuthRequired middleware)
		userIDVal := conn.Locals("userID")
		if userIDVal == nil {
			log.Printf("WebSocket: Unauthenticated connection attempt")
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"unauthorized"}`))
			_ = conn.Close()
			return
		}
		userID := userIDVal.(uint)

		if s.hub == nil {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"notifications unavailable"}`))
			_ = conn.Close()
			return
		}

		client, err := s.hub.Register(userID, conn)
		if err != nil {
			log.Printf("WebSocket: Failed to register user %d: %v", userID, err)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}

		log.Printf("WebSocket: User %d connected to notifications", userID)

		// Notification sockets are one-way; the read pump only services
		// control frames until the client disconnects.
		go client.WritePump()
		client.ReadPump()
	})
}

// reactionCommand is what a reaction-socket client sends to manage which
// posts it watches.
type reactionCommand struct {
	Type   string `json:"type"`
	PostID uint   `json:"post_id"`
}

// WebSocketReactionsHandler handles WebSocket connections carrying live
// reaction count updates. Clients send watch/unwatch commands naming post
// IDs as posts scroll in and out of view.
func (s *Server) WebSocketReactionsHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		middleware.ActiveWebSockets.Inc()
		defer middleware.ActiveWebSockets.Dec()

		userIDVal := conn.Locals("userID")
		if userIDVal == nil {
			log.Printf("WebSocket Reactions: Unauthenticated connection attempt")
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"unauthorized"}`))
			_ = conn.Close()
			return
		}
		userID := userIDVal.(uint)

		if s.reactionHub == nil {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"reactions unavailable"}`))
			_ = conn.Close()
			return
		}

		client := s.reactionHub.Register(userID, conn)

		client.IncomingHandler = func(c *notifications.Client, message []byte) {
			var cmd reactionCommand
			if err := json.Unmarshal(message, &cmd); err != nil {
				log.Printf("WebSocket Reactions: Invalid message from user %d", userID)
				return
			}
			if cmd.PostID == 0 {
				return
			}

			switch cmd.Type {
			case "watch":
				s.reactionHub.Watch(c, cmd.PostID)
			case "unwatch":
				s.reactionHub.Unwatch(c, cmd.PostID)
			}
		}

		go client.WritePump()
		client.ReadPump()
	})
}
