// internal/realtime/websocket.go
package realtime

import (
	"log"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// WebSocketConn wraps websocket.Conn so hub.go does not import websocket.
type WebSocketConn struct {
	Conn *websocket.Conn
}

func NewWebSocketConn(c *websocket.Conn) *WebSocketConn {
	return &WebSocketConn{Conn: c}
}

// EventsSocket subscribes a websocket connection to the registry event
// feed. The feed is read-only; inbound frames are drained and discarded.
func EventsSocket(hub *Hub) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		client := &Client{
			ID:   uuid.New().String(),
			Conn: NewWebSocketConn(c),
			Send: make(chan []byte, 256),
		}

		hub.RegisterClient(client)
		defer hub.UnregisterClient(client)

		go func() {
			for msg := range client.Send {
				if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
					log.Println("WebSocket write error:", err)
					return
				}
			}
		}()

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}
}
