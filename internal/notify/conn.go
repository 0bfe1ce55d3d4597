package notify

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/elbuensabor/storefront-backend/pkg/logger"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. Tabs only listen, so
	// anything beyond a ping-sized frame is suspect.
	maxMessageSize = 4 * 1024
)

// Conn wraps the underlying websocket connection.
type Conn struct {
	*websocket.Conn
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS is enforced at the router level.
		return true
	},
}

// ServeWS upgrades the request and attaches the tab to its cart key.
// GET /api/v1/carrito/ws?cart=<key>
func ServeWS(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		cartKey := c.Query("cart")
		if cartKey == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing cart key"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Error("Failed to upgrade cart listener", err, map[string]interface{}{
				"cart_key": cartKey,
			})
			return
		}

		client := &Client{
			Hub:     hub,
			Conn:    &Conn{conn},
			CartKey: cartKey,
			Send:    make(chan []byte, 64),
		}
		hub.Register(client)

		go client.WritePump()
		go client.ReadPump()
	}
}

// ReadPump drains the connection until the tab closes. Incoming frames are
// ignored; the hub is one-directional.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Error("Cart listener read error", err, map[string]interface{}{
					"cart_key": c.CartKey,
				})
			}
			break
		}
	}
}

// WritePump forwards hub events and keeps the connection alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Error("Failed to push cart event", err, map[string]interface{}{
					"cart_key": c.CartKey,
				})
				return
			}

			// Flush any queued events on the same wakeup.
			n := len(c.Send)
			for i := 0; i < n; i++ {
				msg := <-c.Send
				if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					logger.Error("Failed to push queued cart event", err, map[string]interface{}{
						"cart_key": c.CartKey,
					})
					return
				}
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
