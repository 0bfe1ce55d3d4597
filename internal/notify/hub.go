// Package notify pushes cart changes to every browser tab that shares a
// cart key, so the header badge stays in sync across tabs.
package notify

import (
	"encoding/json"
	"sync"

	"github.com/elbuensabor/storefront-backend/pkg/logger"
)

// Client is one connected browser tab.
type Client struct {
	Hub     *Hub
	Conn    *Conn
	CartKey string
	Send    chan []byte
}

// Hub tracks the open connections per cart key.
type Hub struct {
	// A cart can be open in several tabs at once.
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client
	broadcast  chan *cartEvent

	mu sync.RWMutex
}

type cartEvent struct {
	CartKey string
	Message []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string][]*Client),
		register:   make(chan *Client, 256),
		unregister: make(chan *Client, 256),
		broadcast:  make(chan *cartEvent, 1024),
	}
}

// Run processes registrations and broadcasts until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.CartKey] = append(h.clients[client.CartKey], client)
			h.mu.Unlock()
			logger.Info("Cart listener registered", map[string]interface{}{
				"cart_key":   client.CartKey,
				"total_tabs": len(h.clients[client.CartKey]),
			})

		case client := <-h.unregister:
			h.mu.Lock()
			found := false
			if tabs, ok := h.clients[client.CartKey]; ok {
				remaining := make([]*Client, 0, len(tabs))
				for _, c := range tabs {
					if c == client {
						found = true
						continue
					}
					remaining = append(remaining, c)
				}
				if len(remaining) == 0 {
					delete(h.clients, client.CartKey)
				} else {
					h.clients[client.CartKey] = remaining
				}
				// The drop path and the read pump can both unregister the
				// same client; only the pass that removed it closes Send.
				if found {
					close(client.Send)
				}
			}
			h.mu.Unlock()
			if found {
				logger.Info("Cart listener unregistered", map[string]interface{}{
					"cart_key": client.CartKey,
				})
			}

		case event := <-h.broadcast:
			h.mu.RLock()
			for _, client := range h.clients[event.CartKey] {
				select {
				case client.Send <- event.Message:
				default:
					// Send buffer full, drop the tab asynchronously.
					go h.Unregister(client)
					logger.Warn("Cart listener buffer full, disconnecting", map[string]interface{}{
						"cart_key": event.CartKey,
					})
				}
			}
			h.mu.RUnlock()
		}
	}
}

// BroadcastCart pushes a cart snapshot to every tab holding the key.
func (h *Hub) BroadcastCart(cartKey string, snapshot interface{}) error {
	data, err := json.Marshal(map[string]interface{}{
		"type": "cart_updated",
		"cart": snapshot,
	})
	if err != nil {
		logger.Error("Failed to marshal cart event", err, nil)
		return err
	}

	select {
	case h.broadcast <- &cartEvent{CartKey: cartKey, Message: data}:
		return nil
	default:
		// Dropped events are tolerable; the next mutation resyncs the tabs.
		logger.Warn("Broadcast channel full, cart event dropped", map[string]interface{}{
			"cart_key": cartKey,
		})
		return nil
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// HasListeners reports whether any tab is listening on the key.
func (h *Hub) HasListeners(cartKey string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[cartKey]
	return ok
}
