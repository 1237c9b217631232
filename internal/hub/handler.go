package hub

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 8192
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// SetCheckOrigin sets a custom origin checker for the WebSocket upgrader.
func SetCheckOrigin(fn func(r *http.Request) bool) {
	upgrader.CheckOrigin = fn
}

// Handler is the transport adapter: it upgrades HTTP requests to WebSocket
// connections and pumps messages between the peer and the hub service.
type Handler struct {
	service *Service
}

// NewHandler creates a new WebSocket handler on top of the hub service.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleConnection upgrades the request and registers the connection under
// the given identity. The identity must already be authenticated; an
// unauthenticated request is rejected before this point.
func (h *Handler) HandleConnection(w http.ResponseWriter, r *http.Request, identity string) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := NewClient(conn, identity)
	h.service.Connect(r.Context(), client)

	go h.writePump(client)
	go h.readPump(client)

	return nil
}

// readPump pumps messages from the WebSocket connection into the service.
func (h *Handler) readPump(client *Client) {
	defer func() {
		h.service.Disconnect(client)
		client.Conn().Close()
	}()

	client.Conn().SetReadLimit(maxMessageSize)
	client.Conn().SetReadDeadline(time.Now().Add(pongWait))
	client.Conn().SetPongHandler(func(string) error {
		client.Conn().SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := client.Conn().ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		var msg Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("Failed to unmarshal message from %s: %v", client.ID(), err)
			continue
		}

		h.handleMessage(client, &msg)
	}
}

// handleMessage dispatches an incoming message to the service. The request
// context ends when the HTTP handler returns, so pump work runs on a
// background context.
func (h *Handler) handleMessage(client *Client, msg *Message) {
	ctx := context.Background()

	switch msg.Type {
	case MessageTypeCreateChannel:
		if _, err := h.service.CreateChannel(ctx, msg.Title); err != nil {
			log.Printf("Failed to create channel %q: %v", msg.Title, err)
		}
	case MessageTypeDeleteChannel:
		if err := h.service.DeleteChannel(ctx, msg.ChannelID); err != nil {
			log.Printf("Failed to delete channel %d: %v", msg.ChannelID, err)
		}
	case MessageTypeSwitch:
		if err := h.service.SwitchChannel(ctx, client, msg.OldChannelID, msg.ChannelID); err != nil {
			log.Printf("Failed to switch %s to channel %d: %v", client.ID(), msg.ChannelID, err)
		}
	case MessageTypeSend:
		h.service.SendMessage(ctx, client.Identity(), msg.Text, msg.ChannelID, msg.To)
	case MessageTypeDirect:
		h.service.StartDirectChat(client, msg.To)
	}
}

// writePump pumps queued messages to the WebSocket connection and keeps the
// connection alive with pings.
func (h *Handler) writePump(client *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.Conn().Close()
	}()

	for {
		select {
		case message, ok := <-client.SendChan():
			client.Conn().SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.Conn().WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// Each message goes in its own frame so the peer can
			// JSON-parse frames independently.
			if err := client.Conn().WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

			n := len(client.SendChan())
			for i := 0; i < n; i++ {
				queuedMsg := <-client.SendChan()
				client.Conn().SetWriteDeadline(time.Now().Add(writeWait))
				if err := client.Conn().WriteMessage(websocket.TextMessage, queuedMsg); err != nil {
					return
				}
			}
		case <-ticker.C:
			client.Conn().SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn().WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
