package ws

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ImBidou/chkobba-multiplayer/config"
	"github.com/ImBidou/chkobba-multiplayer/rooms"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow all origins for development; restrict in production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub maintains the set of active clients and hands room traffic to the
// orchestrator.
type Hub struct {
	Clients    map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	Rooms      *rooms.Service
	Config     *config.Config
}

// NewHub creates a new Hub.
func NewHub(cfg *config.Config, svc *rooms.Service) *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Rooms:      svc,
		Config:     cfg,
	}
}

// Run starts the hub's main loop. Should be run as a goroutine.
// When ctx is cancelled (e.g. on server shutdown), Run returns and no
// longer accepts new registrations.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			slog.Info("hub shutting down", "tag", "ws")
			return
		case client := <-h.Register:
			h.Clients[client] = true
			h.Rooms.Connect(client.PlayerID, client.Send)
			slog.Info("client connected", "tag", "ws", "player", client.PlayerID, "total", len(h.Clients))

		case client := <-h.Unregister:
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				// Vacates the seat and terminates any running game.
				h.Rooms.HandleDisconnect(ctx, client.PlayerID)
				close(client.Send)
				slog.Info("client disconnected", "tag", "ws", "player", client.PlayerID, "total", len(h.Clients))
			}
		}
	}
}

// ServeWS handles WebSocket upgrade requests and creates a new Client.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade error", "tag", "ws", "err", err)
		return
	}

	client := &Client{
		Hub:      h,
		Conn:     conn,
		Send:     make(chan []byte, 256),
		PlayerID: uuid.NewString(),
	}

	h.Register <- client

	go client.WritePump()
	go client.ReadPump()

	client.sendJSON(WelcomeMsg{Type: "welcome", PlayerID: client.PlayerID})
}
