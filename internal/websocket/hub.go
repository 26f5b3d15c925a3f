package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
)

// Dashboard event types pushed to connected clients
const (
	EventReportGenerated = "report.generated"
	EventKPIRefreshed    = "kpi.refreshed"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow all origins for dev simplicity
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Event is the JSON envelope every dashboard push uses. Events carry the
// organization they belong to; delivery is restricted to that tenant's
// clients.
type Event struct {
	Type           string      `json:"type"`
	OrganizationID string      `json:"organization_id,omitempty"`
	Payload        interface{} `json:"payload,omitempty"`
	At             time.Time   `json:"at"`
}

// Client represents a single connected WebSocket client. Org is the
// tenant from the client's token; events for other tenants never reach
// this connection.
type Client struct {
	Hub  *Hub
	Conn *websocket.Conn
	Send chan []byte
	Org  string
}

// Hub maintains the set of active clients and routes events to the
// clients of the event's organization
type Hub struct {
	clients    map[*Client]bool
	Broadcast  chan Event
	register   chan *Client
	unregister chan *Client
	mu         sync.Mutex
}

// NewHub initializes a new WS Hub instance
func NewHub() *Hub {
	return &Hub{
		Broadcast:  make(chan Event),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// BroadcastEvent queues a typed dashboard event for the organization's
// connected clients
func (h *Hub) BroadcastEvent(eventType, orgID string, payload interface{}) {
	h.Broadcast <- Event{
		Type:           eventType,
		OrganizationID: orgID,
		Payload:        payload,
		At:             time.Now(),
	}
}

// Run starts the core dispatch loop for WebSocket events
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			logger.Log.Debug().Str("org_id", client.Org).Msg("dashboard client connected")
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				logger.Log.Debug().Str("org_id", client.Org).Msg("dashboard client disconnected")
			}
			h.mu.Unlock()
		case event := <-h.Broadcast:
			message, err := json.Marshal(event)
			if err != nil {
				logger.Log.Warn().Err(err).Str("event", event.Type).Msg("failed to encode dashboard event")
				continue
			}
			h.mu.Lock()
			for client := range h.clients {
				if client.Org != event.OrganizationID {
					continue
				}
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// writePump handles writing messages from the Hub to the WebSocket connection
func (c *Client) writePump() {
	defer func() {
		_ = c.Conn.Close()
	}()
	for message := range c.Send {
		w, err := c.Conn.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		_, _ = w.Write(message)

		// Fast track writing queued messages
		n := len(c.Send)
		for i := 0; i < n; i++ {
			_, _ = w.Write([]byte{'\n'})
			_, _ = w.Write(<-c.Send)
		}

		if err := w.Close(); err != nil {
			return
		}
	}
	_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// readPump pumps messages from the WebSocket connection to the hub
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		_ = c.Conn.Close()
	}()
	for {
		// Just reading to keep connection alive
		_, _, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Warn().Err(err).Msg("websocket read error")
			}
			break
		}
	}
}

// ServeWs handles websocket requests from the peer
func ServeWs(hub *Hub, c *gin.Context, secret []byte) {
	// Authenticate via token query param
	tokenString := c.Query("token")
	if tokenString == "" {
		logger.Log.Warn().Msg("websocket connection rejected: missing token")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})

	if err != nil || !token.Valid {
		logger.Log.Warn().Err(err).Msg("websocket connection rejected: invalid token")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		logger.Log.Warn().Msg("websocket connection rejected: invalid claims")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	// Clients must belong to an organization to receive dashboard pushes
	orgID, _ := claims["org_id"].(string)
	if orgID == "" {
		logger.Log.Warn().Msg("websocket connection rejected: missing org claim")
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	client := &Client{Hub: hub, Conn: conn, Send: make(chan []byte, 256), Org: orgID}
	client.Hub.register <- client

	go client.writePump()
	go client.readPump()
}
