package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"wagerhub/db"
	"wagerhub/internal/events"
	"wagerhub/internal/presence"
	"wagerhub/services"
	"wagerhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	// In production, adjust the CheckOrigin function to allow only trusted origins.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client is one connected lobby member.
type Client struct {
	Conn         *websocket.Conn
	Username     string
	Email        string
	LastActivity time.Time
}

type Message struct {
	Type      string          `json:"type"`
	Username  string          `json:"username,omitempty"`
	Content   string          `json:"content,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"timestamp,omitempty"`
}

// LobbyHub fans lobby chat and platform events out to every connected client.
type LobbyHub struct {
	clients map[*websocket.Conn]*Client
	mutex   sync.Mutex
}

var hub = &LobbyHub{clients: make(map[*websocket.Conn]*Client)}

// GetHub returns the process-wide lobby hub.
func GetHub() *LobbyHub {
	return hub
}

// LobbyHandler upgrades an authenticated connection and joins it to the lobby.
func LobbyHandler(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		log.Println("WebSocket connection failed: missing token")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
		return
	}

	username, _, err := utils.ValidateToken(token)
	if err != nil {
		log.Printf("WebSocket connection failed: invalid token - %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	user, err := db.FindUserByUsername(c, username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user details"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	client := &Client{
		Conn:         conn,
		Username:     user.Username,
		Email:        user.Email,
		LastActivity: time.Now(),
	}

	hub.mutex.Lock()
	hub.clients[conn] = client
	hub.mutex.Unlock()

	services.GetLobbyService().Join(user.Username, user.DisplayName, user.AvatarURL)
	presence.Heartbeat(user.Username)

	hub.broadcast(Message{
		Type:      "playerJoined",
		Username:  user.Username,
		Timestamp: time.Now().UnixMilli(),
	})
	log.Printf("%s joined the lobby", user.Username)

	go hub.readLoop(client)
}

func (h *LobbyHub) readLoop(client *Client) {
	defer h.drop(client)

	for {
		_, data, err := client.Conn.ReadMessage()
		if err != nil {
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("Invalid lobby message from %s: %v", client.Username, err)
			continue
		}

		client.LastActivity = time.Now()
		services.GetLobbyService().Touch(client.Username)
		presence.Heartbeat(client.Username)

		switch msg.Type {
		case "heartbeat":
			// activity already recorded above
		case "chat":
			h.broadcast(Message{
				Type:      "chat",
				Username:  client.Username,
				Content:   msg.Content,
				Timestamp: time.Now().UnixMilli(),
			})
		default:
			log.Printf("Unknown lobby message type %q from %s", msg.Type, client.Username)
		}
	}
}

func (h *LobbyHub) drop(client *Client) {
	h.mutex.Lock()
	delete(h.clients, client.Conn)
	h.mutex.Unlock()
	client.Conn.Close()

	services.GetLobbyService().Leave(client.Username)
	presence.Offline(client.Username)

	h.broadcast(Message{
		Type:      "playerLeft",
		Username:  client.Username,
		Timestamp: time.Now().UnixMilli(),
	})
	log.Printf("%s left the lobby", client.Username)
}

// BroadcastEvent pushes a platform event to every lobby client. It satisfies
// the consumer interface in the events package.
func (h *LobbyHub) BroadcastEvent(ev *events.Event) {
	h.broadcast(Message{
		Type:      ev.Type,
		Payload:   ev.Payload,
		Timestamp: ev.Timestamp,
	})
}

func (h *LobbyHub) broadcast(msg Message) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for conn, client := range h.clients {
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("Failed to send lobby message to %s: %v", client.Username, err)
			conn.Close()
			delete(h.clients, conn)
		}
	}
}
