package websocket

import (
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/skillmarkets/backend/models"
)

type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
}

// MessagePayload is what a connected client sends over the socket.
type MessagePayload struct {
	RecipientID string `json:"recipient_id"`
	Content     string `json:"content"`
}

var clients = make(map[uuid.UUID]*websocket.Conn)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var Broadcast = make(chan *models.Message, 16)

// RunHub fans persisted messages out to the recipient's live connection, if
// one exists. Offline recipients simply read the message from /chat later.
func RunHub() {
	for {
		select {
		case client := <-Register:
			clientsMu.Lock()
			clients[client.UserID] = client.Conn
			clientsMu.Unlock()
		case client := <-Unregister:
			clientsMu.Lock()
			if conn, ok := clients[client.UserID]; ok && conn == client.Conn {
				delete(clients, client.UserID)
			}
			clientsMu.Unlock()
		case message := <-Broadcast:
			clientsMu.RLock()
			conn, ok := clients[message.RecipientID]
			clientsMu.RUnlock()
			if !ok {
				continue
			}
			if err := conn.WriteJSON(message); err != nil {
				logrus.Warnf("websocket write to %s failed: %v", message.RecipientID, err)
				conn.Close()
				clientsMu.Lock()
				delete(clients, message.RecipientID)
				clientsMu.Unlock()
			}
		}
	}
}

// Deliver hands a stored message to the hub without blocking the sender.
func Deliver(message *models.Message) {
	select {
	case Broadcast <- message:
	default:
	}
}
