package handlers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	websocketcontrib "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	config "github.com/skillmarkets/backend/configs"
	"github.com/skillmarkets/backend/database"
	"github.com/skillmarkets/backend/middleware"
	"github.com/skillmarkets/backend/models"
	"github.com/skillmarkets/backend/websocket"
)

const (
	chatWindowSize   = 50
	maxMessageLength = 1000
)

type SendMessageRequest struct {
	Content string `json:"content"`
}

var errUnknownRecipient = errors.New("recipient not found")

// storeDirectMessage validates the recipient, persists trimmed content and
// hands the stored message to the live hub. Empty and oversized content is
// dropped without an error and without a stored row.
func storeDirectMessage(senderID, recipientID uuid.UUID, content string) (*models.Message, error) {
	var recipient models.User
	if err := database.DB.First(&recipient, "id = ?", recipientID).Error; err != nil {
		return nil, errUnknownRecipient
	}

	content = strings.TrimSpace(content)
	if content == "" || len(content) > maxMessageLength {
		return nil, nil
	}

	message := &models.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     content,
		Timestamp:   time.Now(),
	}
	if err := database.DB.Create(message).Error; err != nil {
		return nil, err
	}

	websocket.Deliver(message)
	return message, nil
}

// SendMessage stores a direct message. Empty and oversized content is
// dropped without an error; the chat UI simply shows nothing new.
func SendMessage(c *fiber.Ctx) error {
	senderID := middleware.CurrentUserID(c)
	recipientID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if _, err := storeDirectMessage(senderID, recipientID, req.Content); err != nil {
		if errors.Is(err, errUnknownRecipient) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to send message"})
	}

	return c.JSON(fiber.Map{"status": "ok"})
}

// GetChat returns the most recent messages between the caller and the other
// party, oldest first, and marks the other party's messages as read.
func GetChat(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)
	otherID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	var other models.User
	if err := database.DB.First(&other, "id = ?", otherID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var messages []models.Message
	if err := database.DB.
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userID, otherID, otherID, userID).
		Order("timestamp desc").
		Limit(chatWindowSize).
		Find(&messages).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch messages"})
	}

	// fetched newest-first, presented oldest-first
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	database.DB.Model(&models.Message{}).
		Where("sender_id = ? AND recipient_id = ? AND is_read = ?", otherID, userID, false).
		Update("is_read", true)

	return c.JSON(fiber.Map{
		"with":     UserResponse{ID: other.ID.String(), Username: other.Username, Email: other.Email, IsTutor: other.IsTutor, CreatedAt: other.CreatedAt},
		"messages": messages,
	})
}

// ServeWs keeps a live connection for the caller and accepts direct messages
// over it. The first frame must be an auth message carrying a valid JWT.
func ServeWs(c *websocketcontrib.Conn) {
	type AuthMessage struct {
		Type  string `json:"type"`
		Token string `json:"token"`
	}
	var authMsg AuthMessage
	if err := c.ReadJSON(&authMsg); err != nil || authMsg.Type != "auth" {
		_ = c.WriteJSON(fiber.Map{"error": "Invalid or missing auth message"})
		c.Close()
		return
	}

	claims, err := parseToken(authMsg.Token)
	if err != nil {
		_ = c.WriteJSON(fiber.Map{"error": "Invalid token"})
		c.Close()
		return
	}

	rawID, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(rawID)
	if err != nil {
		_ = c.WriteJSON(fiber.Map{"error": "Invalid user ID"})
		c.Close()
		return
	}

	client := &websocket.Client{UserID: userID, Conn: c}
	websocket.Register <- client
	defer func() {
		websocket.Unregister <- client
		c.Close()
	}()

	for {
		var msg websocket.MessagePayload
		if err := c.ReadJSON(&msg); err != nil {
			if !websocketcontrib.IsCloseError(err, websocketcontrib.CloseGoingAway, websocketcontrib.CloseAbnormalClosure) {
				logrus.Warnf("websocket read error for client %s: %v", userID, err)
			}
			break
		}

		recipientID, err := uuid.Parse(msg.RecipientID)
		if err != nil {
			_ = c.WriteJSON(fiber.Map{"error": "Invalid recipient ID"})
			continue
		}

		if _, err := storeDirectMessage(userID, recipientID, msg.Content); err != nil {
			if errors.Is(err, errUnknownRecipient) {
				_ = c.WriteJSON(fiber.Map{"error": "Recipient not found"})
			} else {
				_ = c.WriteJSON(fiber.Map{"error": "Failed to save message"})
			}
			continue
		}
	}
}

func parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.Get().JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
