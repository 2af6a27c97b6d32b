package handlers_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/skillmarkets/backend/database"
	"github.com/skillmarkets/backend/models"
)

func messageCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	database.DB.Model(&models.Message{}).Count(&count)
	return count
}

func TestSendMessage_AndReadChat(t *testing.T) {
	app := setupApp(t)

	alice := createUser(t, "alice", "alice@example.com", false)
	bob := createUser(t, "bob", "bob@example.com", true)

	resp := doJSON(t, app, "POST", "/send_message/"+bob.ID.String(),
		map[string]any{"content": "  hello there  "}, tokenFor(t, alice))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var stored models.Message
	if err := database.DB.First(&stored).Error; err != nil {
		t.Fatalf("message not stored: %v", err)
	}
	if stored.Content != "hello there" {
		t.Fatalf("expected trimmed content, got %q", stored.Content)
	}
	if stored.IsRead {
		t.Fatal("new message should be unread")
	}

	resp = doJSON(t, app, "GET", "/chat/"+alice.ID.String(), nil, tokenFor(t, bob))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body := decodeMap(t, resp)
	with := body["with"].(map[string]any)
	if with["username"] != "alice" {
		t.Fatalf("expected chat with alice, got %v", with["username"])
	}
	messages := body["messages"].([]any)
	if len(messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(messages))
	}

	database.DB.First(&stored)
	if !stored.IsRead {
		t.Fatal("viewing the chat should mark the message read")
	}
}

func TestSendMessage_EmptyContentDroppedSilently(t *testing.T) {
	app := setupApp(t)

	alice := createUser(t, "alice", "alice@example.com", false)
	bob := createUser(t, "bob", "bob@example.com", true)

	for _, content := range []string{"", "   ", "\n\t"} {
		resp := doJSON(t, app, "POST", "/send_message/"+bob.ID.String(),
			map[string]any{"content": content}, tokenFor(t, alice))
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200 for content %q, got %d", content, resp.StatusCode)
		}
	}
	if got := messageCount(t); got != 0 {
		t.Fatalf("expected no stored messages, got %d", got)
	}
}

func TestSendMessage_OversizedContentDroppedSilently(t *testing.T) {
	app := setupApp(t)

	alice := createUser(t, "alice", "alice@example.com", false)
	bob := createUser(t, "bob", "bob@example.com", true)

	resp := doJSON(t, app, "POST", "/send_message/"+bob.ID.String(),
		map[string]any{"content": strings.Repeat("x", 1001)}, tokenFor(t, alice))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if got := messageCount(t); got != 0 {
		t.Fatalf("expected no stored messages, got %d", got)
	}

	// exactly at the limit is fine
	resp = doJSON(t, app, "POST", "/send_message/"+bob.ID.String(),
		map[string]any{"content": strings.Repeat("x", 1000)}, tokenFor(t, alice))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if got := messageCount(t); got != 1 {
		t.Fatalf("expected 1 stored message, got %d", got)
	}
}

func TestSendMessage_UnknownRecipient(t *testing.T) {
	app := setupApp(t)

	alice := createUser(t, "alice", "alice@example.com", false)

	resp := doJSON(t, app, "POST", "/send_message/"+uuid.NewString(),
		map[string]any{"content": "hello"}, tokenFor(t, alice))
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestGetChat_WindowIsMostRecentFiftyOldestFirst(t *testing.T) {
	app := setupApp(t)

	alice := createUser(t, "alice", "alice@example.com", false)
	bob := createUser(t, "bob", "bob@example.com", true)

	base := time.Now().Add(-2 * time.Hour)
	for i := 0; i < 60; i++ {
		sender, recipient := alice.ID, bob.ID
		if i%2 == 1 {
			sender, recipient = bob.ID, alice.ID
		}
		msg := models.Message{
			SenderID:    sender,
			RecipientID: recipient,
			Content:     fmt.Sprintf("msg-%02d", i),
			Timestamp:   base.Add(time.Duration(i) * time.Minute),
		}
		if err := database.DB.Create(&msg).Error; err != nil {
			t.Fatalf("failed to seed message: %v", err)
		}
	}

	resp := doJSON(t, app, "GET", "/chat/"+bob.ID.String(), nil, tokenFor(t, alice))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body := decodeMap(t, resp)
	messages := body["messages"].([]any)
	if len(messages) != 50 {
		t.Fatalf("expected window of 50 messages, got %d", len(messages))
	}
	first := messages[0].(map[string]any)
	last := messages[49].(map[string]any)
	if first["content"] != "msg-10" {
		t.Fatalf("expected oldest message in window to be msg-10, got %v", first["content"])
	}
	if last["content"] != "msg-59" {
		t.Fatalf("expected newest message last, got %v", last["content"])
	}
}

func TestGetChat_UnknownUser(t *testing.T) {
	app := setupApp(t)

	alice := createUser(t, "alice", "alice@example.com", false)

	resp := doJSON(t, app, "GET", "/chat/"+uuid.NewString(), nil, tokenFor(t, alice))
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
