package handlers

import (
	"errors"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/skillmarkets/backend/database"
	"github.com/skillmarkets/backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMessageDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access database: %v", err)
	}
	// one connection, or every pooled conn gets its own empty :memory: db
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}, &models.Message{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	database.DB = db
}

func seedRecipient(t *testing.T) models.User {
	t.Helper()
	user := models.User{
		Username: "recipient",
		Email:    "recipient@example.com",
		Password: "hashed",
	}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func TestStoreDirectMessage_UnknownRecipient(t *testing.T) {
	setupMessageDB(t)

	// Both the REST handler and the websocket loop go through this path, so
	// an unknown recipient is rejected on either entry point.
	_, err := storeDirectMessage(uuid.New(), uuid.New(), "hello")
	if !errors.Is(err, errUnknownRecipient) {
		t.Fatalf("expected errUnknownRecipient, got %v", err)
	}

	var count int64
	database.DB.Model(&models.Message{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no stored messages, got %d", count)
	}
}

func TestStoreDirectMessage_PersistsTrimmedContent(t *testing.T) {
	setupMessageDB(t)
	recipient := seedRecipient(t)

	stored, err := storeDirectMessage(uuid.New(), recipient.ID, "  hi there  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored == nil {
		t.Fatal("expected a stored message")
	}
	if stored.Content != "hi there" {
		t.Fatalf("expected trimmed content, got %q", stored.Content)
	}
}

func TestStoreDirectMessage_DropsEmptyAndOversized(t *testing.T) {
	setupMessageDB(t)
	recipient := seedRecipient(t)

	for _, content := range []string{"", "   ", strings.Repeat("x", maxMessageLength+1)} {
		stored, err := storeDirectMessage(uuid.New(), recipient.ID, content)
		if err != nil {
			t.Fatalf("unexpected error for content of length %d: %v", len(content), err)
		}
		if stored != nil {
			t.Fatal("dropped content must not produce a stored message")
		}
	}

	var count int64
	database.DB.Model(&models.Message{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no stored messages, got %d", count)
	}
}
