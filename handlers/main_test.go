package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	config "github.com/skillmarkets/backend/configs"
	"github.com/skillmarkets/backend/database"
	"github.com/skillmarkets/backend/models"
	"github.com/skillmarkets/backend/routes"
)

const testPassword = "password123"

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_abc")
	t.Setenv("STRIPE_PUBLISHABLE_KEY", "pk_test_abc")
	config.Load()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql.DB: %v", err)
	}
	// one connection, or every pooled conn gets its own empty :memory: db
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.TutoringOffer{},
		&models.Booking{},
		&models.Message{},
		&models.Review{},
		&models.Payment{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	database.DB = db

	app := fiber.New()
	routes.AuthRoutes(app)
	routes.OfferRoutes(app)
	routes.PublicRoutes(app)
	routes.BookingRoutes(app)
	routes.PaymentRoutes(app)
	routes.MessagingRoutes(app)
	routes.ProfileRoutes(app)

	return app
}

func createUser(t *testing.T, username, email string, isTutor bool) models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := models.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
		IsTutor:  isTutor,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

func createOffer(t *testing.T, tutor models.User, subject string, price float64) models.TutoringOffer {
	t.Helper()

	offer := models.TutoringOffer{
		ID:           "offer-" + subject + "-" + tutor.Username,
		Title:        subject + " lessons",
		Description:  "One-on-one " + subject + " tutoring",
		Subject:      subject,
		PricePerHour: price,
		UserID:       tutor.ID,
	}
	if err := database.DB.Create(&offer).Error; err != nil {
		t.Fatalf("failed to create offer: %v", err)
	}
	return offer
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()

	claims := jwt.MapClaims{
		"user_id":  user.ID.String(),
		"is_tutor": user.IsTutor,
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(config.Get().JWTSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}
	return resp
}

func decodeMap(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	var result map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return result
}

func decodeSlice(t *testing.T, resp *http.Response) []any {
	t.Helper()

	var result []any
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return result
}
