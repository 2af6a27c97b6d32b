package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/skillmarkets/backend/database"
	"github.com/skillmarkets/backend/middleware"
	"github.com/skillmarkets/backend/models"
	"github.com/skillmarkets/backend/services"
	"github.com/skillmarkets/backend/utils"
	"gorm.io/gorm"
)

const searchCacheTTL = 60 * time.Second

type CreateOfferRequest struct {
	Title        string  `json:"title" validate:"required,max=150"`
	Description  string  `json:"description" validate:"required"`
	Subject      string  `json:"subject" validate:"required,max=100"`
	PricePerHour float64 `json:"price_per_hour" validate:"required,gt=0"`
}

type TutorResponse struct {
	models.User
	AverageRating float64 `json:"average_rating"`
}

// ListTutors serves the landing page data: every user with the tutor flag,
// with their derived average rating.
func ListTutors(c *fiber.Ctx) error {
	var tutors []models.User
	if err := database.DB.Where("is_tutor = ?", true).Find(&tutors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch tutors"})
	}

	response := make([]TutorResponse, 0, len(tutors))
	for _, tutor := range tutors {
		response = append(response, TutorResponse{
			User:          tutor,
			AverageRating: services.TutorAverageRating(tutor.ID),
		})
	}
	return c.JSON(response)
}

// NewOfferForm backs the GET side of /offer/new.
func NewOfferForm(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	var offers []models.TutoringOffer
	database.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&offers)

	return c.JSON(fiber.Map{"my_offers": offers})
}

func CreateOffer(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	var req CreateOfferRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var offer models.TutoringOffer
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		offerID, err := utils.GenerateUniqueOfferID(tx)
		if err != nil {
			return err
		}

		offer = models.TutoringOffer{
			ID:           offerID,
			Title:        req.Title,
			Description:  req.Description,
			Subject:      req.Subject,
			PricePerHour: req.PricePerHour,
			UserID:       userID,
		}
		return tx.Create(&offer).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to publish offer"})
	}

	services.InvalidateCachePattern(c.Context(), "search:*")

	return c.Status(fiber.StatusCreated).JSON(offer)
}

func GetOffer(c *fiber.Ctx) error {
	offerID := c.Params("offerId")

	var offer models.TutoringOffer
	if err := database.DB.Preload("Tutor").First(&offer, "id = ?", offerID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Offer not found"})
	}

	return c.JSON(offer)
}

// SearchOffers performs a case-insensitive substring match on the subject.
// An empty query yields an empty result set rather than all offers.
func SearchOffers(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return c.JSON([]models.TutoringOffer{})
	}

	cacheKey := "search:" + strings.ToLower(query)
	var offers []models.TutoringOffer
	if hit, err := services.GetCached(c.Context(), cacheKey, &offers); err == nil && hit {
		return c.JSON(offers)
	}

	if err := database.DB.Preload("Tutor").
		Where("LOWER(subject) LIKE ?", "%"+strings.ToLower(query)+"%").
		Find(&offers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Search failed"})
	}

	_ = services.SetCached(c.Context(), cacheKey, offers, searchCacheTTL)

	return c.JSON(offers)
}
