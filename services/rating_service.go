package services

import (
	"math"

	"github.com/google/uuid"
	"github.com/skillmarkets/backend/database"
	"github.com/skillmarkets/backend/models"
)

// TutorAverageRating returns the mean of all ratings the tutor has received,
// rounded to one decimal. Tutors without reviews score 0.
func TutorAverageRating(tutorID uuid.UUID) float64 {
	var result struct {
		Avg float64
	}
	database.DB.Model(&models.Review{}).
		Where("tutor_id = ?", tutorID).
		Select("COALESCE(AVG(rating), 0) as avg").
		Scan(&result)

	return math.Round(result.Avg*10) / 10
}
