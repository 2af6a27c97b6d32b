package utils

import (
	"crypto/rand"
	"encoding/base64"
	"errors"

	"github.com/skillmarkets/backend/models"
	"gorm.io/gorm"
)

const offerTokenBytes = 16

// GenerateOfferToken returns a 128-bit URL-safe random token. Offer ids must
// not be guessable, so this uses crypto/rand rather than math/rand.
func GenerateOfferToken() (string, error) {
	b := make([]byte, offerTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GenerateUniqueOfferID produces a token not already used as an offer id.
func GenerateUniqueOfferID(tx *gorm.DB) (string, error) {
	for {
		id, err := GenerateOfferToken()
		if err != nil {
			return "", err
		}

		var offer models.TutoringOffer
		err = tx.Where("id = ?", id).First(&offer).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return id, nil
			}
			return "", err
		}
	}
}
