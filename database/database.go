package database

import (
	config "github.com/skillmarkets/backend/configs"
	"github.com/skillmarkets/backend/models"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		logrus.Fatalf("failed to connect to database: %v", err)
	}

	logrus.Info("database connected")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.TutoringOffer{},
		&models.Booking{},
		&models.Message{},
		&models.Review{},
		&models.Payment{},
	)
	if err != nil {
		logrus.Fatalf("failed to migrate database: %v", err)
	}
	logrus.Info("database migration successful")
}
