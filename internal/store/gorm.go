package store

import (
	"log"

	"sakima-api/internal/config"
	"sakima-api/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormStore writes submissions to a relational database, postgres or a local
// sqlite file depending on config.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(cfg *config.Config) (*GormStore, error) {
	var dialector gorm.Dialector
	if cfg.DatabaseDSN != "" {
		dialector = postgres.Open(cfg.DatabaseDSN)
	} else {
		dialector = sqlite.Open(cfg.DBPath)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&models.FormSubmission{}); err != nil {
		return nil, err
	}

	log.Println("Submission store ready (gorm)")
	return &GormStore{DB: db}, nil
}

func (s *GormStore) SaveSubmission(sub *models.FormSubmission) error {
	return s.DB.Create(sub).Error
}
