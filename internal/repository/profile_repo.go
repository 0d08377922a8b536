package repository

import (
	"github.com/google/uuid"
	"github.com/leadboxhq/leadbox-backend/internal/models"
	"gorm.io/gorm"
)

// ProfileRepository persists business profiles. Lookups preload the
// owning user because the capture flow needs the account email as the
// notification fallback.
type ProfileRepository interface {
	FindByPublicID(publicID string) (*models.BusinessProfile, error)
	FindByUserID(userID uuid.UUID) (*models.BusinessProfile, error)
	Save(profile *models.BusinessProfile) error
}

type gormProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &gormProfileRepository{db: db}
}

func (r *gormProfileRepository) FindByPublicID(publicID string) (*models.BusinessProfile, error) {
	var profile models.BusinessProfile
	err := r.db.Preload("User").First(&profile, "public_id = ?", publicID).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *gormProfileRepository) FindByUserID(userID uuid.UUID) (*models.BusinessProfile, error) {
	var profile models.BusinessProfile
	err := r.db.Preload("User").First(&profile, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *gormProfileRepository) Save(profile *models.BusinessProfile) error {
	return r.db.Save(profile).Error
}
