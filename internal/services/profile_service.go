package services

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/leadboxhq/leadbox-backend/internal/dto"
	"github.com/leadboxhq/leadbox-backend/internal/forms"
	"github.com/leadboxhq/leadbox-backend/internal/models"
	"github.com/leadboxhq/leadbox-backend/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProfileService struct {
	profiles repository.ProfileRepository
}

func NewProfileService(profiles repository.ProfileRepository) *ProfileService {
	return &ProfileService{profiles: profiles}
}

func (s *ProfileService) Get(userID uuid.UUID) (*models.BusinessProfile, error) {
	profile, err := s.profiles.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

// Update edits the owner-editable profile fields. PublicID stays
// untouched, it is immutable once assigned.
func (s *ProfileService) Update(userID uuid.UUID, req *dto.ProfileUpdateRequest) (*models.BusinessProfile, error) {
	req.BusinessName = strings.TrimSpace(req.BusinessName)
	req.NotificationEmail = strings.TrimSpace(req.NotificationEmail)

	if req.BusinessName == "" {
		return nil, errors.New("business name is required")
	}
	if req.NotificationEmail != "" && !forms.ValidEmail(req.NotificationEmail) {
		return nil, errors.New("notification email must be a valid email address")
	}
	if len(req.EmbedSettings) > 0 && !json.Valid(req.EmbedSettings) {
		return nil, errors.New("embed settings must be valid JSON")
	}

	profile, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	profile.BusinessName = req.BusinessName
	profile.NotificationEmail = req.NotificationEmail
	if len(req.EmbedSettings) > 0 {
		profile.EmbedSettings = datatypes.JSON(req.EmbedSettings)
	}

	if err := s.profiles.Save(profile); err != nil {
		return nil, err
	}
	return profile, nil
}
