package dto

import (
	"encoding/json"
	"time"

	"github.com/leadboxhq/leadbox-backend/internal/models"
)

type ProfileResponse struct {
	BusinessName      string          `json:"business_name"`
	PublicID          string          `json:"public_id"`
	NotificationEmail string          `json:"notification_email,omitempty"`
	EmbedSettings     json.RawMessage `json:"embed_settings"`
	PublicFormURL     string          `json:"public_form_url"`
	EmbedScriptURL    string          `json:"embed_script_url"`
	CreatedAt         time.Time       `json:"created_at"`
}

func NewProfileResponse(profile *models.BusinessProfile, formURL, scriptURL string) ProfileResponse {
	settings := json.RawMessage(profile.EmbedSettings)
	if len(settings) == 0 {
		settings = json.RawMessage("{}")
	}
	return ProfileResponse{
		BusinessName:      profile.BusinessName,
		PublicID:          profile.PublicID,
		NotificationEmail: profile.NotificationEmail,
		EmbedSettings:     settings,
		PublicFormURL:     formURL,
		EmbedScriptURL:    scriptURL,
		CreatedAt:         profile.CreatedAt,
	}
}

type ProfileUpdateRequest struct {
	BusinessName      string          `json:"business_name"`
	NotificationEmail string          `json:"notification_email"`
	EmbedSettings     json.RawMessage `json:"embed_settings,omitempty"`
}
