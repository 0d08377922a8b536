package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BusinessProfile stores business-level metadata and the public
// identifier used to address the capture form without exposing the
// account ID. One profile per user.
type BusinessProfile struct {
	ID                uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID            uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"-"`
	BusinessName      string         `gorm:"size:255;not null" json:"business_name"`
	PublicID          string         `gorm:"size:12;not null;uniqueIndex" json:"public_id"`
	NotificationEmail string         `gorm:"size:255" json:"notification_email"`
	EmbedSettings     datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"embed_settings"`
	CreatedAt         time.Time      `json:"created_at"`
	User              User           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// BeforeCreate fills PublicID when absent. The value is immutable
// afterwards; a duplicate trips the unique index and is surfaced as a
// storage error rather than retried.
func (p *BusinessProfile) BeforeCreate(tx *gorm.DB) error {
	if p.PublicID == "" {
		p.PublicID = NewPublicID()
	}
	return nil
}

// NewPublicID returns a 12-character opaque identifier derived from a
// random UUID's hex form.
func NewPublicID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
}

// DefaultEmbedMinHeight is the iframe min-height used when the profile
// has no override.
const DefaultEmbedMinHeight = 430

type embedSettings struct {
	MinHeight int `json:"min_height"`
}

// EmbedMinHeight returns the iframe min-height in pixels, falling back
// to the default when the profile's embed settings don't set one.
func (p *BusinessProfile) EmbedMinHeight() int {
	var s embedSettings
	if len(p.EmbedSettings) > 0 {
		if err := json.Unmarshal(p.EmbedSettings, &s); err == nil && s.MinHeight > 0 {
			return s.MinHeight
		}
	}
	return DefaultEmbedMinHeight
}
