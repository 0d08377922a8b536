package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a business owner account. Every user owns exactly one
// BusinessProfile and any number of captured leads.
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username  string         `gorm:"size:150;not null;uniqueIndex" json:"username"`
	Email     string         `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
