package repository

import (
	"github.com/google/uuid"
	"github.com/leadboxhq/leadbox-backend/internal/models"
	"gorm.io/gorm"
)

// TokenRepository persists refresh token hashes.
type TokenRepository interface {
	Create(token *models.RefreshToken) error
	FindActive(tokenHash string) (*models.RefreshToken, error)
	Revoke(token *models.RefreshToken) error
	RevokeByHash(tokenHash string) error
	RevokeAllForUser(userID uuid.UUID) error
}

type gormTokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &gormTokenRepository{db: db}
}

func (r *gormTokenRepository) Create(token *models.RefreshToken) error {
	return r.db.Create(token).Error
}

func (r *gormTokenRepository) FindActive(tokenHash string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	err := r.db.First(&token, "token_hash = ? AND revoked = false", tokenHash).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *gormTokenRepository) Revoke(token *models.RefreshToken) error {
	return r.db.Model(token).Update("revoked", true).Error
}

func (r *gormTokenRepository) RevokeByHash(tokenHash string) error {
	return r.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
}

func (r *gormTokenRepository) RevokeAllForUser(userID uuid.UUID) error {
	return r.db.Model(&models.RefreshToken{}).
		Where("user_id = ? AND revoked = false", userID).
		Update("revoked", true).Error
}
