package repository

import (
	"strings"

	"github.com/google/uuid"
	"github.com/leadboxhq/leadbox-backend/internal/models"
	"github.com/leadboxhq/leadbox-backend/internal/ownership"
	"gorm.io/gorm"
)

// LeadFilter narrows a dashboard listing. Search matches name or email
// case-insensitively; an empty or invalid Status means all statuses.
type LeadFilter struct {
	Search   string
	Status   models.LeadStatus
	Page     int
	PageSize int
}

// LeadRepository is the single gateway for lead rows. Every reader and
// writer passes the requester's identity, so update, delete, dashboard
// and export all share the same ownership check.
type LeadRepository interface {
	Create(lead *models.Lead) error
	FindOwned(ownerID, id uuid.UUID) (*models.Lead, error)
	ListOwned(ownerID uuid.UUID, f LeadFilter) ([]models.Lead, int64, error)
	AllOwnedOldestFirst(ownerID uuid.UUID) ([]models.Lead, error)
	Save(lead *models.Lead) error
	Delete(lead *models.Lead) error
}

type gormLeadRepository struct {
	db *gorm.DB
}

func NewLeadRepository(db *gorm.DB) LeadRepository {
	return &gormLeadRepository{db: db}
}

func (r *gormLeadRepository) Create(lead *models.Lead) error {
	return r.db.Create(lead).Error
}

func (r *gormLeadRepository) FindOwned(ownerID, id uuid.UUID) (*models.Lead, error) {
	var lead models.Lead
	err := r.db.Scopes(ownership.ForOwner(ownerID)).First(&lead, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *gormLeadRepository) ListOwned(ownerID uuid.UUID, f LeadFilter) ([]models.Lead, int64, error) {
	query := r.db.Model(&models.Lead{}).Scopes(ownership.ForOwner(ownerID))

	if search := strings.TrimSpace(f.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}
	if models.ValidStatus(f.Status) {
		query = query.Where("status = ?", f.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := f.Page
	if page < 1 {
		page = 1
	}

	var leads []models.Lead
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * f.PageSize).
		Limit(f.PageSize).
		Find(&leads).Error
	if err != nil {
		return nil, 0, err
	}
	return leads, total, nil
}

func (r *gormLeadRepository) AllOwnedOldestFirst(ownerID uuid.UUID) ([]models.Lead, error) {
	var leads []models.Lead
	err := r.db.Scopes(ownership.ForOwner(ownerID)).
		Order("created_at ASC").
		Find(&leads).Error
	return leads, err
}

func (r *gormLeadRepository) Save(lead *models.Lead) error {
	return r.db.Save(lead).Error
}

func (r *gormLeadRepository) Delete(lead *models.Lead) error {
	return r.db.Delete(lead).Error
}
