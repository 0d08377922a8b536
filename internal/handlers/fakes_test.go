package handlers

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/leadboxhq/leadbox-backend/internal/models"
	"github.com/leadboxhq/leadbox-backend/internal/repository"
	"gorm.io/gorm"
)

// In-memory repositories so the HTTP layer can be exercised with
// app.Test, no database required.

type memLeadRepo struct {
	mu    sync.Mutex
	leads map[uuid.UUID]models.Lead
}

func newMemLeadRepo() *memLeadRepo {
	return &memLeadRepo{leads: make(map[uuid.UUID]models.Lead)}
}

func (r *memLeadRepo) Create(lead *models.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if lead.ID == uuid.Nil {
		lead.ID = uuid.New()
	}
	r.leads[lead.ID] = *lead
	return nil
}

func (r *memLeadRepo) FindOwned(ownerID, id uuid.UUID) (*models.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lead, ok := r.leads[id]
	if !ok || lead.OwnerID != ownerID {
		return nil, gorm.ErrRecordNotFound
	}
	return &lead, nil
}

func (r *memLeadRepo) ListOwned(ownerID uuid.UUID, f repository.LeadFilter) ([]models.Lead, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []models.Lead
	for _, lead := range r.leads {
		if lead.OwnerID != ownerID {
			continue
		}
		if f.Search != "" {
			needle := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(lead.Name), needle) &&
				!strings.Contains(strings.ToLower(lead.Email), needle) {
				continue
			}
		}
		if models.ValidStatus(f.Status) && lead.Status != f.Status {
			continue
		}
		matched = append(matched, lead)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := (f.Page - 1) * f.PageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + f.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *memLeadRepo) AllOwnedOldestFirst(ownerID uuid.UUID) ([]models.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var owned []models.Lead
	for _, lead := range r.leads {
		if lead.OwnerID == ownerID {
			owned = append(owned, lead)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		return owned[i].CreatedAt.Before(owned[j].CreatedAt)
	})
	return owned, nil
}

func (r *memLeadRepo) Save(lead *models.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leads[lead.ID] = *lead
	return nil
}

func (r *memLeadRepo) Delete(lead *models.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.leads, lead.ID)
	return nil
}

type memProfileRepo struct {
	profiles map[uuid.UUID]models.BusinessProfile
}

func newMemProfileRepo(profiles ...models.BusinessProfile) *memProfileRepo {
	r := &memProfileRepo{profiles: make(map[uuid.UUID]models.BusinessProfile)}
	for _, p := range profiles {
		r.profiles[p.UserID] = p
	}
	return r
}

func (r *memProfileRepo) FindByPublicID(publicID string) (*models.BusinessProfile, error) {
	for _, p := range r.profiles {
		if p.PublicID == publicID {
			found := p
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memProfileRepo) FindByUserID(userID uuid.UUID) (*models.BusinessProfile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r *memProfileRepo) Save(profile *models.BusinessProfile) error {
	r.profiles[profile.UserID] = *profile
	return nil
}

type noopMailer struct{}

func (noopMailer) Send(_ context.Context, _, _, _ string) error { return nil }
