package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/leadboxhq/leadbox-backend/internal/cache"
	"github.com/leadboxhq/leadbox-backend/internal/models"
	"github.com/leadboxhq/leadbox-backend/internal/repository"
	"gorm.io/gorm"
)

// In-memory repository fakes mirroring the GORM implementations'
// contracts, so services can be exercised without a database.

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
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now()
	}
	if lead.UpdatedAt.IsZero() {
		lead.UpdatedAt = lead.CreatedAt
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
	out := lead
	return &out, nil
}

func (r *memLeadRepo) owned(ownerID uuid.UUID) []models.Lead {
	var out []models.Lead
	for _, lead := range r.leads {
		if lead.OwnerID == ownerID {
			out = append(out, lead)
		}
	}
	return out
}

func (r *memLeadRepo) ListOwned(ownerID uuid.UUID, f repository.LeadFilter) ([]models.Lead, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var filtered []models.Lead
	search := strings.ToLower(strings.TrimSpace(f.Search))
	for _, lead := range r.owned(ownerID) {
		if search != "" &&
			!strings.Contains(strings.ToLower(lead.Name), search) &&
			!strings.Contains(strings.ToLower(lead.Email), search) {
			continue
		}
		if models.ValidStatus(f.Status) && lead.Status != f.Status {
			continue
		}
		filtered = append(filtered, lead)
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	total := int64(len(filtered))
	page := f.Page
	if page < 1 {
		page = 1
	}
	start := (page - 1) * f.PageSize
	if start >= len(filtered) {
		return nil, total, nil
	}
	end := start + f.PageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end], total, nil
}

func (r *memLeadRepo) AllOwnedOldestFirst(ownerID uuid.UUID) ([]models.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.owned(ownerID)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memLeadRepo) Save(lead *models.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	lead.UpdatedAt = time.Now()
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
	profiles map[uuid.UUID]models.BusinessProfile // keyed by UserID
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
			out := p
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memProfileRepo) FindByUserID(userID uuid.UUID) (*models.BusinessProfile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := p
	return &out, nil
}

func (r *memProfileRepo) Save(profile *models.BusinessProfile) error {
	r.profiles[profile.UserID] = *profile
	return nil
}

type memUserRepo struct {
	users    map[uuid.UUID]models.User
	profiles map[uuid.UUID]models.BusinessProfile
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{
		users:    make(map[uuid.UUID]models.User),
		profiles: make(map[uuid.UUID]models.BusinessProfile),
	}
}

func (r *memUserRepo) CreateWithProfile(user *models.User, profile *models.BusinessProfile) error {
	profile.UserID = user.ID
	r.users[user.ID] = *user
	r.profiles[user.ID] = *profile
	return nil
}

func (r *memUserRepo) FindByID(id uuid.UUID) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := u
	return &out, nil
}

func (r *memUserRepo) FindByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) FindByUsername(username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			out := u
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) UpdatePassword(id uuid.UUID, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Password = passwordHash
	r.users[id] = u
	return nil
}

type memTokenRepo struct {
	tokens map[string]models.RefreshToken // keyed by hash
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{tokens: make(map[string]models.RefreshToken)}
}

func (r *memTokenRepo) Create(token *models.RefreshToken) error {
	r.tokens[token.TokenHash] = *token
	return nil
}

func (r *memTokenRepo) FindActive(tokenHash string) (*models.RefreshToken, error) {
	t, ok := r.tokens[tokenHash]
	if !ok || t.Revoked {
		return nil, gorm.ErrRecordNotFound
	}
	out := t
	return &out, nil
}

func (r *memTokenRepo) Revoke(token *models.RefreshToken) error {
	t := r.tokens[token.TokenHash]
	t.Revoked = true
	r.tokens[token.TokenHash] = t
	return nil
}

func (r *memTokenRepo) RevokeByHash(tokenHash string) error {
	if t, ok := r.tokens[tokenHash]; ok {
		t.Revoked = true
		r.tokens[tokenHash] = t
	}
	return nil
}

func (r *memTokenRepo) RevokeAllForUser(userID uuid.UUID) error {
	for hash, t := range r.tokens {
		if t.UserID == userID {
			t.Revoked = true
			r.tokens[hash] = t
		}
	}
	return nil
}

type memResetStore struct {
	values map[string]string
}

func newMemResetStore() *memResetStore {
	return &memResetStore{values: make(map[string]string)}
}

func (s *memResetStore) Set(_ context.Context, key, value string, _ time.Duration) error {
	s.values[key] = value
	return nil
}

func (s *memResetStore) Get(_ context.Context, key string) (string, error) {
	v, ok := s.values[key]
	if !ok {
		return "", cache.ErrNotFound
	}
	return v, nil
}

func (s *memResetStore) Del(_ context.Context, key string) error {
	delete(s.values, key)
	return nil
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type mockMailer struct {
	sent []sentMail
	err  error
}

func (m *mockMailer) Send(_ context.Context, to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}
