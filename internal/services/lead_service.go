package services

import (
	"encoding/csv"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/leadboxhq/leadbox-backend/internal/forms"
	"github.com/leadboxhq/leadbox-backend/internal/metrics"
	"github.com/leadboxhq/leadbox-backend/internal/models"
	"github.com/leadboxhq/leadbox-backend/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrProfileNotFound = errors.New("business profile not found")
	ErrLeadNotFound    = errors.New("lead not found")
	ErrInvalidStatus   = errors.New("invalid lead status")
)

// DashboardPageSize is the fixed dashboard page length.
const DashboardPageSize = 10

type LeadService struct {
	leads    repository.LeadRepository
	profiles repository.ProfileRepository
	notifier *NotificationService
}

func NewLeadService(leads repository.LeadRepository, profiles repository.ProfileRepository, notifier *NotificationService) *LeadService {
	return &LeadService{leads: leads, profiles: profiles, notifier: notifier}
}

// ResolveProfile looks up the capture target by its public identifier.
func (s *LeadService) ResolveProfile(publicID string) (*models.BusinessProfile, error) {
	profile, err := s.profiles.FindByPublicID(publicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

// Capture validates a public submission and stores it as a NEW lead
// owned by the profile's account. On success the owner notification is
// dispatched; its failure never fails the capture.
func (s *LeadService) Capture(profile *models.BusinessProfile, form *forms.LeadForm) (*models.Lead, forms.FieldErrors, error) {
	if fieldErrs := form.Validate(); len(fieldErrs) > 0 {
		metrics.CaptureRejectedTotal.Inc()
		return nil, fieldErrs, nil
	}

	lead := models.Lead{
		ID:      uuid.New(),
		OwnerID: profile.UserID,
		Name:    form.Name,
		Email:   form.Email,
		Phone:   form.Phone,
		Message: form.Message,
		Status:  models.StatusNew,
	}

	if err := s.leads.Create(&lead); err != nil {
		return nil, nil, err
	}

	metrics.LeadsCapturedTotal.Inc()
	s.notifier.NotifyNewLead(profile, &lead)
	return &lead, nil, nil
}

// List returns one dashboard page of the requester's leads, newest
// first, plus the total for the filtered set. An unknown status code is
// ignored rather than rejected.
func (s *LeadService) List(ownerID uuid.UUID, search string, status models.LeadStatus, page int) ([]models.Lead, int64, error) {
	if page < 1 {
		page = 1
	}
	return s.leads.ListOwned(ownerID, repository.LeadFilter{
		Search:   search,
		Status:   status,
		Page:     page,
		PageSize: DashboardPageSize,
	})
}

// Get fetches one lead through the ownership scope; foreign leads are
// indistinguishable from missing ones.
func (s *LeadService) Get(ownerID, leadID uuid.UUID) (*models.Lead, error) {
	lead, err := s.leads.FindOwned(ownerID, leadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, err
	}
	return lead, nil
}

// Update edits the only owner-editable fields, status and notes.
func (s *LeadService) Update(ownerID, leadID uuid.UUID, status models.LeadStatus, notes string) (*models.Lead, error) {
	if !models.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	lead, err := s.Get(ownerID, leadID)
	if err != nil {
		return nil, err
	}

	lead.Status = status
	lead.Notes = notes
	if err := s.leads.Save(lead); err != nil {
		return nil, err
	}
	return lead, nil
}

func (s *LeadService) Delete(ownerID, leadID uuid.UUID) error {
	lead, err := s.Get(ownerID, leadID)
	if err != nil {
		return err
	}
	return s.leads.Delete(lead)
}

// csvHeader is the exact export header row.
var csvHeader = []string{"Name", "Email", "Phone", "Message", "Status", "Notes", "Created At"}

// ExportCSV streams every lead of the requester, oldest first, as CSV
// with human-readable status labels and ISO-8601 timestamps.
func (s *LeadService) ExportCSV(ownerID uuid.UUID, w io.Writer) error {
	leads, err := s.leads.AllOwnedOldestFirst(ownerID)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, lead := range leads {
		row := []string{
			lead.Name,
			lead.Email,
			lead.Phone,
			lead.Message,
			lead.Status.Label(),
			lead.Notes,
			lead.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
