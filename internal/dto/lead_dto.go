package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/leadboxhq/leadbox-backend/internal/models"
)

type LeadResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Message     string    `json:"message"`
	Status      string    `json:"status"`
	StatusLabel string    `json:"status_label"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewLeadResponse(lead *models.Lead) LeadResponse {
	return LeadResponse{
		ID:          lead.ID,
		Name:        lead.Name,
		Email:       lead.Email,
		Phone:       lead.Phone,
		Message:     lead.Message,
		Status:      string(lead.Status),
		StatusLabel: lead.Status.Label(),
		Notes:       lead.Notes,
		CreatedAt:   lead.CreatedAt,
		UpdatedAt:   lead.UpdatedAt,
	}
}

type LeadUpdateRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

type StatusChoice struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

type DashboardResponse struct {
	Leads          []LeadResponse `json:"leads"`
	Pagination     Pagination     `json:"pagination"`
	StatusChoices  []StatusChoice `json:"status_choices"`
	Query          string         `json:"query"`
	SelectedStatus string         `json:"selected_status"`
	EmbedScriptURL string         `json:"embed_script_url"`
}
