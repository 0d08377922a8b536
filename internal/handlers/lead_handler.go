package handlers

import (
	"bytes"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/leadboxhq/leadbox-backend/internal/config"
	"github.com/leadboxhq/leadbox-backend/internal/dto"
	"github.com/leadboxhq/leadbox-backend/internal/models"
	"github.com/leadboxhq/leadbox-backend/internal/ownership"
	"github.com/leadboxhq/leadbox-backend/internal/services"
)

type LeadHandler struct {
	leadService    *services.LeadService
	profileService *services.ProfileService
	cfg            *config.Config
}

func NewLeadHandler(leadService *services.LeadService, profileService *services.ProfileService, cfg *config.Config) *LeadHandler {
	return &LeadHandler{leadService: leadService, profileService: profileService, cfg: cfg}
}

// Dashboard lists the requester's leads newest-first, filtered by the
// optional `q` and `status` query params, 10 per page. The response also
// carries the filter vocabulary and the copy-paste embed script URL.
func (h *LeadHandler) Dashboard(c *fiber.Ctx) error {
	userID, err := ownership.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	query := strings.TrimSpace(c.Query("q"))
	status := models.LeadStatus(strings.ToUpper(strings.TrimSpace(c.Query("status"))))
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	leads, total, err := h.leadService.List(userID, query, status, page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to load leads"})
	}

	profile, err := h.profileService.Get(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to load profile"})
	}

	items := make([]dto.LeadResponse, 0, len(leads))
	for i := range leads {
		items = append(items, dto.NewLeadResponse(&leads[i]))
	}

	choices := make([]dto.StatusChoice, 0, 3)
	for _, code := range models.StatusChoices() {
		choices = append(choices, dto.StatusChoice{Code: string(code), Label: code.Label()})
	}

	selected := ""
	if models.ValidStatus(status) {
		selected = string(status)
	}

	pageSize := int64(services.DashboardPageSize)
	return c.JSON(dto.DashboardResponse{
		Leads: items,
		Pagination: dto.Pagination{
			Page:       page,
			PageSize:   services.DashboardPageSize,
			Total:      total,
			TotalPages: (total + pageSize - 1) / pageSize,
		},
		StatusChoices:  choices,
		Query:          query,
		SelectedStatus: selected,
		EmbedScriptURL: embedScriptURL(absoluteBaseURL(c, h.cfg), profile.PublicID),
	})
}

func (h *LeadHandler) Get(c *fiber.Ctx) error {
	userID, err := ownership.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	leadID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid lead ID"})
	}

	lead, err := h.leadService.Get(userID, leadID)
	if err != nil {
		return h.leadError(c, err)
	}

	return c.JSON(dto.NewLeadResponse(lead))
}

// Update edits status and notes only. The lookup itself is
// ownership-scoped, so a foreign lead reads as not found.
func (h *LeadHandler) Update(c *fiber.Ctx) error {
	userID, err := ownership.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	leadID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid lead ID"})
	}

	var req dto.LeadUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	status := models.LeadStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	lead, err := h.leadService.Update(userID, leadID, status, req.Notes)
	if err != nil {
		return h.leadError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Lead updated",
		"lead":    dto.NewLeadResponse(lead),
	})
}

func (h *LeadHandler) Delete(c *fiber.Ctx) error {
	userID, err := ownership.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	leadID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid lead ID"})
	}

	if err := h.leadService.Delete(userID, leadID); err != nil {
		return h.leadError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Lead deleted"})
}

// Export streams the requester's full lead list as a CSV attachment.
func (h *LeadHandler) Export(c *fiber.Ctx) error {
	userID, err := ownership.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	var buf bytes.Buffer
	if err := h.leadService.ExportCSV(userID, &buf); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Export failed"})
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="leads_export.csv"`)
	return c.Send(buf.Bytes())
}

func (h *LeadHandler) leadError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrLeadNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: "Lead not found"})
	case errors.Is(err, services.ErrInvalidStatus):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Internal server error"})
	}
}
