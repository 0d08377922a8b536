package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/leadboxhq/leadbox-backend/internal/config"
	"github.com/leadboxhq/leadbox-backend/internal/dto"
	"github.com/leadboxhq/leadbox-backend/internal/ownership"
	"github.com/leadboxhq/leadbox-backend/internal/services"
)

type ProfileHandler struct {
	profileService *services.ProfileService
	cfg            *config.Config
}

func NewProfileHandler(profileService *services.ProfileService, cfg *config.Config) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, cfg: cfg}
}

func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	userID, err := ownership.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	profile, err := h.profileService.Get(userID)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Internal server error"})
	}

	base := absoluteBaseURL(c, h.cfg)
	return c.JSON(dto.NewProfileResponse(profile,
		publicFormURL(base, profile.PublicID),
		embedScriptURL(base, profile.PublicID)))
}

func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	userID, err := ownership.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	var req dto.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	profile, err := h.profileService.Update(userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: "Profile not found"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
	}

	base := absoluteBaseURL(c, h.cfg)
	return c.JSON(dto.NewProfileResponse(profile,
		publicFormURL(base, profile.PublicID),
		embedScriptURL(base, profile.PublicID)))
}
