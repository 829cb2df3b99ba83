package handlers

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/mhartig/TrainerDeskBack/internal/repository"
	"github.com/mhartig/TrainerDeskBack/internal/services"
)

type RegistrationHandler struct {
	registrationRepo    *repository.RegistrationRepository
	registrationService *services.RegistrationService
}

func NewRegistrationHandler(registrationRepo *repository.RegistrationRepository, registrationService *services.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationRepo: registrationRepo, registrationService: registrationService}
}

func (h *RegistrationHandler) CreateForm(c *fiber.Ctx) error {
	ownerID, err := parseOwnerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req struct {
		Title  string          `json:"title"`
		Fields json.RawMessage `json:"fields"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title is required"})
	}
	if len(req.Fields) == 0 || !json.Valid(req.Fields) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "fields must be valid JSON"})
	}

	form, err := h.registrationRepo.CreateForm(c.Context(), ownerID, title, req.Fields)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create form"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"form": form})
}

func (h *RegistrationHandler) ListForms(c *fiber.Ctx) error {
	ownerID, err := parseOwnerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	forms, err := h.registrationRepo.ListFormsByOwner(c.Context(), ownerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list forms"})
	}
	return c.JSON(fiber.Map{"forms": forms})
}

// GetForm is public so a prospective client can load the form definition
// without an account.
func (h *RegistrationHandler) GetForm(c *fiber.Ctx) error {
	formID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid form id"})
	}

	form, err := h.registrationRepo.GetForm(c.Context(), formID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Form not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch form"})
	}
	if !form.Active {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Form not found"})
	}
	return c.JSON(fiber.Map{"form": form})
}

// Submit is the public submission endpoint.
func (h *RegistrationHandler) Submit(c *fiber.Ctx) error {
	formID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid form id"})
	}

	var req struct {
		Answers json.RawMessage `json:"answers"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	registration, err := h.registrationService.Submit(c.Context(), formID, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "Form not found"})
		case errors.Is(err, services.ErrFormInactive):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Form is no longer active"})
		case errors.Is(err, services.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to submit registration"})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "registration": registration})
}

func (h *RegistrationHandler) ListByForm(c *fiber.Ctx) error {
	ownerID, err := parseOwnerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	formID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid form id"})
	}

	registrations, err := h.registrationRepo.ListByForm(c.Context(), ownerID, formID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list registrations"})
	}
	return c.JSON(fiber.Map{"registrations": registrations})
}

// Notify sends the registration notification email. The notified flag flips
// only after a successful send, so a failed delivery can be retried.
func (h *RegistrationHandler) Notify(c *fiber.Ctx) error {
	ownerID, err := parseOwnerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "Invalid token"})
	}
	registrationID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid registration id"})
	}

	registration, err := h.registrationService.Notify(c.Context(), ownerID, registrationID)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "Registration not found"})
		case errors.Is(err, services.ErrNoRecipient):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
		default:
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"success": false, "error": err.Error()})
		}
	}
	return c.JSON(fiber.Map{"success": true, "registration": registration})
}
