package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/mhartig/TrainerDeskBack/internal/models"
	"github.com/mhartig/TrainerDeskBack/internal/repository"
	"github.com/mhartig/TrainerDeskBack/internal/services"
)

type ScheduleTemplateHandler struct {
	templateRepo   *repository.ScheduleTemplateRepository
	sessionService *services.SessionService
}

func NewScheduleTemplateHandler(templateRepo *repository.ScheduleTemplateRepository, sessionService *services.SessionService) *ScheduleTemplateHandler {
	return &ScheduleTemplateHandler{templateRepo: templateRepo, sessionService: sessionService}
}

type scheduleTemplateRequest struct {
	Name   string                      `json:"name"`
	Active bool                        `json:"active"`
	Data   models.ScheduleTemplateData `json:"data"`
}

func (r *scheduleTemplateRequest) toInput() (repository.ScheduleTemplateInput, error) {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return repository.ScheduleTemplateInput{}, errors.New("name is required")
	}
	return repository.ScheduleTemplateInput{
		Name:   name,
		Active: r.Active,
		Data:   r.Data,
	}, nil
}

func (h *ScheduleTemplateHandler) Create(c *fiber.Ctx) error {
	ownerID, err := parseOwnerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req scheduleTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	input, err := req.toInput()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	template, err := h.templateRepo.Create(c.Context(), ownerID, input)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create template"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"template": template})
}

func (h *ScheduleTemplateHandler) List(c *fiber.Ctx) error {
	ownerID, err := parseOwnerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	templates, err := h.templateRepo.ListByOwner(c.Context(), ownerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list templates"})
	}
	return c.JSON(fiber.Map{"templates": templates})
}

func (h *ScheduleTemplateHandler) Get(c *fiber.Ctx) error {
	ownerID, err := parseOwnerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	templateID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid template id"})
	}

	template, err := h.templateRepo.GetByID(c.Context(), ownerID, templateID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Template not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch template"})
	}
	return c.JSON(fiber.Map{"template": template})
}

func (h *ScheduleTemplateHandler) Update(c *fiber.Ctx) error {
	ownerID, err := parseOwnerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	templateID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid template id"})
	}

	var req scheduleTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	input, err := req.toInput()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	template, err := h.templateRepo.Update(c.Context(), ownerID, templateID, input)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Template not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update template"})
	}
	return c.JSON(fiber.Map{"template": template})
}

func (h *ScheduleTemplateHandler) Delete(c *fiber.Ctx) error {
	ownerID, err := parseOwnerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	templateID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid template id"})
	}

	if err := h.templateRepo.Delete(c.Context(), ownerID, templateID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete template"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Apply materializes a template into planned sessions for the week
// containing the given anchor date.
func (h *ScheduleTemplateHandler) Apply(c *fiber.Ctx) error {
	ownerID, err := parseOwnerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	templateID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid template id"})
	}

	var req struct {
		WeekDate string `json:"week_date"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	anchor, err := time.Parse("2006-01-02", req.WeekDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "week_date must use YYYY-MM-DD format"})
	}

	sessions, err := h.sessionService.ApplyTemplate(c.Context(), ownerID, templateID, anchor)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Template not found"})
		case errors.Is(err, services.ErrTemplateInactive):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Template is not active"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to apply template"})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"sessions": sessions})
}
