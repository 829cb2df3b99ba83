package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/mhartig/TrainerDeskBack/internal/models"
	"github.com/mhartig/TrainerDeskBack/internal/repository"
)

type RatePlanHandler struct {
	ratePlanRepo *repository.RatePlanRepository
}

func NewRatePlanHandler(ratePlanRepo *repository.RatePlanRepository) *RatePlanHandler {
	return &RatePlanHandler{ratePlanRepo: ratePlanRepo}
}

type ratePlanRequest struct {
	Name         string  `json:"name"`
	PricePerHour float64 `json:"price_per_hour"`
	BillingMode  string  `json:"billing_mode"`
}

func (r *ratePlanRequest) toInput() (repository.RatePlanInput, error) {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return repository.RatePlanInput{}, errors.New("name is required")
	}
	if r.PricePerHour < 0 {
		return repository.RatePlanInput{}, errors.New("price_per_hour must not be negative")
	}
	switch r.BillingMode {
	case models.BillingPerSession, models.BillingPerClient, models.BillingMonthlyFlat:
	default:
		return repository.RatePlanInput{}, errors.New("billing_mode must be per_session, per_client or monthly_flat")
	}
	return repository.RatePlanInput{
		Name:         name,
		PricePerHour: r.PricePerHour,
		BillingMode:  r.BillingMode,
	}, nil
}

func (h *RatePlanHandler) Create(c *fiber.Ctx) error {
	ownerID, err := parseOwnerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req ratePlanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	input, err := req.toInput()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	plan, err := h.ratePlanRepo.Create(c.Context(), ownerID, input)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create rate plan"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"rate_plan": plan})
}

func (h *RatePlanHandler) List(c *fiber.Ctx) error {
	ownerID, err := parseOwnerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	plans, err := h.ratePlanRepo.ListByOwner(c.Context(), ownerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list rate plans"})
	}
	return c.JSON(fiber.Map{"rate_plans": plans})
}

func (h *RatePlanHandler) Update(c *fiber.Ctx) error {
	ownerID, err := parseOwnerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	planID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid rate plan id"})
	}

	var req ratePlanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	input, err := req.toInput()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	plan, err := h.ratePlanRepo.Update(c.Context(), ownerID, planID, input)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Rate plan not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update rate plan"})
	}
	return c.JSON(fiber.Map{"rate_plan": plan})
}

func (h *RatePlanHandler) Delete(c *fiber.Ctx) error {
	ownerID, err := parseOwnerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	planID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid rate plan id"})
	}

	if err := h.ratePlanRepo.Delete(c.Context(), ownerID, planID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete rate plan"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
