package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mhartig/TrainerDeskBack/internal/repository"
)

type AdjustmentHandler struct {
	adjustmentRepo *repository.AdjustmentRepository
}

func NewAdjustmentHandler(adjustmentRepo *repository.AdjustmentRepository) *AdjustmentHandler {
	return &AdjustmentHandler{adjustmentRepo: adjustmentRepo}
}

func (h *AdjustmentHandler) Create(c *fiber.Ctx) error {
	ownerID, err := parseOwnerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req struct {
		Month    string  `json:"month"`
		ClientID int64   `json:"client_id"`
		Amount   float64 `json:"amount"`
		Reason   *string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if _, err := time.Parse("2006-01", req.Month); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "month must use YYYY-MM format"})
	}
	if req.ClientID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "client_id is required"})
	}
	if req.Amount == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "amount must not be zero"})
	}

	adjustment, err := h.adjustmentRepo.Create(c.Context(), ownerID, req.Month, req.ClientID, req.Amount, req.Reason)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create adjustment"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"adjustment": adjustment})
}

func (h *AdjustmentHandler) ListByMonth(c *fiber.Ctx) error {
	ownerID, err := parseOwnerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	month := c.Query("month")
	if _, err := time.Parse("2006-01", month); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "month must use YYYY-MM format"})
	}

	adjustments, err := h.adjustmentRepo.ListByMonth(c.Context(), ownerID, month)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list adjustments"})
	}
	return c.JSON(fiber.Map{"adjustments": adjustments})
}

func (h *AdjustmentHandler) Delete(c *fiber.Ctx) error {
	ownerID, err := parseOwnerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	adjustmentID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid adjustment id"})
	}

	if err := h.adjustmentRepo.Delete(c.Context(), ownerID, adjustmentID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete adjustment"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
