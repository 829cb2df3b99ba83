package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mhartig/TrainerDeskBack/internal/repository"
)

type PaymentHandler struct {
	paymentRepo *repository.PaymentRepository
}

func NewPaymentHandler(paymentRepo *repository.PaymentRepository) *PaymentHandler {
	return &PaymentHandler{paymentRepo: paymentRepo}
}

// SetPaid toggles the settlement flag of a client for a month. Repeated
// calls overwrite the flag instead of stacking rows.
func (h *PaymentHandler) SetPaid(c *fiber.Ctx) error {
	ownerID, err := parseOwnerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req struct {
		Month    string `json:"month"`
		ClientID int64  `json:"client_id"`
		Paid     bool   `json:"paid"`
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

	payment, err := h.paymentRepo.Upsert(c.Context(), ownerID, req.Month, req.ClientID, req.Paid)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save payment"})
	}
	return c.JSON(fiber.Map{"payment": payment})
}

func (h *PaymentHandler) ListByMonth(c *fiber.Ctx) error {
	ownerID, err := parseOwnerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	month := c.Query("month")
	if _, err := time.Parse("2006-01", month); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "month must use YYYY-MM format"})
	}

	payments, err := h.paymentRepo.ListByMonth(c.Context(), ownerID, month)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list payments"})
	}
	return c.JSON(fiber.Map{"payments": payments})
}
