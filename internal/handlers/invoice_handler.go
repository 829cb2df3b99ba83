package handlers

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/mhartig/TrainerDeskBack/internal/services"
)

type InvoiceHandler struct {
	service invoiceApplicationService
}

type invoiceApplicationService interface {
	MonthlyOverview(ctx context.Context, ownerID int64, month string) (*services.MonthlyOverview, error)
	RenderInvoice(ctx context.Context, ownerID int64, month string, clientID int64, now time.Time) (*services.RenderedInvoice, error)
}

func NewInvoiceHandler(service *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{service: service}
}

// Overview returns the computed accounting state of a month: per-client
// statements, totals, warnings for unpriceable sessions and settlement flags.
func (h *InvoiceHandler) Overview(c *fiber.Ctx) error {
	ownerID, err := parseOwnerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	month := c.Query("month")
	if _, err := time.Parse("2006-01", month); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "month must use YYYY-MM format"})
	}

	overview, err := h.service.MonthlyOverview(c.Context(), ownerID, month)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute overview"})
	}
	return c.JSON(fiber.Map{"overview": overview})
}

// Render produces the invoice HTML for one client and month.
func (h *InvoiceHandler) Render(c *fiber.Ctx) error {
	ownerID, err := parseOwnerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	month := c.Query("month")
	if _, err := time.Parse("2006-01", month); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "month must use YYYY-MM format"})
	}
	// Client id 0 addresses the shared group statement.
	clientID, err := strconv.ParseInt(c.Params("clientId"), 10, 64)
	if err != nil || clientID < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid client id"})
	}

	invoice, err := h.service.RenderInvoice(c.Context(), ownerID, month, clientID, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNothingToInvoice):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No billable activity for this client and month"})
		case errors.Is(err, pgx.ErrNoRows):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to render invoice"})
		}
	}
	return c.JSON(fiber.Map{"invoice": invoice})
}
