package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mhartig/TrainerDeskBack/internal/models"
	"github.com/mhartig/TrainerDeskBack/internal/repository"
)

type ExpenseHandler struct {
	expenseRepo *repository.ExpenseRepository
}

func NewExpenseHandler(expenseRepo *repository.ExpenseRepository) *ExpenseHandler {
	return &ExpenseHandler{expenseRepo: expenseRepo}
}

type expenseRequest struct {
	Date          string   `json:"date"`
	Amount        float64  `json:"amount"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	HasVAT        bool     `json:"has_vat"`
	VATRate       *float64 `json:"vat_rate"`
	Vendor        *string  `json:"vendor"`
	InvoiceNumber *string  `json:"invoice_number"`
	InvoiceDate   *string  `json:"invoice_date"`
}

func (r *expenseRequest) toInput() (repository.ExpenseInput, error) {
	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return repository.ExpenseInput{}, errors.New("date must use YYYY-MM-DD format")
	}
	if r.Amount <= 0 {
		return repository.ExpenseInput{}, errors.New("amount must be positive")
	}
	if strings.TrimSpace(r.Description) == "" {
		return repository.ExpenseInput{}, errors.New("description is required")
	}
	switch r.Category {
	case models.ExpenseVenueRental, models.ExpenseEquipment, models.ExpenseTravel,
		models.ExpenseContinuingEducation, models.ExpenseCoachingFee, models.ExpenseOther:
	default:
		return repository.ExpenseInput{}, errors.New("unknown expense category")
	}
	if r.HasVAT {
		if r.VATRate == nil || (*r.VATRate != 7 && *r.VATRate != 19) {
			return repository.ExpenseInput{}, errors.New("vat_rate must be 7 or 19 when has_vat is set")
		}
	} else if r.VATRate != nil {
		return repository.ExpenseInput{}, errors.New("vat_rate must be empty when has_vat is not set")
	}

	var invoiceDate *time.Time
	if r.InvoiceDate != nil && *r.InvoiceDate != "" {
		parsed, err := time.Parse("2006-01-02", *r.InvoiceDate)
		if err != nil {
			return repository.ExpenseInput{}, errors.New("invoice_date must use YYYY-MM-DD format")
		}
		invoiceDate = &parsed
	}

	return repository.ExpenseInput{
		Date:          date,
		Amount:        r.Amount,
		Description:   strings.TrimSpace(r.Description),
		Category:      r.Category,
		HasVAT:        r.HasVAT,
		VATRate:       r.VATRate,
		Vendor:        r.Vendor,
		InvoiceNumber: r.InvoiceNumber,
		InvoiceDate:   invoiceDate,
	}, nil
}

func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	ownerID, err := parseOwnerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req expenseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	input, err := req.toInput()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	expense, err := h.expenseRepo.Create(c.Context(), ownerID, input)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create expense"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"expense": expense})
}

func (h *ExpenseHandler) ListByMonth(c *fiber.Ctx) error {
	ownerID, err := parseOwnerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	month := c.Query("month")
	if _, err := time.Parse("2006-01", month); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "month must use YYYY-MM format"})
	}

	expenses, err := h.expenseRepo.ListByMonth(c.Context(), ownerID, month)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list expenses"})
	}
	return c.JSON(fiber.Map{"expenses": expenses})
}

func (h *ExpenseHandler) Delete(c *fiber.Ctx) error {
	ownerID, err := parseOwnerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	expenseID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid expense id"})
	}

	if err := h.expenseRepo.Delete(c.Context(), ownerID, expenseID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete expense"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
