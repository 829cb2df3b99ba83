package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/mhartig/TrainerDeskBack/internal/billing"
	"github.com/mhartig/TrainerDeskBack/internal/repository"
)

type ProfileHandler struct {
	profileRepo *repository.TrainerProfileRepository
}

func NewProfileHandler(profileRepo *repository.TrainerProfileRepository) *ProfileHandler {
	return &ProfileHandler{profileRepo: profileRepo}
}

func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	ownerID, err := parseOwnerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	profile, err := h.profileRepo.GetByOwnerID(c.Context(), ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch profile"})
	}
	return c.JSON(fiber.Map{"profile": profile})
}

func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	ownerID, err := parseOwnerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req struct {
		FullName      *string  `json:"full_name"`
		BusinessName  *string  `json:"business_name"`
		Address       *string  `json:"address"`
		Email         *string  `json:"email"`
		Phone         *string  `json:"phone"`
		IBAN          *string  `json:"iban"`
		TaxID         *string  `json:"tax_id"`
		HourlyRate    *float64 `json:"hourly_rate"`
		VATRate       float64  `json:"vat_rate"`
		SmallBusiness bool     `json:"small_business"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.VATRate < 0 || req.VATRate > 100 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "vat_rate must be between 0 and 100"})
	}

	profile, err := h.profileRepo.Update(c.Context(), ownerID, repository.UpdateTrainerProfileInput{
		FullName:      req.FullName,
		BusinessName:  req.BusinessName,
		Address:       req.Address,
		Email:         req.Email,
		Phone:         req.Phone,
		IBAN:          req.IBAN,
		TaxID:         req.TaxID,
		HourlyRate:    req.HourlyRate,
		VATRate:       req.VATRate,
		SmallBusiness: req.SmallBusiness,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}
	return c.JSON(fiber.Map{"profile": profile})
}

// UpdateInvoiceTemplate stores a hand-edited invoice HTML template. The
// template must keep the placeholder tokens invoices are rendered from.
func (h *ProfileHandler) UpdateInvoiceTemplate(c *fiber.Ctx) error {
	ownerID, err := parseOwnerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req struct {
		InvoiceHTML string `json:"invoice_html"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := billing.ValidateTemplate(req.InvoiceHTML); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	profile, err := h.profileRepo.UpdateInvoiceHTML(c.Context(), ownerID, req.InvoiceHTML)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save invoice template"})
	}
	return c.JSON(fiber.Map{"profile": profile})
}
