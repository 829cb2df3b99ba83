package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/mhartig/TrainerDeskBack/internal/services"
)

// AssistantHandler exposes the LLM-backed helpers. Responses use a
// {success, ...} shape so callers can branch without inspecting status
// codes, and upstream failures are reported verbatim.
type AssistantHandler struct {
	templates services.TemplateAuthor
	receipts  services.ReceiptParser
}

func NewAssistantHandler(templates services.TemplateAuthor, receipts services.ReceiptParser) *AssistantHandler {
	return &AssistantHandler{templates: templates, receipts: receipts}
}

func (h *AssistantHandler) GenerateTemplate(c *fiber.Ctx) error {
	if _, err := parseOwnerID(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "Invalid token"})
	}

	var req struct {
		Prompt          string `json:"prompt"`
		CurrentTemplate string `json:"current_template"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "prompt is required"})
	}

	html, err := h.templates.GenerateTemplate(c.Context(), req.Prompt, req.CurrentTemplate)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "html": html})
}

func (h *AssistantHandler) ParseReceipt(c *fiber.Ctx) error {
	if _, err := parseOwnerID(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "Invalid token"})
	}

	var req struct {
		ImageBase64 string `json:"imageBase64"`
		MimeType    string `json:"mimeType"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if req.ImageBase64 == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "imageBase64 is required"})
	}
	if req.MimeType == "" {
		req.MimeType = "image/jpeg"
	}

	fields, err := h.receipts.ParseReceipt(c.Context(), req.ImageBase64, req.MimeType)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "data": fields})
}
