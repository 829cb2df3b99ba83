package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/mhartig/TrainerDeskBack/internal/services"
)

type stubTemplateAuthor struct {
	html        string
	err         error
	lastPrompt  string
	lastCurrent string
}

func (s *stubTemplateAuthor) GenerateTemplate(_ context.Context, prompt, current string) (string, error) {
	s.lastPrompt = prompt
	s.lastCurrent = current
	return s.html, s.err
}

type stubReceiptParser struct {
	fields *services.ReceiptFields
	err    error
}

func (s *stubReceiptParser) ParseReceipt(_ context.Context, _, _ string) (*services.ReceiptFields, error) {
	return s.fields, s.err
}

func assistantTestApp(templates services.TemplateAuthor, receipts services.ReceiptParser) *fiber.App {
	handler := NewAssistantHandler(templates, receipts)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", "42")
		c.Locals("role", "trainer")
		return c.Next()
	})
	app.Post("/api/v1/assistant/invoice-template", handler.GenerateTemplate)
	app.Post("/api/v1/assistant/parse-receipt", handler.ParseReceipt)
	return app
}

func TestGenerateTemplateReturnsSuccessShape(t *testing.T) {
	author := &stubTemplateAuthor{html: "<html>{{line_items}}{{totals}}</html>"}
	app := assistantTestApp(author, &stubReceiptParser{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assistant/invoice-template", strings.NewReader(`{
		"prompt": "blue header, serif font",
		"current_template": "<html>{{line_items}}{{totals}}</html>"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if author.lastPrompt != "blue header, serif font" {
		t.Fatalf("unexpected prompt %q", author.lastPrompt)
	}

	var body struct {
		Success bool   `json:"success"`
		HTML    string `json:"html"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !body.Success || body.HTML == "" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestGenerateTemplateRequiresPrompt(t *testing.T) {
	app := assistantTestApp(&stubTemplateAuthor{}, &stubReceiptParser{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assistant/invoice-template", strings.NewReader(`{"prompt": "  "}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestGenerateTemplateSurfacesUpstreamError(t *testing.T) {
	author := &stubTemplateAuthor{err: errors.New("llm api returned 429 Too Many Requests: rate limited")}
	app := assistantTestApp(author, &stubReceiptParser{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assistant/invoice-template", strings.NewReader(`{"prompt": "darker"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}

	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if body.Success {
		t.Fatalf("expected success false")
	}
	if !strings.Contains(body.Error, "429") {
		t.Fatalf("expected upstream status surfaced, got %q", body.Error)
	}
}

func TestParseReceiptReturnsFields(t *testing.T) {
	rate := 19.0
	parser := &stubReceiptParser{
		fields: &services.ReceiptFields{
			Date:        "2026-03-02",
			Amount:      45.90,
			Description: "Resistance bands",
			Category:    "equipment",
			HasVAT:      true,
			VATRate:     &rate,
			Vendor:      "Sport Thieme",
		},
	}
	app := assistantTestApp(&stubTemplateAuthor{}, parser)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assistant/parse-receipt", strings.NewReader(`{
		"imageBase64": "aGVsbG8=",
		"mimeType": "image/png"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Success bool                   `json:"success"`
		Data    services.ReceiptFields `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !body.Success || body.Data.Category != "equipment" || body.Data.Amount != 45.90 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestParseReceiptRequiresImage(t *testing.T) {
	app := assistantTestApp(&stubTemplateAuthor{}, &stubReceiptParser{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assistant/parse-receipt", strings.NewReader(`{"mimeType": "image/png"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
