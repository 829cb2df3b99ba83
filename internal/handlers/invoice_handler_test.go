package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mhartig/TrainerDeskBack/internal/billing"
	"github.com/mhartig/TrainerDeskBack/internal/services"
)

type stubInvoiceService struct {
	overview     *services.MonthlyOverview
	overviewErr  error
	rendered     *services.RenderedInvoice
	renderErr    error
	lastOwnerID  int64
	lastMonth    string
	lastClientID int64
}

func (s *stubInvoiceService) MonthlyOverview(_ context.Context, ownerID int64, month string) (*services.MonthlyOverview, error) {
	s.lastOwnerID = ownerID
	s.lastMonth = month
	return s.overview, s.overviewErr
}

func (s *stubInvoiceService) RenderInvoice(_ context.Context, ownerID int64, month string, clientID int64, _ time.Time) (*services.RenderedInvoice, error) {
	s.lastOwnerID = ownerID
	s.lastMonth = month
	s.lastClientID = clientID
	return s.rendered, s.renderErr
}

func invoiceTestApp(service invoiceApplicationService) *fiber.App {
	handler := &InvoiceHandler{service: service}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", "42")
		c.Locals("role", "trainer")
		return c.Next()
	})
	app.Get("/api/v1/invoices/overview", handler.Overview)
	app.Get("/api/v1/invoices/render/:clientId", handler.Render)
	return app
}

func TestOverviewReturnsStatements(t *testing.T) {
	service := &stubInvoiceService{
		overview: &services.MonthlyOverview{
			MonthlyStatement: billing.MonthlyStatement{
				Month: "2026-03",
				Statements: []billing.ClientStatement{
					{ClientID: 7, ClientName: "Anna Becker", Totals: billing.Totals{Net: 60, VAT: 11.40, Gross: 71.40}},
				},
			},
			PaidClients: map[int64]bool{7: true},
		},
	}
	app := invoiceTestApp(service)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices/overview?month=2026-03", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastOwnerID != 42 || service.lastMonth != "2026-03" {
		t.Fatalf("unexpected call: owner=%d month=%q", service.lastOwnerID, service.lastMonth)
	}

	var body struct {
		Overview services.MonthlyOverview `json:"overview"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(body.Overview.Statements) != 1 || body.Overview.Statements[0].Totals.Gross != 71.40 {
		t.Fatalf("unexpected overview: %+v", body.Overview)
	}
	if !body.Overview.PaidClients[7] {
		t.Fatalf("expected client 7 marked paid")
	}
}

func TestOverviewRejectsBadMonth(t *testing.T) {
	app := invoiceTestApp(&stubInvoiceService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices/overview?month=March", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestRenderReturnsInvoiceHTML(t *testing.T) {
	service := &stubInvoiceService{
		rendered: &services.RenderedInvoice{
			Number: "RG-20260331-120000",
			HTML:   "<html><body>71,40 €</body></html>",
		},
	}
	app := invoiceTestApp(service)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices/render/7?month=2026-03", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastClientID != 7 {
		t.Fatalf("expected client id 7, got %d", service.lastClientID)
	}

	var body struct {
		Invoice services.RenderedInvoice `json:"invoice"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if body.Invoice.Number != "RG-20260331-120000" {
		t.Fatalf("unexpected invoice number %q", body.Invoice.Number)
	}
}

func TestRenderGroupStatement(t *testing.T) {
	service := &stubInvoiceService{
		rendered: &services.RenderedInvoice{
			Number: "RG-20260331-120000",
			HTML:   "<html><body>Group training</body></html>",
		},
	}
	app := invoiceTestApp(service)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices/render/0?month=2026-03", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for the group statement, got %d", resp.StatusCode)
	}
	if service.lastClientID != billing.GroupClientID {
		t.Fatalf("expected group client id, got %d", service.lastClientID)
	}
}

func TestRenderRejectsNegativeClientID(t *testing.T) {
	app := invoiceTestApp(&stubInvoiceService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices/render/-3?month=2026-03", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestRenderReturnsNotFoundForIdleClient(t *testing.T) {
	service := &stubInvoiceService{renderErr: services.ErrNothingToInvoice}
	app := invoiceTestApp(service)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices/render/7?month=2026-03", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
