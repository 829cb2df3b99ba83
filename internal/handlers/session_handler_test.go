package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/mhartig/TrainerDeskBack/internal/models"
	"github.com/mhartig/TrainerDeskBack/internal/repository"
	"github.com/mhartig/TrainerDeskBack/internal/services"
)

type stubSessionService struct {
	createResult  *models.TrainingSession
	createErr     error
	updateResult  *models.TrainingSession
	updateErr     error
	statusResult  *models.TrainingSession
	statusErr     error
	cashResult    *models.TrainingSession
	cashErr       error
	monthResult   []models.TrainingSession
	monthErr      error
	weekResult    []models.TrainingSession
	weekErr       error
	seriesResult  []models.TrainingSession
	seriesErr     error
	getResult     *models.TrainingSession
	getErr        error
	deleteErr     error
	lastOwnerID   int64
	lastSessionID int64
	lastInput     repository.SessionInput
	lastStatus    string
	lastCashPaid  bool
	lastMonth     string
	lastAnchor    time.Time
	lastSeriesID  string
}

func (s *stubSessionService) CreateSession(_ context.Context, ownerID int64, input repository.SessionInput) (*models.TrainingSession, error) {
	s.lastOwnerID = ownerID
	s.lastInput = input
	return s.createResult, s.createErr
}

func (s *stubSessionService) UpdateSession(_ context.Context, ownerID, sessionID int64, input repository.SessionInput) (*models.TrainingSession, error) {
	s.lastOwnerID = ownerID
	s.lastSessionID = sessionID
	s.lastInput = input
	return s.updateResult, s.updateErr
}

func (s *stubSessionService) UpdateStatus(_ context.Context, ownerID, sessionID int64, requestedStatus string) (*models.TrainingSession, error) {
	s.lastOwnerID = ownerID
	s.lastSessionID = sessionID
	s.lastStatus = requestedStatus
	return s.statusResult, s.statusErr
}

func (s *stubSessionService) SetCashPaid(_ context.Context, ownerID, sessionID int64, cashPaid bool) (*models.TrainingSession, error) {
	s.lastOwnerID = ownerID
	s.lastSessionID = sessionID
	s.lastCashPaid = cashPaid
	return s.cashResult, s.cashErr
}

func (s *stubSessionService) ListByMonth(_ context.Context, ownerID int64, month string) ([]models.TrainingSession, error) {
	s.lastOwnerID = ownerID
	s.lastMonth = month
	return s.monthResult, s.monthErr
}

func (s *stubSessionService) ListWeek(_ context.Context, ownerID int64, anchor time.Time) ([]models.TrainingSession, error) {
	s.lastOwnerID = ownerID
	s.lastAnchor = anchor
	return s.weekResult, s.weekErr
}

func (s *stubSessionService) ListSeries(_ context.Context, ownerID int64, seriesID string) ([]models.TrainingSession, error) {
	s.lastOwnerID = ownerID
	s.lastSeriesID = seriesID
	return s.seriesResult, s.seriesErr
}

func (s *stubSessionService) GetSession(_ context.Context, ownerID, sessionID int64) (*models.TrainingSession, error) {
	s.lastOwnerID = ownerID
	s.lastSessionID = sessionID
	return s.getResult, s.getErr
}

func (s *stubSessionService) DeleteSession(_ context.Context, ownerID, sessionID int64) error {
	s.lastOwnerID = ownerID
	s.lastSessionID = sessionID
	return s.deleteErr
}

func sessionTestApp(service sessionApplicationService) *fiber.App {
	handler := &SessionHandler{service: service}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", "42")
		c.Locals("role", "trainer")
		return c.Next()
	})
	app.Post("/api/v1/sessions", handler.Create)
	app.Get("/api/v1/sessions", handler.List)
	app.Get("/api/v1/sessions/:id", handler.Get)
	app.Put("/api/v1/sessions/:id", handler.Update)
	app.Put("/api/v1/sessions/:id/status", handler.UpdateStatus)
	app.Put("/api/v1/sessions/:id/cash", handler.SetCashPaid)
	app.Delete("/api/v1/sessions/:id", handler.Delete)
	return app
}

func TestCreateSessionReturnsCreated(t *testing.T) {
	service := &stubSessionService{
		createResult: &models.TrainingSession{
			ID:        91,
			OwnerID:   42,
			StartTime: "10:00",
			EndTime:   "11:00",
			ClientIDs: []int64{7},
			Status:    models.SessionPlanned,
		},
	}
	app := sessionTestApp(service)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", strings.NewReader(`{
		"date": "2026-03-16",
		"start_time": "10:00",
		"end_time": "11:00",
		"client_ids": [7],
		"rate_plan_id": 3
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if service.lastOwnerID != 42 {
		t.Fatalf("expected owner id 42, got %d", service.lastOwnerID)
	}
	if service.lastInput.StartTime != "10:00" || service.lastInput.EndTime != "11:00" {
		t.Fatalf("unexpected times: %+v", service.lastInput)
	}
	if service.lastInput.RatePlanID == nil || *service.lastInput.RatePlanID != 3 {
		t.Fatalf("expected rate plan 3, got %+v", service.lastInput.RatePlanID)
	}
}

func TestCreateSessionRejectsBadDate(t *testing.T) {
	app := sessionTestApp(&stubSessionService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", strings.NewReader(`{
		"date": "16.03.2026",
		"start_time": "10:00",
		"end_time": "11:00",
		"client_ids": [7]
	}`))
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

func TestCreateSessionMapsValidationError(t *testing.T) {
	service := &stubSessionService{createErr: services.ErrInvalidInput}
	app := sessionTestApp(service)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", strings.NewReader(`{
		"date": "2026-03-16",
		"start_time": "11:00",
		"end_time": "10:00",
		"client_ids": [7]
	}`))
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

func TestListSessionsByMonth(t *testing.T) {
	service := &stubSessionService{
		monthResult: []models.TrainingSession{{ID: 5, OwnerID: 42, StartTime: "09:00", EndTime: "10:00"}},
	}
	app := sessionTestApp(service)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions?month=2026-03", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastMonth != "2026-03" {
		t.Fatalf("expected month 2026-03, got %q", service.lastMonth)
	}

	var body struct {
		Sessions []models.TrainingSession `json:"sessions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(body.Sessions) != 1 || body.Sessions[0].ID != 5 {
		t.Fatalf("unexpected sessions: %+v", body.Sessions)
	}
}

func TestListSessionsByWeekAnchor(t *testing.T) {
	service := &stubSessionService{}
	app := sessionTestApp(service)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions?week=2026-03-18", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	want := time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC)
	if !service.lastAnchor.Equal(want) {
		t.Fatalf("expected anchor %v, got %v", want, service.lastAnchor)
	}
}

func TestListSessionsBySeries(t *testing.T) {
	service := &stubSessionService{}
	app := sessionTestApp(service)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions?series=tpl-3-20260316", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastSeriesID != "tpl-3-20260316" {
		t.Fatalf("expected series id forwarded, got %q", service.lastSeriesID)
	}
	if service.lastOwnerID != 42 {
		t.Fatalf("expected owner 42, got %d", service.lastOwnerID)
	}
}

func TestListSessionsRejectsMissingMonth(t *testing.T) {
	app := sessionTestApp(&stubSessionService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestGetSessionReturnsNotFound(t *testing.T) {
	service := &stubSessionService{getErr: pgx.ErrNoRows}
	app := sessionTestApp(service)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/999", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestUpdateStatusForwardsRequestedStatus(t *testing.T) {
	service := &stubSessionService{
		statusResult: &models.TrainingSession{ID: 55, OwnerID: 42, Status: models.SessionCompleted},
	}
	app := sessionTestApp(service)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/sessions/55/status", strings.NewReader(`{"status":"completed"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastSessionID != 55 {
		t.Fatalf("expected session id 55, got %d", service.lastSessionID)
	}
	if service.lastStatus != "completed" {
		t.Fatalf("expected forwarded status, got %q", service.lastStatus)
	}
}

func TestUpdateStatusMapsInvalidStatus(t *testing.T) {
	service := &stubSessionService{statusErr: services.ErrInvalidStatus}
	app := sessionTestApp(service)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/sessions/55/status", strings.NewReader(`{"status":"done"}`))
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

func TestSetCashPaidForwardsFlag(t *testing.T) {
	service := &stubSessionService{
		cashResult: &models.TrainingSession{ID: 12, OwnerID: 42, CashPaid: true},
	}
	app := sessionTestApp(service)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/sessions/12/cash", strings.NewReader(`{"cash_paid":true}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !service.lastCashPaid {
		t.Fatalf("expected cash_paid true forwarded")
	}
}

func TestDeleteSessionReturnsNoContent(t *testing.T) {
	service := &stubSessionService{}
	app := sessionTestApp(service)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/sessions/12", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
}

func TestMapSessionErrorDefaultsToInternalServerError(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return mapSessionError(c, errors.New("boom"), "Failed")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
}
