package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/mhartig/TrainerDeskBack/internal/models"
	"github.com/mhartig/TrainerDeskBack/internal/repository"
	"github.com/mhartig/TrainerDeskBack/internal/services"
)

type SessionHandler struct {
	service sessionApplicationService
}

type sessionApplicationService interface {
	CreateSession(ctx context.Context, ownerID int64, input repository.SessionInput) (*models.TrainingSession, error)
	UpdateSession(ctx context.Context, ownerID, sessionID int64, input repository.SessionInput) (*models.TrainingSession, error)
	UpdateStatus(ctx context.Context, ownerID, sessionID int64, requestedStatus string) (*models.TrainingSession, error)
	SetCashPaid(ctx context.Context, ownerID, sessionID int64, cashPaid bool) (*models.TrainingSession, error)
	ListByMonth(ctx context.Context, ownerID int64, month string) ([]models.TrainingSession, error)
	ListWeek(ctx context.Context, ownerID int64, anchor time.Time) ([]models.TrainingSession, error)
	ListSeries(ctx context.Context, ownerID int64, seriesID string) ([]models.TrainingSession, error)
	GetSession(ctx context.Context, ownerID, sessionID int64) (*models.TrainingSession, error)
	DeleteSession(ctx context.Context, ownerID, sessionID int64) error
}

func NewSessionHandler(service *services.SessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

type sessionRequest struct {
	Date          string   `json:"date"`
	StartTime     string   `json:"start_time"`
	EndTime       string   `json:"end_time"`
	ClientIDs     []int64  `json:"client_ids"`
	RatePlanID    *int64   `json:"rate_plan_id"`
	Status        string   `json:"status"`
	CashPaid      bool     `json:"cash_paid"`
	PriceOverride *float64 `json:"price_override"`
	ModeOverride  *string  `json:"mode_override"`
	Notes         *string  `json:"notes"`
}

func (r *sessionRequest) toInput() (repository.SessionInput, error) {
	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return repository.SessionInput{}, errors.New("date must use YYYY-MM-DD format")
	}
	return repository.SessionInput{
		Date:          date,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		ClientIDs:     r.ClientIDs,
		RatePlanID:    r.RatePlanID,
		Status:        r.Status,
		CashPaid:      r.CashPaid,
		PriceOverride: r.PriceOverride,
		ModeOverride:  r.ModeOverride,
		Notes:         r.Notes,
	}, nil
}

func mapSessionError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	case errors.Is(err, services.ErrInvalidInput), errors.Is(err, services.ErrInvalidStatus):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrPlanNotFound):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Rate plan not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fallback})
	}
}

func (h *SessionHandler) Create(c *fiber.Ctx) error {
	ownerID, err := parseOwnerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req sessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	input, err := req.toInput()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	session, err := h.service.CreateSession(c.Context(), ownerID, input)
	if err != nil {
		return mapSessionError(c, err, "Failed to create session")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"session": session})
}

// List returns sessions for a month (?month=YYYY-MM), for the calendar week
// containing ?week=YYYY-MM-DD, or for a recurring series (?series=<id>).
func (h *SessionHandler) List(c *fiber.Ctx) error {
	ownerID, err := parseOwnerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	if seriesID := c.Query("series"); seriesID != "" {
		sessions, err := h.service.ListSeries(c.Context(), ownerID, seriesID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list sessions"})
		}
		return c.JSON(fiber.Map{"sessions": sessions})
	}

	if week := c.Query("week"); week != "" {
		anchor, err := time.Parse("2006-01-02", week)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "week must use YYYY-MM-DD format"})
		}
		sessions, err := h.service.ListWeek(c.Context(), ownerID, anchor)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list sessions"})
		}
		return c.JSON(fiber.Map{"sessions": sessions})
	}

	month := c.Query("month")
	if _, err := time.Parse("2006-01", month); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "month must use YYYY-MM format"})
	}
	sessions, err := h.service.ListByMonth(c.Context(), ownerID, month)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list sessions"})
	}
	return c.JSON(fiber.Map{"sessions": sessions})
}

func (h *SessionHandler) Get(c *fiber.Ctx) error {
	ownerID, err := parseOwnerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	sessionID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session id"})
	}

	session, err := h.service.GetSession(c.Context(), ownerID, sessionID)
	if err != nil {
		return mapSessionError(c, err, "Failed to fetch session")
	}
	return c.JSON(fiber.Map{"session": session})
}

func (h *SessionHandler) Update(c *fiber.Ctx) error {
	ownerID, err := parseOwnerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	sessionID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session id"})
	}

	var req sessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	input, err := req.toInput()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	session, err := h.service.UpdateSession(c.Context(), ownerID, sessionID, input)
	if err != nil {
		return mapSessionError(c, err, "Failed to update session")
	}
	return c.JSON(fiber.Map{"session": session})
}

func (h *SessionHandler) UpdateStatus(c *fiber.Ctx) error {
	ownerID, err := parseOwnerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	sessionID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session id"})
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	session, err := h.service.UpdateStatus(c.Context(), ownerID, sessionID, req.Status)
	if err != nil {
		return mapSessionError(c, err, "Failed to update session status")
	}
	return c.JSON(fiber.Map{"session": session})
}

func (h *SessionHandler) SetCashPaid(c *fiber.Ctx) error {
	ownerID, err := parseOwnerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	sessionID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session id"})
	}

	var req struct {
		CashPaid bool `json:"cash_paid"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	session, err := h.service.SetCashPaid(c.Context(), ownerID, sessionID, req.CashPaid)
	if err != nil {
		return mapSessionError(c, err, "Failed to update session")
	}
	return c.JSON(fiber.Map{"session": session})
}

func (h *SessionHandler) Delete(c *fiber.Ctx) error {
	ownerID, err := parseOwnerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	sessionID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session id"})
	}

	if err := h.service.DeleteSession(c.Context(), ownerID, sessionID); err != nil {
		return mapSessionError(c, err, "Failed to delete session")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
