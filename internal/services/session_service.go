package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mhartig/TrainerDeskBack/internal/models"
	"github.com/mhartig/TrainerDeskBack/internal/repository"
	"github.com/mhartig/TrainerDeskBack/pkg/utils"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidStatus    = errors.New("invalid status")
	ErrPlanNotFound     = errors.New("rate plan not found")
	ErrTemplateInactive = errors.New("schedule template is not active")
)

// templateSlotMinutes is the duration of a session created from a schedule
// template slot; templates carry start times only.
const templateSlotMinutes = 60

type planReader interface {
	GetByID(ctx context.Context, ownerID, planID int64) (*models.RatePlan, error)
}

type scheduleTemplateReader interface {
	GetByID(ctx context.Context, ownerID, templateID int64) (*models.ScheduleTemplate, error)
}

type SessionService struct {
	db           *pgxpool.Pool
	sessionRepo  *repository.SessionRepository
	ratePlanRepo planReader
	templateRepo scheduleTemplateReader
}

func NewSessionService(
	db *pgxpool.Pool,
	sessionRepo *repository.SessionRepository,
	ratePlanRepo planReader,
	templateRepo scheduleTemplateReader,
) *SessionService {
	return &SessionService{
		db:           db,
		sessionRepo:  sessionRepo,
		ratePlanRepo: ratePlanRepo,
		templateRepo: templateRepo,
	}
}

func (s *SessionService) CreateSession(ctx context.Context, ownerID int64, input repository.SessionInput) (*models.TrainingSession, error) {
	if err := s.validateSessionInput(ctx, ownerID, &input); err != nil {
		return nil, err
	}
	return s.sessionRepo.Create(ctx, ownerID, input)
}

func (s *SessionService) UpdateSession(ctx context.Context, ownerID, sessionID int64, input repository.SessionInput) (*models.TrainingSession, error) {
	if err := s.validateSessionInput(ctx, ownerID, &input); err != nil {
		return nil, err
	}
	return s.sessionRepo.Update(ctx, ownerID, sessionID, input)
}

func (s *SessionService) UpdateStatus(ctx context.Context, ownerID, sessionID int64, requestedStatus string) (*models.TrainingSession, error) {
	status, err := normalizeSessionStatus(requestedStatus)
	if err != nil {
		return nil, err
	}
	return s.sessionRepo.UpdateStatus(ctx, ownerID, sessionID, status)
}

func (s *SessionService) SetCashPaid(ctx context.Context, ownerID, sessionID int64, cashPaid bool) (*models.TrainingSession, error) {
	return s.sessionRepo.SetCashPaid(ctx, ownerID, sessionID, cashPaid)
}

func (s *SessionService) ListByMonth(ctx context.Context, ownerID int64, month string) ([]models.TrainingSession, error) {
	return s.sessionRepo.ListByMonth(ctx, ownerID, month)
}

// ListWeek returns the sessions of the Monday-started calendar week the
// anchor date falls in.
func (s *SessionService) ListWeek(ctx context.Context, ownerID int64, anchor time.Time) ([]models.TrainingSession, error) {
	week := utils.WeekDates(anchor)
	return s.sessionRepo.ListByRange(ctx, ownerID, week[0], week[6])
}

// ListSeries returns every session created with the given series id, for
// example a whole week generated from a schedule template.
func (s *SessionService) ListSeries(ctx context.Context, ownerID int64, seriesID string) ([]models.TrainingSession, error) {
	return s.sessionRepo.ListBySeries(ctx, ownerID, seriesID)
}

func (s *SessionService) GetSession(ctx context.Context, ownerID, sessionID int64) (*models.TrainingSession, error) {
	return s.sessionRepo.GetByID(ctx, ownerID, sessionID)
}

func (s *SessionService) DeleteSession(ctx context.Context, ownerID, sessionID int64) error {
	return s.sessionRepo.Delete(ctx, ownerID, sessionID)
}

// ApplyTemplate bulk-creates planned sessions for the week of the anchor date
// from an active schedule template, all inside one transaction and tagged
// with a shared series id.
func (s *SessionService) ApplyTemplate(ctx context.Context, ownerID, templateID int64, anchor time.Time) ([]models.TrainingSession, error) {
	tpl, err := s.templateRepo.GetByID(ctx, ownerID, templateID)
	if err != nil {
		return nil, err
	}
	if !tpl.Active {
		return nil, ErrTemplateInactive
	}

	week := utils.WeekDates(anchor)
	seriesID := fmt.Sprintf("tpl-%d-%s", tpl.ID, week[0].Format("20060102"))

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txSessionRepo := repository.NewSessionRepository(tx)

	created := make([]models.TrainingSession, 0)
	for dayIndex, day := range week {
		placements, ok := tpl.Data.Placement[weekdayKey(dayIndex)]
		if !ok {
			continue
		}
		for _, slot := range tpl.Data.Slots {
			clientIDs := placements[slot]
			if len(clientIDs) == 0 {
				continue
			}
			endTime, err := slotEndTime(slot)
			if err != nil {
				return nil, fmt.Errorf("%w: template slot %q", ErrInvalidInput, slot)
			}
			session, err := txSessionRepo.Create(ctx, ownerID, repository.SessionInput{
				Date:      day,
				StartTime: slot,
				EndTime:   endTime,
				ClientIDs: clientIDs,
				Status:    models.SessionPlanned,
				SeriesID:  &seriesID,
			})
			if err != nil {
				return nil, err
			}
			created = append(created, *session)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

func (s *SessionService) validateSessionInput(ctx context.Context, ownerID int64, input *repository.SessionInput) error {
	if len(input.ClientIDs) == 0 {
		return fmt.Errorf("%w: at least one participant is required", ErrInvalidInput)
	}
	if _, err := utils.DurationHours(input.StartTime, input.EndTime); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if input.Status == "" {
		input.Status = models.SessionPlanned
	}
	status, err := normalizeSessionStatus(input.Status)
	if err != nil {
		return err
	}
	input.Status = status

	if input.ModeOverride != nil && !validBillingMode(*input.ModeOverride) {
		return fmt.Errorf("%w: unknown billing mode %q", ErrInvalidInput, *input.ModeOverride)
	}
	if input.PriceOverride != nil && *input.PriceOverride < 0 {
		return fmt.Errorf("%w: price override must not be negative", ErrInvalidInput)
	}

	if input.RatePlanID != nil {
		if _, err := s.ratePlanRepo.GetByID(ctx, ownerID, *input.RatePlanID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrPlanNotFound
			}
			return err
		}
	}
	return nil
}

func normalizeSessionStatus(status string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "planned", "plan":
		return models.SessionPlanned, nil
	case "completed", "complete", "done":
		return models.SessionCompleted, nil
	case "cancelled", "canceled", "cancel":
		return models.SessionCancelled, nil
	default:
		return "", ErrInvalidStatus
	}
}

func validBillingMode(mode string) bool {
	switch mode {
	case models.BillingPerSession, models.BillingPerClient, models.BillingMonthlyFlat:
		return true
	}
	return false
}

func weekdayKey(dayIndex int) string {
	return [7]string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}[dayIndex]
}

func slotEndTime(start string) (string, error) {
	parsed, err := time.Parse("15:04", strings.TrimSpace(start))
	if err != nil {
		return "", err
	}
	return parsed.Add(templateSlotMinutes * time.Minute).Format("15:04"), nil
}
