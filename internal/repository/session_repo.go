package repository

import (
	"context"
	"time"

	"github.com/mhartig/TrainerDeskBack/internal/models"
)

type SessionInput struct {
	Date          time.Time
	StartTime     string
	EndTime       string
	ClientIDs     []int64
	RatePlanID    *int64
	Status        string
	CashPaid      bool
	SeriesID      *string
	PriceOverride *float64
	ModeOverride  *string
	Notes         *string
}

type SessionRepository struct {
	db DBTX
}

func NewSessionRepository(db DBTX) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionColumns = `
	id, owner_id, session_date, start_time, end_time, client_ids, rate_plan_id,
	status, cash_paid, series_id, price_override, mode_override, notes,
	created_at, updated_at
`

func scanSession(row interface{ Scan(...any) error }) (*models.TrainingSession, error) {
	var session models.TrainingSession
	err := row.Scan(
		&session.ID,
		&session.OwnerID,
		&session.Date,
		&session.StartTime,
		&session.EndTime,
		&session.ClientIDs,
		&session.RatePlanID,
		&session.Status,
		&session.CashPaid,
		&session.SeriesID,
		&session.PriceOverride,
		&session.ModeOverride,
		&session.Notes,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) Create(ctx context.Context, ownerID int64, input SessionInput) (*models.TrainingSession, error) {
	query := `
		INSERT INTO training_sessions
			(owner_id, session_date, start_time, end_time, client_ids, rate_plan_id,
			 status, cash_paid, series_id, price_override, mode_override, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + sessionColumns
	return scanSession(r.db.QueryRow(
		ctx,
		query,
		ownerID,
		input.Date,
		input.StartTime,
		input.EndTime,
		input.ClientIDs,
		input.RatePlanID,
		input.Status,
		input.CashPaid,
		input.SeriesID,
		input.PriceOverride,
		input.ModeOverride,
		input.Notes,
	))
}

func (r *SessionRepository) GetByID(ctx context.Context, ownerID, sessionID int64) (*models.TrainingSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM training_sessions
		WHERE owner_id = $1 AND id = $2
	`
	return scanSession(r.db.QueryRow(ctx, query, ownerID, sessionID))
}

func (r *SessionRepository) listQuery(ctx context.Context, query string, args ...any) ([]models.TrainingSession, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]models.TrainingSession, 0)
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// ListByMonth returns the owner's sessions whose date falls in the "YYYY-MM"
// month, oldest first.
func (r *SessionRepository) ListByMonth(ctx context.Context, ownerID int64, month string) ([]models.TrainingSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM training_sessions
		WHERE owner_id = $1 AND to_char(session_date, 'YYYY-MM') = $2
		ORDER BY session_date ASC, start_time ASC, id ASC
	`
	return r.listQuery(ctx, query, ownerID, month)
}

func (r *SessionRepository) ListByRange(ctx context.Context, ownerID int64, from, to time.Time) ([]models.TrainingSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM training_sessions
		WHERE owner_id = $1 AND session_date >= $2 AND session_date <= $3
		ORDER BY session_date ASC, start_time ASC, id ASC
	`
	return r.listQuery(ctx, query, ownerID, from, to)
}

func (r *SessionRepository) ListBySeries(ctx context.Context, ownerID int64, seriesID string) ([]models.TrainingSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM training_sessions
		WHERE owner_id = $1 AND series_id = $2
		ORDER BY session_date ASC, start_time ASC, id ASC
	`
	return r.listQuery(ctx, query, ownerID, seriesID)
}

func (r *SessionRepository) Update(ctx context.Context, ownerID, sessionID int64, input SessionInput) (*models.TrainingSession, error) {
	query := `
		UPDATE training_sessions
		SET session_date = $3,
			start_time = $4,
			end_time = $5,
			client_ids = $6,
			rate_plan_id = $7,
			status = $8,
			cash_paid = $9,
			series_id = $10,
			price_override = $11,
			mode_override = $12,
			notes = $13,
			updated_at = NOW()
		WHERE owner_id = $1 AND id = $2
		RETURNING ` + sessionColumns
	return scanSession(r.db.QueryRow(
		ctx,
		query,
		ownerID,
		sessionID,
		input.Date,
		input.StartTime,
		input.EndTime,
		input.ClientIDs,
		input.RatePlanID,
		input.Status,
		input.CashPaid,
		input.SeriesID,
		input.PriceOverride,
		input.ModeOverride,
		input.Notes,
	))
}

func (r *SessionRepository) UpdateStatus(ctx context.Context, ownerID, sessionID int64, status string) (*models.TrainingSession, error) {
	query := `
		UPDATE training_sessions
		SET status = $3, updated_at = NOW()
		WHERE owner_id = $1 AND id = $2
		RETURNING ` + sessionColumns
	return scanSession(r.db.QueryRow(ctx, query, ownerID, sessionID, status))
}

func (r *SessionRepository) SetCashPaid(ctx context.Context, ownerID, sessionID int64, cashPaid bool) (*models.TrainingSession, error) {
	query := `
		UPDATE training_sessions
		SET cash_paid = $3, updated_at = NOW()
		WHERE owner_id = $1 AND id = $2
		RETURNING ` + sessionColumns
	return scanSession(r.db.QueryRow(ctx, query, ownerID, sessionID, cashPaid))
}

func (r *SessionRepository) Delete(ctx context.Context, ownerID, sessionID int64) error {
	query := `DELETE FROM training_sessions WHERE owner_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, ownerID, sessionID)
	return err
}
