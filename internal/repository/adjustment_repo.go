package repository

import (
	"context"

	"github.com/mhartig/TrainerDeskBack/internal/models"
)

type AdjustmentRepository struct {
	db DBTX
}

func NewAdjustmentRepository(db DBTX) *AdjustmentRepository {
	return &AdjustmentRepository{db: db}
}

const adjustmentColumns = `id, owner_id, month, client_id, amount, reason, created_at`

func scanAdjustment(row interface{ Scan(...any) error }) (*models.MonthlyAdjustment, error) {
	var adj models.MonthlyAdjustment
	err := row.Scan(
		&adj.ID,
		&adj.OwnerID,
		&adj.Month,
		&adj.ClientID,
		&adj.Amount,
		&adj.Reason,
		&adj.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &adj, nil
}

func (r *AdjustmentRepository) Create(ctx context.Context, ownerID int64, month string, clientID int64, amount float64, reason *string) (*models.MonthlyAdjustment, error) {
	query := `
		INSERT INTO monthly_adjustments (owner_id, month, client_id, amount, reason)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + adjustmentColumns
	return scanAdjustment(r.db.QueryRow(ctx, query, ownerID, month, clientID, amount, reason))
}

func (r *AdjustmentRepository) ListByMonth(ctx context.Context, ownerID int64, month string) ([]models.MonthlyAdjustment, error) {
	query := `
		SELECT ` + adjustmentColumns + `
		FROM monthly_adjustments
		WHERE owner_id = $1 AND month = $2
		ORDER BY id ASC
	`
	rows, err := r.db.Query(ctx, query, ownerID, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	adjustments := make([]models.MonthlyAdjustment, 0)
	for rows.Next() {
		adj, err := scanAdjustment(rows)
		if err != nil {
			return nil, err
		}
		adjustments = append(adjustments, *adj)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return adjustments, nil
}

func (r *AdjustmentRepository) Delete(ctx context.Context, ownerID, adjustmentID int64) error {
	query := `DELETE FROM monthly_adjustments WHERE owner_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, ownerID, adjustmentID)
	return err
}
