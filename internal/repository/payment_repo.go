package repository

import (
	"context"

	"github.com/mhartig/TrainerDeskBack/internal/models"
)

type PaymentRepository struct {
	db DBTX
}

func NewPaymentRepository(db DBTX) *PaymentRepository {
	return &PaymentRepository{db: db}
}

const paymentColumns = `id, owner_id, month, client_id, paid, created_at, updated_at`

func scanPayment(row interface{ Scan(...any) error }) (*models.Payment, error) {
	var payment models.Payment
	err := row.Scan(
		&payment.ID,
		&payment.OwnerID,
		&payment.Month,
		&payment.ClientID,
		&payment.Paid,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// Upsert records settlement for one (month, client). Calling it again with
// the same key just updates the flag: one row per month and client.
func (r *PaymentRepository) Upsert(ctx context.Context, ownerID int64, month string, clientID int64, paid bool) (*models.Payment, error) {
	query := `
		INSERT INTO payments (owner_id, month, client_id, paid)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (owner_id, month, client_id)
		DO UPDATE SET paid = EXCLUDED.paid, updated_at = NOW()
		RETURNING ` + paymentColumns
	return scanPayment(r.db.QueryRow(ctx, query, ownerID, month, clientID, paid))
}

func (r *PaymentRepository) ListByMonth(ctx context.Context, ownerID int64, month string) ([]models.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE owner_id = $1 AND month = $2
		ORDER BY client_id ASC
	`
	rows, err := r.db.Query(ctx, query, ownerID, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]models.Payment, 0)
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *payment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return payments, nil
}
