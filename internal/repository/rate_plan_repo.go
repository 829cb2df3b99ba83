package repository

import (
	"context"

	"github.com/mhartig/TrainerDeskBack/internal/models"
)

type RatePlanInput struct {
	Name         string
	PricePerHour float64
	BillingMode  string
}

type RatePlanRepository struct {
	db DBTX
}

func NewRatePlanRepository(db DBTX) *RatePlanRepository {
	return &RatePlanRepository{db: db}
}

const ratePlanColumns = `id, owner_id, name, price_per_hour, billing_mode, created_at, updated_at`

func scanRatePlan(row interface{ Scan(...any) error }) (*models.RatePlan, error) {
	var plan models.RatePlan
	err := row.Scan(
		&plan.ID,
		&plan.OwnerID,
		&plan.Name,
		&plan.PricePerHour,
		&plan.BillingMode,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *RatePlanRepository) Create(ctx context.Context, ownerID int64, input RatePlanInput) (*models.RatePlan, error) {
	query := `
		INSERT INTO rate_plans (owner_id, name, price_per_hour, billing_mode)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + ratePlanColumns
	return scanRatePlan(r.db.QueryRow(ctx, query, ownerID, input.Name, input.PricePerHour, input.BillingMode))
}

func (r *RatePlanRepository) GetByID(ctx context.Context, ownerID, planID int64) (*models.RatePlan, error) {
	query := `
		SELECT ` + ratePlanColumns + `
		FROM rate_plans
		WHERE owner_id = $1 AND id = $2
	`
	return scanRatePlan(r.db.QueryRow(ctx, query, ownerID, planID))
}

func (r *RatePlanRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.RatePlan, error) {
	query := `
		SELECT ` + ratePlanColumns + `
		FROM rate_plans
		WHERE owner_id = $1
		ORDER BY name ASC, id ASC
	`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := make([]models.RatePlan, 0)
	for rows.Next() {
		plan, err := scanRatePlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *plan)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return plans, nil
}

// MapByOwner returns the owner's plans keyed by id, the shape the billing
// aggregation consumes.
func (r *RatePlanRepository) MapByOwner(ctx context.Context, ownerID int64) (map[int64]models.RatePlan, error) {
	plans, err := r.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]models.RatePlan, len(plans))
	for _, plan := range plans {
		byID[plan.ID] = plan
	}
	return byID, nil
}

func (r *RatePlanRepository) Update(ctx context.Context, ownerID, planID int64, input RatePlanInput) (*models.RatePlan, error) {
	query := `
		UPDATE rate_plans
		SET name = $3, price_per_hour = $4, billing_mode = $5, updated_at = NOW()
		WHERE owner_id = $1 AND id = $2
		RETURNING ` + ratePlanColumns
	return scanRatePlan(r.db.QueryRow(ctx, query, ownerID, planID, input.Name, input.PricePerHour, input.BillingMode))
}

func (r *RatePlanRepository) Delete(ctx context.Context, ownerID, planID int64) error {
	query := `DELETE FROM rate_plans WHERE owner_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, ownerID, planID)
	return err
}
