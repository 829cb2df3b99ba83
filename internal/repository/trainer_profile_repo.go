package repository

import (
	"context"

	"github.com/mhartig/TrainerDeskBack/internal/models"
)

type UpdateTrainerProfileInput struct {
	FullName      *string
	BusinessName  *string
	Address       *string
	Email         *string
	Phone         *string
	IBAN          *string
	TaxID         *string
	HourlyRate    *float64
	VATRate       float64
	SmallBusiness bool
}

type TrainerProfileRepository struct {
	db DBTX
}

func NewTrainerProfileRepository(db DBTX) *TrainerProfileRepository {
	return &TrainerProfileRepository{db: db}
}

const trainerProfileColumns = `
	id, owner_id, full_name, business_name, address, email, phone, iban, tax_id,
	hourly_rate, vat_rate, small_business, invoice_html, created_at, updated_at
`

func (r *TrainerProfileRepository) scanProfile(row interface{ Scan(...any) error }) (*models.TrainerProfile, error) {
	var profile models.TrainerProfile
	err := row.Scan(
		&profile.ID,
		&profile.OwnerID,
		&profile.FullName,
		&profile.BusinessName,
		&profile.Address,
		&profile.Email,
		&profile.Phone,
		&profile.IBAN,
		&profile.TaxID,
		&profile.HourlyRate,
		&profile.VATRate,
		&profile.SmallBusiness,
		&profile.InvoiceHTML,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *TrainerProfileRepository) CreateEmpty(ctx context.Context, ownerID int64, defaultVATRate float64) error {
	query := `
		INSERT INTO trainer_profiles (owner_id, vat_rate, small_business)
		VALUES ($1, $2, false)
	`
	_, err := r.db.Exec(ctx, query, ownerID, defaultVATRate)
	return err
}

func (r *TrainerProfileRepository) GetByOwnerID(ctx context.Context, ownerID int64) (*models.TrainerProfile, error) {
	query := `
		SELECT ` + trainerProfileColumns + `
		FROM trainer_profiles
		WHERE owner_id = $1
	`
	return r.scanProfile(r.db.QueryRow(ctx, query, ownerID))
}

func (r *TrainerProfileRepository) Update(ctx context.Context, ownerID int64, input UpdateTrainerProfileInput) (*models.TrainerProfile, error) {
	query := `
		UPDATE trainer_profiles
		SET full_name = $2,
			business_name = $3,
			address = $4,
			email = $5,
			phone = $6,
			iban = $7,
			tax_id = $8,
			hourly_rate = $9,
			vat_rate = $10,
			small_business = $11,
			updated_at = NOW()
		WHERE owner_id = $1
		RETURNING ` + trainerProfileColumns
	return r.scanProfile(r.db.QueryRow(
		ctx,
		query,
		ownerID,
		input.FullName,
		input.BusinessName,
		input.Address,
		input.Email,
		input.Phone,
		input.IBAN,
		input.TaxID,
		input.HourlyRate,
		input.VATRate,
		input.SmallBusiness,
	))
}

func (r *TrainerProfileRepository) UpdateInvoiceHTML(ctx context.Context, ownerID int64, html string) (*models.TrainerProfile, error) {
	query := `
		UPDATE trainer_profiles
		SET invoice_html = $2, updated_at = NOW()
		WHERE owner_id = $1
		RETURNING ` + trainerProfileColumns
	return r.scanProfile(r.db.QueryRow(ctx, query, ownerID, html))
}
