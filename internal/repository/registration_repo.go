package repository

import (
	"context"

	"github.com/mhartig/TrainerDeskBack/internal/models"
)

type RegistrationRepository struct {
	db DBTX
}

func NewRegistrationRepository(db DBTX) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

const registrationFormColumns = `id, owner_id, title, fields, active, created_at, updated_at`

func scanRegistrationForm(row interface{ Scan(...any) error }) (*models.RegistrationForm, error) {
	var form models.RegistrationForm
	err := row.Scan(
		&form.ID,
		&form.OwnerID,
		&form.Title,
		&form.Fields,
		&form.Active,
		&form.CreatedAt,
		&form.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &form, nil
}

func (r *RegistrationRepository) CreateForm(ctx context.Context, ownerID int64, title string, fields []byte) (*models.RegistrationForm, error) {
	query := `
		INSERT INTO registration_forms (owner_id, title, fields, active)
		VALUES ($1, $2, $3, true)
		RETURNING ` + registrationFormColumns
	return scanRegistrationForm(r.db.QueryRow(ctx, query, ownerID, title, fields))
}

// GetForm loads a form without owner scoping: the public submission endpoint
// only knows the form id.
func (r *RegistrationRepository) GetForm(ctx context.Context, formID int64) (*models.RegistrationForm, error) {
	query := `
		SELECT ` + registrationFormColumns + `
		FROM registration_forms
		WHERE id = $1
	`
	return scanRegistrationForm(r.db.QueryRow(ctx, query, formID))
}

func (r *RegistrationRepository) ListFormsByOwner(ctx context.Context, ownerID int64) ([]models.RegistrationForm, error) {
	query := `
		SELECT ` + registrationFormColumns + `
		FROM registration_forms
		WHERE owner_id = $1
		ORDER BY id ASC
	`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	forms := make([]models.RegistrationForm, 0)
	for rows.Next() {
		form, err := scanRegistrationForm(rows)
		if err != nil {
			return nil, err
		}
		forms = append(forms, *form)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return forms, nil
}

const registrationColumns = `id, form_id, answers, notified, created_at`

func scanRegistration(row interface{ Scan(...any) error }) (*models.Registration, error) {
	var reg models.Registration
	err := row.Scan(
		&reg.ID,
		&reg.FormID,
		&reg.Answers,
		&reg.Notified,
		&reg.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *RegistrationRepository) CreateRegistration(ctx context.Context, formID int64, answers []byte) (*models.Registration, error) {
	query := `
		INSERT INTO registrations (form_id, answers)
		VALUES ($1, $2)
		RETURNING ` + registrationColumns
	return scanRegistration(r.db.QueryRow(ctx, query, formID, answers))
}

func (r *RegistrationRepository) GetRegistration(ctx context.Context, registrationID int64) (*models.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM registrations
		WHERE id = $1
	`
	return scanRegistration(r.db.QueryRow(ctx, query, registrationID))
}

func (r *RegistrationRepository) ListByForm(ctx context.Context, ownerID, formID int64) ([]models.Registration, error) {
	query := `
		SELECT r.id, r.form_id, r.answers, r.notified, r.created_at
		FROM registrations r
		JOIN registration_forms f ON f.id = r.form_id
		WHERE f.owner_id = $1 AND r.form_id = $2
		ORDER BY r.id DESC
	`
	rows, err := r.db.Query(ctx, query, ownerID, formID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	registrations := make([]models.Registration, 0)
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		registrations = append(registrations, *reg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return registrations, nil
}

func (r *RegistrationRepository) MarkNotified(ctx context.Context, registrationID int64) error {
	query := `UPDATE registrations SET notified = true WHERE id = $1`
	_, err := r.db.Exec(ctx, query, registrationID)
	return err
}
