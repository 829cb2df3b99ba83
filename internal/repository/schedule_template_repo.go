package repository

import (
	"context"

	"github.com/mhartig/TrainerDeskBack/internal/models"
)

type ScheduleTemplateInput struct {
	Name   string
	Active bool
	Data   models.ScheduleTemplateData
}

type ScheduleTemplateRepository struct {
	db DBTX
}

func NewScheduleTemplateRepository(db DBTX) *ScheduleTemplateRepository {
	return &ScheduleTemplateRepository{db: db}
}

const scheduleTemplateColumns = `id, owner_id, name, active, data, created_at, updated_at`

func scanScheduleTemplate(row interface{ Scan(...any) error }) (*models.ScheduleTemplate, error) {
	var tpl models.ScheduleTemplate
	err := row.Scan(
		&tpl.ID,
		&tpl.OwnerID,
		&tpl.Name,
		&tpl.Active,
		&tpl.Data,
		&tpl.CreatedAt,
		&tpl.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (r *ScheduleTemplateRepository) Create(ctx context.Context, ownerID int64, input ScheduleTemplateInput) (*models.ScheduleTemplate, error) {
	query := `
		INSERT INTO schedule_templates (owner_id, name, active, data)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + scheduleTemplateColumns
	return scanScheduleTemplate(r.db.QueryRow(ctx, query, ownerID, input.Name, input.Active, input.Data))
}

func (r *ScheduleTemplateRepository) GetByID(ctx context.Context, ownerID, templateID int64) (*models.ScheduleTemplate, error) {
	query := `
		SELECT ` + scheduleTemplateColumns + `
		FROM schedule_templates
		WHERE owner_id = $1 AND id = $2
	`
	return scanScheduleTemplate(r.db.QueryRow(ctx, query, ownerID, templateID))
}

func (r *ScheduleTemplateRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.ScheduleTemplate, error) {
	query := `
		SELECT ` + scheduleTemplateColumns + `
		FROM schedule_templates
		WHERE owner_id = $1
		ORDER BY name ASC, id ASC
	`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := make([]models.ScheduleTemplate, 0)
	for rows.Next() {
		tpl, err := scanScheduleTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, *tpl)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *ScheduleTemplateRepository) Update(ctx context.Context, ownerID, templateID int64, input ScheduleTemplateInput) (*models.ScheduleTemplate, error) {
	query := `
		UPDATE schedule_templates
		SET name = $3, active = $4, data = $5, updated_at = NOW()
		WHERE owner_id = $1 AND id = $2
		RETURNING ` + scheduleTemplateColumns
	return scanScheduleTemplate(r.db.QueryRow(ctx, query, ownerID, templateID, input.Name, input.Active, input.Data))
}

func (r *ScheduleTemplateRepository) Delete(ctx context.Context, ownerID, templateID int64) error {
	query := `DELETE FROM schedule_templates WHERE owner_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, ownerID, templateID)
	return err
}
