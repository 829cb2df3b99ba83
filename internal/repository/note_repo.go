package repository

import (
	"context"

	"github.com/mhartig/TrainerDeskBack/internal/models"
)

type NoteRepository struct {
	db DBTX
}

func NewNoteRepository(db DBTX) *NoteRepository {
	return &NoteRepository{db: db}
}

const noteColumns = `id, owner_id, title, body, created_at, updated_at`

func scanNote(row interface{ Scan(...any) error }) (*models.Note, error) {
	var note models.Note
	err := row.Scan(
		&note.ID,
		&note.OwnerID,
		&note.Title,
		&note.Body,
		&note.CreatedAt,
		&note.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *NoteRepository) Create(ctx context.Context, ownerID int64, title string, body *string) (*models.Note, error) {
	query := `
		INSERT INTO notes (owner_id, title, body)
		VALUES ($1, $2, $3)
		RETURNING ` + noteColumns
	return scanNote(r.db.QueryRow(ctx, query, ownerID, title, body))
}

func (r *NoteRepository) GetByID(ctx context.Context, ownerID, noteID int64) (*models.Note, error) {
	query := `
		SELECT ` + noteColumns + `
		FROM notes
		WHERE owner_id = $1 AND id = $2
	`
	return scanNote(r.db.QueryRow(ctx, query, ownerID, noteID))
}

func (r *NoteRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.Note, error) {
	query := `
		SELECT ` + noteColumns + `
		FROM notes
		WHERE owner_id = $1
		ORDER BY updated_at DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]models.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, *note)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *NoteRepository) Update(ctx context.Context, ownerID, noteID int64, title string, body *string) (*models.Note, error) {
	query := `
		UPDATE notes
		SET title = $3, body = $4, updated_at = NOW()
		WHERE owner_id = $1 AND id = $2
		RETURNING ` + noteColumns
	return scanNote(r.db.QueryRow(ctx, query, ownerID, noteID, title, body))
}

func (r *NoteRepository) Delete(ctx context.Context, ownerID, noteID int64) error {
	query := `DELETE FROM notes WHERE owner_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, ownerID, noteID)
	return err
}
