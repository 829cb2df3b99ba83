package repository

import (
	"context"

	"github.com/mhartig/TrainerDeskBack/internal/models"
)

type ClientInput struct {
	Name           string
	Email          *string
	Phone          *string
	BillingAddress *string
	Notes          *string
}

type ClientRepository struct {
	db DBTX
}

func NewClientRepository(db DBTX) *ClientRepository {
	return &ClientRepository{db: db}
}

const clientColumns = `
	id, owner_id, name, email, phone, billing_address, notes, archived, created_at, updated_at
`

func scanClient(row interface{ Scan(...any) error }) (*models.Client, error) {
	var client models.Client
	err := row.Scan(
		&client.ID,
		&client.OwnerID,
		&client.Name,
		&client.Email,
		&client.Phone,
		&client.BillingAddress,
		&client.Notes,
		&client.Archived,
		&client.CreatedAt,
		&client.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *ClientRepository) Create(ctx context.Context, ownerID int64, input ClientInput) (*models.Client, error) {
	query := `
		INSERT INTO clients (owner_id, name, email, phone, billing_address, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + clientColumns
	return scanClient(r.db.QueryRow(ctx, query, ownerID, input.Name, input.Email, input.Phone, input.BillingAddress, input.Notes))
}

func (r *ClientRepository) GetByID(ctx context.Context, ownerID, clientID int64) (*models.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE owner_id = $1 AND id = $2
	`
	return scanClient(r.db.QueryRow(ctx, query, ownerID, clientID))
}

func (r *ClientRepository) ListByOwner(ctx context.Context, ownerID int64, includeArchived bool) ([]models.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE owner_id = $1 AND (archived = false OR $2)
		ORDER BY name ASC, id ASC
	`
	rows, err := r.db.Query(ctx, query, ownerID, includeArchived)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := make([]models.Client, 0)
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, *client)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *ClientRepository) Update(ctx context.Context, ownerID, clientID int64, input ClientInput) (*models.Client, error) {
	query := `
		UPDATE clients
		SET name = $3, email = $4, phone = $5, billing_address = $6, notes = $7, updated_at = NOW()
		WHERE owner_id = $1 AND id = $2
		RETURNING ` + clientColumns
	return scanClient(r.db.QueryRow(ctx, query, ownerID, clientID, input.Name, input.Email, input.Phone, input.BillingAddress, input.Notes))
}

func (r *ClientRepository) SetArchived(ctx context.Context, ownerID, clientID int64, archived bool) (*models.Client, error) {
	query := `
		UPDATE clients
		SET archived = $3, updated_at = NOW()
		WHERE owner_id = $1 AND id = $2
		RETURNING ` + clientColumns
	return scanClient(r.db.QueryRow(ctx, query, ownerID, clientID, archived))
}
