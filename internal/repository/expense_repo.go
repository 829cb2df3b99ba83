package repository

import (
	"context"
	"time"

	"github.com/mhartig/TrainerDeskBack/internal/models"
)

type ExpenseInput struct {
	Date          time.Time
	Amount        float64
	Description   string
	Category      string
	HasVAT        bool
	VATRate       *float64
	Vendor        *string
	InvoiceNumber *string
	InvoiceDate   *time.Time
}

type ExpenseRepository struct {
	db DBTX
}

func NewExpenseRepository(db DBTX) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

const expenseColumns = `
	id, owner_id, expense_date, amount, description, category, has_vat, vat_rate,
	vendor, invoice_number, invoice_date, created_at
`

func scanExpense(row interface{ Scan(...any) error }) (*models.Expense, error) {
	var expense models.Expense
	err := row.Scan(
		&expense.ID,
		&expense.OwnerID,
		&expense.Date,
		&expense.Amount,
		&expense.Description,
		&expense.Category,
		&expense.HasVAT,
		&expense.VATRate,
		&expense.Vendor,
		&expense.InvoiceNumber,
		&expense.InvoiceDate,
		&expense.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *ExpenseRepository) Create(ctx context.Context, ownerID int64, input ExpenseInput) (*models.Expense, error) {
	query := `
		INSERT INTO expenses
			(owner_id, expense_date, amount, description, category, has_vat, vat_rate,
			 vendor, invoice_number, invoice_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + expenseColumns
	return scanExpense(r.db.QueryRow(
		ctx,
		query,
		ownerID,
		input.Date,
		input.Amount,
		input.Description,
		input.Category,
		input.HasVAT,
		input.VATRate,
		input.Vendor,
		input.InvoiceNumber,
		input.InvoiceDate,
	))
}

func (r *ExpenseRepository) ListByMonth(ctx context.Context, ownerID int64, month string) ([]models.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE owner_id = $1 AND to_char(expense_date, 'YYYY-MM') = $2
		ORDER BY expense_date ASC, id ASC
	`
	rows, err := r.db.Query(ctx, query, ownerID, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := make([]models.Expense, 0)
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, *expense)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return expenses, nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, ownerID, expenseID int64) error {
	query := `DELETE FROM expenses WHERE owner_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, ownerID, expenseID)
	return err
}
