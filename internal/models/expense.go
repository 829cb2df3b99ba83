package models

import "time"

// Expense categories match what the receipt parser is allowed to emit.
const (
	ExpenseVenueRental         = "venue-rental"
	ExpenseEquipment           = "equipment"
	ExpenseTravel              = "travel"
	ExpenseContinuingEducation = "continuing-education"
	ExpenseCoachingFee         = "coaching-fee"
	ExpenseOther               = "other"
)

// Expense is a business expense, usually created from a parsed receipt.
// VATRate is 7 or 19 when HasVAT is true, nil otherwise.
type Expense struct {
	ID            int64      `json:"id"`
	OwnerID       int64      `json:"owner_id"`
	Date          time.Time  `json:"date"`
	Amount        float64    `json:"amount"`
	Description   string     `json:"description"`
	Category      string     `json:"category"`
	HasVAT        bool       `json:"has_vat"`
	VATRate       *float64   `json:"vat_rate"`
	Vendor        *string    `json:"vendor"`
	InvoiceNumber *string    `json:"invoice_number"`
	InvoiceDate   *time.Time `json:"invoice_date"`
	CreatedAt     time.Time  `json:"created_at"`
}
