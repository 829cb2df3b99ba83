package models

import "time"

// TrainerProfile holds the business identity printed on invoices. VATRate is
// the statutory rate to apply when SmallBusiness is false; the rate is stored
// per trainer rather than hard-coded so jurisdiction changes stay data.
type TrainerProfile struct {
	ID            int64     `json:"id"`
	OwnerID       int64     `json:"owner_id"`
	FullName      *string   `json:"full_name"`
	BusinessName  *string   `json:"business_name"`
	Address       *string   `json:"address"`
	Email         *string   `json:"email"`
	Phone         *string   `json:"phone"`
	IBAN          *string   `json:"iban"`
	TaxID         *string   `json:"tax_id"`
	HourlyRate    *float64  `json:"hourly_rate"`
	VATRate       float64   `json:"vat_rate"`
	SmallBusiness bool      `json:"small_business"`
	InvoiceHTML   *string   `json:"invoice_html"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
