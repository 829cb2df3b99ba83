package models

import "time"

// Billing modes a rate plan (or a per-session override) can carry.
const (
	BillingPerSession  = "per_session"
	BillingPerClient   = "per_client"
	BillingMonthlyFlat = "monthly_flat"
)

type RatePlan struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	Name        string    `json:"name"`
	PricePerHour float64  `json:"price_per_hour"`
	BillingMode string    `json:"billing_mode"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
