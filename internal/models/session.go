package models

import "time"

const (
	SessionPlanned   = "planned"
	SessionCompleted = "completed"
	SessionCancelled = "cancelled"
)

// TrainingSession is one training occurrence. StartTime/EndTime are "HH:MM"
// wall-clock strings; sessions never span midnight. PriceOverride and
// ModeOverride, when set, replace the referenced plan's price and billing mode
// entirely for this session.
type TrainingSession struct {
	ID            int64     `json:"id"`
	OwnerID       int64     `json:"owner_id"`
	Date          time.Time `json:"date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	ClientIDs     []int64   `json:"client_ids"`
	RatePlanID    *int64    `json:"rate_plan_id"`
	Status        string    `json:"status"`
	CashPaid      bool      `json:"cash_paid"`
	SeriesID      *string   `json:"series_id"`
	PriceOverride *float64  `json:"price_override"`
	ModeOverride  *string   `json:"mode_override"`
	Notes         *string   `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
