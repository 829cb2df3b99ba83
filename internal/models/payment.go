package models

import "time"

// Payment records settlement only. The amount owed for a month is always
// recomputed from sessions and adjustments, never stored here.
type Payment struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Month     string    `json:"month"`
	ClientID  int64     `json:"client_id"`
	Paid      bool      `json:"paid"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MonthlyAdjustment is a signed manual correction added to a client's monthly
// total (credits, make-goods, rounding fixes).
type MonthlyAdjustment struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Month     string    `json:"month"`
	ClientID  int64     `json:"client_id"`
	Amount    float64   `json:"amount"`
	Reason    *string   `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}
