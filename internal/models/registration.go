package models

import "time"

// RegistrationForm is a public signup form a trainer publishes; Fields is a
// JSONB list of field definitions rendered by the frontend.
type RegistrationForm struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Title     string    `json:"title"`
	Fields    []byte    `json:"fields"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Registration is one submission against a form. Answers is the raw JSONB
// payload keyed by field name. Notified flips after the notification email
// flow has run for it.
type Registration struct {
	ID        int64     `json:"id"`
	FormID    int64     `json:"form_id"`
	Answers   []byte    `json:"answers"`
	Notified  bool      `json:"notified"`
	CreatedAt time.Time `json:"created_at"`
}
