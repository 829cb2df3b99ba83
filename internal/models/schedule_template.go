package models

import "time"

// ScheduleTemplateData is the reusable weekly shape: an ordered list of
// "HH:MM" slots plus, per weekday ("monday".."sunday"), the client ids placed
// in each slot. Stored as a JSONB column.
type ScheduleTemplateData struct {
	Slots     []string                      `json:"slots"`
	Placement map[string]map[string][]int64 `json:"placement"`
}

type ScheduleTemplate struct {
	ID        int64                `json:"id"`
	OwnerID   int64                `json:"owner_id"`
	Name      string               `json:"name"`
	Active    bool                 `json:"active"`
	Data      ScheduleTemplateData `json:"data"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}
