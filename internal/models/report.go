package models

import "time"

// Report statuses. Every report starts as StatusNew and only moves through
// the explicit status-update endpoint.
const (
	StatusNew      = "new"
	StatusProgress = "progress"
	StatusResolved = "resolved"
)

// ValidStatus reports whether s is one of the three known statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusProgress, StatusResolved:
		return true
	}
	return false
}

type Report struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PhotoURL    string    `json:"photo_url"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
