package models

import "time"

// SavedCity is a city a user pinned after a compliance check. Keyed by
// normalized name in the store; never expires automatically.
type SavedCity struct {
	Name        string     `json:"name"`
	Status      string     `json:"status"` // derived status label at save time
	SavedAt     time.Time  `json:"saved_at"`
	LastChecked *time.Time `json:"last_checked,omitempty"`
}
