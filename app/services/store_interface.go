package services

import (
	"context"
	"errors"

	"github.com/str-zone/app/models"
)

// ErrDuplicateCity means a city with the same normalized name is already
// saved for that client
var ErrDuplicateCity = errors.New("city already saved")

// StoreStats reports store usage
type StoreStats struct {
	TotalCities   int64 `json:"total_cities"`
	TotalCounters int64 `json:"total_counters"`
}

// ICityStore is the injected persistence boundary for client-side state
// (saved cities, free-check counters). Keys arrive already namespaced by
// client; implementations add their own prefixing only.
type ICityStore interface {
	// GetCity fetches one saved city by normalized name
	GetCity(ctx context.Context, clientID, key string) (*models.SavedCity, bool, error)

	// SetCity stores one saved city under its normalized name
	SetCity(ctx context.Context, clientID, key string, city *models.SavedCity) error

	// DeleteCity removes one saved city
	DeleteCity(ctx context.Context, clientID, key string) error

	// ListCities returns all cities saved by a client
	ListCities(ctx context.Context, clientID string) ([]models.SavedCity, error)

	// IncrCounter bumps a named counter and returns the new value
	IncrCounter(ctx context.Context, clientID, name string) (int64, error)

	// GetCounter reads a named counter (0 when unset)
	GetCounter(ctx context.Context, clientID, name string) (int64, error)

	// Clear wipes everything for all clients
	Clear(ctx context.Context) error

	// GetStats reports store usage
	GetStats(ctx context.Context) (*StoreStats, error)

	// Close releases backing connections if any
	Close() error
}
