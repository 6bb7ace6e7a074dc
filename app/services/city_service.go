package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/str-zone/app/models"
	"github.com/str-zone/internal/normalizer"
)

// ErrCityNotFound means no saved city exists under that name for the client
var ErrCityNotFound = errors.New("city not saved")

// CityService manages per-client pinned cities and the free-check quota.
// Cities are keyed by normalized name, so "San José" and "san jose" are one
// entry.
type CityService struct {
	store      ICityStore
	logger     *zap.Logger
	freeChecks int
}

const counterFreeChecks = "free_checks"

// NewCityService creates the saved-city service
func NewCityService(store ICityStore, freeChecks int, logger *zap.Logger) *CityService {
	return &CityService{
		store:      store,
		logger:     logger,
		freeChecks: freeChecks,
	}
}

// SaveCity pins a city for a client. Duplicate normalized names are rejected
// so a client cannot save the same place twice under spelling variants.
func (cs *CityService) SaveCity(ctx context.Context, clientID, name, status string) (*models.SavedCity, error) {
	key := normalizer.Fold(name)

	if _, found, err := cs.store.GetCity(ctx, clientID, key); err != nil {
		return nil, err
	} else if found {
		return nil, ErrDuplicateCity
	}

	city := &models.SavedCity{
		Name:    name,
		Status:  status,
		SavedAt: time.Now().UTC(),
	}
	if err := cs.store.SetCity(ctx, clientID, key, city); err != nil {
		return nil, err
	}

	cs.logger.Info("city saved", zap.String("client", clientID), zap.String("city", name))
	return city, nil
}

// RemoveCity unpins a saved city
func (cs *CityService) RemoveCity(ctx context.Context, clientID, name string) error {
	key := normalizer.Fold(name)

	if _, found, err := cs.store.GetCity(ctx, clientID, key); err != nil {
		return err
	} else if !found {
		return ErrCityNotFound
	}

	return cs.store.DeleteCity(ctx, clientID, key)
}

// ListCities returns all cities a client has pinned
func (cs *CityService) ListCities(ctx context.Context, clientID string) ([]models.SavedCity, error) {
	return cs.store.ListCities(ctx, clientID)
}

// MarkChecked stamps a saved city with the latest lookup time and status
func (cs *CityService) MarkChecked(ctx context.Context, clientID, name, status string) error {
	key := normalizer.Fold(name)

	city, found, err := cs.store.GetCity(ctx, clientID, key)
	if err != nil {
		return err
	}
	if !found {
		return ErrCityNotFound
	}

	now := time.Now().UTC()
	city.LastChecked = &now
	if status != "" {
		city.Status = status
	}
	return cs.store.SetCity(ctx, clientID, key, city)
}

// RecordCheck consumes one free check and reports whether the client is
// still inside the quota. The counter only grows; there is no reset window.
func (cs *CityService) RecordCheck(ctx context.Context, clientID string) (used int64, allowed bool, err error) {
	used, err = cs.store.IncrCounter(ctx, clientID, counterFreeChecks)
	if err != nil {
		return 0, false, err
	}
	return used, used <= int64(cs.freeChecks), nil
}

// Limit returns the configured free-check allowance
func (cs *CityService) Limit() int {
	return cs.freeChecks
}

// Quota reports the client's current free-check usage without consuming one
func (cs *CityService) Quota(ctx context.Context, clientID string) (used int64, limit int, err error) {
	used, err = cs.store.GetCounter(ctx, clientID, counterFreeChecks)
	if err != nil {
		return 0, 0, err
	}
	return used, cs.freeChecks, nil
}
