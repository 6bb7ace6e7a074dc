package services

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/str-zone/app/models"
)

// HybridCityStore fronts Redis with a small in-process LRU so repeated
// reads of the same client's cities skip the network. Redis remains the
// source of truth; the LRU only shadows single-city reads. Counters and
// listings always go straight to Redis since they must be exact.
type HybridCityStore struct {
	front  *lru.Cache[string, *models.SavedCity]
	back   *RedisCityStore
	logger *zap.Logger
}

// NewHybridCityStore wraps a Redis store with an LRU front of the given size
func NewHybridCityStore(back *RedisCityStore, size int, logger *zap.Logger) (*HybridCityStore, error) {
	front, err := lru.New[string, *models.SavedCity](size)
	if err != nil {
		return nil, err
	}
	return &HybridCityStore{
		front:  front,
		back:   back,
		logger: logger,
	}, nil
}

func frontKey(clientID, key string) string {
	return clientID + "\x00" + key
}

func (hs *HybridCityStore) GetCity(ctx context.Context, clientID, key string) (*models.SavedCity, bool, error) {
	if city, ok := hs.front.Get(frontKey(clientID, key)); ok {
		hs.logger.Debug("lru hit", zap.String("key", key))
		cp := *city
		return &cp, true, nil
	}

	city, found, err := hs.back.GetCity(ctx, clientID, key)
	if err != nil || !found {
		return nil, false, err
	}

	hs.front.Add(frontKey(clientID, key), city)
	return city, true, nil
}

func (hs *HybridCityStore) SetCity(ctx context.Context, clientID, key string, city *models.SavedCity) error {
	if err := hs.back.SetCity(ctx, clientID, key, city); err != nil {
		return err
	}
	cp := *city
	hs.front.Add(frontKey(clientID, key), &cp)
	return nil
}

func (hs *HybridCityStore) DeleteCity(ctx context.Context, clientID, key string) error {
	hs.front.Remove(frontKey(clientID, key))
	return hs.back.DeleteCity(ctx, clientID, key)
}

func (hs *HybridCityStore) ListCities(ctx context.Context, clientID string) ([]models.SavedCity, error) {
	return hs.back.ListCities(ctx, clientID)
}

func (hs *HybridCityStore) IncrCounter(ctx context.Context, clientID, name string) (int64, error) {
	return hs.back.IncrCounter(ctx, clientID, name)
}

func (hs *HybridCityStore) GetCounter(ctx context.Context, clientID, name string) (int64, error) {
	return hs.back.GetCounter(ctx, clientID, name)
}

func (hs *HybridCityStore) Clear(ctx context.Context) error {
	hs.front.Purge()
	return hs.back.Clear(ctx)
}

func (hs *HybridCityStore) GetStats(ctx context.Context) (*StoreStats, error) {
	return hs.back.GetStats(ctx)
}

func (hs *HybridCityStore) Close() error {
	hs.front.Purge()
	return hs.back.Close()
}
