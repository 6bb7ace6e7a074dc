package services

import (
	"context"
	"sort"
	"sync"

	"github.com/str-zone/app/models"
)

// MemoryCityStore is the in-process ICityStore, used in dev and tests.
// Saved cities never expire, so there is no TTL machinery here.
type MemoryCityStore struct {
	mu       sync.RWMutex
	cities   map[string]map[string]*models.SavedCity // clientID -> key -> city
	counters map[string]map[string]int64             // clientID -> name -> value
}

// NewMemoryCityStore creates an empty in-memory store
func NewMemoryCityStore() *MemoryCityStore {
	return &MemoryCityStore{
		cities:   make(map[string]map[string]*models.SavedCity),
		counters: make(map[string]map[string]int64),
	}
}

func (ms *MemoryCityStore) GetCity(ctx context.Context, clientID, key string) (*models.SavedCity, bool, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	if c, ok := ms.cities[clientID][key]; ok {
		cp := *c
		return &cp, true, nil
	}
	return nil, false, nil
}

func (ms *MemoryCityStore) SetCity(ctx context.Context, clientID, key string, city *models.SavedCity) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if ms.cities[clientID] == nil {
		ms.cities[clientID] = make(map[string]*models.SavedCity)
	}
	cp := *city
	ms.cities[clientID][key] = &cp
	return nil
}

func (ms *MemoryCityStore) DeleteCity(ctx context.Context, clientID, key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.cities[clientID], key)
	return nil
}

func (ms *MemoryCityStore) ListCities(ctx context.Context, clientID string) ([]models.SavedCity, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	out := make([]models.SavedCity, 0, len(ms.cities[clientID]))
	for _, c := range ms.cities[clientID] {
		out = append(out, *c)
	}
	// map iteration order is random; present oldest first
	sort.Slice(out, func(i, j int) bool { return out[i].SavedAt.Before(out[j].SavedAt) })
	return out, nil
}

func (ms *MemoryCityStore) IncrCounter(ctx context.Context, clientID, name string) (int64, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if ms.counters[clientID] == nil {
		ms.counters[clientID] = make(map[string]int64)
	}
	ms.counters[clientID][name]++
	return ms.counters[clientID][name], nil
}

func (ms *MemoryCityStore) GetCounter(ctx context.Context, clientID, name string) (int64, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	return ms.counters[clientID][name], nil
}

func (ms *MemoryCityStore) Clear(ctx context.Context) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.cities = make(map[string]map[string]*models.SavedCity)
	ms.counters = make(map[string]map[string]int64)
	return nil
}

func (ms *MemoryCityStore) GetStats(ctx context.Context) (*StoreStats, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	stats := &StoreStats{}
	for _, m := range ms.cities {
		stats.TotalCities += int64(len(m))
	}
	for _, m := range ms.counters {
		stats.TotalCounters += int64(len(m))
	}
	return stats, nil
}

func (ms *MemoryCityStore) Close() error {
	return nil
}
