package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/str-zone/app/models"
)

// RedisCityStore keeps saved cities and counters in Redis. Entries have no
// TTL: a pinned city stays until the client removes it.
type RedisCityStore struct {
	client *redis.Client
	logger *zap.Logger
	prefix string
}

// NewRedisCityStore connects to Redis and pings it before returning
func NewRedisCityStore(redisURL string, logger *zap.Logger) (*RedisCityStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("redis unreachable: %w", err)
	}

	return &RedisCityStore{
		client: client,
		logger: logger,
		prefix: "str_zone:",
	}, nil
}

func (rs *RedisCityStore) cityKey(clientID, key string) string {
	return rs.prefix + "city:" + clientID + ":" + key
}

func (rs *RedisCityStore) counterKey(clientID, name string) string {
	return rs.prefix + "ctr:" + clientID + ":" + name
}

func (rs *RedisCityStore) GetCity(ctx context.Context, clientID, key string) (*models.SavedCity, bool, error) {
	val, err := rs.client.Get(ctx, rs.cityKey(clientID, key)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		rs.logger.Error("redis get failed", zap.Error(err), zap.String("key", key))
		return nil, false, err
	}

	var city models.SavedCity
	if err := json.Unmarshal([]byte(val), &city); err != nil {
		rs.logger.Error("stored city unmarshal failed", zap.Error(err))
		return nil, false, err
	}
	return &city, true, nil
}

func (rs *RedisCityStore) SetCity(ctx context.Context, clientID, key string, city *models.SavedCity) error {
	data, err := json.Marshal(city)
	if err != nil {
		return fmt.Errorf("city marshal failed: %w", err)
	}

	// 0 = no expiry
	if err := rs.client.Set(ctx, rs.cityKey(clientID, key), data, 0).Err(); err != nil {
		rs.logger.Error("redis set failed", zap.Error(err), zap.String("key", key))
		return err
	}
	return nil
}

func (rs *RedisCityStore) DeleteCity(ctx context.Context, clientID, key string) error {
	if err := rs.client.Del(ctx, rs.cityKey(clientID, key)).Err(); err != nil {
		rs.logger.Error("redis delete failed", zap.Error(err), zap.String("key", key))
		return err
	}
	return nil
}

func (rs *RedisCityStore) ListCities(ctx context.Context, clientID string) ([]models.SavedCity, error) {
	pattern := rs.prefix + "city:" + clientID + ":*"

	cities := make([]models.SavedCity, 0)
	iter := rs.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		val, err := rs.client.Get(ctx, iter.Val()).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, err
		}
		var city models.SavedCity
		if err := json.Unmarshal([]byte(val), &city); err != nil {
			rs.logger.Warn("skipping undecodable city entry", zap.String("key", iter.Val()))
			continue
		}
		cities = append(cities, city)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return cities, nil
}

func (rs *RedisCityStore) IncrCounter(ctx context.Context, clientID, name string) (int64, error) {
	return rs.client.Incr(ctx, rs.counterKey(clientID, name)).Result()
}

func (rs *RedisCityStore) GetCounter(ctx context.Context, clientID, name string) (int64, error) {
	val, err := rs.client.Get(ctx, rs.counterKey(clientID, name)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return val, err
}

func (rs *RedisCityStore) Clear(ctx context.Context) error {
	keys, err := rs.client.Keys(ctx, rs.prefix+"*").Result()
	if err != nil {
		return fmt.Errorf("key listing failed: %w", err)
	}

	if len(keys) > 0 {
		if err := rs.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("key deletion failed: %w", err)
		}
	}

	rs.logger.Info("cleared redis store", zap.Int("keys_deleted", len(keys)))
	return nil
}

func (rs *RedisCityStore) GetStats(ctx context.Context) (*StoreStats, error) {
	stats := &StoreStats{}

	cityKeys, err := rs.client.Keys(ctx, rs.prefix+"city:*").Result()
	if err != nil {
		return nil, err
	}
	stats.TotalCities = int64(len(cityKeys))

	ctrKeys, err := rs.client.Keys(ctx, rs.prefix+"ctr:*").Result()
	if err != nil {
		return nil, err
	}
	stats.TotalCounters = int64(len(ctrKeys))

	return stats, nil
}

func (rs *RedisCityStore) Close() error {
	return rs.client.Close()
}
