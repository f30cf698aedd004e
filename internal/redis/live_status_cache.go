package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Navneet1266/energy-ingestion/internal/models"
)

// Cache mirrors live-status rows in redis for quick dashboard reads. The
// relational store stays the source of truth; every cache operation is
// best-effort.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache returns redis-backed live-status cache.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func meterKey(meterID string) string {
	return fmt.Sprintf("live:meter:%s", meterID)
}

func vehicleKey(vehicleID string) string {
	return fmt.Sprintf("live:vehicle:%s", vehicleID)
}

// SaveMeter caches the current meter live-status row.
func (c *Cache) SaveMeter(ctx context.Context, status models.MeterLiveStatus) error {
	data, err := json.Marshal(status)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, meterKey(status.MeterID), data, c.ttl).Err()
}

// GetMeter returns the cached row, or redis.Nil on a miss.
func (c *Cache) GetMeter(ctx context.Context, meterID string) (*models.MeterLiveStatus, error) {
	result, err := c.client.Get(ctx, meterKey(meterID)).Result()
	if err != nil {
		return nil, err
	}
	var status models.MeterLiveStatus
	if err := json.Unmarshal([]byte(result), &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// SaveVehicle caches the current vehicle live-status row.
func (c *Cache) SaveVehicle(ctx context.Context, status models.VehicleLiveStatus) error {
	data, err := json.Marshal(status)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, vehicleKey(status.VehicleID), data, c.ttl).Err()
}

// GetVehicle returns the cached row, or redis.Nil on a miss.
func (c *Cache) GetVehicle(ctx context.Context, vehicleID string) (*models.VehicleLiveStatus, error) {
	result, err := c.client.Get(ctx, vehicleKey(vehicleID)).Result()
	if err != nil {
		return nil, err
	}
	var status models.VehicleLiveStatus
	if err := json.Unmarshal([]byte(result), &status); err != nil {
		return nil, err
	}
	return &status, nil
}
