package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Navneet1266/energy-ingestion/internal/models"
	redisstore "github.com/Navneet1266/energy-ingestion/internal/redis"
	"github.com/Navneet1266/energy-ingestion/internal/storage"
)

// LiveStatusService serves the hot store: current value per entity id. Reads
// hit the redis cache first when configured and fall back to the database,
// repopulating the cache on a miss.
type LiveStatusService struct {
	store  storage.Store
	cache  *redisstore.Cache
	logger *zap.Logger
}

// NewLiveStatusService returns the reader. cache may be nil.
func NewLiveStatusService(store storage.Store, cache *redisstore.Cache, logger *zap.Logger) *LiveStatusService {
	return &LiveStatusService{
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

// MeterStatus returns the meter's current live-status row, or
// storage.ErrLiveStatusNotFound when the meter has never reported.
func (s *LiveStatusService) MeterStatus(ctx context.Context, meterID string) (*models.MeterLiveStatus, error) {
	if s.cache != nil {
		if status, err := s.cache.GetMeter(ctx, meterID); err == nil {
			return status, nil
		}
	}

	status, err := s.store.MeterLiveStatus(ctx, meterID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SaveMeter(ctx, *status); err != nil {
			s.logger.Warn("failed to cache meter live status", zap.Error(err))
		}
	}
	return status, nil
}

// VehicleStatus returns the vehicle's current live-status row, or
// storage.ErrLiveStatusNotFound when the vehicle has never reported.
func (s *LiveStatusService) VehicleStatus(ctx context.Context, vehicleID string) (*models.VehicleLiveStatus, error) {
	if s.cache != nil {
		if status, err := s.cache.GetVehicle(ctx, vehicleID); err == nil {
			return status, nil
		}
	}

	status, err := s.store.VehicleLiveStatus(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SaveVehicle(ctx, *status); err != nil {
			s.logger.Warn("failed to cache vehicle live status", zap.Error(err))
		}
	}
	return status, nil
}
