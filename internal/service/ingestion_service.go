package service

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Navneet1266/energy-ingestion/internal/models"
	redisstore "github.com/Navneet1266/energy-ingestion/internal/redis"
	"github.com/Navneet1266/energy-ingestion/internal/storage"
)

// ErrEmptyBatch rejects batch calls with no readings.
var ErrEmptyBatch = errors.New("batch contains no readings")

// IngestionService records validated readings into the append-only history
// and the latest-value live status, atomically per call. It never retries
// and never queues; a call either fully persists or leaves no trace.
type IngestionService struct {
	store  storage.Store
	cache  *redisstore.Cache
	logger *zap.Logger
}

// NewIngestionService returns the writer. cache may be nil when redis is not
// configured.
func NewIngestionService(store storage.Store, cache *redisstore.Cache, logger *zap.Logger) *IngestionService {
	return &IngestionService{
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

// RecordMeterReading appends one history row and overwrites the meter's live
// status in a single transaction.
func (s *IngestionService) RecordMeterReading(ctx context.Context, reading models.MeterReading) error {
	tx, err := s.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.InsertMeterHistory(ctx, reading); err != nil {
		return err
	}
	if err := tx.UpsertMeterLiveStatus(ctx, reading); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.mirrorMeter(ctx, reading)
	s.logger.Debug("ingested meter reading", zap.String("meter_id", reading.MeterID))
	return nil
}

// RecordVehicleReading appends one history row and overwrites the vehicle's
// live status in a single transaction.
func (s *IngestionService) RecordVehicleReading(ctx context.Context, reading models.VehicleReading) error {
	tx, err := s.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.InsertVehicleHistory(ctx, reading); err != nil {
		return err
	}
	if err := tx.UpsertVehicleLiveStatus(ctx, reading); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.mirrorVehicle(ctx, reading)
	s.logger.Debug("ingested vehicle reading", zap.String("vehicle_id", reading.VehicleID))
	return nil
}

// RecordMeterBatch persists all readings in one transaction: a bulk history
// insert followed by per-reading live-status upserts in input order, so a
// later duplicate id wins. Any failure rolls back the whole batch.
func (s *IngestionService) RecordMeterBatch(ctx context.Context, readings []models.MeterReading) (int, error) {
	if len(readings) == 0 {
		return 0, ErrEmptyBatch
	}

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if err := tx.InsertMeterHistoryBatch(ctx, readings); err != nil {
		return 0, err
	}
	for _, r := range readings {
		if err := tx.UpsertMeterLiveStatus(ctx, r); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}

	for _, r := range readings {
		s.mirrorMeter(ctx, r)
	}
	s.logger.Info("batch ingested meter readings", zap.Int("count", len(readings)))
	return len(readings), nil
}

// RecordVehicleBatch is the vehicle-side equivalent of RecordMeterBatch.
func (s *IngestionService) RecordVehicleBatch(ctx context.Context, readings []models.VehicleReading) (int, error) {
	if len(readings) == 0 {
		return 0, ErrEmptyBatch
	}

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if err := tx.InsertVehicleHistoryBatch(ctx, readings); err != nil {
		return 0, err
	}
	for _, r := range readings {
		if err := tx.UpsertVehicleLiveStatus(ctx, r); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}

	for _, r := range readings {
		s.mirrorVehicle(ctx, r)
	}
	s.logger.Info("batch ingested vehicle readings", zap.Int("count", len(readings)))
	return len(readings), nil
}

// mirrorMeter refreshes the hot cache after a successful commit. Cache
// failures never affect the call outcome.
func (s *IngestionService) mirrorMeter(ctx context.Context, r models.MeterReading) {
	if s.cache == nil {
		return
	}
	err := s.cache.SaveMeter(ctx, models.MeterLiveStatus{
		MeterID:       r.MeterID,
		KwhConsumedAc: r.KwhConsumedAc,
		Voltage:       r.Voltage,
		LastSeen:      r.Timestamp,
	})
	if err != nil && err != redis.Nil {
		s.logger.Warn("failed to cache meter live status", zap.Error(err))
	}
}

func (s *IngestionService) mirrorVehicle(ctx context.Context, r models.VehicleReading) {
	if s.cache == nil {
		return
	}
	err := s.cache.SaveVehicle(ctx, models.VehicleLiveStatus{
		VehicleID:      r.VehicleID,
		Soc:            r.Soc,
		KwhDeliveredDc: r.KwhDeliveredDc,
		BatteryTemp:    r.BatteryTemp,
		LastSeen:       r.Timestamp,
	})
	if err != nil && err != redis.Nil {
		s.logger.Warn("failed to cache vehicle live status", zap.Error(err))
	}
}
