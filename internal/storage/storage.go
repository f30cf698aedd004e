// Package storage defines the store contract between the ingestion/analytics
// services and the persistence layer. The concrete Postgres implementation
// lives in internal/repository; tests substitute in-memory fakes.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/Navneet1266/energy-ingestion/internal/models"
)

// ErrNoCorrelatedSession indicates no charging session links the vehicle to
// any meter within the lookback window.
var ErrNoCorrelatedSession = errors.New("no correlated charging session")

// ErrLiveStatusNotFound indicates the entity has never reported a reading.
var ErrLiveStatusNotFound = errors.New("live status not found")

// VehicleAggregate is the windowed rollup of the vehicle history collection.
type VehicleAggregate struct {
	TotalDcKwh     float64
	AvgBatteryTemp float64
	Readings       int64
}

// MeterAggregate is the windowed rollup of the meter history collection.
type MeterAggregate struct {
	TotalAcKwh float64
	Readings   int64
}

// Tx is a transactional handle over the two ingestion destinations. All
// writes performed through one Tx commit together or not at all.
type Tx interface {
	InsertMeterHistory(ctx context.Context, r models.MeterReading) error
	InsertMeterHistoryBatch(ctx context.Context, readings []models.MeterReading) error
	UpsertMeterLiveStatus(ctx context.Context, r models.MeterReading) error

	InsertVehicleHistory(ctx context.Context, r models.VehicleReading) error
	InsertVehicleHistoryBatch(ctx context.Context, readings []models.VehicleReading) error
	UpsertVehicleLiveStatus(ctx context.Context, r models.VehicleReading) error

	Commit() error
	Rollback() error
}

// Store is the single persistence entry point handed to the services at
// startup. No hidden globals: everything goes through this interface.
type Store interface {
	// Begin opens a unit of work. The caller must Commit on the success path
	// and guarantee Rollback on every other exit path.
	Begin(ctx context.Context) (Tx, error)

	ResolveMeterIDs(ctx context.Context, vehicleID string, windowStart time.Time) ([]string, error)
	VehicleWindowAggregate(ctx context.Context, vehicleID string, start, end time.Time) (VehicleAggregate, error)
	MeterWindowAggregate(ctx context.Context, meterIDs []string, start, end time.Time) (MeterAggregate, error)

	MeterLiveStatus(ctx context.Context, meterID string) (*models.MeterLiveStatus, error)
	VehicleLiveStatus(ctx context.Context, vehicleID string) (*models.VehicleLiveStatus, error)
}
