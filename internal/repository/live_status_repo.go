package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Navneet1266/energy-ingestion/internal/models"
	"github.com/Navneet1266/energy-ingestion/internal/storage"
)

// MeterLiveStatus returns the current hot-store row for a meter.
func (s *TelemetryStore) MeterLiveStatus(ctx context.Context, meterID string) (*models.MeterLiveStatus, error) {
	const query = `
		SELECT meter_id, kwh_consumed_ac, voltage, last_seen
		FROM meter_live_status
		WHERE meter_id = $1
	`
	var status models.MeterLiveStatus
	err := s.db.QueryRowContext(ctx, query, meterID).
		Scan(&status.MeterID, &status.KwhConsumedAc, &status.Voltage, &status.LastSeen)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrLiveStatusNotFound
	}
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// VehicleLiveStatus returns the current hot-store row for a vehicle.
func (s *TelemetryStore) VehicleLiveStatus(ctx context.Context, vehicleID string) (*models.VehicleLiveStatus, error) {
	const query = `
		SELECT vehicle_id, soc, kwh_delivered_dc, battery_temp, last_seen
		FROM vehicle_live_status
		WHERE vehicle_id = $1
	`
	var status models.VehicleLiveStatus
	err := s.db.QueryRowContext(ctx, query, vehicleID).
		Scan(&status.VehicleID, &status.Soc, &status.KwhDeliveredDc, &status.BatteryTemp, &status.LastSeen)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrLiveStatusNotFound
	}
	if err != nil {
		return nil, err
	}
	return &status, nil
}
