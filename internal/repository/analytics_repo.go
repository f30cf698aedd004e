package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Navneet1266/energy-ingestion/internal/storage"
)

// ResolveMeterIDs returns the distinct meters charging-linked to the vehicle
// through a session that is active or ended after windowStart.
func (s *TelemetryStore) ResolveMeterIDs(ctx context.Context, vehicleID string, windowStart time.Time) ([]string, error) {
	const query = `
		SELECT DISTINCT meter_id
		FROM charging_sessions
		WHERE vehicle_id = $1
		  AND (is_active = TRUE OR ended_at > $2)
	`
	rows, err := s.db.QueryContext(ctx, query, vehicleID, windowStart)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meterIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		meterIDs = append(meterIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(meterIDs) == 0 {
		return nil, storage.ErrNoCorrelatedSession
	}
	return meterIDs, nil
}

// VehicleWindowAggregate rolls up vehicle history over an inclusive window.
// The (vehicle_id, timestamp) composite index keeps this an index range scan.
func (s *TelemetryStore) VehicleWindowAggregate(ctx context.Context, vehicleID string, start, end time.Time) (storage.VehicleAggregate, error) {
	const query = `
		SELECT
			COALESCE(SUM(kwh_delivered_dc), 0),
			COALESCE(AVG(battery_temp), 0),
			COUNT(*)
		FROM vehicle_telemetry_history
		WHERE vehicle_id = $1
		  AND timestamp >= $2
		  AND timestamp <= $3
	`
	var agg storage.VehicleAggregate
	err := s.db.QueryRowContext(ctx, query, vehicleID, start, end).
		Scan(&agg.TotalDcKwh, &agg.AvgBatteryTemp, &agg.Readings)
	if err != nil {
		return storage.VehicleAggregate{}, err
	}
	return agg, nil
}

// MeterWindowAggregate rolls up meter history for the resolved meter set over
// the same inclusive window, backed by the (meter_id, timestamp) index.
func (s *TelemetryStore) MeterWindowAggregate(ctx context.Context, meterIDs []string, start, end time.Time) (storage.MeterAggregate, error) {
	if len(meterIDs) == 0 {
		return storage.MeterAggregate{}, nil
	}

	placeholders := make([]string, len(meterIDs))
	args := make([]interface{}, 0, len(meterIDs)+2)
	args = append(args, start, end)
	for i, id := range meterIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+3)
		args = append(args, id)
	}

	query := fmt.Sprintf(`
		SELECT
			COALESCE(SUM(kwh_consumed_ac), 0),
			COUNT(*)
		FROM meter_telemetry_history
		WHERE meter_id IN (%s)
		  AND timestamp >= $1
		  AND timestamp <= $2
	`, strings.Join(placeholders, ", "))

	var agg storage.MeterAggregate
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&agg.TotalAcKwh, &agg.Readings)
	if err != nil {
		return storage.MeterAggregate{}, err
	}
	return agg, nil
}
