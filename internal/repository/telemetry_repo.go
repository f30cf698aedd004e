package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Navneet1266/energy-ingestion/internal/models"
	"github.com/Navneet1266/energy-ingestion/internal/storage"
)

// TelemetryStore is the Postgres-backed implementation of storage.Store.
type TelemetryStore struct {
	db *sql.DB
}

// NewTelemetryStore returns the store bound to the shared connection pool.
func NewTelemetryStore(db *sql.DB) *TelemetryStore {
	return &TelemetryStore{db: db}
}

// Begin opens a database transaction at the store's default isolation level.
func (s *TelemetryStore) Begin(ctx context.Context) (storage.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("repository: begin tx: %w", err)
	}
	return &telemetryTx{tx: tx}, nil
}

// telemetryTx performs ingestion writes inside one database transaction.
type telemetryTx struct {
	tx *sql.Tx
}

func (t *telemetryTx) InsertMeterHistory(ctx context.Context, r models.MeterReading) error {
	const query = `
		INSERT INTO meter_telemetry_history (meter_id, kwh_consumed_ac, voltage, timestamp, ingested_at)
		VALUES ($1, $2, $3, $4, NOW())
	`
	_, err := t.tx.ExecContext(ctx, query, r.MeterID, r.KwhConsumedAc, r.Voltage, r.Timestamp)
	return err
}

func (t *telemetryTx) InsertMeterHistoryBatch(ctx context.Context, readings []models.MeterReading) error {
	if len(readings) == 0 {
		return nil
	}
	var (
		sb   strings.Builder
		args = make([]interface{}, 0, len(readings)*4)
	)
	sb.WriteString(`INSERT INTO meter_telemetry_history (meter_id, kwh_consumed_ac, voltage, timestamp, ingested_at) VALUES `)
	for i, r := range readings {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 4
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, NOW())", base+1, base+2, base+3, base+4)
		args = append(args, r.MeterID, r.KwhConsumedAc, r.Voltage, r.Timestamp)
	}
	_, err := t.tx.ExecContext(ctx, sb.String(), args...)
	return err
}

// UpsertMeterLiveStatus overwrites the hot-store row unconditionally, so the
// last call to arrive wins regardless of the reading's event timestamp.
func (t *telemetryTx) UpsertMeterLiveStatus(ctx context.Context, r models.MeterReading) error {
	const query = `
		INSERT INTO meter_live_status (meter_id, kwh_consumed_ac, voltage, last_seen)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (meter_id) DO UPDATE SET
			kwh_consumed_ac = EXCLUDED.kwh_consumed_ac,
			voltage = EXCLUDED.voltage,
			last_seen = EXCLUDED.last_seen
	`
	_, err := t.tx.ExecContext(ctx, query, r.MeterID, r.KwhConsumedAc, r.Voltage, r.Timestamp)
	return err
}

func (t *telemetryTx) InsertVehicleHistory(ctx context.Context, r models.VehicleReading) error {
	const query = `
		INSERT INTO vehicle_telemetry_history (vehicle_id, soc, kwh_delivered_dc, battery_temp, timestamp, ingested_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	_, err := t.tx.ExecContext(ctx, query, r.VehicleID, r.Soc, r.KwhDeliveredDc, r.BatteryTemp, r.Timestamp)
	return err
}

func (t *telemetryTx) InsertVehicleHistoryBatch(ctx context.Context, readings []models.VehicleReading) error {
	if len(readings) == 0 {
		return nil
	}
	var (
		sb   strings.Builder
		args = make([]interface{}, 0, len(readings)*5)
	)
	sb.WriteString(`INSERT INTO vehicle_telemetry_history (vehicle_id, soc, kwh_delivered_dc, battery_temp, timestamp, ingested_at) VALUES `)
	for i, r := range readings {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 5
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d, NOW())", base+1, base+2, base+3, base+4, base+5)
		args = append(args, r.VehicleID, r.Soc, r.KwhDeliveredDc, r.BatteryTemp, r.Timestamp)
	}
	_, err := t.tx.ExecContext(ctx, sb.String(), args...)
	return err
}

func (t *telemetryTx) UpsertVehicleLiveStatus(ctx context.Context, r models.VehicleReading) error {
	const query = `
		INSERT INTO vehicle_live_status (vehicle_id, soc, kwh_delivered_dc, battery_temp, last_seen)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (vehicle_id) DO UPDATE SET
			soc = EXCLUDED.soc,
			kwh_delivered_dc = EXCLUDED.kwh_delivered_dc,
			battery_temp = EXCLUDED.battery_temp,
			last_seen = EXCLUDED.last_seen
	`
	_, err := t.tx.ExecContext(ctx, query, r.VehicleID, r.Soc, r.KwhDeliveredDc, r.BatteryTemp, r.Timestamp)
	return err
}

func (t *telemetryTx) Commit() error {
	return t.tx.Commit()
}

func (t *telemetryTx) Rollback() error {
	err := t.tx.Rollback()
	if err == sql.ErrTxDone {
		return nil
	}
	return err
}
