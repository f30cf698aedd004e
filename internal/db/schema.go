package db

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// schemaDDL declares the four persisted collections and their indexes.
// History tables are append-only and carry composite (id, timestamp) range
// indexes so windowed aggregation never falls back to a full scan. Live
// status tables hold exactly one row per entity id.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS meter_telemetry_history (
	id              BIGSERIAL PRIMARY KEY,
	meter_id        TEXT NOT NULL,
	kwh_consumed_ac DOUBLE PRECISION NOT NULL,
	voltage         DOUBLE PRECISION NOT NULL,
	timestamp       TIMESTAMPTZ NOT NULL,
	ingested_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_meter_history_meter_ts
	ON meter_telemetry_history (meter_id, timestamp);

CREATE TABLE IF NOT EXISTS vehicle_telemetry_history (
	id               BIGSERIAL PRIMARY KEY,
	vehicle_id       TEXT NOT NULL,
	soc              DOUBLE PRECISION NOT NULL,
	kwh_delivered_dc DOUBLE PRECISION NOT NULL,
	battery_temp     DOUBLE PRECISION NOT NULL,
	timestamp        TIMESTAMPTZ NOT NULL,
	ingested_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_vehicle_history_vehicle_ts
	ON vehicle_telemetry_history (vehicle_id, timestamp);

CREATE TABLE IF NOT EXISTS meter_live_status (
	meter_id        TEXT PRIMARY KEY,
	kwh_consumed_ac DOUBLE PRECISION NOT NULL,
	voltage         DOUBLE PRECISION NOT NULL,
	last_seen       TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS vehicle_live_status (
	vehicle_id       TEXT PRIMARY KEY,
	soc              DOUBLE PRECISION NOT NULL,
	kwh_delivered_dc DOUBLE PRECISION NOT NULL,
	battery_temp     DOUBLE PRECISION NOT NULL,
	last_seen        TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS charging_sessions (
	id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	vehicle_id TEXT NOT NULL,
	meter_id   TEXT NOT NULL,
	started_at TIMESTAMPTZ NOT NULL,
	ended_at   TIMESTAMPTZ,
	is_active  BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE INDEX IF NOT EXISTS idx_charging_session_vehicle
	ON charging_sessions (vehicle_id);

CREATE INDEX IF NOT EXISTS idx_charging_session_meter
	ON charging_sessions (meter_id);
`

const schemaApplyTimeout = 30 * time.Second

// ApplySchema applies the idempotent schema at startup. A failure is
// downgraded to a warning so a replica starting against an already-migrated
// database (or one it cannot DDL against) still serves traffic.
func ApplySchema(ctx context.Context, sqlDB *sql.DB, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(ctx, schemaApplyTimeout)
	defer cancel()

	if _, err := sqlDB.ExecContext(ctx, schemaDDL); err != nil {
		logger.Warn("schema init skipped or already applied", zap.Error(err))
		return
	}
	logger.Info("database schema initialized")
}
