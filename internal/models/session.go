package models

import "time"

// ChargingSession links a vehicle to the meter powering it for a time span.
// Sessions are created and ended by the session lifecycle service; this
// process only reads them for correlation. An active session has a null
// EndedAt, but a null EndedAt does not imply the session is active.
type ChargingSession struct {
	ID        string     `db:"id" json:"id"`
	VehicleID string     `db:"vehicle_id" json:"vehicleId"`
	MeterID   string     `db:"meter_id" json:"meterId"`
	StartedAt time.Time  `db:"started_at" json:"startedAt"`
	EndedAt   *time.Time `db:"ended_at" json:"endedAt"`
	IsActive  bool       `db:"is_active" json:"isActive"`
}
