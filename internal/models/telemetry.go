package models

import "time"

// MeterReading is a validated smart-meter reading ready for ingestion.
type MeterReading struct {
	MeterID       string    `json:"meterId"`
	KwhConsumedAc float64   `json:"kwhConsumedAc"`
	Voltage       float64   `json:"voltage"`
	Timestamp     time.Time `json:"timestamp"`
}

// VehicleReading is a validated EV charger reading ready for ingestion.
type VehicleReading struct {
	VehicleID      string    `json:"vehicleId"`
	Soc            float64   `json:"soc"`
	KwhDeliveredDc float64   `json:"kwhDeliveredDc"`
	BatteryTemp    float64   `json:"batteryTemp"`
	Timestamp      time.Time `json:"timestamp"`
}

// MeterHistoryRecord is one append-only row in the meter cold store.
type MeterHistoryRecord struct {
	ID            int64     `db:"id" json:"id"`
	MeterID       string    `db:"meter_id" json:"meterId"`
	KwhConsumedAc float64   `db:"kwh_consumed_ac" json:"kwhConsumedAc"`
	Voltage       float64   `db:"voltage" json:"voltage"`
	Timestamp     time.Time `db:"timestamp" json:"timestamp"`
	IngestedAt    time.Time `db:"ingested_at" json:"ingestedAt"`
}

// VehicleHistoryRecord is one append-only row in the vehicle cold store.
type VehicleHistoryRecord struct {
	ID             int64     `db:"id" json:"id"`
	VehicleID      string    `db:"vehicle_id" json:"vehicleId"`
	Soc            float64   `db:"soc" json:"soc"`
	KwhDeliveredDc float64   `db:"kwh_delivered_dc" json:"kwhDeliveredDc"`
	BatteryTemp    float64   `db:"battery_temp" json:"batteryTemp"`
	Timestamp      time.Time `db:"timestamp" json:"timestamp"`
	IngestedAt     time.Time `db:"ingested_at" json:"ingestedAt"`
}

// MeterLiveStatus is the single hot-store row per meter. The row reflects the
// most recently received reading in call-arrival order, not event-timestamp
// order.
type MeterLiveStatus struct {
	MeterID       string    `db:"meter_id" json:"meterId"`
	KwhConsumedAc float64   `db:"kwh_consumed_ac" json:"kwhConsumedAc"`
	Voltage       float64   `db:"voltage" json:"voltage"`
	LastSeen      time.Time `db:"last_seen" json:"lastSeen"`
}

// VehicleLiveStatus is the single hot-store row per vehicle.
type VehicleLiveStatus struct {
	VehicleID      string    `db:"vehicle_id" json:"vehicleId"`
	Soc            float64   `db:"soc" json:"soc"`
	KwhDeliveredDc float64   `db:"kwh_delivered_dc" json:"kwhDeliveredDc"`
	BatteryTemp    float64   `db:"battery_temp" json:"batteryTemp"`
	LastSeen       time.Time `db:"last_seen" json:"lastSeen"`
}

// ReadingsCount carries per-collection row counts for a summary window.
type ReadingsCount struct {
	Vehicle int64 `json:"vehicle"`
	Meter   int64 `json:"meter"`
}

// PerformanceSummary is the analytics response for one vehicle over a window.
// EfficiencyRatio is nil when no AC consumption was recorded in the window.
type PerformanceSummary struct {
	VehicleID           string        `json:"vehicleId"`
	PeriodStart         time.Time     `json:"periodStart"`
	PeriodEnd           time.Time     `json:"periodEnd"`
	TotalAcConsumedKwh  float64       `json:"totalAcConsumedKwh"`
	TotalDcDeliveredKwh float64       `json:"totalDcDeliveredKwh"`
	EfficiencyRatio     *float64      `json:"efficiencyRatio"`
	AvgBatteryTemp      float64       `json:"avgBatteryTemp"`
	ReadingsCount       ReadingsCount `json:"readingsCount"`
}
