package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Navneet1266/energy-ingestion/internal/models"
)

// FieldError names one offending request field. Validation happens entirely
// here; the services receive only constraint-satisfying values.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type meterReadingDTO struct {
	MeterID       *string  `json:"meterId"`
	KwhConsumedAc *float64 `json:"kwhConsumedAc"`
	Voltage       *float64 `json:"voltage"`
	Timestamp     *string  `json:"timestamp"`
}

type vehicleReadingDTO struct {
	VehicleID      *string  `json:"vehicleId"`
	Soc            *float64 `json:"soc"`
	KwhDeliveredDc *float64 `json:"kwhDeliveredDc"`
	BatteryTemp    *float64 `json:"batteryTemp"`
	Timestamp      *string  `json:"timestamp"`
}

type meterBatchDTO struct {
	Readings []meterReadingDTO `json:"readings"`
}

type vehicleBatchDTO struct {
	Readings []vehicleReadingDTO `json:"readings"`
}

func (d meterReadingDTO) validate(prefix string) (models.MeterReading, []FieldError) {
	var errs []FieldError

	id := requireID(&errs, prefix+"meterId", d.MeterID)
	kwh := requireNumber(&errs, prefix+"kwhConsumedAc", d.KwhConsumedAc)
	voltage := requireNumber(&errs, prefix+"voltage", d.Voltage)
	ts := requireTimestamp(&errs, prefix+"timestamp", d.Timestamp)

	if len(errs) > 0 {
		return models.MeterReading{}, errs
	}
	return models.MeterReading{
		MeterID:       id,
		KwhConsumedAc: kwh,
		Voltage:       voltage,
		Timestamp:     ts,
	}, nil
}

func (d vehicleReadingDTO) validate(prefix string) (models.VehicleReading, []FieldError) {
	var errs []FieldError

	id := requireID(&errs, prefix+"vehicleId", d.VehicleID)
	soc := requireNumber(&errs, prefix+"soc", d.Soc)
	kwh := requireNumber(&errs, prefix+"kwhDeliveredDc", d.KwhDeliveredDc)
	temp := requireNumber(&errs, prefix+"batteryTemp", d.BatteryTemp)
	ts := requireTimestamp(&errs, prefix+"timestamp", d.Timestamp)

	if len(errs) > 0 {
		return models.VehicleReading{}, errs
	}
	return models.VehicleReading{
		VehicleID:      id,
		Soc:            soc,
		KwhDeliveredDc: kwh,
		BatteryTemp:    temp,
		Timestamp:      ts,
	}, nil
}

func (d meterBatchDTO) validate() ([]models.MeterReading, []FieldError) {
	if len(d.Readings) == 0 {
		return nil, []FieldError{{Field: "readings", Message: "must be a non-empty array"}}
	}
	var errs []FieldError
	readings := make([]models.MeterReading, 0, len(d.Readings))
	for i, dto := range d.Readings {
		reading, fieldErrs := dto.validate(fmt.Sprintf("readings[%d].", i))
		if len(fieldErrs) > 0 {
			errs = append(errs, fieldErrs...)
			continue
		}
		readings = append(readings, reading)
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return readings, nil
}

func (d vehicleBatchDTO) validate() ([]models.VehicleReading, []FieldError) {
	if len(d.Readings) == 0 {
		return nil, []FieldError{{Field: "readings", Message: "must be a non-empty array"}}
	}
	var errs []FieldError
	readings := make([]models.VehicleReading, 0, len(d.Readings))
	for i, dto := range d.Readings {
		reading, fieldErrs := dto.validate(fmt.Sprintf("readings[%d].", i))
		if len(fieldErrs) > 0 {
			errs = append(errs, fieldErrs...)
			continue
		}
		readings = append(readings, reading)
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return readings, nil
}

func requireID(errs *[]FieldError, field string, value *string) string {
	if value == nil || strings.TrimSpace(*value) == "" {
		*errs = append(*errs, FieldError{Field: field, Message: "must be a non-empty string"})
		return ""
	}
	return *value
}

func requireNumber(errs *[]FieldError, field string, value *float64) float64 {
	if value == nil {
		*errs = append(*errs, FieldError{Field: field, Message: "must be a number"})
		return 0
	}
	if math.IsNaN(*value) || math.IsInf(*value, 0) {
		*errs = append(*errs, FieldError{Field: field, Message: "must be finite"})
		return 0
	}
	return *value
}

func requireTimestamp(errs *[]FieldError, field string, value *string) time.Time {
	if value == nil || *value == "" {
		*errs = append(*errs, FieldError{Field: field, Message: "must be an ISO-8601 timestamp"})
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339, *value)
	if err != nil {
		*errs = append(*errs, FieldError{Field: field, Message: "must be an ISO-8601 timestamp"})
		return time.Time{}
	}
	return ts.UTC()
}

// decodeErrors maps a JSON decoding failure to field errors so a non-numeric
// soc or similar is reported against the offending field.
func decodeErrors(err error) []FieldError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return []FieldError{{
			Field:   typeErr.Field,
			Message: fmt.Sprintf("must be of type %s", typeErr.Type.String()),
		}}
	}
	return []FieldError{{Field: "body", Message: "invalid json"}}
}
