package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/Navneet1266/energy-ingestion/internal/models"
)

// IngestionWriter is the slice of the ingestion service the handlers need.
type IngestionWriter interface {
	RecordMeterReading(ctx context.Context, reading models.MeterReading) error
	RecordVehicleReading(ctx context.Context, reading models.VehicleReading) error
	RecordMeterBatch(ctx context.Context, readings []models.MeterReading) (int, error)
	RecordVehicleBatch(ctx context.Context, readings []models.VehicleReading) (int, error)
}

// IngestionHandlers serves the POST /v1/ingestion endpoints.
type IngestionHandlers struct {
	writer IngestionWriter
	logger *zap.Logger
}

// NewIngestionHandlers returns the handler set.
func NewIngestionHandlers(writer IngestionWriter, logger *zap.Logger) *IngestionHandlers {
	return &IngestionHandlers{writer: writer, logger: logger}
}

// Meter handles POST /v1/ingestion/meter.
func (h *IngestionHandlers) Meter(w http.ResponseWriter, r *http.Request) {
	var dto meterReadingDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeFieldErrors(w, decodeErrors(err))
		return
	}
	reading, fieldErrs := dto.validate("")
	if len(fieldErrs) > 0 {
		writeFieldErrors(w, fieldErrs)
		return
	}

	if err := h.writer.RecordMeterReading(r.Context(), reading); err != nil {
		h.logger.Error("failed to ingest meter reading", zap.String("meter_id", reading.MeterID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"status":  "ok",
		"type":    "meter",
		"meterId": reading.MeterID,
	})
}

// Vehicle handles POST /v1/ingestion/vehicle.
func (h *IngestionHandlers) Vehicle(w http.ResponseWriter, r *http.Request) {
	var dto vehicleReadingDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeFieldErrors(w, decodeErrors(err))
		return
	}
	reading, fieldErrs := dto.validate("")
	if len(fieldErrs) > 0 {
		writeFieldErrors(w, fieldErrs)
		return
	}

	if err := h.writer.RecordVehicleReading(r.Context(), reading); err != nil {
		h.logger.Error("failed to ingest vehicle reading", zap.String("vehicle_id", reading.VehicleID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"status":    "ok",
		"type":      "vehicle",
		"vehicleId": reading.VehicleID,
	})
}

// MeterBatch handles POST /v1/ingestion/meter/batch. Any invalid element
// rejects the whole request before the writer is reached.
func (h *IngestionHandlers) MeterBatch(w http.ResponseWriter, r *http.Request) {
	var dto meterBatchDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeFieldErrors(w, decodeErrors(err))
		return
	}
	readings, fieldErrs := dto.validate()
	if len(fieldErrs) > 0 {
		writeFieldErrors(w, fieldErrs)
		return
	}

	ingested, err := h.writer.RecordMeterBatch(r.Context(), readings)
	if err != nil {
		h.logger.Error("failed to ingest meter batch", zap.Int("size", len(readings)), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"status":   "ok",
		"type":     "meter_batch",
		"ingested": ingested,
	})
}

// VehicleBatch handles POST /v1/ingestion/vehicle/batch.
func (h *IngestionHandlers) VehicleBatch(w http.ResponseWriter, r *http.Request) {
	var dto vehicleBatchDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeFieldErrors(w, decodeErrors(err))
		return
	}
	readings, fieldErrs := dto.validate()
	if len(fieldErrs) > 0 {
		writeFieldErrors(w, fieldErrs)
		return
	}

	ingested, err := h.writer.RecordVehicleBatch(r.Context(), readings)
	if err != nil {
		h.logger.Error("failed to ingest vehicle batch", zap.Int("size", len(readings)), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"status":   "ok",
		"type":     "vehicle_batch",
		"ingested": ingested,
	})
}
