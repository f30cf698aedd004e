package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Navneet1266/energy-ingestion/internal/models"
	"github.com/Navneet1266/energy-ingestion/internal/storage"
)

// LiveStatusReader is the slice of the live-status service the handlers need.
type LiveStatusReader interface {
	MeterStatus(ctx context.Context, meterID string) (*models.MeterLiveStatus, error)
	VehicleStatus(ctx context.Context, vehicleID string) (*models.VehicleLiveStatus, error)
}

// LiveStatusHandlers serves the GET /v1/live endpoints.
type LiveStatusHandlers struct {
	reader LiveStatusReader
	logger *zap.Logger
}

// NewLiveStatusHandlers returns the handler set.
func NewLiveStatusHandlers(reader LiveStatusReader, logger *zap.Logger) *LiveStatusHandlers {
	return &LiveStatusHandlers{reader: reader, logger: logger}
}

// Meter handles GET /v1/live/meter/{meterId}.
func (h *LiveStatusHandlers) Meter(w http.ResponseWriter, r *http.Request) {
	meterID := strings.TrimPrefix(r.URL.Path, "/v1/live/meter/")
	if meterID == "" || strings.Contains(meterID, "/") {
		writeError(w, http.StatusBadRequest, "meter id required")
		return
	}

	status, err := h.reader.MeterStatus(r.Context(), meterID)
	if errors.Is(err, storage.ErrLiveStatusNotFound) {
		writeError(w, http.StatusNotFound, "no live status for meter "+meterID)
		return
	}
	if err != nil {
		h.logger.Error("failed to read meter live status", zap.String("meter_id", meterID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, status)
}

// Vehicle handles GET /v1/live/vehicle/{vehicleId}.
func (h *LiveStatusHandlers) Vehicle(w http.ResponseWriter, r *http.Request) {
	vehicleID := strings.TrimPrefix(r.URL.Path, "/v1/live/vehicle/")
	if vehicleID == "" || strings.Contains(vehicleID, "/") {
		writeError(w, http.StatusBadRequest, "vehicle id required")
		return
	}

	status, err := h.reader.VehicleStatus(r.Context(), vehicleID)
	if errors.Is(err, storage.ErrLiveStatusNotFound) {
		writeError(w, http.StatusNotFound, "no live status for vehicle "+vehicleID)
		return
	}
	if err != nil {
		h.logger.Error("failed to read vehicle live status", zap.String("vehicle_id", vehicleID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, status)
}
