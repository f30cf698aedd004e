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

// PerformanceReader is the slice of the analytics service the handler needs.
type PerformanceReader interface {
	PerformanceSummary(ctx context.Context, vehicleID string) (*models.PerformanceSummary, error)
}

// AnalyticsHandler serves GET /v1/analytics/performance/{vehicleId}.
type AnalyticsHandler struct {
	reader PerformanceReader
	logger *zap.Logger
}

// NewAnalyticsHandler returns handler.
func NewAnalyticsHandler(reader PerformanceReader, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{reader: reader, logger: logger}
}

// Performance handles the summary request.
func (h *AnalyticsHandler) Performance(w http.ResponseWriter, r *http.Request) {
	vehicleID := strings.TrimPrefix(r.URL.Path, "/v1/analytics/performance/")
	if vehicleID == "" || strings.Contains(vehicleID, "/") {
		writeError(w, http.StatusBadRequest, "vehicle id required")
		return
	}

	summary, err := h.reader.PerformanceSummary(r.Context(), vehicleID)
	if errors.Is(err, storage.ErrNoCorrelatedSession) {
		writeError(w, http.StatusNotFound, "no active charging session found for vehicle "+vehicleID)
		return
	}
	if err != nil {
		h.logger.Error("failed to compute performance summary", zap.String("vehicle_id", vehicleID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
