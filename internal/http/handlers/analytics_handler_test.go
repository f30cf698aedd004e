package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Navneet1266/energy-ingestion/internal/models"
	"github.com/Navneet1266/energy-ingestion/internal/storage"
)

type fakeReader struct {
	summary *models.PerformanceSummary
	err     error
}

func (f *fakeReader) PerformanceSummary(ctx context.Context, vehicleID string) (*models.PerformanceSummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.summary, nil
}

func getPerformance(t *testing.T, h *AnalyticsHandler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.Performance(rec, req)
	return rec
}

func TestPerformanceReturnsSummary(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	efficiency := 0.8
	reader := &fakeReader{summary: &models.PerformanceSummary{
		VehicleID:           "v1",
		PeriodStart:         now.Add(-24 * time.Hour),
		PeriodEnd:           now,
		TotalAcConsumedKwh:  12.5,
		TotalDcDeliveredKwh: 10.0,
		EfficiencyRatio:     &efficiency,
		AvgBatteryTemp:      25.5,
		ReadingsCount:       models.ReadingsCount{Vehicle: 2, Meter: 2},
	}}
	h := NewAnalyticsHandler(reader, zap.NewNop())

	rec := getPerformance(t, h, "/v1/analytics/performance/v1")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["vehicleId"] != "v1" {
		t.Fatalf("unexpected vehicle id: %v", payload["vehicleId"])
	}
	if payload["efficiencyRatio"] != 0.8 {
		t.Fatalf("expected efficiency 0.8, got %v", payload["efficiencyRatio"])
	}
	counts := payload["readingsCount"].(map[string]interface{})
	if counts["vehicle"] != float64(2) || counts["meter"] != float64(2) {
		t.Fatalf("unexpected readings count: %v", counts)
	}
}

func TestPerformanceNullEfficiencySerialized(t *testing.T) {
	reader := &fakeReader{summary: &models.PerformanceSummary{VehicleID: "v3"}}
	h := NewAnalyticsHandler(reader, zap.NewNop())

	rec := getPerformance(t, h, "/v1/analytics/performance/v3")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	value, present := payload["efficiencyRatio"]
	if !present || value != nil {
		t.Fatalf("expected efficiencyRatio to serialize as null, got %v", value)
	}
}

func TestPerformanceNoSessionReturnsNotFound(t *testing.T) {
	reader := &fakeReader{err: storage.ErrNoCorrelatedSession}
	h := NewAnalyticsHandler(reader, zap.NewNop())

	rec := getPerformance(t, h, "/v1/analytics/performance/v2")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestPerformanceMissingVehicleID(t *testing.T) {
	h := NewAnalyticsHandler(&fakeReader{}, zap.NewNop())

	rec := getPerformance(t, h, "/v1/analytics/performance/")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
