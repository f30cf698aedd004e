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

type fakeLiveReader struct {
	meter   *models.MeterLiveStatus
	vehicle *models.VehicleLiveStatus
}

func (f *fakeLiveReader) MeterStatus(ctx context.Context, meterID string) (*models.MeterLiveStatus, error) {
	if f.meter == nil || f.meter.MeterID != meterID {
		return nil, storage.ErrLiveStatusNotFound
	}
	return f.meter, nil
}

func (f *fakeLiveReader) VehicleStatus(ctx context.Context, vehicleID string) (*models.VehicleLiveStatus, error) {
	if f.vehicle == nil || f.vehicle.VehicleID != vehicleID {
		return nil, storage.ErrLiveStatusNotFound
	}
	return f.vehicle, nil
}

func TestLiveMeterStatusReturned(t *testing.T) {
	lastSeen := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	reader := &fakeLiveReader{meter: &models.MeterLiveStatus{
		MeterID:       "m1",
		KwhConsumedAc: 5,
		Voltage:       230,
		LastSeen:      lastSeen,
	}}
	h := NewLiveStatusHandlers(reader, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/v1/live/meter/m1", nil)
	rec := httptest.NewRecorder()
	h.Meter(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["meterId"] != "m1" || payload["kwhConsumedAc"] != float64(5) {
		t.Fatalf("unexpected body: %v", payload)
	}
}

func TestLiveVehicleStatusNotFound(t *testing.T) {
	h := NewLiveStatusHandlers(&fakeLiveReader{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/v1/live/vehicle/v404", nil)
	rec := httptest.NewRecorder()
	h.Vehicle(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
