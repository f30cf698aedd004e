package service

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/Navneet1266/energy-ingestion/internal/models"
	"github.com/Navneet1266/energy-ingestion/internal/storage"
)

// summaryWindow is the rolling lookback for the default analytics entry point.
const summaryWindow = 24 * time.Hour

// AnalyticsService answers the performance query: correlate a vehicle with
// its meters through charging sessions, aggregate both history collections
// over one window, and derive the efficiency ratio.
type AnalyticsService struct {
	store  storage.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewAnalyticsService returns the aggregator.
func NewAnalyticsService(store storage.Store, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// PerformanceSummary computes the 24-hour summary for a vehicle. The window
// is fixed once here and reused for correlation and both aggregates.
func (s *AnalyticsService) PerformanceSummary(ctx context.Context, vehicleID string) (*models.PerformanceSummary, error) {
	end := s.now().UTC()
	start := end.Add(-summaryWindow)
	return s.Summarize(ctx, vehicleID, start, end)
}

// Summarize computes the performance summary over an explicit window,
// inclusive at both bounds. storage.ErrNoCorrelatedSession propagates
// unchanged when no session links the vehicle to a meter in the window.
func (s *AnalyticsService) Summarize(ctx context.Context, vehicleID string, start, end time.Time) (*models.PerformanceSummary, error) {
	meterIDs, err := s.store.ResolveMeterIDs(ctx, vehicleID, start)
	if err != nil {
		return nil, err
	}

	// Two independent reads, not one snapshot. Under concurrent ingestion
	// they may reflect slightly different points in time, which is accepted
	// for dashboard-grade accuracy.
	vehicleAgg, err := s.store.VehicleWindowAggregate(ctx, vehicleID, start, end)
	if err != nil {
		return nil, err
	}
	meterAgg, err := s.store.MeterWindowAggregate(ctx, meterIDs, start, end)
	if err != nil {
		return nil, err
	}

	var efficiency *float64
	if meterAgg.TotalAcKwh > 0 {
		ratio := roundTo(vehicleAgg.TotalDcKwh/meterAgg.TotalAcKwh, 4)
		efficiency = &ratio
	}

	s.logger.Debug("performance summary computed",
		zap.String("vehicle_id", vehicleID),
		zap.Int("meters", len(meterIDs)),
		zap.Int64("vehicle_readings", vehicleAgg.Readings),
		zap.Int64("meter_readings", meterAgg.Readings),
	)

	return &models.PerformanceSummary{
		VehicleID:           vehicleID,
		PeriodStart:         start,
		PeriodEnd:           end,
		TotalAcConsumedKwh:  roundTo(meterAgg.TotalAcKwh, 3),
		TotalDcDeliveredKwh: roundTo(vehicleAgg.TotalDcKwh, 3),
		EfficiencyRatio:     efficiency,
		AvgBatteryTemp:      roundTo(vehicleAgg.AvgBatteryTemp, 2),
		ReadingsCount: models.ReadingsCount{
			Vehicle: vehicleAgg.Readings,
			Meter:   meterAgg.Readings,
		},
	}, nil
}

// roundTo rounds half away from zero at the given number of decimal places.
func roundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}
