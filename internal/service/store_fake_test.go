package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Navneet1266/energy-ingestion/internal/models"
	"github.com/Navneet1266/energy-ingestion/internal/storage"
)

// fakeStore implements storage.Store in memory. Writes made through a fake
// transaction stay staged until Commit, so rollback semantics can be
// observed from the outside.
type fakeStore struct {
	mu sync.Mutex

	meterHistory   []models.MeterReading
	vehicleHistory []models.VehicleReading
	meterLive      map[string]models.MeterLiveStatus
	vehicleLive    map[string]models.VehicleLiveStatus
	sessions       []models.ChargingSession

	failMeterID   string
	failVehicleID string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		meterLive:   make(map[string]models.MeterLiveStatus),
		vehicleLive: make(map[string]models.VehicleLiveStatus),
	}
}

var errInjectedWrite = errors.New("injected write failure")

func (f *fakeStore) Begin(ctx context.Context) (storage.Tx, error) {
	return &fakeTx{store: f}, nil
}

func (f *fakeStore) ResolveMeterIDs(ctx context.Context, vehicleID string, windowStart time.Time) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	seen := make(map[string]bool)
	var meterIDs []string
	for _, s := range f.sessions {
		if s.VehicleID != vehicleID {
			continue
		}
		if !s.IsActive && (s.EndedAt == nil || !s.EndedAt.After(windowStart)) {
			continue
		}
		if !seen[s.MeterID] {
			seen[s.MeterID] = true
			meterIDs = append(meterIDs, s.MeterID)
		}
	}
	if len(meterIDs) == 0 {
		return nil, storage.ErrNoCorrelatedSession
	}
	return meterIDs, nil
}

func (f *fakeStore) VehicleWindowAggregate(ctx context.Context, vehicleID string, start, end time.Time) (storage.VehicleAggregate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var agg storage.VehicleAggregate
	var tempSum float64
	for _, r := range f.vehicleHistory {
		if r.VehicleID != vehicleID || !inWindow(r.Timestamp, start, end) {
			continue
		}
		agg.TotalDcKwh += r.KwhDeliveredDc
		tempSum += r.BatteryTemp
		agg.Readings++
	}
	if agg.Readings > 0 {
		agg.AvgBatteryTemp = tempSum / float64(agg.Readings)
	}
	return agg, nil
}

func (f *fakeStore) MeterWindowAggregate(ctx context.Context, meterIDs []string, start, end time.Time) (storage.MeterAggregate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ids := make(map[string]bool, len(meterIDs))
	for _, id := range meterIDs {
		ids[id] = true
	}

	var agg storage.MeterAggregate
	for _, r := range f.meterHistory {
		if !ids[r.MeterID] || !inWindow(r.Timestamp, start, end) {
			continue
		}
		agg.TotalAcKwh += r.KwhConsumedAc
		agg.Readings++
	}
	return agg, nil
}

func (f *fakeStore) MeterLiveStatus(ctx context.Context, meterID string) (*models.MeterLiveStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	status, ok := f.meterLive[meterID]
	if !ok {
		return nil, storage.ErrLiveStatusNotFound
	}
	return &status, nil
}

func (f *fakeStore) VehicleLiveStatus(ctx context.Context, vehicleID string) (*models.VehicleLiveStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	status, ok := f.vehicleLive[vehicleID]
	if !ok {
		return nil, storage.ErrLiveStatusNotFound
	}
	return &status, nil
}

// inWindow matches the SQL contract: inclusive at both bounds.
func inWindow(ts, start, end time.Time) bool {
	return !ts.Before(start) && !ts.After(end)
}

// fakeTx stages writes and applies them on Commit.
type fakeTx struct {
	store *fakeStore

	meterHistory   []models.MeterReading
	vehicleHistory []models.VehicleReading
	meterLive      []models.MeterReading
	vehicleLive    []models.VehicleReading

	done bool
}

func (t *fakeTx) InsertMeterHistory(ctx context.Context, r models.MeterReading) error {
	if r.MeterID == t.store.failMeterID {
		return errInjectedWrite
	}
	t.meterHistory = append(t.meterHistory, r)
	return nil
}

func (t *fakeTx) InsertMeterHistoryBatch(ctx context.Context, readings []models.MeterReading) error {
	for _, r := range readings {
		if err := t.InsertMeterHistory(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

func (t *fakeTx) UpsertMeterLiveStatus(ctx context.Context, r models.MeterReading) error {
	if r.MeterID == t.store.failMeterID {
		return errInjectedWrite
	}
	t.meterLive = append(t.meterLive, r)
	return nil
}

func (t *fakeTx) InsertVehicleHistory(ctx context.Context, r models.VehicleReading) error {
	if r.VehicleID == t.store.failVehicleID {
		return errInjectedWrite
	}
	t.vehicleHistory = append(t.vehicleHistory, r)
	return nil
}

func (t *fakeTx) InsertVehicleHistoryBatch(ctx context.Context, readings []models.VehicleReading) error {
	for _, r := range readings {
		if err := t.InsertVehicleHistory(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

func (t *fakeTx) UpsertVehicleLiveStatus(ctx context.Context, r models.VehicleReading) error {
	if r.VehicleID == t.store.failVehicleID {
		return errInjectedWrite
	}
	t.vehicleLive = append(t.vehicleLive, r)
	return nil
}

func (t *fakeTx) Commit() error {
	if t.done {
		return errors.New("tx already finished")
	}
	t.done = true

	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	t.store.meterHistory = append(t.store.meterHistory, t.meterHistory...)
	t.store.vehicleHistory = append(t.store.vehicleHistory, t.vehicleHistory...)
	for _, r := range t.meterLive {
		t.store.meterLive[r.MeterID] = models.MeterLiveStatus{
			MeterID:       r.MeterID,
			KwhConsumedAc: r.KwhConsumedAc,
			Voltage:       r.Voltage,
			LastSeen:      r.Timestamp,
		}
	}
	for _, r := range t.vehicleLive {
		t.store.vehicleLive[r.VehicleID] = models.VehicleLiveStatus{
			VehicleID:      r.VehicleID,
			Soc:            r.Soc,
			KwhDeliveredDc: r.KwhDeliveredDc,
			BatteryTemp:    r.BatteryTemp,
			LastSeen:       r.Timestamp,
		}
	}
	return nil
}

func (t *fakeTx) Rollback() error {
	t.done = true
	return nil
}
