package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/autocore-io/autocore/internal/gateway/core/model"
	"github.com/autocore-io/autocore/internal/gateway/preview"
)

type fakeSource struct {
	snap *model.ConfigSnapshot
	err  error
}

func (f *fakeSource) FetchSnapshot(ctx context.Context, deviceUUID string, preview bool) (*model.ConfigSnapshot, error) {
	return f.snap, f.err
}

type fakeCache struct {
	snap    *model.ConfigSnapshot
	savedAt time.Time
	saves   int
}

func (f *fakeCache) SaveSnapshot(ctx context.Context, deviceUUID string, snap *model.ConfigSnapshot) error {
	f.snap = snap
	f.saves++
	return nil
}

func (f *fakeCache) LoadSnapshot(ctx context.Context, deviceUUID string) (*model.ConfigSnapshot, time.Time, error) {
	if f.snap == nil {
		return nil, time.Time{}, errors.New("no cached snapshot")
	}
	return f.snap, f.savedAt, nil
}

func (f *fakeCache) SaveVehicle(ctx context.Context, v *model.Vehicle) error { return nil }

func (f *fakeCache) LoadVehicle(ctx context.Context) (*model.Vehicle, error) { return nil, nil }

func (f *fakeCache) ClearVehicle(ctx context.Context) error { return nil }

func (f *fakeCache) Close() error { return nil }

type fakeHealth struct {
	ups, downs int
}

func (f *fakeHealth) BackendUp(ctx context.Context)   { f.ups++ }
func (f *fakeHealth) BackendDown(ctx context.Context) { f.downs++ }
func (f *fakeHealth) State() string                   { return "online" }

func TestRefreshStoresAndCaches(t *testing.T) {
	source := &fakeSource{snap: &model.ConfigSnapshot{Timestamp: "t1"}}
	cache := &fakeCache{}
	health := &fakeHealth{}
	svc := NewService(source, cache, health, "esp32-abc", false)

	svc.Refresh(context.Background())

	snap, at, fromCache := svc.Snapshot()
	if snap == nil || snap.Timestamp != "t1" {
		t.Fatalf("snapshot = %+v", snap)
	}
	if at.IsZero() || fromCache {
		t.Errorf("at = %v, fromCache = %v", at, fromCache)
	}
	if cache.saves != 1 {
		t.Errorf("cache saves = %d", cache.saves)
	}
	if health.ups != 1 || health.downs != 0 {
		t.Errorf("health signals = %d up, %d down", health.ups, health.downs)
	}
}

func TestRefreshFallsBackToCacheOnce(t *testing.T) {
	savedAt := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	source := &fakeSource{err: errors.New("connection refused")}
	cache := &fakeCache{snap: &model.ConfigSnapshot{Timestamp: "cached"}, savedAt: savedAt}
	health := &fakeHealth{}
	svc := NewService(source, cache, health, "", false)

	svc.Refresh(context.Background())

	snap, at, fromCache := svc.Snapshot()
	if snap == nil || snap.Timestamp != "cached" {
		t.Fatalf("snapshot = %+v", snap)
	}
	if !fromCache || !at.Equal(savedAt) {
		t.Errorf("fromCache = %v, at = %v", fromCache, at)
	}
	if health.downs != 1 {
		t.Errorf("backend-down signals = %d", health.downs)
	}
}

func TestRefreshKeepsInMemorySnapshotOnFailure(t *testing.T) {
	source := &fakeSource{snap: &model.ConfigSnapshot{Timestamp: "live"}}
	cache := &fakeCache{snap: &model.ConfigSnapshot{Timestamp: "stale"}}
	svc := NewService(source, cache, &fakeHealth{}, "", false)

	svc.Refresh(context.Background())
	source.snap, source.err = nil, errors.New("down")
	svc.Refresh(context.Background())

	snap, _, fromCache := svc.Snapshot()
	if snap.Timestamp != "live" || fromCache {
		t.Errorf("in-memory snapshot replaced: %q fromCache=%v", snap.Timestamp, fromCache)
	}
}

func TestPreviewBeforeFirstRefresh(t *testing.T) {
	svc := NewService(&fakeSource{err: errors.New("down")}, nil, nil, "", true)

	m := svc.Preview()
	if m == nil || !m.PreviewMode {
		t.Fatalf("preview = %+v", m)
	}
	if len(m.Screens) != 0 || len(m.Telemetry) != 0 {
		t.Errorf("empty snapshot should yield empty model: %+v", m)
	}

	cm := svc.PreviewForClass(preview.ClassMobile)
	if cm.Class != preview.ClassMobile || len(cm.Screens) != 0 {
		t.Errorf("class model = %+v", cm)
	}
}

func TestStateWithoutHealth(t *testing.T) {
	svc := NewService(&fakeSource{}, nil, nil, "", false)
	if got := svc.State(); got != "unknown" {
		t.Errorf("state = %q", got)
	}
}
