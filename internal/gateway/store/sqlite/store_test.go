package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/autocore-io/autocore/internal/gateway/core/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "gateway.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	snap := &model.ConfigSnapshot{
		Screens:   []model.Screen{{ID: 1, Name: "Painel"}},
		Telemetry: map[string]any{"speed": 88.0},
		Timestamp: "2026-08-31T12:00:00Z",
	}
	if err := s.SaveSnapshot(ctx, "esp32-abc", snap); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	got, savedAt, err := s.LoadSnapshot(ctx, "esp32-abc")
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if savedAt.IsZero() {
		t.Error("savedAt should be set")
	}
	if len(got.Screens) != 1 || got.Screens[0].Name != "Painel" {
		t.Errorf("screens = %+v", got.Screens)
	}
	if got.Telemetry["speed"] != 88.0 {
		t.Errorf("telemetry = %v", got.Telemetry)
	}
}

func TestSnapshotOverwrite(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveSnapshot(ctx, "", &model.ConfigSnapshot{Timestamp: "old"}); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	if err := s.SaveSnapshot(ctx, "", &model.ConfigSnapshot{Timestamp: "new"}); err != nil {
		t.Fatalf("SaveSnapshot overwrite: %v", err)
	}

	got, _, err := s.LoadSnapshot(ctx, "")
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if got.Timestamp != "new" {
		t.Errorf("timestamp = %q, want the overwritten row", got.Timestamp)
	}
}

func TestLoadSnapshotFallsBackToGenericScope(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveSnapshot(ctx, "", &model.ConfigSnapshot{Timestamp: "generic"}); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	got, _, err := s.LoadSnapshot(ctx, "esp32-unknown")
	if err != nil {
		t.Fatalf("LoadSnapshot should fall back to generic scope: %v", err)
	}
	if got.Timestamp != "generic" {
		t.Errorf("timestamp = %q", got.Timestamp)
	}
}

func TestLoadSnapshotMiss(t *testing.T) {
	s := newTestStore(t)

	_, _, err := s.LoadSnapshot(context.Background(), "esp32-abc")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestVehicleRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	km := 45230
	if err := s.SaveVehicle(ctx, &model.Vehicle{Plate: "ABC1234", CurrentMileage: &km}); err != nil {
		t.Fatalf("SaveVehicle: %v", err)
	}

	got, err := s.LoadVehicle(ctx)
	if err != nil {
		t.Fatalf("LoadVehicle: %v", err)
	}
	if got.Plate != "ABC1234" || got.CurrentMileage == nil || *got.CurrentMileage != 45230 {
		t.Errorf("vehicle = %+v", got)
	}

	if err := s.SaveVehicle(ctx, &model.Vehicle{Plate: "XYZ9876"}); err != nil {
		t.Fatalf("SaveVehicle overwrite: %v", err)
	}
	got, err = s.LoadVehicle(ctx)
	if err != nil {
		t.Fatalf("LoadVehicle: %v", err)
	}
	if got.Plate != "XYZ9876" {
		t.Errorf("plate = %q, single-record table should overwrite", got.Plate)
	}
}

func TestVehicleClearAndEmptyLoad(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	got, err := s.LoadVehicle(ctx)
	if err != nil || got != nil {
		t.Fatalf("empty LoadVehicle = %+v, %v; want nil, nil", got, err)
	}

	if err := s.SaveVehicle(ctx, &model.Vehicle{Plate: "ABC1234"}); err != nil {
		t.Fatalf("SaveVehicle: %v", err)
	}
	if err := s.ClearVehicle(ctx); err != nil {
		t.Fatalf("ClearVehicle: %v", err)
	}

	got, err = s.LoadVehicle(ctx)
	if err != nil || got != nil {
		t.Errorf("after clear LoadVehicle = %+v, %v; want nil, nil", got, err)
	}
}
