package core

import (
	"context"
	"time"

	"github.com/autocore-io/autocore/internal/gateway/core/model"
)

// SnapshotSource delivers full config snapshots. Implemented by the backend
// REST adapter.
type SnapshotSource interface {
	// FetchSnapshot retrieves the current snapshot. deviceUUID may be empty
	// for the generic (non device-scoped) configuration. preview asks the
	// backend to include demo-friendly defaults.
	FetchSnapshot(ctx context.Context, deviceUUID string, preview bool) (*model.ConfigSnapshot, error)
}

// SnapshotCache persists the last-known-good snapshot and vehicle record so
// displays keep rendering while the backend is unreachable.
type SnapshotCache interface {
	SaveSnapshot(ctx context.Context, deviceUUID string, snap *model.ConfigSnapshot) error
	LoadSnapshot(ctx context.Context, deviceUUID string) (*model.ConfigSnapshot, time.Time, error)

	SaveVehicle(ctx context.Context, v *model.Vehicle) error
	LoadVehicle(ctx context.Context) (*model.Vehicle, error)
	ClearVehicle(ctx context.Context) error

	Close() error
}

// Publisher sends payloads into the autocore MQTT namespace. Implemented by
// the bridge (direct broker connection) and by the backend relay fallback.
type Publisher interface {
	// Publish stamps the payload with protocol_version and timestamp when
	// missing, validates the topic and sends it.
	Publish(ctx context.Context, topic string, payload map[string]any) error
}
