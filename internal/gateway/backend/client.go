// Package backend is the REST adapter for the AutoCore backend API. It
// implements core.SnapshotSource, vehicle.API and the relay publish fallback
// on top of pkg/rest.
package backend

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/autocore-io/autocore/internal/gateway/core"
	"github.com/autocore-io/autocore/internal/gateway/core/model"
	"github.com/autocore-io/autocore/internal/pkg/metrics"
	"github.com/autocore-io/autocore/pkg/log"
	"github.com/autocore-io/autocore/pkg/options"
	"github.com/autocore-io/autocore/pkg/rest"
)

var _ core.Publisher = (*Client)(nil)

// Client talks to the backend under its /api prefix. Read calls go through
// the retry helper; mutations run exactly once.
type Client struct {
	rc         *rest.Client
	maxRetries int
	retryDelay time.Duration
	logger     log.Logger
}

// NewClient creates a backend Client from the given options.
func NewClient(opts *options.BackendOptions) *Client {
	return &Client{
		rc:         rest.NewClient(opts.BaseURL+"/api", opts.Timeout),
		maxRetries: opts.MaxRetries,
		retryDelay: opts.RetryDelay,
		logger:     log.WithName("backend"),
	}
}

// FetchSnapshot retrieves the full config snapshot, optionally scoped to a
// device and optionally in preview mode.
func (c *Client) FetchSnapshot(ctx context.Context, deviceUUID string, preview bool) (*model.ConfigSnapshot, error) {
	defer metrics.ObserveBackendRequest("fetch_snapshot", time.Now())

	path := "/config/full"
	if deviceUUID != "" {
		path += "/" + url.PathEscape(deviceUUID)
	}
	if preview {
		path += "?preview=true"
	}

	snap, err := getRetried[model.ConfigSnapshot](ctx, c, path)
	if err != nil {
		return nil, fmt.Errorf("fetch snapshot: %w", err)
	}
	return snap, nil
}

// Devices lists the registered ESP32 boards.
func (c *Client) Devices(ctx context.Context) ([]model.Device, error) {
	defer metrics.ObserveBackendRequest("list_devices", time.Now())

	out, err := rest.Retry(ctx, c.maxRetries, c.retryDelay, func(ctx context.Context) ([]model.Device, error) {
		var devices []model.Device
		if err := c.rc.Get(ctx, "/devices", &devices); err != nil {
			return nil, err
		}
		return devices, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	return out, nil
}

// RelayBoards lists the relay boards with their channels.
func (c *Client) RelayBoards(ctx context.Context) ([]model.RelayBoard, error) {
	defer metrics.ObserveBackendRequest("list_relay_boards", time.Now())

	out, err := rest.Retry(ctx, c.maxRetries, c.retryDelay, func(ctx context.Context) ([]model.RelayBoard, error) {
		var boards []model.RelayBoard
		if err := c.rc.Get(ctx, "/relay-boards", &boards); err != nil {
			return nil, err
		}
		return boards, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list relay boards: %w", err)
	}
	return out, nil
}

// GetVehicle fetches the single vehicle record.
func (c *Client) GetVehicle(ctx context.Context) (*model.Vehicle, error) {
	defer metrics.ObserveBackendRequest("get_vehicle", time.Now())
	return getRetried[model.Vehicle](ctx, c, "/vehicle")
}

// UpsertVehicle creates or replaces the vehicle record.
func (c *Client) UpsertVehicle(ctx context.Context, v *model.Vehicle) (*model.Vehicle, error) {
	defer metrics.ObserveBackendRequest("upsert_vehicle", time.Now())

	var saved model.Vehicle
	if err := c.rc.Post(ctx, "/vehicle", v, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// DeleteVehicle removes the vehicle record.
func (c *Client) DeleteVehicle(ctx context.Context) error {
	defer metrics.ObserveBackendRequest("delete_vehicle", time.Now())
	return c.rc.Delete(ctx, "/vehicle")
}

// ResetVehicle restores the vehicle record to factory defaults.
func (c *Client) ResetVehicle(ctx context.Context) error {
	defer metrics.ObserveBackendRequest("reset_vehicle", time.Now())
	return c.rc.Delete(ctx, "/vehicle/reset")
}

// UpdateOdometer patches the current mileage.
func (c *Client) UpdateOdometer(ctx context.Context, km int) (*model.Vehicle, error) {
	defer metrics.ObserveBackendRequest("update_odometer", time.Now())
	return c.patchVehicle(ctx, "/vehicle/odometer", map[string]any{"current_mileage": km})
}

// UpdateLocation patches the vehicle position.
func (c *Client) UpdateLocation(ctx context.Context, lat, lon float64) (*model.Vehicle, error) {
	defer metrics.ObserveBackendRequest("update_location", time.Now())
	return c.patchVehicle(ctx, "/vehicle/location", map[string]any{
		"latitude":  lat,
		"longitude": lon,
	})
}

// UpdateVehicleStatus patches the vehicle lifecycle status.
func (c *Client) UpdateVehicleStatus(ctx context.Context, status string) (*model.Vehicle, error) {
	defer metrics.ObserveBackendRequest("update_status", time.Now())
	return c.patchVehicle(ctx, "/vehicle/status", map[string]any{"status": status})
}

// MaintenanceHistory lists the recorded services.
func (c *Client) MaintenanceHistory(ctx context.Context) ([]model.MaintenanceRecord, error) {
	defer metrics.ObserveBackendRequest("list_maintenance", time.Now())

	out, err := rest.Retry(ctx, c.maxRetries, c.retryDelay, func(ctx context.Context) ([]model.MaintenanceRecord, error) {
		var records []model.MaintenanceRecord
		if err := c.rc.Get(ctx, "/vehicle/maintenance", &records); err != nil {
			return nil, err
		}
		return records, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list maintenance history: %w", err)
	}
	return out, nil
}

// RecordMaintenance appends a service entry.
func (c *Client) RecordMaintenance(ctx context.Context, rec *model.MaintenanceRecord) error {
	defer metrics.ObserveBackendRequest("record_maintenance", time.Now())
	return c.rc.Post(ctx, "/vehicle/maintenance", rec, nil)
}

// Publish implements core.Publisher over the backend relay. The bridge uses
// it as the fallback transport when the broker path fails.
func (c *Client) Publish(ctx context.Context, topic string, payload map[string]any) error {
	return c.PublishMQTT(ctx, topic, payload)
}

// PublishMQTT relays an MQTT publish through the backend. Used when the
// gateway has no direct broker connection.
func (c *Client) PublishMQTT(ctx context.Context, topic string, payload map[string]any) error {
	defer metrics.ObserveBackendRequest("publish_mqtt", time.Now())

	body := map[string]any{
		"topic":   topic,
		"payload": payload,
	}
	if err := c.rc.Post(ctx, "/mqtt/publish", body, nil); err != nil {
		return fmt.Errorf("relay publish to %s: %w", topic, err)
	}
	return nil
}

func (c *Client) patchVehicle(ctx context.Context, path string, body map[string]any) (*model.Vehicle, error) {
	var v model.Vehicle
	if err := c.rc.Patch(ctx, path, body, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// getRetried runs a retried GET that decodes into a freshly allocated T.
func getRetried[T any](ctx context.Context, c *Client, path string) (*T, error) {
	return rest.Retry(ctx, c.maxRetries, c.retryDelay, func(ctx context.Context) (*T, error) {
		out := new(T)
		if err := c.rc.Get(ctx, path, out); err != nil {
			return nil, err
		}
		return out, nil
	})
}
