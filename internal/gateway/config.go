// Package gateway wires the smart-gateway daemon: backend adapter, local
// cache, lifecycle machine, MQTT bridge, refresh loop and the HTTP surface.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/autocore-io/autocore/internal/gateway/backend"
	"github.com/autocore-io/autocore/internal/gateway/bridge"
	"github.com/autocore-io/autocore/internal/gateway/core"
	"github.com/autocore-io/autocore/internal/gateway/lifecycle"
	"github.com/autocore-io/autocore/internal/gateway/poller"
	"github.com/autocore-io/autocore/internal/gateway/server"
	httpserver "github.com/autocore-io/autocore/internal/gateway/server/http"
	"github.com/autocore-io/autocore/internal/gateway/store/sqlite"
	"github.com/autocore-io/autocore/internal/gateway/vehicle"
	"github.com/autocore-io/autocore/internal/gateway/watch"
	"github.com/autocore-io/autocore/internal/pkg/metrics"
	"github.com/autocore-io/autocore/pkg/mqtt"
	"github.com/autocore-io/autocore/pkg/mqtt/topic"
	"github.com/autocore-io/autocore/pkg/options"
)

// Config aggregates every option group the daemon needs.
type Config struct {
	GatewayOptions *options.GatewayOptions
	HttpOptions    *options.HttpOptions
	MqttOptions    *options.MqttOptions
	BackendOptions *options.BackendOptions
	StoreOptions   *options.StoreOptions
}

// gatewayWill builds the retained last-will status message the broker
// publishes when the gateway disappears without disconnecting. No timestamp:
// the broker sends the will long after it was registered.
func gatewayWill(topics *topic.Builder) (string, []byte) {
	payload, _ := json.Marshal(map[string]any{
		"status":           "offline",
		"protocol_version": bridge.ProtocolVersion,
	})
	return topics.GatewayStatus(), payload
}

var lifecycleStates = []string{
	lifecycle.StateOffline,
	lifecycle.StateConnecting,
	lifecycle.StateOnline,
	lifecycle.StateDegraded,
}

// NewGatewayServer assembles the daemon from the config. The returned server
// owns the cache handle and closes it when Run returns.
func (cfg *Config) NewGatewayServer(ctx context.Context) (*server.GatewayServer, error) {
	// 1. Secondary adapters: backend REST and the local cache.
	backendClient := backend.NewClient(cfg.BackendOptions)

	var (
		snapCache    core.SnapshotCache
		vehicleCache vehicle.Cache
	)
	if cfg.StoreOptions.Path != "" {
		store, err := sqlite.Open(ctx, cfg.StoreOptions.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open snapshot cache: %w", err)
		}
		snapCache = store
		vehicleCache = store
	}

	// 2. Lifecycle machine, mirrored into the metrics registry.
	life := lifecycle.NewMachine()
	life.OnTransition(func(_, to string) {
		metrics.SetLifecycleState(lifecycleStates, to)
	})

	// 3. Core domain services.
	svc := core.NewService(backendClient, snapCache, life, cfg.GatewayOptions.DeviceUUID, cfg.GatewayOptions.Preview)
	vehicleSvc := vehicle.NewService(backendClient, vehicleCache)

	// 4. MQTT bridge. The broker announces the gateway offline for us when
	// the connection drops without a clean disconnect.
	topics := topic.NewBuilder(cfg.MqttOptions.TopicRoot)

	mqttCfg := cfg.MqttOptions.ToClientConfig()
	mqttCfg.WillTopic, mqttCfg.WillPayload = gatewayWill(topics)
	mqttCfg.WillQoS = 1
	mqttCfg.WillRetain = true

	mqttClient, err := mqtt.NewClient(mqttCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to init mqtt client: %w", err)
	}
	publisher := bridge.NewPublisher(mqttClient, topics, backendClient)

	// 5. Refresh loop and optional overrides watcher.
	pol := poller.New(cfg.GatewayOptions.RefreshInterval, svc.Refresh)

	var watcher *watch.Watcher
	if cfg.GatewayOptions.OverridesFile != "" {
		watcher = watch.New(cfg.GatewayOptions.OverridesFile, pol.TriggerRefresh)
	}

	// 6. HTTP surface.
	httpSrv := httpserver.NewServer(cfg.HttpOptions, httpserver.Deps{
		Core:           svc,
		Vehicle:        vehicleSvc,
		Ready:          life.Ready,
		TriggerRefresh: pol.TriggerRefresh,
		StartedAt:      time.Now(),
	})

	return server.NewGatewayServer(server.Deps{
		Lifecycle:         life,
		Mqtt:              mqttClient,
		Topics:            topics,
		Publisher:         publisher,
		Poller:            pol,
		Watcher:           watcher,
		HTTPServer:        httpSrv,
		Cache:             snapCache,
		DeviceUUID:        cfg.GatewayOptions.DeviceUUID,
		HeartbeatInterval: cfg.GatewayOptions.HeartbeatInterval,
	}), nil
}
