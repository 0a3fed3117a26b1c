// Package server runs the gateway's long-lived loops under one errgroup.
package server

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/autocore-io/autocore/internal/gateway/bridge"
	"github.com/autocore-io/autocore/internal/gateway/core"
	"github.com/autocore-io/autocore/internal/gateway/lifecycle"
	"github.com/autocore-io/autocore/internal/gateway/poller"
	httpserver "github.com/autocore-io/autocore/internal/gateway/server/http"
	"github.com/autocore-io/autocore/internal/gateway/watch"
	"github.com/autocore-io/autocore/pkg/log"
	"github.com/autocore-io/autocore/pkg/mqtt"
	"github.com/autocore-io/autocore/pkg/mqtt/topic"
)

// Deps are the long-lived components the GatewayServer drives.
type Deps struct {
	Lifecycle         *lifecycle.Machine
	Mqtt              mqtt.Client
	Topics            *topic.Builder
	Publisher         *bridge.Publisher
	Poller            *poller.Poller
	Watcher           *watch.Watcher // optional
	HTTPServer        *httpserver.Server
	Cache             core.SnapshotCache // optional, closed on shutdown
	DeviceUUID        string
	HeartbeatInterval time.Duration
}

// GatewayServer owns the daemon's runtime loops.
type GatewayServer struct {
	deps      Deps
	startedAt time.Time
	logger    log.Logger
}

// NewGatewayServer creates a GatewayServer from its dependencies.
func NewGatewayServer(deps Deps) *GatewayServer {
	return &GatewayServer{
		deps:   deps,
		logger: log.WithName("server"),
	}
}

// Run starts every loop and blocks until ctx is canceled or one loop fails.
func (s *GatewayServer) Run(ctx context.Context) error {
	s.startedAt = time.Now()
	s.deps.Lifecycle.Start(ctx)

	if s.deps.Cache != nil {
		defer func() {
			if err := s.deps.Cache.Close(); err != nil {
				s.logger.Warn("Failed to close cache", "err", err.Error())
			}
		}()
	}

	if err := s.deps.Mqtt.Start(ctx); err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		s.deps.Mqtt.Disconnect(disconnectCtx)
	}()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return ignoreCanceled(s.deps.Poller.Run(ctx)) })
	g.Go(func() error { return s.deps.HTTPServer.Start(ctx) })
	g.Go(func() error { return ignoreCanceled(s.runBridge(ctx)) })

	if s.deps.Watcher != nil {
		g.Go(func() error { return ignoreCanceled(s.deps.Watcher.Run(ctx)) })
	}

	s.logger.Info("Gateway started", "device_uuid", s.deps.DeviceUUID)
	return g.Wait()
}

// runBridge waits for the broker, announces the gateway and then publishes
// status heartbeats. Publish failures flip the lifecycle to broker-down; the
// next successful publish flips it back.
func (s *GatewayServer) runBridge(ctx context.Context) error {
	if err := s.deps.Mqtt.AwaitConnection(ctx); err != nil {
		return err
	}
	s.deps.Lifecycle.BrokerUp(ctx)

	if err := s.deps.Publisher.Announce(ctx, s.deps.DeviceUUID, ""); err != nil {
		s.logger.Warn("Discovery announce failed", "err", err.Error())
	}

	// Subscribe for remote refresh commands before entering the status loop.
	refreshTopic := s.deps.Topics.GatewayCommand("refresh")
	err := s.deps.Mqtt.Subscribe(ctx, refreshTopic, 1, func(_ context.Context, _ string, _ []byte) {
		s.logger.Info("Refresh command received")
		s.deps.Poller.TriggerRefresh()
	})
	if err != nil {
		s.logger.Warn("Failed to subscribe to refresh commands", "err", err.Error())
	}

	ticker := time.NewTicker(s.deps.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			state := s.deps.Lifecycle.State()
			if err := s.deps.Publisher.GatewayStatus(ctx, state, time.Since(s.startedAt)); err != nil {
				s.logger.Warn("Status publish failed", "err", err.Error())
				s.deps.Lifecycle.BrokerDown(ctx)
				continue
			}
			s.deps.Lifecycle.BrokerUp(ctx)
		}
	}
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
