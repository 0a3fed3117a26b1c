package core

import (
	"context"
	"sync"
	"time"

	"github.com/autocore-io/autocore/internal/gateway/core/model"
	"github.com/autocore-io/autocore/internal/gateway/preview"
	"github.com/autocore-io/autocore/internal/pkg/metrics"
	"github.com/autocore-io/autocore/pkg/log"
)

// Health receives backend reachability signals from the refresh loop.
// Implemented by the lifecycle machine.
type Health interface {
	BackendUp(ctx context.Context)
	BackendDown(ctx context.Context)
	State() string
}

// Service owns the in-memory snapshot and the refresh cycle. It is the
// single source the HTTP surface reads from.
type Service struct {
	source     SnapshotSource
	cache      SnapshotCache
	health     Health
	adapter    *preview.Adapter
	deviceUUID string
	preview    bool
	logger     log.Logger

	mu        sync.RWMutex
	snap      *model.ConfigSnapshot
	snapAt    time.Time
	fromCache bool
}

// NewService creates a Service. cache and health may be nil.
func NewService(source SnapshotSource, cache SnapshotCache, health Health, deviceUUID string, previewMode bool) *Service {
	return &Service{
		source:     source,
		cache:      cache,
		health:     health,
		adapter:    preview.NewAdapter(nil),
		deviceUUID: deviceUUID,
		preview:    previewMode,
		logger:     log.WithName("core"),
	}
}

// Refresh runs one fetch cycle. Failures never propagate: the service falls
// back to the cached snapshot and keeps whatever it already holds.
func (s *Service) Refresh(ctx context.Context) {
	start := time.Now()
	snap, err := s.source.FetchSnapshot(ctx, s.deviceUUID, s.preview)
	metrics.RefreshDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		s.logger.Warn("Snapshot fetch failed", "err", err.Error())
		if s.health != nil {
			s.health.BackendDown(ctx)
		}
		s.fallbackToCache(ctx)
		return
	}

	if s.health != nil {
		s.health.BackendUp(ctx)
	}

	s.mu.Lock()
	s.snap = snap
	s.snapAt = time.Now()
	s.fromCache = false
	s.mu.Unlock()

	metrics.RefreshTotal.WithLabelValues("success").Inc()

	if s.cache != nil {
		if err := s.cache.SaveSnapshot(ctx, s.deviceUUID, snap); err != nil {
			s.logger.Warn("Failed to persist snapshot", "err", err.Error())
		}
	}
}

// fallbackToCache loads the last-known-good snapshot when nothing is held in
// memory yet. A populated in-memory snapshot always wins over the cache.
func (s *Service) fallbackToCache(ctx context.Context) {
	s.mu.RLock()
	loaded := s.snap != nil
	s.mu.RUnlock()
	if loaded || s.cache == nil {
		metrics.RefreshTotal.WithLabelValues("failed").Inc()
		return
	}

	snap, savedAt, err := s.cache.LoadSnapshot(ctx, s.deviceUUID)
	if err != nil {
		s.logger.Warn("No cached snapshot available", "err", err.Error())
		metrics.RefreshTotal.WithLabelValues("failed").Inc()
		return
	}

	s.mu.Lock()
	s.snap = snap
	s.snapAt = savedAt
	s.fromCache = true
	s.mu.Unlock()

	s.logger.Info("Serving cached snapshot", "saved_at", savedAt.Format(time.RFC3339))
	metrics.RefreshTotal.WithLabelValues("cached").Inc()
}

// Snapshot returns the current snapshot, when it was obtained and whether it
// came from the local cache. The snapshot may be nil before the first
// successful refresh.
func (s *Service) Snapshot() (*model.ConfigSnapshot, time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap, s.snapAt, s.fromCache
}

// Preview adapts the current snapshot into a render-ready model.
func (s *Service) Preview() *preview.Model {
	snap, _, _ := s.Snapshot()
	return s.adapter.Adapt(snap)
}

// PreviewForClass adapts and renders the current snapshot for one device
// class.
func (s *Service) PreviewForClass(class preview.DeviceClass) *preview.ClassModel {
	return s.Preview().ForClass(class)
}

// State reports the lifecycle state, or "unknown" without a health tracker.
func (s *Service) State() string {
	if s.health == nil {
		return "unknown"
	}
	return s.health.State()
}
