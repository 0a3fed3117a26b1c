// Package vehicle manages the system's single vehicle record: display
// formatting, the maintenance-due heuristic and the backend operations.
package vehicle

import (
	"context"
	"errors"
	"time"

	"github.com/autocore-io/autocore/internal/gateway/core/model"
	"github.com/autocore-io/autocore/pkg/log"
	"github.com/autocore-io/autocore/pkg/rest"
)

// API is the subset of backend operations the vehicle service needs.
type API interface {
	GetVehicle(ctx context.Context) (*model.Vehicle, error)
	UpsertVehicle(ctx context.Context, v *model.Vehicle) (*model.Vehicle, error)
	DeleteVehicle(ctx context.Context) error
	ResetVehicle(ctx context.Context) error
	UpdateOdometer(ctx context.Context, km int) (*model.Vehicle, error)
	UpdateLocation(ctx context.Context, lat, lon float64) (*model.Vehicle, error)
	UpdateVehicleStatus(ctx context.Context, status string) (*model.Vehicle, error)
	MaintenanceHistory(ctx context.Context) ([]model.MaintenanceRecord, error)
	RecordMaintenance(ctx context.Context, rec *model.MaintenanceRecord) error
}

// Cache stores the last known vehicle record locally.
type Cache interface {
	SaveVehicle(ctx context.Context, v *model.Vehicle) error
	LoadVehicle(ctx context.Context) (*model.Vehicle, error)
	ClearVehicle(ctx context.Context) error
}

// Error carries a user-facing message next to the underlying cause.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Err }

// statusMessages maps common backend status codes to the literal strings the
// UI shows. Codes outside the table get the generic message.
var statusMessages = map[int]string{
	400: "Dados inválidos",
	401: "Não autorizado",
	403: "Acesso negado",
	404: "Veículo não encontrado",
	409: "Conflito ao salvar os dados",
	422: "Dados não processáveis",
	500: "Erro interno do servidor",
	503: "Serviço indisponível",
}

const (
	timeoutMessage = "Tempo de conexão esgotado"
	genericMessage = "Erro de comunicação com o servidor"
)

// Service exposes the vehicle operations of the gateway.
type Service struct {
	api    API
	cache  Cache
	clock  func() time.Time
	logger log.Logger
}

// NewService creates a Service. cache may be nil when local caching is
// disabled.
func NewService(api API, cache Cache) *Service {
	return &Service{
		api:    api,
		cache:  cache,
		clock:  time.Now,
		logger: log.WithName("vehicle"),
	}
}

func (s *Service) now() time.Time {
	return s.clock()
}

// Get fetches the vehicle record, falling back to the cached copy when the
// backend is unreachable.
func (s *Service) Get(ctx context.Context) (*model.Vehicle, error) {
	v, err := s.api.GetVehicle(ctx)
	if err != nil {
		if s.cache != nil {
			if cached, cacheErr := s.cache.LoadVehicle(ctx); cacheErr == nil && cached != nil {
				s.logger.Warn("Serving cached vehicle record", "cause", err.Error())
				return cached, nil
			}
		}
		return nil, s.wrap(err)
	}

	s.storeCached(ctx, v)
	return v, nil
}

// Upsert creates or replaces the vehicle record. The system holds exactly
// one vehicle, so this is the only write path for the full record.
func (s *Service) Upsert(ctx context.Context, v *model.Vehicle) (*model.Vehicle, error) {
	saved, err := s.api.UpsertVehicle(ctx, v)
	if err != nil {
		return nil, s.wrap(err)
	}
	s.storeCached(ctx, saved)
	return saved, nil
}

// Delete removes the vehicle record and clears the local cache.
func (s *Service) Delete(ctx context.Context) error {
	if err := s.api.DeleteVehicle(ctx); err != nil {
		return s.wrap(err)
	}
	s.clearCached(ctx)
	return nil
}

// Reset restores the vehicle record to factory defaults and clears the
// local cache.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.api.ResetVehicle(ctx); err != nil {
		return s.wrap(err)
	}
	s.clearCached(ctx)
	return nil
}

// SetOdometer updates the current mileage.
func (s *Service) SetOdometer(ctx context.Context, km int) (*model.Vehicle, error) {
	v, err := s.api.UpdateOdometer(ctx, km)
	if err != nil {
		return nil, s.wrap(err)
	}
	s.storeCached(ctx, v)
	return v, nil
}

// SetLocation updates the vehicle position.
func (s *Service) SetLocation(ctx context.Context, lat, lon float64) (*model.Vehicle, error) {
	v, err := s.api.UpdateLocation(ctx, lat, lon)
	if err != nil {
		return nil, s.wrap(err)
	}
	s.storeCached(ctx, v)
	return v, nil
}

// SetStatus updates the vehicle lifecycle status.
func (s *Service) SetStatus(ctx context.Context, status string) (*model.Vehicle, error) {
	v, err := s.api.UpdateVehicleStatus(ctx, status)
	if err != nil {
		return nil, s.wrap(err)
	}
	s.storeCached(ctx, v)
	return v, nil
}

// MaintenanceHistory lists the recorded services.
func (s *Service) MaintenanceHistory(ctx context.Context) ([]model.MaintenanceRecord, error) {
	records, err := s.api.MaintenanceHistory(ctx)
	if err != nil {
		return nil, s.wrap(err)
	}
	return records, nil
}

// RecordMaintenance appends a service entry.
func (s *Service) RecordMaintenance(ctx context.Context, rec *model.MaintenanceRecord) error {
	if err := s.api.RecordMaintenance(ctx, rec); err != nil {
		return s.wrap(err)
	}
	return nil
}

func (s *Service) storeCached(ctx context.Context, v *model.Vehicle) {
	if s.cache == nil || v == nil {
		return
	}
	if err := s.cache.SaveVehicle(ctx, v); err != nil {
		s.logger.Warn("Failed to cache vehicle record", "err", err.Error())
	}
}

func (s *Service) clearCached(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.ClearVehicle(ctx); err != nil {
		s.logger.Warn("Failed to clear cached vehicle record", "err", err.Error())
	}
}

// wrap attaches the user-facing message for the given failure.
func (s *Service) wrap(err error) error {
	if err == nil {
		return nil
	}

	msg := genericMessage
	if errors.Is(err, rest.ErrTimeout) {
		msg = timeoutMessage
	} else if status := rest.StatusOf(err); status != 0 {
		if m, ok := statusMessages[status]; ok {
			msg = m
		}
	}

	return &Error{Message: msg, Err: err}
}
