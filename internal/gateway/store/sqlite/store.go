// Package sqlite persists the last-known-good snapshot and the vehicle
// record so displays keep rendering while the backend is unreachable.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/autocore-io/autocore/internal/gateway/core/model"
	"github.com/autocore-io/autocore/pkg/log"
)

// Store implements core.SnapshotCache over a single-file sqlite database.
// Records are stored as JSON blobs keyed by scope; the schema stays stable
// while the snapshot shape evolves with the backend.
type Store struct {
	db     *sql.DB
	logger log.Logger
}

// genericScope keys the non device-scoped snapshot row.
const genericScope = ""

// Open opens (and creates, if needed) the cache database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	s := &Store{db: db, logger: log.WithName("store")}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	statements := []string{
		`PRAGMA journal_mode = WAL;`,
		`CREATE TABLE IF NOT EXISTS snapshots (
			device_uuid TEXT PRIMARY KEY,
			payload TEXT NOT NULL,
			saved_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS vehicle (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			payload TEXT NOT NULL,
			saved_at TEXT NOT NULL
		);`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate failed: %w", err)
		}
	}
	return nil
}

// SaveSnapshot upserts the snapshot for the given device scope. An empty
// deviceUUID stores the generic configuration.
func (s *Store) SaveSnapshot(ctx context.Context, deviceUUID string, snap *model.ConfigSnapshot) error {
	if snap == nil {
		return errors.New("nil snapshot")
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO snapshots (device_uuid, payload, saved_at) VALUES (?, ?, ?)
		 ON CONFLICT(device_uuid) DO UPDATE SET payload = excluded.payload, saved_at = excluded.saved_at;`,
		deviceUUID, string(payload), time.Now().UTC().Format(time.RFC3339Nano))
	return err
}

// LoadSnapshot returns the cached snapshot for the device scope and the time
// it was saved. Missing rows fall back to the generic scope; a miss on both
// returns sql.ErrNoRows.
func (s *Store) LoadSnapshot(ctx context.Context, deviceUUID string) (*model.ConfigSnapshot, time.Time, error) {
	snap, savedAt, err := s.loadSnapshotRow(ctx, deviceUUID)
	if errors.Is(err, sql.ErrNoRows) && deviceUUID != genericScope {
		snap, savedAt, err = s.loadSnapshotRow(ctx, genericScope)
	}
	return snap, savedAt, err
}

func (s *Store) loadSnapshotRow(ctx context.Context, deviceUUID string) (*model.ConfigSnapshot, time.Time, error) {
	var payload, savedAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload, saved_at FROM snapshots WHERE device_uuid = ?;`, deviceUUID).
		Scan(&payload, &savedAt)
	if err != nil {
		return nil, time.Time{}, err
	}

	var snap model.ConfigSnapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return nil, time.Time{}, fmt.Errorf("decode cached snapshot: %w", err)
	}
	ts, err := time.Parse(time.RFC3339Nano, savedAt)
	if err != nil {
		s.logger.Warn("Unparseable saved_at on cached snapshot", "value", savedAt)
		ts = time.Time{}
	}
	return &snap, ts, nil
}

// SaveVehicle upserts the single vehicle record.
func (s *Store) SaveVehicle(ctx context.Context, v *model.Vehicle) error {
	if v == nil {
		return errors.New("nil vehicle")
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode vehicle: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO vehicle (id, payload, saved_at) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, saved_at = excluded.saved_at;`,
		string(payload), time.Now().UTC().Format(time.RFC3339Nano))
	return err
}

// LoadVehicle returns the cached vehicle record, or (nil, nil) when none is
// stored.
func (s *Store) LoadVehicle(ctx context.Context) (*model.Vehicle, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM vehicle WHERE id = 1;`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var v model.Vehicle
	if err := json.Unmarshal([]byte(payload), &v); err != nil {
		return nil, fmt.Errorf("decode cached vehicle: %w", err)
	}
	return &v, nil
}

// ClearVehicle removes the cached vehicle record.
func (s *Store) ClearVehicle(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM vehicle WHERE id = 1;`)
	return err
}
