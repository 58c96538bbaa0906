package export

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"formdash/internal/config"
	"formdash/internal/features/dashboard"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// SnapshotStore writes dashboard snapshots into Postgres for downstream
// analytics. With no EXPORT_DSN configured the store is disabled and every
// call is rejected with ErrSnapshotsDisabled.
type SnapshotStore struct {
	db     *sql.DB
	logger *zap.Logger
}

var ErrSnapshotsDisabled = fmt.Errorf("snapshot export is not configured")

const createSnapshotTable = `
CREATE TABLE IF NOT EXISTS dashboard_snapshots (
	id            BIGSERIAL PRIMARY KEY,
	dashboard_id  TEXT        NOT NULL,
	name          TEXT        NOT NULL,
	version       BIGINT      NOT NULL,
	widget_count  INT         NOT NULL,
	payload       JSONB       NOT NULL,
	exported_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`

func NewSnapshotStore(cfg *config.Config, logger *zap.Logger) (*SnapshotStore, error) {
	store := &SnapshotStore{logger: logger}
	if cfg.ExportDSN == "" {
		logger.Info("snapshot export disabled, no EXPORT_DSN configured")
		return store, nil
	}

	db, err := sql.Open("postgres", cfg.ExportDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open export database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping export database: %w", err)
	}
	if _, err := db.Exec(createSnapshotTable); err != nil {
		return nil, fmt.Errorf("failed to prepare snapshot table: %w", err)
	}

	store.db = db
	return store, nil
}

func (s *SnapshotStore) Enabled() bool {
	return s != nil && s.db != nil
}

// Save appends one snapshot row. History is append-only; each save is a new
// row, not an upsert.
func (s *SnapshotStore) Save(ctx context.Context, d *dashboard.Dashboard) error {
	if !s.Enabled() {
		return ErrSnapshotsDisabled
	}

	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to encode dashboard: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO dashboard_snapshots (dashboard_id, name, version, widget_count, payload)
		 VALUES ($1, $2, $3, $4, $5)`,
		d.ID, d.Name, d.Version, len(d.Widgets), payload)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}
	return nil
}

func (s *SnapshotStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
