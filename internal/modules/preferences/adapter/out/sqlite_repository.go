package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"

	"timebox/internal/modules/preferences/domain"
	prefsout "timebox/internal/modules/preferences/port/out"
	apperrors "timebox/internal/platform/errors"
	"timebox/internal/platform/tx"
)

type SQLiteRepository struct {
	db     *sql.DB
	logger hclog.Logger
}

func NewSQLiteRepository(ctx context.Context, db *sql.DB, logger hclog.Logger) (prefsout.Repository, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	repo := &SQLiteRepository{db: db, logger: logger}
	const ddl = `
CREATE TABLE IF NOT EXISTS preferences (
  owner_id TEXT PRIMARY KEY,
  start_hour INTEGER NOT NULL,
  end_hour INTEGER NOT NULL,
  notifications INTEGER NOT NULL,
  theme TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return nil, fmt.Errorf("create preferences table: %w", err)
	}
	return repo, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, owner string) (domain.Preferences, error) {
	var (
		p     domain.Preferences
		theme string
	)
	err := tx.From(ctx, r.db).QueryRowContext(ctx,
		`SELECT start_hour, end_hour, notifications, theme FROM preferences WHERE owner_id = ?`, owner,
	).Scan(&p.StartHour, &p.EndHour, &p.Notifications, &theme)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Preferences{}, fmt.Errorf("%w: preferences of %q", apperrors.ErrNotFound, owner)
	}
	if err != nil {
		return domain.Preferences{}, fmt.Errorf("%w: read preferences: %v", apperrors.ErrAdapterFailure, err)
	}
	p.Theme = domain.Theme(theme)
	return p, nil
}

func (r *SQLiteRepository) Upsert(ctx context.Context, owner string, p domain.Preferences) error {
	_, err := tx.From(ctx, r.db).ExecContext(ctx, `
INSERT INTO preferences (owner_id, start_hour, end_hour, notifications, theme, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(owner_id) DO UPDATE SET
  start_hour=excluded.start_hour,
  end_hour=excluded.end_hour,
  notifications=excluded.notifications,
  theme=excluded.theme,
  updated_at=excluded.updated_at`,
		owner, p.StartHour, p.EndHour, p.Notifications, string(p.Theme), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("%w: upsert preferences: %v", apperrors.ErrAdapterFailure, err)
	}
	r.logger.Debug("preferences saved", "owner", owner, "start", p.StartHour, "end", p.EndHour)
	return nil
}
