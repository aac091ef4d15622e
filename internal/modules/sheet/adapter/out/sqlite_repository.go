package out

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"

	"timebox/internal/modules/sheet/domain"
	"timebox/internal/modules/sheet/dto"
	sheetout "timebox/internal/modules/sheet/port/out"
	apperrors "timebox/internal/platform/errors"
	"timebox/internal/platform/sqlitedb"
	"timebox/internal/platform/tx"
)

// SQLiteRepository stores sheets per owner. UNIQUE(owner_id, day) makes the
// one-sheet-per-day rule hold even for concurrent creates.
type SQLiteRepository struct {
	db     *sql.DB
	logger hclog.Logger
}

func NewSQLiteRepository(ctx context.Context, db *sql.DB, logger hclog.Logger) (sheetout.Repository, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	repo := &SQLiteRepository{db: db, logger: logger}
	if err := repo.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sheets (
  id TEXT PRIMARY KEY,
  owner_id TEXT NOT NULL,
  day TEXT NOT NULL,
  priorities TEXT NOT NULL,
  hours TEXT NOT NULL,
  window_start INTEGER,
  window_end INTEGER,
  brain_dump TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL,
  UNIQUE(owner_id, day)
);
CREATE INDEX IF NOT EXISTS idx_sheets_owner_day ON sheets(owner_id, day DESC);
`
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create sheets table: %w", err)
	}
	return nil
}

const sheetColumns = `id, day, priorities, hours, window_start, window_end, brain_dump, created_at, updated_at`

func (r *SQLiteRepository) List(ctx context.Context, owner string) ([]domain.Sheet, error) {
	rows, err := tx.From(ctx, r.db).QueryContext(ctx,
		`SELECT `+sheetColumns+` FROM sheets WHERE owner_id = ? ORDER BY day DESC`, owner)
	if err != nil {
		return nil, fmt.Errorf("%w: list sheets: %v", apperrors.ErrAdapterFailure, err)
	}
	defer rows.Close()

	out := []domain.Sheet{}
	for rows.Next() {
		sheet, err := scanSheet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sheet)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list sheets: %v", apperrors.ErrAdapterFailure, err)
	}
	return out, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, owner, sheetID string) (domain.Sheet, error) {
	row := tx.From(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+sheetColumns+` FROM sheets WHERE id = ? AND owner_id = ?`, sheetID, owner)
	sheet, err := scanSheet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Sheet{}, fmt.Errorf("%w: sheet %q", apperrors.ErrNotFound, sheetID)
	}
	return sheet, err
}

func (r *SQLiteRepository) Insert(ctx context.Context, owner string, s domain.Sheet) error {
	priorities, hours, err := encodeGrid(s)
	if err != nil {
		return err
	}
	start, end := windowColumns(s.Window)
	_, err = tx.From(ctx, r.db).ExecContext(ctx, `
INSERT INTO sheets (id, owner_id, day, priorities, hours, window_start, window_end, brain_dump, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, owner, s.Date, priorities, hours, start, end, s.BrainDump,
		formatTime(s.CreatedAt), formatTime(s.UpdatedAt),
	)
	if sqlitedb.IsUniqueViolation(err) {
		r.logger.Debug("duplicate day rejected", "owner", owner, "day", s.Date)
		return fmt.Errorf("%w: a sheet for %s already exists", apperrors.ErrConflict, s.Date)
	}
	if err != nil {
		return fmt.Errorf("%w: insert sheet: %v", apperrors.ErrAdapterFailure, err)
	}
	return nil
}

func (r *SQLiteRepository) Update(ctx context.Context, owner string, s domain.Sheet) error {
	priorities, hours, err := encodeGrid(s)
	if err != nil {
		return err
	}
	start, end := windowColumns(s.Window)
	res, err := tx.From(ctx, r.db).ExecContext(ctx, `
UPDATE sheets SET priorities = ?, hours = ?, window_start = ?, window_end = ?, brain_dump = ?, updated_at = ?
WHERE id = ? AND owner_id = ?`,
		priorities, hours, start, end, s.BrainDump, formatTime(s.UpdatedAt), s.ID, owner,
	)
	if err != nil {
		return fmt.Errorf("%w: update sheet: %v", apperrors.ErrAdapterFailure, err)
	}
	return requireRow(res, s.ID)
}

func (r *SQLiteRepository) Delete(ctx context.Context, owner, sheetID string) error {
	res, err := tx.From(ctx, r.db).ExecContext(ctx, `DELETE FROM sheets WHERE id = ? AND owner_id = ?`, sheetID, owner)
	if err != nil {
		return fmt.Errorf("%w: delete sheet: %v", apperrors.ErrAdapterFailure, err)
	}
	return requireRow(res, sheetID)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSheet(row scanner) (domain.Sheet, error) {
	var (
		sheet            domain.Sheet
		priorities       string
		hours            string
		start, end       sql.NullInt64
		created, updated string
	)
	err := row.Scan(&sheet.ID, &sheet.Date, &priorities, &hours, &start, &end, &sheet.BrainDump, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Sheet{}, err
	}
	if err != nil {
		return domain.Sheet{}, fmt.Errorf("%w: scan sheet: %v", apperrors.ErrAdapterFailure, err)
	}
	if err := json.Unmarshal([]byte(priorities), &sheet.Priorities); err != nil {
		return domain.Sheet{}, fmt.Errorf("%w: decode priorities of %s: %v", apperrors.ErrAdapterFailure, sheet.ID, err)
	}
	var slots []dto.Slot
	if err := json.Unmarshal([]byte(hours), &slots); err != nil {
		return domain.Sheet{}, fmt.Errorf("%w: decode hours of %s: %v", apperrors.ErrAdapterFailure, sheet.ID, err)
	}
	sheet.Hours = dto.ToSlots(slots)
	if start.Valid && end.Valid {
		sheet.Window = &domain.Window{StartHour: int(start.Int64), EndHour: int(end.Int64)}
	}
	sheet.CreatedAt = parseTime(created)
	sheet.UpdatedAt = parseTime(updated)
	return sheet, nil
}

func encodeGrid(s domain.Sheet) (string, string, error) {
	priorities := s.Priorities
	if priorities == nil {
		priorities = []string{}
	}
	p, err := json.Marshal(priorities)
	if err != nil {
		return "", "", fmt.Errorf("%w: encode priorities: %v", apperrors.ErrAdapterFailure, err)
	}
	h, err := json.Marshal(dto.FromSlots(s.Hours))
	if err != nil {
		return "", "", fmt.Errorf("%w: encode hours: %v", apperrors.ErrAdapterFailure, err)
	}
	return string(p), string(h), nil
}

func windowColumns(w *domain.Window) (any, any) {
	if w == nil {
		return nil, nil
	}
	return w.StartHour, w.EndHour
}

func requireRow(res sql.Result, sheetID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected: %v", apperrors.ErrAdapterFailure, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: sheet %q", apperrors.ErrNotFound, sheetID)
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
