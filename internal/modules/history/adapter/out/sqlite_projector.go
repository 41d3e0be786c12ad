package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"pagepulse/internal/modules/history/domain"
	historyout "pagepulse/internal/modules/history/port/out"

	_ "modernc.org/sqlite"
)

type SQLiteRunProjector struct {
	db *sql.DB
}

func NewSQLiteRunProjector(dbPath string) (historyout.IndexProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteRunProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteRunProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS runs (
  position INTEGER PRIMARY KEY,
  id TEXT NOT NULL,
  url TEXT NOT NULL,
  strategy TEXT NOT NULL,
  captured_at TEXT NOT NULL,
  score REAL NOT NULL,
  fcp REAL NOT NULL,
  lcp REAL NOT NULL,
  tti REAL NOT NULL,
  tbt REAL NOT NULL,
  cls REAL NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create runs table: %w", err)
	}
	return nil
}

func (s *SQLiteRunProjector) Close() error {
	return s.db.Close()
}

func (s *SQLiteRunProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM runs`); err != nil {
		return fmt.Errorf("reset runs: %w", err)
	}
	return nil
}

func (s *SQLiteRunProjector) UpsertRun(ctx context.Context, position int, record domain.Record) error {
	const stmt = `
INSERT INTO runs (position, id, url, strategy, captured_at, score, fcp, lcp, tti, tbt, cls)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(position) DO UPDATE SET
  id=excluded.id,
  url=excluded.url,
  strategy=excluded.strategy,
  captured_at=excluded.captured_at,
  score=excluded.score,
  fcp=excluded.fcp,
  lcp=excluded.lcp,
  tti=excluded.tti,
  tbt=excluded.tbt,
  cls=excluded.cls;
`
	_, err := s.db.ExecContext(ctx, stmt,
		position,
		record.ID,
		record.URL,
		record.Strategy,
		record.Date,
		record.Score,
		record.Metrics.FCP,
		record.Metrics.LCP,
		record.Metrics.TTI,
		record.Metrics.TBT,
		record.Metrics.CLS,
	)
	if err != nil {
		return fmt.Errorf("upsert run: %w", err)
	}
	return nil
}
