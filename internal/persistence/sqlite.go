package persistence

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS accounts (
    email    TEXT PRIMARY KEY,
    password TEXT NOT NULL,
    role     TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS issues (
    seq         INTEGER PRIMARY KEY AUTOINCREMENT,
    id          TEXT NOT NULL UNIQUE,
    name        TEXT NOT NULL DEFAULT '',
    email       TEXT NOT NULL DEFAULT '',
    college     TEXT NOT NULL DEFAULT '',
    title       TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    urgency     TEXT NOT NULL DEFAULT '',
    status      TEXT NOT NULL DEFAULT 'Open',
    created_at  TEXT NOT NULL DEFAULT '',
    resolved_by TEXT NOT NULL DEFAULT '',
    response    TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_issues_status ON issues (status);
`

// SQLite is a pool of connections to the embedded store. Connections are not safe
// for concurrent use; take one per unit of work and put it back.
type SQLite struct {
	pool   *sqlitex.Pool
	path   string
	logger *zap.Logger
}

// NewSQLite opens the database at path, creating it and its schema when missing.
func NewSQLite(path string, poolSize int, logger *zap.Logger) (*SQLite, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite: path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: create dir %s: %w", dir, err)
		}
	}
	if poolSize <= 0 {
		poolSize = 4
	}

	pool, err := sqlitex.NewPool(path, sqlitex.PoolOptions{
		PoolSize:    poolSize,
		PrepareConn: prepareSQLiteConn,
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening %s: %w", path, err)
	}

	logger.Info("sqlite pool opened", zap.String("path", path), zap.Int("pool_size", poolSize))
	return &SQLite{pool: pool, path: path, logger: logger}, nil
}

func prepareSQLiteConn(conn *sqlite.Conn) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if err := sqlitex.ExecuteTransient(conn, pragma, nil); err != nil {
			return fmt.Errorf("sqlite: %s: %w", pragma, err)
		}
	}
	if err := sqlitex.ExecuteScript(conn, sqliteSchema, nil); err != nil {
		return fmt.Errorf("sqlite: schema: %w", err)
	}
	return nil
}

// Take borrows a connection; the caller must Put it back.
func (s *SQLite) Take(ctx context.Context) (*sqlite.Conn, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("sqlite: take: %w", err)
	}
	return conn, nil
}

// Put returns a connection to the pool.
func (s *SQLite) Put(conn *sqlite.Conn) {
	s.pool.Put(conn)
}

// Ping checks that a connection can be taken and queried.
func (s *SQLite) Ping(ctx context.Context) error {
	if s == nil || s.pool == nil {
		return fmt.Errorf("sqlite pool not configured")
	}
	conn, err := s.Take(ctx)
	if err != nil {
		return err
	}
	defer s.Put(conn)
	return sqlitex.ExecuteTransient(conn, "SELECT 1", nil)
}

// Close closes all connections, waiting for borrowed ones to return.
func (s *SQLite) Close() {
	if s == nil || s.pool == nil {
		return
	}
	if err := s.pool.Close(); err != nil {
		s.logger.Error("sqlite pool close error", zap.String("path", s.path), zap.Error(err))
		return
	}
	s.logger.Info("sqlite pool closed", zap.String("path", s.path))
}
