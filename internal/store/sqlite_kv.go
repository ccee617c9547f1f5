package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteFileName = "shatilah.sqlite"

const kvSchemaVersion = "1"

// SQLiteKV keeps every key in one row of a local SQLite table.
type SQLiteKV struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

func OpenSQLiteKV(ctx context.Context, dir string) (*SQLiteKV, error) {
	if err := (Store{Dir: dir}).Ensure(); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, sqliteFileName)
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A CLI invocation may write while the TUI is open in another terminal.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateKV(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteKV{db: db, path: path, now: time.Now}, nil
}

func migrateKV(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS kv (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`INSERT OR IGNORE INTO meta(k, v) VALUES('schema_version', '` + kvSchemaVersion + `');`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteKV) Path() string { return s.path }

func (s *SQLiteKV) Get(key string) (string, bool, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", false, ErrInvalidKey
	}
	var v string
	err := s.db.QueryRowContext(context.Background(), `SELECT v FROM kv WHERE k = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *SQLiteKV) Set(key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrInvalidKey
	}
	_, err := s.db.ExecContext(context.Background(),
		`INSERT INTO kv(k, v, updated_at_unixms) VALUES(?, ?, ?)
		ON CONFLICT(k) DO UPDATE SET v = excluded.v, updated_at_unixms = excluded.updated_at_unixms`,
		key, value, s.now().UnixMilli(),
	)
	return err
}

func (s *SQLiteKV) Keys() ([]string, error) {
	rows, err := s.db.QueryContext(context.Background(), `SELECT k FROM kv`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *SQLiteKV) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
