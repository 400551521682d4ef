package settings

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS settings (
	profile TEXT NOT NULL,
	key     TEXT NOT NULL,
	value   TEXT NOT NULL,
	PRIMARY KEY (profile, key)
)`

// SQLiteStore keeps settings as key/value rows in SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (and creates if needed) the store at path. ":memory:"
// gives a private in-memory database.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("settings path is required")
	}

	dsn := ":memory:"
	if path != dsn {
		dsn = filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// one connection keeps an in-memory database alive and serialises writers
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create settings table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load returns the settings saved for profile, or empty settings.
func (s *SQLiteStore) Load(ctx context.Context, profile string) (Settings, error) {
	if strings.TrimSpace(profile) == "" {
		return Settings{}, ErrInvalidProfile
	}
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM settings WHERE profile = ?`, profile)
	if err != nil {
		return Settings{}, fmt.Errorf("query settings: %w", err)
	}
	defer rows.Close()

	out := New()
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return Settings{}, fmt.Errorf("scan settings: %w", err)
		}
		if key == KeyPlayerCount {
			n, err := strconv.Atoi(value)
			if err != nil {
				return Settings{}, fmt.Errorf("stored player count %q: %w", value, err)
			}
			out.PlayerCount = n
			continue
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			return Settings{}, fmt.Errorf("stored toggle %s=%q: %w", key, value, err)
		}
		out.Toggles[key] = b
	}
	if err := rows.Err(); err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}
	return out, nil
}

// Save replaces everything stored for profile with st.
func (s *SQLiteStore) Save(ctx context.Context, profile string, st Settings) error {
	if strings.TrimSpace(profile) == "" {
		return ErrInvalidProfile
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM settings WHERE profile = ?`, profile); err != nil {
		return fmt.Errorf("clear settings: %w", err)
	}
	put := func(key, value string) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO settings (profile, key, value) VALUES (?, ?, ?)`, profile, key, value)
		return err
	}
	for key, v := range st.Toggles {
		if err := put(key, strconv.FormatBool(v)); err != nil {
			return fmt.Errorf("save toggle %s: %w", key, err)
		}
	}
	if st.PlayerCount > 0 {
		if err := put(KeyPlayerCount, strconv.Itoa(st.PlayerCount)); err != nil {
			return fmt.Errorf("save player count: %w", err)
		}
	}
	return tx.Commit()
}

var _ Store = (*SQLiteStore)(nil)
