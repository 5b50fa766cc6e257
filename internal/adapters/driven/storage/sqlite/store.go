// Package sqlite provides SQLite-backed storage adapters.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/designdocs-labs/designdocs-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/designdocs-labs/designdocs-cli/internal/core/domain"
	"github.com/designdocs-labs/designdocs-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.PollHistoryStore = (*Store)(nil)

// Store is the SQLite-backed poll-history store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a store at the specified data directory.
// If dataDir is empty, defaults to ~/.designdocs/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".designdocs", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "history.db")

	// WAL mode for better concurrency between the poller and the CLI.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Record appends a poll record.
func (s *Store) Record(ctx context.Context, rec *domain.PollRecord) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO poll_history (file_key, checked_at, changed, old_version, new_version, error)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.FileKey, rec.CheckedAt.UTC().Format(time.RFC3339Nano), rec.Changed,
		rec.OldVersion, rec.NewVersion, rec.Error)
	if err != nil {
		return fmt.Errorf("inserting poll record: %w", err)
	}
	if id, err := result.LastInsertId(); err == nil {
		rec.ID = id
	}
	return nil
}

// History returns the most recent records, newest first. An empty
// fileKey returns records for all files.
func (s *Store) History(ctx context.Context, fileKey string, limit int) ([]domain.PollRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, file_key, checked_at, changed, old_version, new_version, error
		FROM poll_history
	`
	args := []any{}
	if fileKey != "" {
		query += " WHERE file_key = ?"
		args = append(args, fileKey)
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying poll history: %w", err)
	}
	defer rows.Close()

	var records []domain.PollRecord
	for rows.Next() {
		var rec domain.PollRecord
		var checkedAt string
		if err := rows.Scan(&rec.ID, &rec.FileKey, &checkedAt, &rec.Changed,
			&rec.OldVersion, &rec.NewVersion, &rec.Error); err != nil {
			return nil, fmt.Errorf("scanning poll record: %w", err)
		}
		if parsed, err := time.Parse(time.RFC3339Nano, checkedAt); err == nil {
			rec.CheckedAt = parsed
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Prune keeps only the newest keep records.
func (s *Store) Prune(ctx context.Context, keep int) error {
	if keep <= 0 {
		return nil
	}
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM poll_history
		WHERE id NOT IN (SELECT id FROM poll_history ORDER BY id DESC LIMIT ?)
	`, keep)
	if err != nil {
		return fmt.Errorf("pruning poll history: %w", err)
	}
	return nil
}

func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}
	return nil
}
