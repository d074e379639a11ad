// ABOUTME: SQL implementation of the Store interface using sqlx over SQLite
// ABOUTME: Supports the pure-Go modernc driver and the cgo mattn driver with automatic schema creation

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

// SQLStore implements the Store interface on top of a SQLite database
type SQLStore struct {
	db     *sqlx.DB
	driver string
	logger *slog.Logger
}

// NewSQLiteStore creates a new SQLite store at the given path using the pure-Go
// driver, logging through slog.Default().
func NewSQLiteStore(path string) (*SQLStore, error) {
	return NewSQLStore(DriverSQLite, path, nil)
}

// NewSQLStore opens a SQLite database at path with the named driver
// ("sqlite" or "sqlite3"). The schema is created if it doesn't exist and
// parent directories are created if needed. A nil logger falls back to slog.Default().
func NewSQLStore(driver, path string, logger *slog.Logger) (*SQLStore, error) {
	if driver != DriverSQLite && driver != DriverSQLite3 {
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}
	logger = storeLogger(logger, driver)

	inMemory := path == ":memory:"
	if !inMemory {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sqlx.Open(driver, path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Every new connection to :memory: is a fresh, empty database
	if inMemory {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLStore{
		db:     db,
		driver: driver,
		logger: logger,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	logger.Info("SQLite store initialized", "path", path)
	return s, nil
}

// createSchema creates the database tables if they don't exist.
// AUTOINCREMENT keeps deleted ids from ever being handed out again.
func (s *SQLStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS people (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			name       TEXT NOT NULL DEFAULT '',
			age        INTEGER NOT NULL DEFAULT 0,
			profession TEXT NOT NULL DEFAULT ''
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// runMigrations applies column additions for databases created before the
// column existed. Safe to run multiple times.
func (s *SQLStore) runMigrations() error {
	migrations := []struct {
		check  string
		apply  string
		column string
	}{
		{
			check:  `SELECT 1 FROM pragma_table_info('people') WHERE name = 'profession'`,
			apply:  `ALTER TABLE people ADD COLUMN profession TEXT NOT NULL DEFAULT ''`,
			column: "profession",
		},
	}

	for _, m := range migrations {
		var exists int
		err := s.db.QueryRow(m.check).Scan(&exists)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("checking %s column: %w", m.column, err)
		}
		if _, err := s.db.Exec(m.apply); err != nil {
			return fmt.Errorf("adding %s column to people: %w", m.column, err)
		}
		s.logger.Info("applied migration", "column", m.column, "table", "people")
	}

	return nil
}

// Close closes the database connection
func (s *SQLStore) Close() error {
	s.logger.Info("closing SQLite store")
	return s.db.Close()
}

// Ping verifies the database connection is alive
func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Save inserts a new person or upserts one with an explicit ID.
func (s *SQLStore) Save(ctx context.Context, p *Person) (*Person, error) {
	saved := *p

	if saved.ID == 0 {
		res, err := s.db.NamedExecContext(ctx, `
			INSERT INTO people (name, age, profession)
			VALUES (:name, :age, :profession)
		`, &saved)
		if err != nil {
			return nil, fmt.Errorf("inserting person: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("reading inserted id: %w", err)
		}
		saved.ID = id
		s.logger.Debug("created person", "id", saved.ID)
		return &saved, nil
	}

	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO people (id, name, age, profession)
		VALUES (:id, :name, :age, :profession)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			age = excluded.age,
			profession = excluded.profession
	`, &saved)
	if err != nil {
		return nil, fmt.Errorf("saving person %d: %w", saved.ID, err)
	}

	s.logger.Debug("saved person", "id", saved.ID)
	return &saved, nil
}

// FindAll returns every person ordered by ID.
func (s *SQLStore) FindAll(ctx context.Context) ([]*Person, error) {
	people := []*Person{}
	err := s.db.SelectContext(ctx, &people, `
		SELECT id, name, age, profession
		FROM people
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying people: %w", err)
	}
	return people, nil
}

// FindByID retrieves a person by ID.
// Returns ErrNotFound if the person doesn't exist.
func (s *SQLStore) FindByID(ctx context.Context, id int64) (*Person, error) {
	var p Person
	err := s.db.GetContext(ctx, &p, `
		SELECT id, name, age, profession
		FROM people
		WHERE id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying person: %w", err)
	}
	return &p, nil
}

// Delete removes a person by ID.
// Returns ErrNotFound if the person doesn't exist.
func (s *SQLStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM people WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting person: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	s.logger.Debug("deleted person", "id", id)
	return nil
}
