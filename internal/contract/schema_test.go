// ABOUTME: Contract tests for database schema to detect breaking schema changes.
// ABOUTME: Validates that the people table and its columns exist in SQLite database.

package contract

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/people-api/internal/store"
)

// expectedSchema defines the contract for our database schema.
// If a table or column is removed or renamed, these tests will fail.
var expectedSchema = map[string][]string{
	"people": {"id", "name", "age", "profession"},
}

type columnInfo struct {
	colType string
	notNull bool
	pk      bool
}

// setupTestDB creates a temporary SQLite database with the production schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "contract_test.db")

	// Use the store package to create the database with proper schema
	sqlStore, err := store.NewSQLiteStore(dbPath)
	require.NoError(t, err, "failed to create SQLite store")

	// The store owns its connection, so open a second one for inspection
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err, "failed to open database")

	t.Cleanup(func() {
		db.Close()
		sqlStore.Close()
	})

	return db
}

// getTableColumns queries SQLite for the columns of a table.
func getTableColumns(ctx context.Context, db *sql.DB, tableName string) (map[string]columnInfo, error) {
	query := fmt.Sprintf("PRAGMA table_info(%s)", tableName)
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying table info: %w", err)
	}
	defer rows.Close()

	columns := make(map[string]columnInfo)
	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return nil, fmt.Errorf("scanning column info: %w", err)
		}
		columns[name] = columnInfo{colType: colType, notNull: notNull == 1, pk: pk > 0}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating columns: %w", err)
	}

	return columns, nil
}

// TestSchemaSurface verifies that all expected tables and columns exist.
func TestSchemaSurface(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	for table, expectedCols := range expectedSchema {
		t.Run(table, func(t *testing.T) {
			actualCols, err := getTableColumns(ctx, db, table)
			if !assert.NoError(t, err, "failed to get columns for table %s", table) {
				return
			}

			if !assert.NotEmpty(t, actualCols, "table %s should exist and have columns", table) {
				return
			}

			for _, col := range expectedCols {
				_, ok := actualCols[col]
				assert.True(t, ok, "column %s.%s should exist", table, col)
			}

			// Extra columns are informational, not failures
			for col := range actualCols {
				if !slices.Contains(expectedCols, col) {
					t.Logf("INFO: extra column %s.%s not in contract (consider adding)", table, col)
				}
			}
		})
	}
}

// TestPeopleColumnTypes pins the column affinities and the integer primary key.
func TestPeopleColumnTypes(t *testing.T) {
	db := setupTestDB(t)

	cols, err := getTableColumns(context.Background(), db, "people")
	require.NoError(t, err)

	assert.Equal(t, "INTEGER", cols["id"].colType)
	assert.True(t, cols["id"].pk, "id should be the primary key")
	assert.Equal(t, "TEXT", cols["name"].colType)
	assert.Equal(t, "INTEGER", cols["age"].colType)
	assert.Equal(t, "TEXT", cols["profession"].colType)

	for _, col := range []string{"name", "age", "profession"} {
		assert.True(t, cols[col].notNull, "column people.%s should be NOT NULL", col)
	}
}

// TestPeopleUsesAutoincrement checks that deleted ids are never reissued by
// SQLite, which requires AUTOINCREMENT and its sqlite_sequence bookkeeping.
func TestPeopleUsesAutoincrement(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	var ddl string
	err := db.QueryRowContext(ctx, "SELECT sql FROM sqlite_master WHERE type='table' AND name='people'").Scan(&ddl)
	require.NoError(t, err)
	assert.Contains(t, ddl, "AUTOINCREMENT")
}

// TestTablesExist is a quick sanity check that all expected tables exist.
func TestTablesExist(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	rows, err := db.QueryContext(ctx, "SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'")
	require.NoError(t, err, "failed to query tables")
	defer rows.Close()

	actualTables := make(map[string]bool)
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name), "failed to scan table name")
		actualTables[name] = true
	}
	require.NoError(t, rows.Err(), "error iterating tables")

	for table := range expectedSchema {
		assert.True(t, actualTables[table], "table %s should exist", table)
	}
}
