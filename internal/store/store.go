// ABOUTME: Store interface and data types for people-api persistence
// ABOUTME: Defines the Person record and the Store interface every backend implements

package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// Driver names accepted by Open.
const (
	DriverSQLite  = "sqlite"  // modernc.org/sqlite, pure Go
	DriverSQLite3 = "sqlite3" // github.com/mattn/go-sqlite3, cgo
	DriverBadger  = "badger"
	DriverMemory  = "memory"
)

// Person is a single person record.
// ID is zero until the store assigns one on first save.
type Person struct {
	ID         int64  `db:"id" json:"id"`
	Name       string `db:"name" json:"name"`
	Age        int    `db:"age" json:"age"`
	Profession string `db:"profession" json:"profession"`
}

// Store defines the interface for person persistence
type Store interface {
	// Save inserts the person when ID is zero, otherwise replaces the record with
	// that ID (inserting it if absent). The returned copy always carries the ID.
	Save(ctx context.Context, p *Person) (*Person, error)

	// FindAll returns every person in the store's native order (ascending ID).
	FindAll(ctx context.Context) ([]*Person, error)

	// FindByID returns ErrNotFound if no person has the given ID.
	FindByID(ctx context.Context, id int64) (*Person, error)

	// Delete returns ErrNotFound if no person has the given ID.
	Delete(ctx context.Context, id int64) error

	// Ping reports whether the backend is reachable
	Ping(ctx context.Context) error

	// Close releases any resources held by the store
	Close() error
}
