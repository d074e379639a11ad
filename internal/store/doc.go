// Package store provides persistent storage for person records.
//
// # Architecture
//
// Store is the single persistence interface: Save, FindAll, FindByID and
// Delete over the Person record, plus Ping and Close for lifecycle. Three
// implementations exist:
//
//   - SQLStore: SQLite through sqlx, with either the pure-Go modernc driver
//     ("sqlite") or the cgo mattn driver ("sqlite3")
//   - BadgerStore: BadgerDB key-value store ("badger")
//   - MemoryStore: map guarded by a RWMutex ("memory")
//
// Open selects one by driver name.
//
// # Identifiers
//
// IDs are assigned by the store on first save and are never reused, even
// after a delete. SQLite relies on AUTOINCREMENT; Badger and the memory
// store keep a high-water mark. Saving a person with an explicit ID replaces
// the record with that ID, creating it if needed.
//
// # SQLite Configuration
//
// The SQL store enables WAL mode:
//
//	PRAGMA journal_mode=WAL;
//
// Use ":memory:" as the path for a throwaway database.
//
// # Error Handling
//
// FindByID and Delete return ErrNotFound when no record has the requested
// ID. Every other error is wrapped with the failing operation.
//
// All methods accept context.Context for cancellation support.
//
// # Testing
//
// Use NewMemoryStore() for unit tests of code that depends on Store, and
// NewSQLiteStore on a t.TempDir() path for integration tests.
package store
