// ABOUTME: Backend selection for the Store interface
// ABOUTME: Maps a configured driver name and path to a concrete store

package store

import (
	"fmt"
	"log/slog"
)

// Open returns the Store for the given driver. path is a database file for
// the SQL drivers, a directory for badger, and ignored for memory. Store
// lifecycle and backend logs go through logger (slog.Default() when nil).
func Open(driver, path string, logger *slog.Logger) (Store, error) {
	switch driver {
	case DriverSQLite, DriverSQLite3:
		return NewSQLStore(driver, path, logger)
	case DriverBadger:
		return NewBadgerStore(path, logger)
	case DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", driver)
	}
}

func storeLogger(logger *slog.Logger, driver string) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return logger.With("component", "store", "driver", driver)
}
