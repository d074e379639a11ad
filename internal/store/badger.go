// ABOUTME: BadgerDB implementation of the Store interface for embedded key-value persistence
// ABOUTME: Persons are JSON values under order-preserving id keys; ids come from a counter key

package store

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dgraph-io/badger/v4"
)

const (
	personPrefix = "person:"
	lastIDKey    = "meta:person:last_id"
)

// BadgerStore implements the Store interface using BadgerDB
type BadgerStore struct {
	db     *badger.DB
	logger *slog.Logger

	// writeMu serializes read-write transactions so the id counter never
	// produces a badger.ErrConflict.
	writeMu sync.Mutex
}

// NewBadgerStore opens (or creates) a Badger database in the directory at path.
// Badger's own log output goes through logger as well. A nil logger falls back
// to slog.Default().
func NewBadgerStore(path string, logger *slog.Logger) (*BadgerStore, error) {
	logger = storeLogger(logger, DriverBadger)

	opts := badger.DefaultOptions(path).WithLogger(badgerLogger{logger: logger})
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger database: %w", err)
	}

	logger.Info("Badger store initialized", "path", path)
	return &BadgerStore{db: db, logger: logger}, nil
}

// personKey encodes id big-endian with the sign bit flipped, so byte order
// matches numeric order for negative ids too.
func personKey(id int64) []byte {
	key := make([]byte, len(personPrefix)+8)
	copy(key, personPrefix)
	binary.BigEndian.PutUint64(key[len(personPrefix):], uint64(id)^(1<<63))
	return key
}

// Close closes the database
func (s *BadgerStore) Close() error {
	s.logger.Info("closing Badger store")
	return s.db.Close()
}

// Ping reports an error once the database has been closed
func (s *BadgerStore) Ping(ctx context.Context) error {
	if s.db.IsClosed() {
		return errors.New("badger database is closed")
	}
	return nil
}

// Save assigns the next ID when p.ID is zero and writes the record.
// The ID counter and the record are written in one transaction.
func (s *BadgerStore) Save(ctx context.Context, p *Person) (*Person, error) {
	var saved Person

	err := s.update(func(txn *badger.Txn) error {
		saved = *p

		lastID, err := readLastID(txn)
		if err != nil {
			return err
		}

		if saved.ID == 0 {
			saved.ID = lastID + 1
		}
		if saved.ID > lastID {
			if err := writeLastID(txn, saved.ID); err != nil {
				return err
			}
		}

		data, err := json.Marshal(&saved)
		if err != nil {
			return fmt.Errorf("encoding person: %w", err)
		}
		return txn.Set(personKey(saved.ID), data)
	})
	if err != nil {
		return nil, fmt.Errorf("saving person: %w", err)
	}

	s.logger.Debug("saved person", "id", saved.ID)
	return &saved, nil
}

// FindAll iterates the person prefix; the key encoding keeps it in ID order.
func (s *BadgerStore) FindAll(ctx context.Context) ([]*Person, error) {
	people := []*Person{}

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(personPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var p Person
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &p)
			})
			if err != nil {
				return fmt.Errorf("decoding person: %w", err)
			}
			people = append(people, &p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing people: %w", err)
	}
	return people, nil
}

// FindByID returns ErrNotFound if the key is absent.
func (s *BadgerStore) FindByID(ctx context.Context, id int64) (*Person, error) {
	var p Person

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(personKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &p)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading person: %w", err)
	}
	return &p, nil
}

// Delete returns ErrNotFound if the key is absent.
func (s *BadgerStore) Delete(ctx context.Context, id int64) error {
	err := s.update(func(txn *badger.Txn) error {
		key := personKey(id)
		if _, err := txn.Get(key); err != nil {
			return err
		}
		return txn.Delete(key)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("deleting person: %w", err)
	}

	s.logger.Debug("deleted person", "id", id)
	return nil
}

// update runs fn in a read-write transaction under writeMu.
func (s *BadgerStore) update(fn func(txn *badger.Txn) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.db.Update(fn)
}

func readLastID(txn *badger.Txn) (int64, error) {
	item, err := txn.Get([]byte(lastIDKey))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	var lastID int64
	err = item.Value(func(val []byte) error {
		if len(val) != 8 {
			return fmt.Errorf("corrupt id counter: %d bytes", len(val))
		}
		lastID = int64(binary.BigEndian.Uint64(val))
		return nil
	})
	return lastID, err
}

func writeLastID(txn *badger.Txn, id int64) error {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(id))
	return txn.Set([]byte(lastIDKey), buf)
}

// badgerLogger routes badger's internal logging through slog.
type badgerLogger struct {
	logger *slog.Logger
}

func (l badgerLogger) Errorf(format string, args ...any) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l badgerLogger) Warningf(format string, args ...any) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l badgerLogger) Infof(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l badgerLogger) Debugf(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
