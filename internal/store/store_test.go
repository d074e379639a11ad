// ABOUTME: Behavioural tests shared by every Store implementation
// ABOUTME: Runs the same CRUD expectations against SQLite (both drivers), Badger and memory

package store

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backends returns a constructor per Store implementation under test.
func backends() map[string]func(t *testing.T) Store {
	return map[string]func(t *testing.T) Store{
		"sqlite": func(t *testing.T) Store {
			return setupTestStore(t)
		},
		"sqlite3": func(t *testing.T) Store {
			return setupSQLite3Store(t)
		},
		"badger": func(t *testing.T) Store {
			return setupBadgerStore(t)
		},
		"memory": func(t *testing.T) Store {
			return NewMemoryStore()
		},
	}
}

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *SQLStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)

	t.Cleanup(func() {
		store.Close()
	})

	return store
}

// skipWithoutCgo skips the test when the mattn driver was built as its
// CGO_ENABLED=0 stub.
func skipWithoutCgo(t *testing.T, err error) {
	t.Helper()
	if err != nil && strings.Contains(err.Error(), "CGO_ENABLED=0") {
		t.Skip("go-sqlite3 requires cgo")
	}
}

// setupSQLite3Store creates a temporary SQLite store on the cgo driver.
func setupSQLite3Store(t *testing.T) *SQLStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := NewSQLStore(DriverSQLite3, dbPath, nil)
	skipWithoutCgo(t, err)
	require.NoError(t, err)

	t.Cleanup(func() {
		store.Close()
	})

	return store
}

// setupBadgerStore creates a temporary Badger store for testing.
func setupBadgerStore(t *testing.T) *BadgerStore {
	t.Helper()

	store, err := NewBadgerStore(filepath.Join(t.TempDir(), "badger"), nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		store.Close()
	})

	return store
}

func TestStore_SaveAssignsID(t *testing.T) {
	for name, newStore := range backends() {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)
			ctx := context.Background()

			in := &Person{Name: "John Doe", Age: 30, Profession: "Engineer"}
			saved, err := store.Save(ctx, in)
			require.NoError(t, err)

			assert.Equal(t, int64(1), saved.ID)
			assert.Equal(t, int64(0), in.ID, "input must not be mutated")

			got, err := store.FindByID(ctx, saved.ID)
			require.NoError(t, err)
			assert.Equal(t, saved, got)
		})
	}
}

func TestStore_SaveSequentialIDs(t *testing.T) {
	for name, newStore := range backends() {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)
			ctx := context.Background()

			for i, want := range []int64{1, 2, 3} {
				saved, err := store.Save(ctx, &Person{Name: "p", Age: i})
				require.NoError(t, err)
				assert.Equal(t, want, saved.ID)
			}
		})
	}
}

func TestStore_SaveReplacesExisting(t *testing.T) {
	for name, newStore := range backends() {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)
			ctx := context.Background()

			saved, err := store.Save(ctx, &Person{Name: "John Doe", Age: 30, Profession: "Engineer"})
			require.NoError(t, err)

			replaced, err := store.Save(ctx, &Person{ID: saved.ID, Name: "Mary Sue", Age: 33, Profession: "Architect"})
			require.NoError(t, err)
			assert.Equal(t, saved.ID, replaced.ID)

			got, err := store.FindByID(ctx, saved.ID)
			require.NoError(t, err)
			assert.Equal(t, "Mary Sue", got.Name)
			assert.Equal(t, 33, got.Age)
			assert.Equal(t, "Architect", got.Profession)

			all, err := store.FindAll(ctx)
			require.NoError(t, err)
			assert.Len(t, all, 1)
		})
	}
}

func TestStore_SaveExplicitIDAdvancesCounter(t *testing.T) {
	for name, newStore := range backends() {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)
			ctx := context.Background()

			_, err := store.Save(ctx, &Person{ID: 10, Name: "explicit"})
			require.NoError(t, err)

			next, err := store.Save(ctx, &Person{Name: "generated"})
			require.NoError(t, err)
			assert.Equal(t, int64(11), next.ID)
		})
	}
}

func TestStore_FindAll(t *testing.T) {
	for name, newStore := range backends() {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)
			ctx := context.Background()

			empty, err := store.FindAll(ctx)
			require.NoError(t, err)
			assert.NotNil(t, empty)
			assert.Empty(t, empty)

			names := []string{"John Doe", "Mary Sue", "Gary Thumb"}
			for _, n := range names {
				_, err := store.Save(ctx, &Person{Name: n})
				require.NoError(t, err)
			}

			all, err := store.FindAll(ctx)
			require.NoError(t, err)
			require.Len(t, all, 3)
			for i, n := range names {
				assert.Equal(t, n, all[i].Name)
				assert.Equal(t, int64(i+1), all[i].ID)
			}
		})
	}
}

func TestStore_FindByID_NotFound(t *testing.T) {
	for name, newStore := range backends() {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)

			_, err := store.FindByID(context.Background(), 1)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStore_Delete(t *testing.T) {
	for name, newStore := range backends() {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)
			ctx := context.Background()

			saved, err := store.Save(ctx, &Person{Name: "John Doe"})
			require.NoError(t, err)

			require.NoError(t, store.Delete(ctx, saved.ID))

			_, err = store.FindByID(ctx, saved.ID)
			assert.ErrorIs(t, err, ErrNotFound)

			err = store.Delete(ctx, saved.ID)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStore_DeletedIDsAreNotReused(t *testing.T) {
	for name, newStore := range backends() {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)
			ctx := context.Background()

			first, err := store.Save(ctx, &Person{Name: "first"})
			require.NoError(t, err)
			second, err := store.Save(ctx, &Person{Name: "second"})
			require.NoError(t, err)
			require.NoError(t, store.Delete(ctx, second.ID))

			third, err := store.Save(ctx, &Person{Name: "third"})
			require.NoError(t, err)
			assert.Greater(t, third.ID, second.ID)
			assert.NotEqual(t, first.ID, third.ID)
		})
	}
}

func TestStore_Ping(t *testing.T) {
	for name, newStore := range backends() {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)
			assert.NoError(t, store.Ping(context.Background()))
		})
	}
}

func TestStore_FindAllOrdersByID(t *testing.T) {
	for name, newStore := range backends() {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)
			ctx := context.Background()

			for _, id := range []int64{3, -5, 12, -10, 0} {
				_, err := store.Save(ctx, &Person{ID: id, Name: "p"})
				require.NoError(t, err)
			}

			all, err := store.FindAll(ctx)
			require.NoError(t, err)

			ids := make([]int64, 0, len(all))
			for _, p := range all {
				ids = append(ids, p.ID)
			}
			// The zero id was assigned the next value above 12
			assert.Equal(t, []int64{-10, -5, 3, 12, 13}, ids)
		})
	}
}

func TestOpen(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		driver string
		path   string
	}{
		{DriverSQLite, filepath.Join(tmpDir, "people.db")},
		{DriverSQLite3, filepath.Join(tmpDir, "people3.db")},
		{DriverBadger, filepath.Join(tmpDir, "badger")},
		{DriverMemory, ""},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			s, err := Open(tt.driver, tt.path, nil)
			skipWithoutCgo(t, err)
			require.NoError(t, err)
			defer s.Close()

			saved, err := s.Save(context.Background(), &Person{Name: "John Doe"})
			require.NoError(t, err)
			assert.Equal(t, int64(1), saved.ID)
		})
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open("postgres", "ignored", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown database driver")
}
