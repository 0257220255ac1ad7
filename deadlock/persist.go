package deadlock

import (
	"bytes"
	"encoding/gob"
	"path/filepath"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"

	"schokoban-go/board"
)

// entry is the value stored per level path: the live bitmap plus the
// grid dimensions it was computed for, so a dimension mismatch (the level
// file changed shape since the mask was cached) counts as "stale" and
// triggers regeneration.
type entry struct {
	Width, Height int
	Live          []bool
}

// Store is the embedded key-value cache for deadlock masks, one Badger
// database per folder of levels, keyed by level path within it.
type Store struct {
	db *badger.DB
}

// OpenStore opens (creating if absent) the mask cache for a folder of
// levels, conventionally at deadlock_detection/<folder>.
func OpenStore(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "opening deadlock mask store at %q", dir)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// StoreDir is the conventional on-disk location for a folder's mask
// cache.
func StoreDir(folder string) string {
	return filepath.Join("deadlock_detection", folder)
}

// Load returns the cached mask for levelPath if present and matching the
// given shape. The second return is false on any miss (absent or stale),
// which the caller should treat as "regenerate".
func (s *Store) Load(levelPath string, width, height int) (*board.DeadlockMask, bool) {
	var e entry
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(levelPath))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return gob.NewDecoder(bytes.NewReader(val)).Decode(&e)
		})
	})
	if err != nil {
		return nil, false
	}
	if e.Width != width || e.Height != height {
		return nil, false // stale: level shape changed since caching
	}
	mask := board.NewDeadlockMask(e.Width, e.Height)
	mask.SetBits(e.Live)
	return mask, true
}

// Save persists mask under levelPath, overwriting any prior entry.
func (s *Store) Save(levelPath string, mask *board.DeadlockMask) error {
	e := entry{Width: mask.Width, Height: mask.Height, Live: mask.Bits()}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(e); err != nil {
		return errors.Wrapf(err, "encoding deadlock mask for %q", levelPath)
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(levelPath), buf.Bytes())
	})
	return errors.Wrapf(err, "saving deadlock mask for %q", levelPath)
}

// Ensure loads the cached mask for a level, recomputing and persisting it
// if missing or stale.
func Ensure(store *Store, level *board.Level) (*board.DeadlockMask, error) {
	if mask, ok := store.Load(level.Path, level.Grid.Width, level.Grid.Height); ok {
		return mask, nil
	}
	mask := Compute(level)
	if err := store.Save(level.Path, mask); err != nil {
		return nil, err
	}
	return mask, nil
}
