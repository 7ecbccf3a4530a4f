// v0
// store_badger.go
//
// BadgerStore is the production Store adapter. Badger was chosen as
// the concrete storage engine for the harvested threshold catalogue:
// it is embedded (no separate broker, matching the operator's
// single-process deployment), and its LSM-tree design suits a
// mostly-read, occasionally-bulk-loaded workload.
package registry

import (
	"context"
	"errors"

	badger "github.com/dgraph-io/badger/v4"
)

// BadgerStore adapts a badger.DB to the Store interface.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadgerStore opens (creating if absent) a badger database at dir.
func OpenBadgerStore(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &BadgerStore{db: db}, nil
}

// Get implements Store. ctx is not honored by badger's read path, which
// is always local and non-blocking on network I/O; it is accepted to
// satisfy the Store interface the engine depends on.
func (s *BadgerStore) Get(ctx context.Context, key string) (string, error) {
	var val string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			val = string(v)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// Set writes a threshold record. Exposed for the CLI's "seed" command;
// the live engine never calls this — the registry is read-only from
// the core's perspective.
func (s *BadgerStore) Set(key, value string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
}

// Close implements Store.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
