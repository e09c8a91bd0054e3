package store

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
)

// BadgerStore keeps values in an embedded badger database.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadgerStore opens (or creates) the database in dir. An empty dir opens
// an in-memory database.
func OpenBadgerStore(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Read(_ context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	switch {
	case errors.Is(err, badger.ErrKeyNotFound):
		return nil, false, nil
	case errors.Is(err, badger.ErrDBClosed):
		return nil, false, ErrClosed
	case err != nil:
		return nil, false, errors.Join(ErrReadFailed, err)
	}
	return value, true, nil
}

func (s *BadgerStore) Write(_ context.Context, key string, value []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	switch {
	case errors.Is(err, badger.ErrDBClosed):
		return ErrClosed
	case err != nil:
		return errors.Join(ErrWriteFailed, err)
	}
	return nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}
