// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package storage

import (
	"github.com/dgraph-io/badger/v3"
)

// data collection prefixes for different data collections
const (
	_                  byte = iota
	colTxByHash             // tx by hash
	colTxCommitByHash       // tx commit info by tx hash
	colLastSequence         // sequence of last executed tx
	colStateValueByKey      // state value by state key
)

type updateFunc func(txn *badger.Txn) error

type getter interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
}

type badgerGetter struct {
	db *badger.DB
}

var _ getter = (*badgerGetter)(nil)

func (bg *badgerGetter) Get(key []byte) ([]byte, error) {
	var val []byte
	err := bg.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err == nil {
			val, err = item.ValueCopy(nil)
		}
		return err
	})
	return val, err
}

func (bg *badgerGetter) Has(key []byte) (bool, error) {
	err := bg.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		return err
	})
	if IsNotFound(err) {
		return false, nil
	}
	return err == nil, err
}

// updateBadgerDB applies all update funcs in one badger transaction
func updateBadgerDB(db *badger.DB, fns []updateFunc) error {
	return db.Update(func(txn *badger.Txn) error {
		for _, fn := range fns {
			if err := fn(txn); err != nil {
				return err
			}
		}
		return nil
	})
}

// NewDB opens a badger database at dir
func NewDB(dir string) (*badger.DB, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	return badger.Open(opts)
}

// NewMemDB opens an in-memory badger database
func NewMemDB() (*badger.DB, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	return badger.Open(opts)
}
