// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package storage

import (
	"errors"
	"fmt"

	"github.com/aungmawjj/juria-loyalty/core"
	"github.com/dgraph-io/badger/v3"
)

// CommitData is the result of one executed call.
// Tx and TxCommit may be nil for state-only commits such as genesis.
type CommitData struct {
	Tx           *core.Transaction
	TxCommit     *core.TxCommit
	StateChanges []*core.StateChange
}

type Storage struct {
	db         *badger.DB
	chainStore *chainStore
	stateStore *stateStore
}

func New(db *badger.DB) *Storage {
	strg := new(Storage)
	strg.db = db
	getter := &badgerGetter{db}
	strg.chainStore = &chainStore{getter}
	strg.stateStore = &stateStore{getter}
	return strg
}

// Commit writes state changes, tx and commit in one badger transaction
func (strg *Storage) Commit(data *CommitData) error {
	updFns := strg.stateStore.commitStateChanges(data.StateChanges)
	if data.Tx != nil {
		updFns = append(updFns, strg.chainStore.setTx(data.Tx))
	}
	if data.TxCommit != nil {
		updFns = append(updFns, strg.chainStore.setTxCommit(data.TxCommit))
		updFns = append(updFns, strg.chainStore.setLastSequence(data.TxCommit.Sequence()))
	}
	if err := updateBadgerDB(strg.db, updFns); err != nil {
		return fmt.Errorf("badger update failed, %w", err)
	}
	return nil
}

func (strg *Storage) GetTx(hash []byte) (*core.Transaction, error) {
	return strg.chainStore.getTx(hash)
}

func (strg *Storage) HasTx(hash []byte) (bool, error) {
	return strg.chainStore.hasTx(hash)
}

func (strg *Storage) GetTxCommit(hash []byte) (*core.TxCommit, error) {
	return strg.chainStore.getTxCommit(hash)
}

// GetLastSequence returns 0 when no tx is committed
func (strg *Storage) GetLastSequence() (uint64, error) {
	seq, err := strg.chainStore.getLastSequence()
	if IsNotFound(err) {
		return 0, nil
	}
	return seq, err
}

// GetState returns nil for missing keys.
// It panics on read failure, the tx executor recovers it as a revert.
func (strg *Storage) GetState(key []byte) []byte {
	val, err := strg.stateStore.getState(key)
	if err != nil {
		panic(fmt.Errorf("read state failed, %w", err))
	}
	return val
}

// IsNotFound reports whether err is a missing key error from the store
func IsNotFound(err error) bool {
	return errors.Is(err, badger.ErrKeyNotFound)
}

func (strg *Storage) Close() error {
	return strg.db.Close()
}
