// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package storage

import (
	"github.com/aungmawjj/juria-loyalty/core"
	"github.com/aungmawjj/juria-loyalty/util"
	"github.com/dgraph-io/badger/v3"
)

type chainStore struct {
	getter getter
}

func (cs *chainStore) getTx(hash []byte) (*core.Transaction, error) {
	b, err := cs.getter.Get(util.ConcatBytes([]byte{colTxByHash}, hash))
	if err != nil {
		return nil, err
	}
	return core.UnmarshalTransaction(b)
}

func (cs *chainStore) hasTx(hash []byte) (bool, error) {
	return cs.getter.Has(util.ConcatBytes([]byte{colTxByHash}, hash))
}

func (cs *chainStore) getTxCommit(hash []byte) (*core.TxCommit, error) {
	b, err := cs.getter.Get(util.ConcatBytes([]byte{colTxCommitByHash}, hash))
	if err != nil {
		return nil, err
	}
	txc := core.NewTxCommit()
	return txc, txc.Unmarshal(b)
}

func (cs *chainStore) getLastSequence() (uint64, error) {
	b, err := cs.getter.Get([]byte{colLastSequence})
	if err != nil {
		return 0, err
	}
	return util.BytesUint64(b), nil
}

func (cs *chainStore) setTx(tx *core.Transaction) updateFunc {
	return func(txn *badger.Txn) error {
		val, err := tx.Marshal()
		if err != nil {
			return err
		}
		return txn.Set(util.ConcatBytes([]byte{colTxByHash}, tx.Hash()), val)
	}
}

func (cs *chainStore) setTxCommit(txc *core.TxCommit) updateFunc {
	return func(txn *badger.Txn) error {
		val, err := txc.Marshal()
		if err != nil {
			return err
		}
		return txn.Set(util.ConcatBytes([]byte{colTxCommitByHash}, txc.Hash()), val)
	}
}

func (cs *chainStore) setLastSequence(seq uint64) updateFunc {
	return func(txn *badger.Txn) error {
		return txn.Set([]byte{colLastSequence}, util.Uint64Bytes(seq))
	}
}
