// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package storage

import (
	"github.com/aungmawjj/juria-loyalty/core"
	"github.com/aungmawjj/juria-loyalty/util"
	"github.com/dgraph-io/badger/v3"
)

type stateStore struct {
	getter getter
}

// getState returns nil for missing keys
func (ss *stateStore) getState(key []byte) ([]byte, error) {
	val, err := ss.getter.Get(util.ConcatBytes([]byte{colStateValueByKey}, key))
	if IsNotFound(err) {
		return nil, nil
	}
	return val, err
}

func (ss *stateStore) commitStateChanges(stateChanges []*core.StateChange) []updateFunc {
	ret := make([]updateFunc, 0, len(stateChanges))
	for _, sc := range stateChanges {
		ret = append(ret, ss.updateState(sc))
	}
	return ret
}

func (ss *stateStore) updateState(sc *core.StateChange) updateFunc {
	return func(txn *badger.Txn) error {
		key := util.ConcatBytes([]byte{colStateValueByKey}, sc.Key())
		if sc.Deleted() {
			return txn.Delete(key)
		}
		return txn.Set(key, sc.Value())
	}
}
