// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package execution

import (
	"sync"
	"testing"

	"github.com/aungmawjj/juria-loyalty/storage"
	"github.com/stretchr/testify/assert"
)

type mapStateStore struct {
	stateMap map[string][]byte
	txs      map[string]struct{}
	seq      uint64

	// failing reads
	chainErr error
	stateErr error

	mtx sync.Mutex
}

var _ Storage = (*mapStateStore)(nil)

func newMapStateStore() *mapStateStore {
	return &mapStateStore{
		stateMap: make(map[string][]byte),
		txs:      make(map[string]struct{}),
	}
}

func (store *mapStateStore) GetState(key []byte) []byte {
	store.mtx.Lock()
	defer store.mtx.Unlock()
	if store.stateErr != nil {
		panic(store.stateErr)
	}
	return store.stateMap[string(key)]
}

func (store *mapStateStore) SetState(key, value []byte) {
	store.mtx.Lock()
	defer store.mtx.Unlock()
	store.stateMap[string(key)] = value
}

func (store *mapStateStore) HasTx(hash []byte) (bool, error) {
	store.mtx.Lock()
	defer store.mtx.Unlock()
	if store.chainErr != nil {
		return false, store.chainErr
	}
	_, ok := store.txs[string(hash)]
	return ok, nil
}

func (store *mapStateStore) GetLastSequence() (uint64, error) {
	store.mtx.Lock()
	defer store.mtx.Unlock()
	if store.chainErr != nil {
		return 0, store.chainErr
	}
	return store.seq, nil
}

func (store *mapStateStore) setReadErrors(chainErr, stateErr error) {
	store.mtx.Lock()
	defer store.mtx.Unlock()
	store.chainErr = chainErr
	store.stateErr = stateErr
}

func (store *mapStateStore) Commit(data *storage.CommitData) error {
	store.mtx.Lock()
	defer store.mtx.Unlock()
	for _, sc := range data.StateChanges {
		store.stateMap[string(sc.Key())] = sc.Value()
	}
	if data.Tx != nil {
		store.txs[string(data.Tx.Hash())] = struct{}{}
	}
	if data.TxCommit != nil {
		store.seq = data.TxCommit.Sequence()
	}
	return nil
}

func TestStateTracker_GetState(t *testing.T) {
	assert := assert.New(t)

	ms := newMapStateStore()
	trk := newStateTracker(ms, nil)
	ms.SetState([]byte{1}, []byte{200})

	assert.Equal([]byte{200}, trk.GetState([]byte{1}))
	assert.Nil(trk.GetState([]byte{2}))

	trkChild := trk.spawn(nil)
	assert.Equal([]byte{200}, trkChild.GetState([]byte{1}), "child get state from root store")
	assert.Nil(trkChild.GetState([]byte{2}))

	trk.SetState([]byte{1}, []byte{100})
	assert.Equal([]byte{100}, trk.GetState([]byte{1}), "get latest state")
	assert.Equal([]byte{100}, trkChild.GetState([]byte{1}), "child get latest state from parent")
}

func TestStateTracker_SetState(t *testing.T) {
	assert := assert.New(t)

	ms := newMapStateStore()
	trk := newStateTracker(ms, nil)
	ms.SetState([]byte{1}, []byte{200})

	trk.SetState([]byte{1}, []byte{100})
	trk.SetState([]byte{1}, []byte{50})

	assert.Equal([]byte{50}, trk.GetState([]byte{1}))
	assert.Equal([]byte{200}, ms.GetState([]byte{1}), "base state untouched")

	scList := trk.getStateChanges()
	assert.Equal(1, len(scList))

	trk.SetState([]byte{3}, []byte{30})
	trk.SetState([]byte{2}, []byte{60})
	trk.setState([]byte{2}, []byte{20})
	trk.SetState([]byte{1}, []byte{10})

	assert.Equal([]byte{10}, trk.GetState([]byte{1}))
	assert.Equal([]byte{30}, trk.GetState([]byte{3}))
	assert.Equal([]byte{20}, trk.GetState([]byte{2}))

	scList = trk.getStateChanges()
	if assert.Equal(3, len(scList)) {
		assert.Equal([]byte{1}, scList[0].Key(), "changes sorted by key")
		assert.Equal([]byte{2}, scList[1].Key())
		assert.Equal([]byte{3}, scList[2].Key())
		assert.Equal([]byte{20}, scList[1].Value())
	}
}

func TestStateTracker_SpawnMerge(t *testing.T) {
	assert := assert.New(t)

	ms := newMapStateStore()
	ms.SetState([]byte{1, 1}, []byte{10})
	trk := newStateTracker(ms, nil)

	prefix := []byte{1}
	child := trk.spawn(prefix)
	assert.Equal([]byte{10}, child.GetState([]byte{1}), "child reads with key prefix")

	child.SetState([]byte{2}, []byte{20})
	assert.Equal([]byte{20}, child.GetState([]byte{2}))
	assert.Nil(trk.GetState([]byte{1, 2}), "child changes invisible before merge")
	assert.Empty(trk.getStateChanges())

	trk.merge(child)
	assert.Equal([]byte{20}, trk.GetState([]byte{1, 2}))

	scList := trk.getStateChanges()
	if assert.Equal(1, len(scList)) {
		assert.Equal([]byte{1, 2}, scList[0].Key())
	}

	// discarded child leaves no changes
	child2 := trk.spawn(prefix)
	child2.SetState([]byte{3}, []byte{30})
	assert.Equal(1, len(trk.getStateChanges()))
}
