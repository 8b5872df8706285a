// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package execution

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aungmawjj/juria-loyalty/core"
	"github.com/aungmawjj/juria-loyalty/emitter"
	"github.com/aungmawjj/juria-loyalty/logger"
	"github.com/aungmawjj/juria-loyalty/storage"
	"github.com/holiman/uint256"
)

type Config struct {
	TxExecTimeout time.Duration
}

var DefaultConfig = Config{
	TxExecTimeout: 10 * time.Second,
}

var (
	ErrDuplicateTx  = errors.New("duplicate transaction")
	ErrCommitFailed = errors.New("commit failed")
	ErrStorageRead  = errors.New("storage read failed")
)

var genesisKey = bytes.Repeat([]byte{0xfe}, 32)

type Storage interface {
	GetState(key []byte) []byte
	HasTx(hash []byte) (bool, error)
	GetLastSequence() (uint64, error)
	Commit(data *storage.CommitData) error
}

// Execution runs transactions one at a time against the committed state
type Execution struct {
	storage Storage
	config  Config

	codeRegistry *codeRegistry
	emitter      *emitter.Emitter

	mtx sync.RWMutex
}

func New(strg Storage, config Config) *Execution {
	exec := &Execution{
		storage: strg,
		config:  config,
		emitter: emitter.New(),
	}
	exec.codeRegistry = newCodeRegistry()
	exec.codeRegistry.registerDriver(DriverTypeNative, newNativeCodeDriver())
	return exec
}

// Execute runs a deployment or invoke tx and commits the result.
// The commit is stored even when the call reverts, the returned error is the revert reason.
func (exec *Execution) Execute(tx *core.Transaction) (*core.TxCommit, error) {
	if err := tx.Validate(); err != nil {
		txCounter.WithLabelValues(statusRejected).Inc()
		return nil, err
	}
	exec.mtx.Lock()
	defer exec.mtx.Unlock()

	if err := exec.checkDuplicate(tx); err != nil {
		txCounter.WithLabelValues(statusRejected).Inc()
		return nil, err
	}
	seq, err := exec.storage.GetLastSequence()
	if err != nil {
		txCounter.WithLabelValues(statusRejected).Inc()
		return nil, fmt.Errorf("%w, %v", ErrStorageRead, err)
	}

	rootTrk := newStateTracker(exec.storage, nil)
	txe := &txExecutor{
		codeRegistry: exec.codeRegistry,
		timeout:      exec.config.TxExecTimeout,
		rootTrk:      rootTrk,
		seq:          seq + 1,
		tx:           tx,
	}
	txc, err := txe.execute()

	data := &storage.CommitData{
		Tx:       tx,
		TxCommit: txc,
	}
	if err == nil {
		data.StateChanges = rootTrk.getStateChanges()
	}
	if cerr := exec.storage.Commit(data); cerr != nil {
		return nil, fmt.Errorf("%w, %v", ErrCommitFailed, cerr)
	}
	observeCommit(txc)
	if err != nil {
		logger.I().Debugw("tx reverted", "seq", txc.Sequence(), "error", err)
	} else {
		logger.I().Debugw("tx committed",
			"seq", txc.Sequence(), "changes", len(data.StateChanges))
	}
	exec.emitter.Emit(txc)
	return txc, err
}

func (exec *Execution) checkDuplicate(tx *core.Transaction) error {
	has, err := exec.storage.HasTx(tx.Hash())
	if err != nil {
		return fmt.Errorf("%w, %v", ErrStorageRead, err)
	}
	if has {
		return ErrDuplicateTx
	}
	return nil
}

type QueryData struct {
	CodeAddr []byte
	Input    []byte
}

func (exec *Execution) Query(query *QueryData) (val []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%+v", r)
		}
	}()
	exec.mtx.RLock()
	defer exec.mtx.RUnlock()

	queryCounter.Inc()
	cc, err := exec.codeRegistry.getInstance(
		query.CodeAddr, newStateTracker(exec.storage, codeRegistryAddr))
	if err != nil {
		return nil, err
	}
	return cc.Query(&callContextQuery{
		codeAddr: query.CodeAddr,
		input:    query.Input,
		bank:     exec.storage,
		StateRO:  newStateTracker(exec.storage, query.CodeAddr),
	})
}

// VerifyTx checks the tx can be executed without running it
func (exec *Execution) VerifyTx(tx *core.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}
	if err := exec.checkDuplicate(tx); err != nil {
		return err
	}
	if !tx.IsDeployment() {
		return nil
	}
	input := new(DeploymentInput)
	if err := json.Unmarshal(tx.Input(), input); err != nil {
		return err
	}
	return exec.codeRegistry.install(input)
}

// GetBalance returns the native balance of an identity or chaincode address
func (exec *Execution) GetBalance(addr []byte) *uint256.Int {
	exec.mtx.RLock()
	defer exec.mtx.RUnlock()
	return getBalance(exec.storage, addr)
}

// ApplyGenesis mints the initial balances, it has no effect after the first call
func (exec *Execution) ApplyGenesis(alloc []Alloc) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w, %+v", ErrStorageRead, r)
		}
	}()
	exec.mtx.Lock()
	defer exec.mtx.Unlock()

	if exec.storage.GetState(genesisKey) != nil {
		return nil
	}
	trk := newStateTracker(exec.storage, nil)
	for _, a := range alloc {
		mint(trk, a.Address, a.Balance)
	}
	trk.SetState(genesisKey, []byte{1})
	return exec.storage.Commit(&storage.CommitData{
		StateChanges: trk.getStateChanges(),
	})
}

// Subscribe gives the commit of every executed tx as an event
func (exec *Execution) Subscribe(buffer int) *emitter.Subscription {
	return exec.emitter.Subscribe(buffer)
}
