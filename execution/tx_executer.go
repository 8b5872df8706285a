// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package execution

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aungmawjj/juria-loyalty/core"
	"github.com/aungmawjj/juria-loyalty/execution/chaincode"
)

var (
	ErrNonPayableDeploy = errors.New("value is not allowed in deployment")
	ErrExecTimeout      = errors.New("tx execution timeout")
)

type DeploymentInput struct {
	CodeInfo    CodeInfo `json:"codeInfo"`
	InstallData []byte   `json:"installData"`
	InitInput   []byte   `json:"initInput"`
}

type txExecutor struct {
	codeRegistry *codeRegistry

	timeout time.Duration
	rootTrk *stateTracker

	seq uint64
	tx  *core.Transaction
}

// execute returns the commit for the tx, the error is the revert reason.
// rootTrk only gets the changes of a successful call
func (txe *txExecutor) execute() (*core.TxCommit, error) {
	start := time.Now()
	txc := core.NewTxCommit().
		SetHash(txe.tx.Hash()).
		SetSequence(txe.seq).
		SetCodeAddr(txe.codeAddr())

	err := txe.executeWithTimeout()
	if err != nil {
		txc.SetError(err.Error())
	}
	txc.SetElapsed(time.Since(start).Seconds())
	return txc, err
}

func (txe *txExecutor) codeAddr() []byte {
	if txe.tx.IsDeployment() {
		return txe.tx.Hash()
	}
	return txe.tx.CodeAddr()
}

func (txe *txExecutor) executeWithTimeout() error {
	exeError := make(chan error, 1)
	go func() {
		exeError <- txe.executeChaincode()
	}()

	select {
	case err := <-exeError:
		return err

	case <-time.After(txe.timeout):
		return ErrExecTimeout
	}
}

func (txe *txExecutor) executeChaincode() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%+v", r)
		}
	}()
	if txe.tx.IsDeployment() {
		return txe.executeDeployment()
	}
	return txe.executeInvoke()
}

func (txe *txExecutor) executeDeployment() error {
	if !txe.tx.Value().IsZero() {
		return ErrNonPayableDeploy
	}
	input := new(DeploymentInput)
	err := json.Unmarshal(txe.tx.Input(), input)
	if err != nil {
		return err
	}

	regTrk := txe.rootTrk.spawn(codeRegistryAddr)
	cc, err := txe.codeRegistry.deploy(txe.tx.Hash(), input, regTrk)
	if err != nil {
		return err
	}

	bankTrk := txe.rootTrk.spawn(nil)
	initTrk := txe.rootTrk.spawn(txe.tx.Hash())
	err = cc.Init(txe.makeCallContext(initTrk, bankTrk, input.InitInput))
	if err != nil {
		return err
	}
	txe.rootTrk.merge(regTrk)
	txe.rootTrk.merge(bankTrk)
	txe.rootTrk.merge(initTrk)
	return nil
}

func (txe *txExecutor) executeInvoke() error {
	cc, err := txe.codeRegistry.getInstance(
		txe.tx.CodeAddr(), txe.rootTrk.spawn(codeRegistryAddr))
	if err != nil {
		return err
	}

	// attached value is moved to the chaincode before the call
	bankTrk := txe.rootTrk.spawn(nil)
	err = transferValue(bankTrk, txe.tx.Sender().Bytes(), txe.tx.CodeAddr(), txe.tx.Value())
	if err != nil {
		return err
	}

	invokeTrk := txe.rootTrk.spawn(txe.tx.CodeAddr())
	err = cc.Invoke(txe.makeCallContext(invokeTrk, bankTrk, txe.tx.Input()))
	if err != nil {
		return err
	}
	txe.rootTrk.merge(bankTrk)
	txe.rootTrk.merge(invokeTrk)
	return nil
}

func (txe *txExecutor) makeCallContext(
	state, bank State, input []byte,
) chaincode.CallContext {
	return &callContextTx{
		codeAddr: txe.codeAddr(),
		sender:   txe.tx.Sender().Bytes(),
		value:    txe.tx.Value(),
		input:    input,
		bank:     bank,
		State:    state,
	}
}
