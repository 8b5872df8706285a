// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package client

import (
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/aungmawjj/juria-loyalty/core"
	"github.com/aungmawjj/juria-loyalty/execution"
	"github.com/aungmawjj/juria-loyalty/execution/chaincode/cellphone"
	"github.com/holiman/uint256"
)

var nonce = uint64(time.Now().UnixNano())

func nextNonce() uint64 {
	return atomic.AddUint64(&nonce, 1)
}

// CellPhone builds signed calls to a deployed cellphone chaincode
type CellPhone struct {
	exec     Executor
	codeAddr []byte
}

// DeployCellPhone deploys a new cellphone chaincode signed by owner
func DeployCellPhone(
	exec Executor, owner *core.PrivateKey, initInput *cellphone.InitInput,
) (*CellPhone, error) {
	if initInput == nil {
		initInput = new(cellphone.InitInput)
	}
	b, err := json.Marshal(initInput)
	if err != nil {
		return nil, err
	}
	input, err := json.Marshal(&execution.DeploymentInput{
		CodeInfo: execution.CodeInfo{
			DriverType: execution.DriverTypeNative,
			CodeID:     execution.NativeCodeIDCellPhone,
		},
		InitInput: b,
	})
	if err != nil {
		return nil, err
	}
	tx := core.NewTransaction().
		SetNonce(nextNonce()).
		SetInput(input).
		Sign(owner)
	txc, err := exec.Execute(tx)
	if err != nil {
		return nil, fmt.Errorf("deploy failed, %w", err)
	}
	return NewCellPhone(exec, txc.CodeAddr()), nil
}

// NewCellPhone binds to a deployed chaincode
func NewCellPhone(exec Executor, codeAddr []byte) *CellPhone {
	return &CellPhone{
		exec:     exec,
		codeAddr: codeAddr,
	}
}

func (cp *CellPhone) CodeAddr() []byte {
	return cp.codeAddr
}

func (cp *CellPhone) EnrollCustomer(caller *core.PrivateKey, name string) (*core.TxCommit, error) {
	return cp.invoke(caller, nil, &cellphone.Input{
		Method: cellphone.MethodEnrollCustomer,
		Name:   name,
	})
}

// PayMonthlyBill attaches value to the call, amount is checked against value when set
func (cp *CellPhone) PayMonthlyBill(
	caller *core.PrivateKey, value *uint256.Int, amount *uint256.Int,
) (*core.TxCommit, error) {
	input := &cellphone.Input{Method: cellphone.MethodPayMonthlyBill}
	if amount != nil {
		input.Amount = amount.Dec()
	}
	return cp.invoke(caller, value, input)
}

func (cp *CellPhone) ExchangePoints(caller *core.PrivateKey, productID uint64) (*core.TxCommit, error) {
	return cp.invoke(caller, nil, &cellphone.Input{
		Method:    cellphone.MethodExchangePoints,
		ProductID: productID,
	})
}

func (cp *CellPhone) TransferToAccount(
	caller *core.PrivateKey, dest []byte, amount *uint256.Int,
) (*core.TxCommit, error) {
	return cp.invoke(caller, nil, &cellphone.Input{
		Method:  cellphone.MethodTransferBalance,
		Address: dest,
		Amount:  amount.Dec(),
	})
}

func (cp *CellPhone) GetCustomer(addr []byte) (*cellphone.Customer, error) {
	ret := new(cellphone.Customer)
	return ret, cp.query(&cellphone.Input{
		Method:  cellphone.MethodGetCustomer,
		Address: addr,
	}, ret)
}

func (cp *CellPhone) GetProduct(id uint64) (*cellphone.Product, error) {
	ret := new(cellphone.Product)
	return ret, cp.query(&cellphone.Input{
		Method:    cellphone.MethodGetProduct,
		ProductID: id,
	}, ret)
}

func (cp *CellPhone) GetProductCount() (uint64, error) {
	var ret uint64
	return ret, cp.query(&cellphone.Input{Method: cellphone.MethodGetProductCount}, &ret)
}

func (cp *CellPhone) GetContractBalance() (*uint256.Int, error) {
	var ret string
	if err := cp.query(&cellphone.Input{Method: cellphone.MethodGetContractBalance}, &ret); err != nil {
		return nil, err
	}
	return core.ParseValue(ret)
}

func (cp *CellPhone) GetOwner() ([]byte, error) {
	var ret []byte
	return ret, cp.query(&cellphone.Input{Method: cellphone.MethodGetOwner}, &ret)
}

// NativeBalance returns the native balance of the chaincode address
func (cp *CellPhone) NativeBalance() (*uint256.Int, error) {
	return cp.exec.GetBalance(cp.codeAddr)
}

func (cp *CellPhone) invoke(
	caller *core.PrivateKey, value *uint256.Int, input *cellphone.Input,
) (*core.TxCommit, error) {
	b, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}
	tx := core.NewTransaction().
		SetNonce(nextNonce()).
		SetCodeAddr(cp.codeAddr).
		SetInput(b)
	if value != nil {
		tx.SetValue(value)
	}
	return cp.exec.Execute(tx.Sign(caller))
}

func (cp *CellPhone) query(input *cellphone.Input, ret interface{}) error {
	b, err := json.Marshal(input)
	if err != nil {
		return err
	}
	res, err := cp.exec.Query(&execution.QueryData{
		CodeAddr: cp.codeAddr,
		Input:    b,
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(res, ret)
}
