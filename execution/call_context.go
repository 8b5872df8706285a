// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package execution

import (
	"errors"

	"github.com/aungmawjj/juria-loyalty/execution/chaincode"
	"github.com/holiman/uint256"
)

type callContextTx struct {
	codeAddr []byte
	sender   []byte
	value    *uint256.Int
	input    []byte
	bank     State
	State
}

var _ chaincode.CallContext = (*callContextTx)(nil)

func (ctx *callContextTx) Sender() []byte {
	return ctx.sender
}

func (ctx *callContextTx) Value() *uint256.Int {
	return ctx.value.Clone()
}

func (ctx *callContextTx) Input() []byte {
	return ctx.input
}

func (ctx *callContextTx) Balance() *uint256.Int {
	return getBalance(ctx.bank, ctx.codeAddr)
}

func (ctx *callContextTx) Transfer(dest []byte, amount *uint256.Int) error {
	return transferValue(ctx.bank, ctx.codeAddr, dest, amount)
}

type callContextQuery struct {
	codeAddr []byte
	input    []byte
	bank     StateRO
	StateRO
}

var _ chaincode.CallContext = (*callContextQuery)(nil)

func (ctx *callContextQuery) Input() []byte {
	return ctx.input
}

func (ctx *callContextQuery) Sender() []byte {
	return nil
}

func (ctx *callContextQuery) Value() *uint256.Int {
	return new(uint256.Int)
}

func (ctx *callContextQuery) SetState(key, value []byte) {
	// do nothing
}

func (ctx *callContextQuery) Balance() *uint256.Int {
	return getBalance(ctx.bank, ctx.codeAddr)
}

func (ctx *callContextQuery) Transfer(dest []byte, amount *uint256.Int) error {
	return errors.New("transfer is not allowed in query")
}
