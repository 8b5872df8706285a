// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package chaincode

import (
	"bytes"

	"github.com/holiman/uint256"
)

type MockState struct {
	StateMap map[string][]byte
}

func NewMockState() *MockState {
	return &MockState{
		StateMap: make(map[string][]byte),
	}
}

func (ms *MockState) GetState(key []byte) []byte {
	return ms.StateMap[string(key)]
}

func (ms *MockState) SetState(key, value []byte) {
	ms.StateMap[string(key)] = value
}

// Clone copies state map, used to check a failed call left state untouched
func (ms *MockState) Clone() *MockState {
	ret := NewMockState()
	for k, v := range ms.StateMap {
		ret.StateMap[k] = v
	}
	return ret
}

// MockBank keeps native balances for mock contexts
type MockBank struct {
	Balances map[string]*uint256.Int
}

func NewMockBank() *MockBank {
	return &MockBank{
		Balances: make(map[string]*uint256.Int),
	}
}

func (mb *MockBank) BalanceOf(addr []byte) *uint256.Int {
	if b, ok := mb.Balances[string(addr)]; ok {
		return b.Clone()
	}
	return new(uint256.Int)
}

func (mb *MockBank) move(src, dest []byte, amount *uint256.Int) error {
	if bytes.Equal(src, dest) {
		return ErrSelfTransfer
	}
	bsrc := mb.BalanceOf(src)
	if bsrc.Lt(amount) {
		return ErrInsufficientFunds
	}
	mb.Balances[string(src)] = bsrc.Sub(bsrc, amount)
	bdes := mb.BalanceOf(dest)
	mb.Balances[string(dest)] = bdes.Add(bdes, amount)
	return nil
}

type MockCallContext struct {
	MockAddr   []byte
	MockSender []byte
	MockValue  *uint256.Int
	MockInput  []byte
	State      *MockState
	Bank       *MockBank
}

var _ CallContext = (*MockCallContext)(nil)

// NewMockCallContext creates a context backed by fresh state and bank
func NewMockCallContext(addr []byte) *MockCallContext {
	return &MockCallContext{
		MockAddr: addr,
		State:    NewMockState(),
		Bank:     NewMockBank(),
	}
}

// Call prepares the context for a call, attached value is credited to
// the chaincode address like the execution layer does
func (ctx *MockCallContext) Call(sender []byte, value *uint256.Int, input []byte) *MockCallContext {
	ctx.MockSender = sender
	ctx.MockInput = input
	ctx.MockValue = value
	if value != nil && !value.IsZero() {
		b := ctx.Bank.BalanceOf(ctx.MockAddr)
		ctx.Bank.Balances[string(ctx.MockAddr)] = b.Add(b, value)
	}
	return ctx
}

func (ctx *MockCallContext) Sender() []byte {
	return ctx.MockSender
}

func (ctx *MockCallContext) Value() *uint256.Int {
	if ctx.MockValue == nil {
		return new(uint256.Int)
	}
	return ctx.MockValue.Clone()
}

func (ctx *MockCallContext) Input() []byte {
	return ctx.MockInput
}

func (ctx *MockCallContext) GetState(key []byte) []byte {
	return ctx.State.GetState(key)
}

func (ctx *MockCallContext) SetState(key, value []byte) {
	ctx.State.SetState(key, value)
}

func (ctx *MockCallContext) Balance() *uint256.Int {
	return ctx.Bank.BalanceOf(ctx.MockAddr)
}

func (ctx *MockCallContext) Transfer(dest []byte, amount *uint256.Int) error {
	return ctx.Bank.move(ctx.MockAddr, dest, amount)
}
