// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package execution

import (
	"bytes"

	"github.com/aungmawjj/juria-loyalty/core"
	"github.com/aungmawjj/juria-loyalty/execution/chaincode"
	"github.com/aungmawjj/juria-loyalty/util"
	"github.com/holiman/uint256"
)

// native balances are kept under bankAddr prefix, keyed by account address
// (sender public key or chaincode address)
var bankAddr = bytes.Repeat([]byte{0xff}, 32)

// Alloc is an initial native balance
type Alloc struct {
	Address []byte
	Balance *uint256.Int
}

func bankKey(addr []byte) []byte {
	return util.ConcatBytes(bankAddr, addr)
}

func getBalance(state StateRO, addr []byte) *uint256.Int {
	return core.DecodeValue(state.GetState(bankKey(addr)))
}

func setBalance(state State, addr []byte, value *uint256.Int) {
	state.SetState(bankKey(addr), core.EncodeValue(value))
}

func mint(state State, addr []byte, amount *uint256.Int) {
	balance := getBalance(state, addr)
	setBalance(state, addr, balance.Add(balance, amount))
}

func transferValue(state State, src, dest []byte, amount *uint256.Int) error {
	if bytes.Equal(src, dest) {
		return chaincode.ErrSelfTransfer
	}
	if amount.IsZero() {
		return nil
	}
	bsrc := getBalance(state, src)
	if bsrc.Lt(amount) {
		return chaincode.ErrInsufficientFunds
	}
	setBalance(state, src, bsrc.Sub(bsrc, amount))
	mint(state, dest, amount)
	return nil
}
