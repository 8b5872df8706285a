// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package chaincode

import (
	"errors"

	"github.com/holiman/uint256"
)

// ErrInsufficientFunds is returned by Transfer when the chaincode address
// does not hold enough native balance
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrSelfTransfer is returned by Transfer when dest is the chaincode address
var ErrSelfTransfer = errors.New("transfer to own address")

// CallContext is given to the chaincode for each call.
// Query calls get a context with nil sender, zero value and no-op writes.
type CallContext interface {
	Sender() []byte
	// Value is the native value attached to the call,
	// already credited to the chaincode address
	Value() *uint256.Int
	Input() []byte

	GetState(key []byte) []byte
	SetState(key, value []byte)

	// Balance returns native balance of the chaincode address
	Balance() *uint256.Int
	// Transfer moves native value from the chaincode address to dest
	Transfer(dest []byte, amount *uint256.Int) error
}

// all chaincodes implements Chaincode interface
type Chaincode interface {
	// called when chaincode is deployed
	Init(ctx CallContext) error

	Invoke(ctx CallContext) error

	Query(ctx CallContext) ([]byte, error)
}
