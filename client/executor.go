// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package client

import (
	"errors"

	"github.com/aungmawjj/juria-loyalty/core"
	"github.com/aungmawjj/juria-loyalty/execution"
	"github.com/aungmawjj/juria-loyalty/execution/chaincode"
	"github.com/aungmawjj/juria-loyalty/execution/chaincode/cellphone"
	"github.com/holiman/uint256"
)

// Executor runs transactions and queries, *execution.Execution is the local one
type Executor interface {
	Execute(tx *core.Transaction) (*core.TxCommit, error)
	Query(query *execution.QueryData) ([]byte, error)
	GetBalance(addr []byte) (*uint256.Int, error)
}

// LocalExecutor runs calls in process
type LocalExecutor struct {
	*execution.Execution
}

var _ Executor = (*LocalExecutor)(nil)

func (le *LocalExecutor) GetBalance(addr []byte) (*uint256.Int, error) {
	return le.Execution.GetBalance(addr), nil
}

var knownErrors = []error{
	cellphone.ErrAlreadyEnrolled,
	cellphone.ErrNotEnrolled,
	cellphone.ErrUnknownProduct,
	cellphone.ErrInsufficientPoints,
	cellphone.ErrInsufficientVaultBalance,
	cellphone.ErrUnauthorized,
	cellphone.ErrEmptyName,
	cellphone.ErrPaymentMismatch,
	cellphone.ErrNotPayable,
	cellphone.ErrInvalidDestination,
	cellphone.ErrPointsOverflow,
	cellphone.ErrUnknownAccrual,
	cellphone.ErrMethodNotFound,
	chaincode.ErrInsufficientFunds,
	chaincode.ErrSelfTransfer,
	execution.ErrCodeNotFound,
	execution.ErrNonPayableDeploy,
	execution.ErrExecTimeout,
	execution.ErrDuplicateTx,
}

// revertError maps a revert message from a remote commit back to its sentinel error
func revertError(msg string) error {
	for _, err := range knownErrors {
		if err.Error() == msg {
			return err
		}
	}
	return errors.New(msg)
}
