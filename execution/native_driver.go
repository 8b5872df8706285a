// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package execution

import (
	"bytes"
	"errors"

	"github.com/aungmawjj/juria-loyalty/execution/chaincode"
	"github.com/aungmawjj/juria-loyalty/execution/chaincode/cellphone"
	"github.com/aungmawjj/juria-loyalty/execution/chaincode/students"
)

var (
	NativeCodeIDCellPhone = bytes.Repeat([]byte{1}, 32)
	NativeCodeIDStudents  = bytes.Repeat([]byte{2}, 32)
)

var ErrUnknownNativeCode = errors.New("unknown native chaincode id")

type nativeCodeDriver struct{}

var _ CodeDriver = (*nativeCodeDriver)(nil)

func newNativeCodeDriver() *nativeCodeDriver {
	return new(nativeCodeDriver)
}

func (drv *nativeCodeDriver) Install(codeID, data []byte) error {
	_, err := drv.GetInstance(codeID)
	return err
}

func (drv *nativeCodeDriver) GetInstance(codeID []byte) (chaincode.Chaincode, error) {
	switch {
	case bytes.Equal(codeID, NativeCodeIDCellPhone):
		return new(cellphone.CellPhone), nil
	case bytes.Equal(codeID, NativeCodeIDStudents):
		return new(students.Students), nil
	default:
		return nil, ErrUnknownNativeCode
	}
}
