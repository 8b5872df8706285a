// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package core

import (
	"encoding/json"

	"google.golang.org/protobuf/encoding/protowire"
)

// commit wire field numbers
const (
	txcFieldHash protowire.Number = iota + 1
	txcFieldSequence
	txcFieldCodeAddr
	txcFieldError
	txcFieldElapsed
)

// TxCommit is the receipt of an executed transaction.
// A non empty error means the call was reverted.
type TxCommit struct {
	hash     []byte
	sequence uint64
	codeAddr []byte
	err      string
	elapsed  float64
}

func NewTxCommit() *TxCommit {
	return new(TxCommit)
}

func (txc *TxCommit) SetHash(val []byte) *TxCommit {
	txc.hash = val
	return txc
}

// SetSequence sets the execution order of the tx in the ledger
func (txc *TxCommit) SetSequence(val uint64) *TxCommit {
	txc.sequence = val
	return txc
}

func (txc *TxCommit) SetCodeAddr(val []byte) *TxCommit {
	txc.codeAddr = val
	return txc
}

func (txc *TxCommit) SetError(val string) *TxCommit {
	txc.err = val
	return txc
}

func (txc *TxCommit) SetElapsed(val float64) *TxCommit {
	txc.elapsed = val
	return txc
}

func (txc *TxCommit) Hash() []byte     { return txc.hash }
func (txc *TxCommit) Sequence() uint64 { return txc.sequence }
func (txc *TxCommit) CodeAddr() []byte { return txc.codeAddr }
func (txc *TxCommit) Error() string    { return txc.err }
func (txc *TxCommit) Elapsed() float64 { return txc.elapsed }
func (txc *TxCommit) Reverted() bool   { return txc.err != "" }

// Marshal encodes tx commit as protobuf wire bytes
func (txc *TxCommit) Marshal() ([]byte, error) {
	w := new(wireWriter)
	w.writeBytes(txcFieldHash, txc.hash)
	w.writeUint64(txcFieldSequence, txc.sequence)
	w.writeBytes(txcFieldCodeAddr, txc.codeAddr)
	w.writeString(txcFieldError, txc.err)
	w.writeFloat64(txcFieldElapsed, txc.elapsed)
	return w.buf, nil
}

// Unmarshal decodes tx commit from protobuf wire bytes
func (txc *TxCommit) Unmarshal(b []byte) error {
	*txc = TxCommit{}
	return readFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case txcFieldHash:
			return consumeBytes(typ, b, &txc.hash)
		case txcFieldSequence:
			return consumeUint64(typ, b, &txc.sequence)
		case txcFieldCodeAddr:
			return consumeBytes(typ, b, &txc.codeAddr)
		case txcFieldError:
			return consumeString(typ, b, &txc.err)
		case txcFieldElapsed:
			return consumeFloat64(typ, b, &txc.elapsed)
		default:
			return protowire.ConsumeFieldValue(num, typ, b)
		}
	})
}

type txCommitJSON struct {
	Hash     []byte  `json:"hash"`
	Sequence uint64  `json:"sequence"`
	CodeAddr []byte  `json:"codeAddr,omitempty"`
	Error    string  `json:"error,omitempty"`
	Elapsed  float64 `json:"elapsed"`
}

func (txc *TxCommit) MarshalJSON() ([]byte, error) {
	return json.Marshal(txCommitJSON{
		Hash:     txc.hash,
		Sequence: txc.sequence,
		CodeAddr: txc.codeAddr,
		Error:    txc.err,
		Elapsed:  txc.elapsed,
	})
}

func (txc *TxCommit) UnmarshalJSON(b []byte) error {
	data := new(txCommitJSON)
	if err := json.Unmarshal(b, data); err != nil {
		return err
	}
	*txc = TxCommit{
		hash:     data.Hash,
		sequence: data.Sequence,
		codeAddr: data.CodeAddr,
		err:      data.Error,
		elapsed:  data.Elapsed,
	}
	return nil
}
