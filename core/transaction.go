// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package core

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/holiman/uint256"
	"golang.org/x/crypto/sha3"
	"google.golang.org/protobuf/encoding/protowire"
)

// errors
var (
	ErrInvalidTxHash = errors.New("invalid tx hash")
	ErrNilTx         = errors.New("nil tx")
)

// tx wire field numbers
const (
	txFieldNonce protowire.Number = iota + 1
	txFieldSender
	txFieldCodeAddr
	txFieldInput
	txFieldValue
	txFieldHash
	txFieldSignature
)

// Transaction is a signed call into a chaincode.
// Empty code address means deployment.
type Transaction struct {
	nonce     uint64
	sender    []byte
	codeAddr  []byte
	input     []byte
	value     *uint256.Int
	hash      []byte
	signature []byte

	senderKey *PublicKey
}

func NewTransaction() *Transaction {
	return &Transaction{
		value: new(uint256.Int),
	}
}

// Sum returns sha3 sum of transaction
func (tx *Transaction) Sum() []byte {
	h := sha3.New256()
	h.Write(uint64ToBytes(tx.nonce))
	h.Write(tx.sender)
	h.Write(tx.codeAddr)
	h.Write(tx.input)
	h.Write(EncodeValue(tx.value))
	return h.Sum(nil)
}

// Validate transaction
func (tx *Transaction) Validate() error {
	if tx == nil {
		return ErrNilTx
	}
	if !bytes.Equal(tx.Sum(), tx.hash) {
		return ErrInvalidTxHash
	}
	sig, err := newSignature(tx.sender, tx.signature)
	if err != nil {
		return err
	}
	if !sig.Verify(tx.hash) {
		return ErrInvalidSig
	}
	return nil
}

func (tx *Transaction) SetNonce(val uint64) *Transaction {
	tx.nonce = val
	return tx
}

func (tx *Transaction) SetCodeAddr(val []byte) *Transaction {
	tx.codeAddr = val
	return tx
}

func (tx *Transaction) SetInput(val []byte) *Transaction {
	tx.input = val
	return tx
}

func (tx *Transaction) SetValue(val *uint256.Int) *Transaction {
	if val == nil {
		val = new(uint256.Int)
	}
	tx.value = val.Clone()
	return tx
}

func (tx *Transaction) Sign(priv *PrivateKey) *Transaction {
	tx.senderKey = priv.PublicKey()
	tx.sender = priv.PublicKey().Bytes()
	tx.hash = tx.Sum()
	tx.signature = priv.Sign(tx.hash).Value()
	return tx
}

func (tx *Transaction) Hash() []byte       { return tx.hash }
func (tx *Transaction) Nonce() uint64      { return tx.nonce }
func (tx *Transaction) Sender() *PublicKey { return tx.senderKey }
func (tx *Transaction) CodeAddr() []byte   { return tx.codeAddr }
func (tx *Transaction) Input() []byte      { return tx.input }
func (tx *Transaction) Signature() []byte  { return tx.signature }

// Value returns a copy of attached value
func (tx *Transaction) Value() *uint256.Int { return tx.value.Clone() }

// IsDeployment checks whether tx deploys a new chaincode
func (tx *Transaction) IsDeployment() bool { return len(tx.codeAddr) == 0 }

func (tx *Transaction) setSender(b []byte) {
	tx.sender = b
	tx.senderKey, _ = NewPublicKey(b)
}

// Marshal encodes transaction as protobuf wire bytes
func (tx *Transaction) Marshal() ([]byte, error) {
	w := new(wireWriter)
	w.writeUint64(txFieldNonce, tx.nonce)
	w.writeBytes(txFieldSender, tx.sender)
	w.writeBytes(txFieldCodeAddr, tx.codeAddr)
	w.writeBytes(txFieldInput, tx.input)
	if !tx.value.IsZero() {
		w.writeBytes(txFieldValue, tx.value.Bytes())
	}
	w.writeBytes(txFieldHash, tx.hash)
	w.writeBytes(txFieldSignature, tx.signature)
	return w.buf, nil
}

// Unmarshal decodes transaction from protobuf wire bytes
func (tx *Transaction) Unmarshal(b []byte) error {
	var (
		sender []byte
		value  []byte
	)
	*tx = Transaction{}
	err := readFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case txFieldNonce:
			return consumeUint64(typ, b, &tx.nonce)
		case txFieldSender:
			return consumeBytes(typ, b, &sender)
		case txFieldCodeAddr:
			return consumeBytes(typ, b, &tx.codeAddr)
		case txFieldInput:
			return consumeBytes(typ, b, &tx.input)
		case txFieldValue:
			return consumeBytes(typ, b, &value)
		case txFieldHash:
			return consumeBytes(typ, b, &tx.hash)
		case txFieldSignature:
			return consumeBytes(typ, b, &tx.signature)
		default:
			return protowire.ConsumeFieldValue(num, typ, b)
		}
	})
	if err != nil {
		return err
	}
	if len(value) > 32 {
		return errors.New("tx value overflows 256 bits")
	}
	tx.value = DecodeValue(value)
	tx.setSender(sender)
	return nil
}

// UnmarshalTransaction decodes transaction from bytes
func UnmarshalTransaction(b []byte) (*Transaction, error) {
	tx := NewTransaction()
	if err := tx.Unmarshal(b); err != nil {
		return nil, err
	}
	return tx, nil
}

type txJSON struct {
	Nonce     uint64 `json:"nonce"`
	Sender    []byte `json:"sender"`
	CodeAddr  []byte `json:"codeAddr"`
	Input     []byte `json:"input"`
	Value     string `json:"value"`
	Hash      []byte `json:"hash"`
	Signature []byte `json:"signature"`
}

// MarshalJSON encodes tx as json, value is a decimal wei string
func (tx *Transaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(txJSON{
		Nonce:     tx.nonce,
		Sender:    tx.sender,
		CodeAddr:  tx.codeAddr,
		Input:     tx.input,
		Value:     tx.value.Dec(),
		Hash:      tx.hash,
		Signature: tx.signature,
	})
}

// UnmarshalJSON decodes tx from json
func (tx *Transaction) UnmarshalJSON(b []byte) error {
	data := new(txJSON)
	if err := json.Unmarshal(b, data); err != nil {
		return err
	}
	value, err := ParseValue(data.Value)
	if err != nil {
		return err
	}
	*tx = Transaction{
		nonce:     data.Nonce,
		codeAddr:  data.CodeAddr,
		input:     data.Input,
		value:     value,
		hash:      data.Hash,
		signature: data.Signature,
	}
	tx.setSender(data.Sender)
	return nil
}
