// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package core

import (
	"crypto/ed25519"
	"errors"
)

// errors
var (
	ErrInvalidSig = errors.New("invalid signature")
	ErrNilSig     = errors.New("nil signature")
)

// Signature type
type Signature struct {
	value  []byte
	pubKey *PublicKey
}

func newSignature(pubKey, value []byte) (*Signature, error) {
	if len(value) == 0 {
		return nil, ErrNilSig
	}
	pub, err := NewPublicKey(pubKey)
	if err != nil {
		return nil, err
	}
	return &Signature{value, pub}, nil
}

// Verify verifies the signature
func (sig *Signature) Verify(msg []byte) bool {
	return ed25519.Verify(sig.pubKey.key, msg, sig.value)
}

// PublicKey returns corresponding public key
func (sig *Signature) PublicKey() *PublicKey {
	return sig.pubKey
}

// Value returns raw signature bytes
func (sig *Signature) Value() []byte {
	return sig.value
}
