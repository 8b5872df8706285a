// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package core

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Ether is the reference unit in wei
var Ether = uint256.NewInt(1e18)

// EtherToWei converts whole ether to wei
func EtherToWei(n uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(n), Ether)
}

// ParseValue parses decimal wei string, empty string is zero
func ParseValue(s string) (*uint256.Int, error) {
	if s == "" {
		return new(uint256.Int), nil
	}
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("invalid value %q, %w", s, err)
	}
	return v, nil
}

// EncodeValue encodes value as 32 bytes big endian
func EncodeValue(v *uint256.Int) []byte {
	b := v.Bytes32()
	return b[:]
}

// DecodeValue decodes big endian bytes, nil is zero
func DecodeValue(b []byte) *uint256.Int {
	return new(uint256.Int).SetBytes(b)
}
