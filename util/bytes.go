// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package util

import (
	"bytes"
	"encoding/binary"
)

var ByteOrder binary.ByteOrder = binary.BigEndian

func ConcatBytes(srcs ...[]byte) []byte {
	buf := bytes.NewBuffer(nil)
	for _, src := range srcs {
		buf.Grow(len(src))
	}
	for _, src := range srcs {
		buf.Write(src)
	}
	return buf.Bytes()
}

func Uint64Bytes(v uint64) []byte {
	b := make([]byte, 8)
	ByteOrder.PutUint64(b, v)
	return b
}

// BytesUint64 returns 0 for values shorter than 8 bytes
func BytesUint64(b []byte) uint64 {
	if len(b) < 8 {
		return 0
	}
	return ByteOrder.Uint64(b)
}
