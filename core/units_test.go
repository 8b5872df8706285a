// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package core

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
)

func TestEtherToWei(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("1000000000000000000", EtherToWei(1).Dec())
	// does not fit in uint64
	assert.Equal("20000000000000000000", EtherToWei(20).Dec())
	assert.False(EtherToWei(20).IsUint64())
}

func TestParseValue(t *testing.T) {
	assert := assert.New(t)

	v, err := ParseValue("")
	assert.NoError(err)
	assert.True(v.IsZero())

	v, err = ParseValue("20000000000000000000")
	assert.NoError(err)
	assert.Equal(EtherToWei(20), v)

	_, err = ParseValue("12ab")
	assert.Error(err)
}

func TestEncodeDecodeValue(t *testing.T) {
	assert := assert.New(t)

	b := EncodeValue(uint256.NewInt(300))
	assert.Len(b, 32)
	assert.Equal(uint256.NewInt(300), DecodeValue(b))
	assert.True(DecodeValue(nil).IsZero())
}
