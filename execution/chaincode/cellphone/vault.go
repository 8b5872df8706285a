// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package cellphone

import (
	"bytes"

	"github.com/aungmawjj/juria-loyalty/core"
	"github.com/aungmawjj/juria-loyalty/execution/chaincode"
	"github.com/holiman/uint256"
)

var (
	keyOwner = []byte("owner")
	keyVault = []byte("vault")
)

func getVault(ctx chaincode.CallContext) *uint256.Int {
	return core.DecodeValue(ctx.GetState(keyVault))
}

func setVault(ctx chaincode.CallContext, value *uint256.Int) {
	ctx.SetState(keyVault, core.EncodeValue(value))
}

func creditVault(ctx chaincode.CallContext, amount *uint256.Int) {
	vault := getVault(ctx)
	setVault(ctx, vault.Add(vault, amount))
}

func debitVault(ctx chaincode.CallContext, amount *uint256.Int) error {
	vault := getVault(ctx)
	if vault.Lt(amount) {
		return ErrInsufficientVaultBalance
	}
	setVault(ctx, vault.Sub(vault, amount))
	return nil
}

func getOwner(ctx chaincode.CallContext) []byte {
	return ctx.GetState(keyOwner)
}

func setOwner(ctx chaincode.CallContext, owner []byte) {
	ctx.SetState(keyOwner, owner)
}

func isOwner(ctx chaincode.CallContext, identity []byte) bool {
	owner := getOwner(ctx)
	return len(owner) > 0 && bytes.Equal(owner, identity)
}
