// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package node

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path"

	"github.com/aungmawjj/juria-loyalty/core"
	"github.com/aungmawjj/juria-loyalty/execution"
)

const (
	GenesisFile = "genesis.json"
	KeyFileExt  = ".key"
)

// GenesisAlloc is an initial balance, address in hex and balance in wei decimal
type GenesisAlloc struct {
	Address string `json:"address"`
	Balance string `json:"balance"`
}

type Genesis struct {
	Alloc []GenesisAlloc `json:"alloc"`
}

// ToAlloc parses addresses and balances
func (g *Genesis) ToAlloc() ([]execution.Alloc, error) {
	ret := make([]execution.Alloc, len(g.Alloc))
	for i, a := range g.Alloc {
		addr, err := hex.DecodeString(a.Address)
		if err != nil {
			return nil, fmt.Errorf("invalid address %q, %w", a.Address, err)
		}
		balance, err := core.ParseValue(a.Balance)
		if err != nil {
			return nil, fmt.Errorf("invalid balance %q, %w", a.Balance, err)
		}
		ret[i] = execution.Alloc{
			Address: addr,
			Balance: balance,
		}
	}
	return ret, nil
}

// ReadGenesis returns empty genesis if the file does not exist
func ReadGenesis(datadir string) (*Genesis, error) {
	f, err := os.Open(path.Join(datadir, GenesisFile))
	if os.IsNotExist(err) {
		return new(Genesis), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read %s, %w", GenesisFile, err)
	}
	defer f.Close()

	genesis := new(Genesis)
	if err := json.NewDecoder(f).Decode(genesis); err != nil {
		return nil, fmt.Errorf("cannot parse %s, %w", GenesisFile, err)
	}
	return genesis, nil
}

func WriteGenesis(datadir string, genesis *Genesis) error {
	b, err := json.MarshalIndent(genesis, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path.Join(datadir, GenesisFile), b, 0644)
}

func ReadKeyFile(file string) (*core.PrivateKey, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s, %w", file, err)
	}
	return core.NewPrivateKey(b)
}

// WriteKeyFile writes private key to datadir/name.key
func WriteKeyFile(datadir, name string, key *core.PrivateKey) (string, error) {
	file := path.Join(datadir, name+KeyFileExt)
	return file, os.WriteFile(file, key.Bytes(), 0600)
}
