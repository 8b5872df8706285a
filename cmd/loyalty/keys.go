// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package main

import (
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aungmawjj/juria-loyalty/core"
	"github.com/aungmawjj/juria-loyalty/node"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate account keys into data directory",
	Run: func(cmd *cobra.Command, args []string) {
		datadir, err := cmd.Flags().GetString(flagDataDir)
		check(err)
		names, err := cmd.Flags().GetStringSlice(flagNames)
		check(err)
		check(os.MkdirAll(datadir, 0755))

		bold := color.New(color.Bold)
		boldGreen := color.New(color.Bold, color.FgGreen)
		for _, name := range names {
			priv := core.GenerateKey(rand.Reader)
			file, err := node.WriteKeyFile(datadir, name, priv)
			check(err)
			bold.Printf("%-10s ", name)
			fmt.Printf("%s ", priv.PublicKey())
			boldGreen.Println(file)
		}
	},
}

var genesisCmd = &cobra.Command{
	Use:   "genesis",
	Short: "Write genesis file allocating balance to every key in data directory",
	Run: func(cmd *cobra.Command, args []string) {
		datadir, err := cmd.Flags().GetString(flagDataDir)
		check(err)
		etherAmount, err := cmd.Flags().GetUint64(flagBalance)
		check(err)

		files, err := filepath.Glob(filepath.Join(datadir, "*"+node.KeyFileExt))
		check(err)
		if len(files) == 0 {
			color.New(color.Bold, color.FgRed).Println("no key files found, run keygen first")
			os.Exit(1)
		}
		genesis := new(node.Genesis)
		balance := core.EtherToWei(etherAmount).Dec()
		for _, file := range files {
			priv, err := node.ReadKeyFile(file)
			check(err)
			genesis.Alloc = append(genesis.Alloc, node.GenesisAlloc{
				Address: priv.PublicKey().String(),
				Balance: balance,
			})
			color.New(color.Bold).Printf("%-10s ",
				strings.TrimSuffix(filepath.Base(file), node.KeyFileExt))
			fmt.Printf("%s %d ether\n", priv.PublicKey(), etherAmount)
		}
		check(node.WriteGenesis(datadir, genesis))
		color.New(color.Bold, color.FgGreen).Printf("wrote %s\n",
			filepath.Join(datadir, node.GenesisFile))
	},
}

func init() {
	keygenCmd.Flags().StringSlice(flagNames,
		[]string{"owner", "alice", "bob"}, "account names, one key file per name")
	genesisCmd.Flags().Uint64(flagBalance, 100, "initial balance of every account in ether")
}
