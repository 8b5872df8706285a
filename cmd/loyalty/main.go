// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package main

import (
	"log"

	"github.com/spf13/cobra"
)

const (
	flagDebug   = "debug"
	flagDataDir = "datadir"
	flagAPIPort = "apiPort"
	flagTimeout = "txTimeout"
	flagNames   = "names"
	flagBalance = "balance"
)

var rootCmd = &cobra.Command{
	Use:   "loyalty",
	Short: "Cell phone company loyalty ledger",
}

func main() {
	check(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringP(flagDataDir, "d", "", "ledger data directory")
	rootCmd.MarkPersistentFlagRequired(flagDataDir)

	rootCmd.AddCommand(runCmd, keygenCmd, genesisCmd)
}

func check(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
