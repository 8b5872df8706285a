// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package main

import (
	"github.com/aungmawjj/juria-loyalty/node"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the ledger node",
	Run: func(cmd *cobra.Command, args []string) {
		config := node.DefaultConfig
		var err error
		config.Debug, err = cmd.Flags().GetBool(flagDebug)
		check(err)
		config.Datadir, err = cmd.Flags().GetString(flagDataDir)
		check(err)
		config.APIPort, err = cmd.Flags().GetInt(flagAPIPort)
		check(err)
		config.ExecutionConfig.TxExecTimeout, err = cmd.Flags().GetDuration(flagTimeout)
		check(err)

		node.Run(config)
	},
}

func init() {
	runCmd.Flags().Bool(flagDebug, false, "debug mode")
	runCmd.Flags().IntP(flagAPIPort, "p", node.DefaultConfig.APIPort, "node api port")
	runCmd.Flags().Duration(flagTimeout,
		node.DefaultConfig.ExecutionConfig.TxExecTimeout, "tx execution timeout")
}
