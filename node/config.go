// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package node

import (
	"github.com/aungmawjj/juria-loyalty/execution"
)

type Config struct {
	Debug   bool
	Datadir string
	APIPort int

	ExecutionConfig execution.Config
}

var DefaultConfig = Config{
	APIPort:         9040,
	ExecutionConfig: execution.DefaultConfig,
}
