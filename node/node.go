// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package node

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/aungmawjj/juria-loyalty/core"
	"github.com/aungmawjj/juria-loyalty/execution"
	"github.com/aungmawjj/juria-loyalty/logger"
	"github.com/aungmawjj/juria-loyalty/storage"
	"github.com/prometheus/client_golang/prometheus"
)

type Node struct {
	config Config

	storage   *storage.Storage
	execution *execution.Execution
	registry  *prometheus.Registry
	server    *http.Server
}

func Run(config Config) {
	node := new(Node)
	node.config = config
	logger.Set(logger.New(config.Debug))
	if err := node.setupComponents(); err != nil {
		logger.I().Fatalw("setup node failed", "error", err)
	}
	go node.logCommits()
	node.serveAPI()
	logger.I().Infow("node started", "apiPort", config.APIPort, "datadir", config.Datadir)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	node.Close()
}

func (node *Node) setupComponents() error {
	if err := node.setupStorage(); err != nil {
		return err
	}
	node.execution = execution.New(node.storage, node.config.ExecutionConfig)
	if err := node.applyGenesis(); err != nil {
		return err
	}
	return node.setupMetrics()
}

func (node *Node) setupStorage() error {
	db, err := storage.NewDB(path.Join(node.config.Datadir, "db"))
	if err != nil {
		return fmt.Errorf("cannot create db %w", err)
	}
	node.storage = storage.New(db)
	return nil
}

func (node *Node) applyGenesis() error {
	genesis, err := ReadGenesis(node.config.Datadir)
	if err != nil {
		return err
	}
	alloc, err := genesis.ToAlloc()
	if err != nil {
		return err
	}
	if err := node.execution.ApplyGenesis(alloc); err != nil {
		return fmt.Errorf("apply genesis failed, %w", err)
	}
	logger.I().Infow("applied genesis", "accounts", len(alloc))
	return nil
}

func (node *Node) setupMetrics() error {
	node.registry = prometheus.NewRegistry()
	for _, c := range execution.PromCollectors {
		if err := node.registry.Register(c); err != nil {
			return fmt.Errorf("register metrics failed, %w", err)
		}
	}
	return node.registry.Register(prometheus.NewGoCollector())
}

func (node *Node) serveAPI() {
	node.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", node.config.APIPort),
		Handler: NewAPIHandler(node.execution, node.storage, node.registry),
	}
	go func() {
		err := node.server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			logger.I().Fatalw("failed to start api", "error", err)
		}
	}()
}

func (node *Node) logCommits() {
	sub := node.execution.Subscribe(100)
	for e := range sub.Events() {
		txc := e.(*core.TxCommit)
		logger.I().Infow("executed tx",
			"seq", txc.Sequence(),
			"hash", fmt.Sprintf("%x", txc.Hash()),
			"reverted", txc.Reverted(),
			"elapsed", txc.Elapsed())
	}
}

func (node *Node) Close() {
	if node.server != nil {
		node.server.Close()
	}
	if err := node.storage.Close(); err != nil {
		logger.I().Errorw("close storage failed", "error", err)
	}
	logger.I().Infow("node stopped")
}
