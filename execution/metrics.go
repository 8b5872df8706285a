// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package execution

import (
	"github.com/aungmawjj/juria-loyalty/core"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	statusCommitted = "committed"
	statusReverted  = "reverted"
	statusRejected  = "rejected"
)

var (
	txCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "loyalty_execution_tx_total",
		Help: "total number of transactions by execution status",
	}, []string{"status"})

	txElapsed = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "loyalty_execution_tx_seconds",
		Help:    "time spent executing a transaction",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
	})

	queryCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "loyalty_execution_query_total",
		Help: "total number of state queries",
	})
)

// PromCollectors is the list of prometheus collectors of the execution,
// the node registers them to its registry
var PromCollectors = []prometheus.Collector{
	txCounter,
	txElapsed,
	queryCounter,
}

func observeCommit(txc *core.TxCommit) {
	if txc.Reverted() {
		txCounter.WithLabelValues(statusReverted).Inc()
	} else {
		txCounter.WithLabelValues(statusCommitted).Inc()
	}
	txElapsed.Observe(txc.Elapsed())
}
