// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package node

import (
	"encoding/hex"
	"errors"
	"io"
	"net/http"

	"github.com/aungmawjj/juria-loyalty/core"
	"github.com/aungmawjj/juria-loyalty/execution"
	"github.com/aungmawjj/juria-loyalty/logger"
	"github.com/aungmawjj/juria-loyalty/storage"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type nodeAPI struct {
	execution *execution.Execution
	storage   *storage.Storage
	registry  *prometheus.Registry
}

// NewAPIHandler returns the http handler of the node api
func NewAPIHandler(
	exec *execution.Execution, strg *storage.Storage, registry *prometheus.Registry,
) http.Handler {
	return newRouter(&nodeAPI{
		execution: exec,
		storage:   strg,
		registry:  registry,
	})
}

func newRouter(api *nodeAPI) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	gin.DefaultWriter = io.Discard
	r := gin.New()
	r.Use(gin.Recovery())

	r.POST("/transactions", api.submitTX)
	r.GET("/transactions/:hash/commit", api.getTxCommit)
	r.POST("/querystate", api.queryState)
	r.GET("/accounts/:address/balance", api.getBalance)
	r.GET("/metrics", gin.WrapH(
		promhttp.HandlerFor(api.registry, promhttp.HandlerOpts{})))
	return r
}

// submitTX executes the tx and responds its commit, reverted or not
func (api *nodeAPI) submitTX(c *gin.Context) {
	tx := core.NewTransaction()
	if err := c.ShouldBindJSON(tx); err != nil {
		c.String(http.StatusBadRequest, "cannot parse tx")
		return
	}
	txc, err := api.execution.Execute(tx)
	if errors.Is(err, execution.ErrCommitFailed) || errors.Is(err, execution.ErrStorageRead) {
		logger.I().Errorw("tx commit failed", "error", err)
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	if txc == nil {
		logger.I().Warnw("tx rejected", "error", err)
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, txc)
}

func (api *nodeAPI) queryState(c *gin.Context) {
	query := new(execution.QueryData)
	if err := c.ShouldBindJSON(query); err != nil {
		c.String(http.StatusBadRequest, "cannot parse request")
		return
	}
	result, err := api.execution.Query(query)
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}

func (api *nodeAPI) getTxCommit(c *gin.Context) {
	hash, err := hex.DecodeString(c.Param("hash"))
	if err != nil {
		c.String(http.StatusBadRequest, "cannot parse hash")
		return
	}
	txc, err := api.storage.GetTxCommit(hash)
	if storage.IsNotFound(err) {
		c.String(http.StatusNotFound, "tx commit not found")
		return
	}
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, txc)
}

func (api *nodeAPI) getBalance(c *gin.Context) {
	addr, err := hex.DecodeString(c.Param("address"))
	if err != nil {
		c.String(http.StatusBadRequest, "cannot parse address")
		return
	}
	c.JSON(http.StatusOK, api.execution.GetBalance(addr).Dec())
}
