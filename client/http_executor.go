// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package client

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aungmawjj/juria-loyalty/core"
	"github.com/aungmawjj/juria-loyalty/execution"
	"github.com/holiman/uint256"
)

// HTTPExecutor calls the node api at endpoint, eg. http://127.0.0.1:9040
type HTTPExecutor struct {
	endpoint string
	client   *http.Client
}

var _ Executor = (*HTTPExecutor)(nil)

func NewHTTPExecutor(endpoint string) *HTTPExecutor {
	return &HTTPExecutor{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (he *HTTPExecutor) Execute(tx *core.Transaction) (*core.TxCommit, error) {
	b, err := json.Marshal(tx)
	if err != nil {
		return nil, err
	}
	resp, err := he.client.Post(he.endpoint+"/transactions", "application/json", bytes.NewReader(b))
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	txc := core.NewTxCommit()
	if err := json.NewDecoder(resp.Body).Decode(txc); err != nil {
		return nil, fmt.Errorf("cannot parse tx commit, %w", err)
	}
	if txc.Reverted() {
		return txc, revertError(txc.Error())
	}
	return txc, nil
}

func (he *HTTPExecutor) Query(query *execution.QueryData) ([]byte, error) {
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}
	resp, err := he.client.Post(he.endpoint+"/querystate", "application/json", bytes.NewReader(b))
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result []byte
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("cannot parse query result, %w", err)
	}
	return result, nil
}

func (he *HTTPExecutor) GetBalance(addr []byte) (*uint256.Int, error) {
	resp, err := he.client.Get(
		fmt.Sprintf("%s/accounts/%s/balance", he.endpoint, hex.EncodeToString(addr)))
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var balance string
	if err := json.NewDecoder(resp.Body).Decode(&balance); err != nil {
		return nil, fmt.Errorf("cannot parse balance, %w", err)
	}
	return core.ParseValue(balance)
}

func checkResponse(resp *http.Response, err error) error {
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		msg, _ := io.ReadAll(resp.Body)
		return revertError(strings.TrimSpace(string(msg)))
	}
	return nil
}
