// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package cellphone

import (
	"encoding/json"
	"fmt"

	"github.com/aungmawjj/juria-loyalty/execution/chaincode"
)

// invoke methods
const (
	MethodEnrollCustomer  = "enrollCustomer"
	MethodPayMonthlyBill  = "payMonthlyBill"
	MethodExchangePoints  = "exchangeCustomerPointsByProduct"
	MethodTransferBalance = "transferToAccount"
)

// query methods
const (
	MethodGetCustomer        = "getEnrolledCustomerByAddress"
	MethodGetProduct         = "getProduct"
	MethodGetProductCount    = "getProductCount"
	MethodGetContractBalance = "getContractBalance"
	MethodGetOwner           = "getOwner"
)

// Input is the call input of cellphone chaincode.
// Amount is wei as decimal string.
type Input struct {
	Method    string `json:"method"`
	Name      string `json:"name,omitempty"`
	Address   []byte `json:"address,omitempty"`
	ProductID uint64 `json:"productId,omitempty"`
	Amount    string `json:"amount,omitempty"`
}

// InitInput is the deployment input, empty input deploys DefaultCatalog
// with per-unit accrual
type InitInput struct {
	Products []Product   `json:"products,omitempty"`
	Accrual  AccrualRule `json:"accrual,omitempty"`
}

// CellPhone chaincode keeps enrolled customers, their loyalty points,
// a product catalog to redeem points, and the value paid for bills.
type CellPhone struct{}

var _ chaincode.Chaincode = (*CellPhone)(nil)

func (cc *CellPhone) Init(ctx chaincode.CallContext) error {
	input := new(InitInput)
	if len(ctx.Input()) > 0 {
		if err := json.Unmarshal(ctx.Input(), input); err != nil {
			return fmt.Errorf("failed to parse init input: %w", err)
		}
	}
	if input.Accrual == "" {
		input.Accrual = AccrualPerUnit
	}
	if !input.Accrual.valid() {
		return ErrUnknownAccrual
	}
	if len(input.Products) == 0 {
		input.Products = DefaultCatalog()
	}
	if !ctx.Value().IsZero() {
		return ErrNotPayable
	}
	setOwner(ctx, ctx.Sender())
	setAccrualRule(ctx, input.Accrual)
	initCatalog(ctx, input.Products)
	return nil
}

func (cc *CellPhone) Invoke(ctx chaincode.CallContext) error {
	input, err := parseInput(ctx.Input())
	if err != nil {
		return err
	}
	switch input.Method {

	case MethodEnrollCustomer:
		return invokeEnroll(ctx, input)

	case MethodPayMonthlyBill:
		return invokePayMonthlyBill(ctx, input)

	case MethodExchangePoints:
		return invokeExchangePoints(ctx, input)

	case MethodTransferBalance:
		return invokeTransferToAccount(ctx, input)

	default:
		return ErrMethodNotFound
	}
}

func (cc *CellPhone) Query(ctx chaincode.CallContext) ([]byte, error) {
	input, err := parseInput(ctx.Input())
	if err != nil {
		return nil, err
	}
	switch input.Method {

	case MethodGetCustomer:
		return queryCustomer(ctx, input)

	case MethodGetProduct:
		return queryProduct(ctx, input)

	case MethodGetProductCount:
		return json.Marshal(getProductCount(ctx))

	case MethodGetContractBalance:
		return json.Marshal(getVault(ctx).Dec())

	case MethodGetOwner:
		return json.Marshal(getOwner(ctx))

	default:
		return nil, ErrMethodNotFound
	}
}

func queryCustomer(ctx chaincode.CallContext, input *Input) ([]byte, error) {
	entry, err := getCustomer(ctx, input.Address)
	if err != nil {
		return nil, err
	}
	return json.Marshal(entry.Customer)
}

func queryProduct(ctx chaincode.CallContext, input *Input) ([]byte, error) {
	product, err := getProduct(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	return json.Marshal(product)
}

func parseInput(b []byte) (*Input, error) {
	input := new(Input)
	err := json.Unmarshal(b, input)
	if err != nil {
		return nil, fmt.Errorf("failed to parse input: %w", err)
	}
	return input, nil
}
