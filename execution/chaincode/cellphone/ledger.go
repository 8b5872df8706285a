// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package cellphone

import (
	"github.com/aungmawjj/juria-loyalty/core"
	"github.com/aungmawjj/juria-loyalty/execution/chaincode"
	"github.com/holiman/uint256"
)

// AccrualRule decides how many points a paid bill earns
type AccrualRule string

const (
	// AccrualPerUnit earns one point per whole ether paid
	AccrualPerUnit AccrualRule = "per-unit"
	// AccrualPerBill earns one point per paid bill regardless of value
	AccrualPerBill AccrualRule = "per-bill"
)

var keyAccrual = []byte("accrual")

func (rule AccrualRule) valid() bool {
	return rule == AccrualPerUnit || rule == AccrualPerBill
}

// Points returns points earned by paying value
func (rule AccrualRule) Points(value *uint256.Int) (uint64, error) {
	switch rule {
	case AccrualPerBill:
		return 1, nil
	case AccrualPerUnit:
		units := new(uint256.Int).Div(value, core.Ether)
		if !units.IsUint64() {
			return 0, ErrPointsOverflow
		}
		return units.Uint64(), nil
	default:
		return 0, ErrUnknownAccrual
	}
}

func getAccrualRule(ctx chaincode.CallContext) AccrualRule {
	return AccrualRule(ctx.GetState(keyAccrual))
}

func setAccrualRule(ctx chaincode.CallContext, rule AccrualRule) {
	ctx.SetState(keyAccrual, []byte(rule))
}

func invokeEnroll(ctx chaincode.CallContext, input *Input) error {
	if !ctx.Value().IsZero() {
		return ErrNotPayable
	}
	if input.Name == "" {
		return ErrEmptyName
	}
	entry, err := getCustomer(ctx, ctx.Sender())
	if err != nil {
		return err
	}
	if entry.Enrolled {
		return ErrAlreadyEnrolled
	}
	entry.Name = input.Name
	entry.Points = 0
	entry.Enrolled = true
	setCustomer(ctx, ctx.Sender(), entry)
	return nil
}

func invokePayMonthlyBill(ctx chaincode.CallContext, input *Input) error {
	value := ctx.Value()
	if input.Amount != "" {
		amount, err := core.ParseValue(input.Amount)
		if err != nil {
			return err
		}
		if !amount.Eq(value) {
			return ErrPaymentMismatch
		}
	}
	entry, err := getEnrolledCustomer(ctx, ctx.Sender())
	if err != nil {
		return err
	}
	points, err := getAccrualRule(ctx).Points(value)
	if err != nil {
		return err
	}
	if entry.Points+points < entry.Points {
		return ErrPointsOverflow
	}
	entry.Points += points
	entry.credit.Add(entry.credit, value)

	setCustomer(ctx, ctx.Sender(), entry)
	creditVault(ctx, value)
	return nil
}

func invokeExchangePoints(ctx chaincode.CallContext, input *Input) error {
	if !ctx.Value().IsZero() {
		return ErrNotPayable
	}
	entry, err := getEnrolledCustomer(ctx, ctx.Sender())
	if err != nil {
		return err
	}
	product, err := getProduct(ctx, input.ProductID)
	if err != nil {
		return err
	}
	if entry.Points < product.PointCost {
		return ErrInsufficientPoints
	}
	entry.Points -= product.PointCost
	product.PurchaseCount++

	setCustomer(ctx, ctx.Sender(), entry)
	setProduct(ctx, input.ProductID, product)
	return nil
}

// attached value is deposited first, then amount is moved from the vault
// to the destination account
func invokeTransferToAccount(ctx chaincode.CallContext, input *Input) error {
	if len(input.Address) == 0 {
		return ErrInvalidDestination
	}
	amount, err := core.ParseValue(input.Amount)
	if err != nil {
		return err
	}
	entry, err := getEnrolledCustomer(ctx, ctx.Sender())
	if err != nil {
		return err
	}
	value := ctx.Value()
	entry.credit.Add(entry.credit, value)

	vault := getVault(ctx)
	vault.Add(vault, value)
	if vault.Lt(amount) {
		return ErrInsufficientVaultBalance
	}
	if !isOwner(ctx, ctx.Sender()) && entry.credit.Lt(amount) {
		return ErrUnauthorized
	}
	if err := ctx.Transfer(input.Address, amount); err != nil {
		return err
	}
	if entry.credit.Lt(amount) {
		entry.credit.Clear()
	} else {
		entry.credit.Sub(entry.credit, amount)
	}
	setCustomer(ctx, ctx.Sender(), entry)
	creditVault(ctx, value)
	return debitVault(ctx, amount)
}
