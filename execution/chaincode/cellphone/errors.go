// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package cellphone

import "errors"

// errors returned by cellphone chaincode, a call failing with any of them
// leaves the ledger unchanged
var (
	ErrAlreadyEnrolled          = errors.New("customer already enrolled")
	ErrNotEnrolled              = errors.New("customer not enrolled")
	ErrUnknownProduct           = errors.New("unknown product")
	ErrInsufficientPoints       = errors.New("insufficient points")
	ErrInsufficientVaultBalance = errors.New("insufficient vault balance")
	ErrUnauthorized             = errors.New("unauthorized")

	ErrEmptyName          = errors.New("customer name is required")
	ErrPaymentMismatch    = errors.New("paid value does not match bill amount")
	ErrNotPayable         = errors.New("method does not accept value")
	ErrInvalidDestination = errors.New("invalid destination address")
	ErrPointsOverflow     = errors.New("points overflow")
	ErrUnknownAccrual     = errors.New("unknown accrual rule")
	ErrMethodNotFound     = errors.New("method not found")
)
