// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package cellphone

import (
	"encoding/json"
	"fmt"

	"github.com/aungmawjj/juria-loyalty/core"
	"github.com/aungmawjj/juria-loyalty/execution/chaincode"
	"github.com/aungmawjj/juria-loyalty/util"
	"github.com/holiman/uint256"
)

var prefixCustomer = []byte("customer/")

// Customer is the enrolled customer record. Unknown identities read as
// the zero Customer.
type Customer struct {
	Name     string `json:"name"`
	Points   uint64 `json:"points"`
	Enrolled bool   `json:"enrolled"`
}

// customerEntry is the stored form of a customer, credit is the value
// paid in by the customer and not yet moved out by the customer
type customerEntry struct {
	Customer
	Credit string `json:"credit,omitempty"`

	credit *uint256.Int
}

func getCustomer(ctx chaincode.CallContext, identity []byte) (*customerEntry, error) {
	entry := &customerEntry{credit: new(uint256.Int)}
	b := ctx.GetState(customerKey(identity))
	if b == nil {
		return entry, nil
	}
	if err := json.Unmarshal(b, entry); err != nil {
		return nil, fmt.Errorf("corrupted customer record: %w", err)
	}
	credit, err := core.ParseValue(entry.Credit)
	if err != nil {
		return nil, fmt.Errorf("corrupted customer credit: %w", err)
	}
	entry.credit = credit
	return entry, nil
}

func getEnrolledCustomer(ctx chaincode.CallContext, identity []byte) (*customerEntry, error) {
	entry, err := getCustomer(ctx, identity)
	if err != nil {
		return nil, err
	}
	if !entry.Enrolled {
		return nil, ErrNotEnrolled
	}
	return entry, nil
}

func setCustomer(ctx chaincode.CallContext, identity []byte, entry *customerEntry) {
	entry.Credit = ""
	if !entry.credit.IsZero() {
		entry.Credit = entry.credit.Dec()
	}
	b, _ := json.Marshal(entry)
	ctx.SetState(customerKey(identity), b)
}

func customerKey(identity []byte) []byte {
	return util.ConcatBytes(prefixCustomer, identity)
}
