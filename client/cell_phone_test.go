// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package client

import (
	"testing"

	"github.com/aungmawjj/juria-loyalty/core"
	"github.com/aungmawjj/juria-loyalty/execution"
	"github.com/aungmawjj/juria-loyalty/execution/chaincode/cellphone"
	"github.com/aungmawjj/juria-loyalty/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAccounts struct {
	owner *core.PrivateKey
	alice *core.PrivateKey
	bob   *core.PrivateKey
}

func newTestAccounts() *testAccounts {
	return &testAccounts{
		owner: core.GenerateKey(nil),
		alice: core.GenerateKey(nil),
		bob:   core.GenerateKey(nil),
	}
}

func newLocalExecutor(t *testing.T, accs *testAccounts) (*LocalExecutor, *storage.Storage) {
	db, err := storage.NewMemDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	strg := storage.New(db)
	exec := execution.New(strg, execution.DefaultConfig)
	require.NoError(t, exec.ApplyGenesis([]execution.Alloc{
		{Address: accs.owner.PublicKey().Bytes(), Balance: core.EtherToWei(100)},
		{Address: accs.alice.PublicKey().Bytes(), Balance: core.EtherToWei(100)},
	}))
	return &LocalExecutor{exec}, strg
}

func assertVaultMatchesBalance(t *testing.T, cp *CellPhone) {
	vault, err := cp.GetContractBalance()
	require.NoError(t, err)
	balance, err := cp.NativeBalance()
	require.NoError(t, err)
	assert.Equal(t, vault, balance, "vault must equal native balance")
}

func testCellPhoneFlow(t *testing.T, exec Executor, accs *testAccounts) {
	assert := assert.New(t)

	cp, err := DeployCellPhone(exec, accs.owner, nil)
	require.NoError(t, err)

	owner, err := cp.GetOwner()
	assert.NoError(err)
	assert.Equal(accs.owner.PublicKey().Bytes(), owner)

	count, err := cp.GetProductCount()
	assert.NoError(err)
	assert.EqualValues(3, count)

	product, err := cp.GetProduct(2)
	assert.NoError(err)
	assert.Equal("smartphone", product.Name)

	_, err = cp.GetProduct(3)
	assert.ErrorIs(err, cellphone.ErrUnknownProduct)

	customer, err := cp.GetCustomer(accs.alice.PublicKey().Bytes())
	assert.NoError(err)
	assert.Equal(&cellphone.Customer{}, customer, "unknown identity reads as zero record")

	_, err = cp.PayMonthlyBill(accs.alice, core.EtherToWei(1), nil)
	assert.ErrorIs(err, cellphone.ErrNotEnrolled)

	_, err = cp.EnrollCustomer(accs.alice, "alice")
	assert.NoError(err)
	_, err = cp.EnrollCustomer(accs.alice, "alice2")
	assert.ErrorIs(err, cellphone.ErrAlreadyEnrolled)

	_, err = cp.PayMonthlyBill(accs.alice, core.EtherToWei(20), core.EtherToWei(20))
	assert.NoError(err)
	_, err = cp.PayMonthlyBill(accs.alice, core.EtherToWei(2), core.EtherToWei(3))
	assert.ErrorIs(err, cellphone.ErrPaymentMismatch)

	customer, err = cp.GetCustomer(accs.alice.PublicKey().Bytes())
	assert.NoError(err)
	assert.Equal(&cellphone.Customer{Name: "alice", Points: 20, Enrolled: true}, customer)
	assertVaultMatchesBalance(t, cp)

	_, err = cp.ExchangePoints(accs.alice, 2)
	assert.NoError(err)
	_, err = cp.ExchangePoints(accs.alice, 0)
	assert.ErrorIs(err, cellphone.ErrInsufficientPoints)

	product, err = cp.GetProduct(2)
	assert.NoError(err)
	assert.EqualValues(1, product.PurchaseCount)

	_, err = cp.TransferToAccount(accs.alice, accs.bob.PublicKey().Bytes(), core.EtherToWei(21))
	assert.ErrorIs(err, cellphone.ErrInsufficientVaultBalance)

	_, err = cp.TransferToAccount(accs.alice, accs.bob.PublicKey().Bytes(), core.EtherToWei(5))
	assert.NoError(err)

	balance, err := exec.GetBalance(accs.bob.PublicKey().Bytes())
	assert.NoError(err)
	assert.Equal(core.EtherToWei(5), balance)

	vault, err := cp.GetContractBalance()
	assert.NoError(err)
	assert.Equal(core.EtherToWei(15), vault)
	assertVaultMatchesBalance(t, cp)

	_, err = cp.TransferToAccount(accs.bob, accs.bob.PublicKey().Bytes(), core.EtherToWei(1))
	assert.ErrorIs(err, cellphone.ErrNotEnrolled)
}

func TestCellPhone_Local(t *testing.T) {
	accs := newTestAccounts()
	exec, _ := newLocalExecutor(t, accs)
	testCellPhoneFlow(t, exec, accs)
}

func TestCellPhone_Scenario(t *testing.T) {
	assert := assert.New(t)

	accs := newTestAccounts()
	exec, _ := newLocalExecutor(t, accs)

	cp, err := DeployCellPhone(exec, accs.owner, nil)
	require.NoError(t, err)

	_, err = cp.EnrollCustomer(accs.alice, "Alice")
	assert.NoError(err)
	_, err = cp.PayMonthlyBill(accs.alice, core.EtherToWei(20), nil)
	assert.NoError(err)

	customer, err := cp.GetCustomer(accs.alice.PublicKey().Bytes())
	assert.NoError(err)
	assert.EqualValues(20, customer.Points)

	_, err = cp.ExchangePoints(accs.alice, 2)
	assert.NoError(err)

	customer, err = cp.GetCustomer(accs.alice.PublicKey().Bytes())
	assert.NoError(err)
	assert.EqualValues(0, customer.Points)

	balance, err := exec.GetBalance(accs.alice.PublicKey().Bytes())
	assert.NoError(err)
	assert.Equal(core.EtherToWei(80), balance)
}

func TestRevertError(t *testing.T) {
	assert := assert.New(t)

	assert.ErrorIs(revertError(cellphone.ErrNotEnrolled.Error()), cellphone.ErrNotEnrolled)
	assert.EqualError(revertError("something else"), "something else")
}
