// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package features

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/aungmawjj/juria-loyalty/client"
	"github.com/aungmawjj/juria-loyalty/core"
	"github.com/aungmawjj/juria-loyalty/execution"
	"github.com/aungmawjj/juria-loyalty/execution/chaincode/cellphone"
	"github.com/aungmawjj/juria-loyalty/storage"
	"github.com/cucumber/godog"
	"github.com/dgraph-io/badger/v3"
)

var accountNames = []string{"owner", "alice", "bob", "carol"}

const initialEther = 100

type cellPhoneTestContext struct {
	db       *badger.DB
	exec     *client.LocalExecutor
	accounts map[string]*core.PrivateKey
	contract *client.CellPhone
	err      error
}

func (c *cellPhoneTestContext) reset() error {
	c.close()
	db, err := storage.NewMemDB()
	if err != nil {
		return err
	}
	c.db = db
	c.exec = &client.LocalExecutor{
		Execution: execution.New(storage.New(db), execution.DefaultConfig),
	}
	c.accounts = make(map[string]*core.PrivateKey)
	alloc := make([]execution.Alloc, 0, len(accountNames))
	for _, name := range accountNames {
		priv := core.GenerateKey(nil)
		c.accounts[name] = priv
		alloc = append(alloc, execution.Alloc{
			Address: priv.PublicKey().Bytes(),
			Balance: core.EtherToWei(initialEther),
		})
	}
	c.contract = nil
	c.err = nil
	return c.exec.ApplyGenesis(alloc)
}

func (c *cellPhoneTestContext) close() {
	if c.db != nil {
		c.db.Close()
		c.db = nil
	}
}

func (c *cellPhoneTestContext) account(name string) (*core.PrivateKey, error) {
	priv, ok := c.accounts[name]
	if !ok {
		return nil, fmt.Errorf("unknown account %q", name)
	}
	return priv, nil
}

func (c *cellPhoneTestContext) deploy(accrual cellphone.AccrualRule) error {
	contract, err := client.DeployCellPhone(c.exec, c.accounts["owner"],
		&cellphone.InitInput{Accrual: accrual})
	if err != nil {
		return err
	}
	c.contract = contract
	return nil
}

func (c *cellPhoneTestContext) aDeployedCellPhoneContract() error {
	return c.deploy("")
}

func (c *cellPhoneTestContext) aDeployedCellPhoneContractWithAccrual(rule string) error {
	return c.deploy(cellphone.AccrualRule(rule))
}

// call steps keep the first error so later steps of a failed flow are checked together
func (c *cellPhoneTestContext) record(err error) {
	if c.err == nil {
		c.err = err
	}
}

func (c *cellPhoneTestContext) enrollsAs(name, customerName string) error {
	priv, err := c.account(name)
	if err != nil {
		return err
	}
	_, err = c.contract.EnrollCustomer(priv, customerName)
	c.record(err)
	return nil
}

func (c *cellPhoneTestContext) paysAMonthlyBillOfEther(name string, amount int) error {
	priv, err := c.account(name)
	if err != nil {
		return err
	}
	_, err = c.contract.PayMonthlyBill(priv, core.EtherToWei(uint64(amount)), nil)
	c.record(err)
	return nil
}

func (c *cellPhoneTestContext) exchangesPointsForProduct(name string, productID int) error {
	priv, err := c.account(name)
	if err != nil {
		return err
	}
	_, err = c.contract.ExchangePoints(priv, uint64(productID))
	c.record(err)
	return nil
}

func (c *cellPhoneTestContext) transfersEtherTo(name string, amount int, dest string) error {
	priv, err := c.account(name)
	if err != nil {
		return err
	}
	destKey, err := c.account(dest)
	if err != nil {
		return err
	}
	_, err = c.contract.TransferToAccount(
		priv, destKey.PublicKey().Bytes(), core.EtherToWei(uint64(amount)))
	c.record(err)
	return nil
}

func (c *cellPhoneTestContext) theCallSucceeds() error {
	if c.err != nil {
		return fmt.Errorf("expected success but got error: %v", c.err)
	}
	return nil
}

func (c *cellPhoneTestContext) theCallFailsWith(msg string) error {
	if c.err == nil {
		return errors.New("expected error but call succeeded")
	}
	if !strings.Contains(c.err.Error(), msg) {
		return fmt.Errorf("expected error containing %q, got %q", msg, c.err.Error())
	}
	return nil
}

func (c *cellPhoneTestContext) getCustomer(name string) (*cellphone.Customer, error) {
	priv, err := c.account(name)
	if err != nil {
		return nil, err
	}
	return c.contract.GetCustomer(priv.PublicKey().Bytes())
}

func (c *cellPhoneTestContext) hasPoints(name string, points int) error {
	customer, err := c.getCustomer(name)
	if err != nil {
		return err
	}
	if customer.Points != uint64(points) {
		return fmt.Errorf("expected %d points, got %d", points, customer.Points)
	}
	return nil
}

func (c *cellPhoneTestContext) isEnrolledAs(name, customerName string) error {
	customer, err := c.getCustomer(name)
	if err != nil {
		return err
	}
	if !customer.Enrolled || customer.Name != customerName {
		return fmt.Errorf("expected enrolled as %q, got %+v", customerName, customer)
	}
	return nil
}

func (c *cellPhoneTestContext) hasABalanceOfEther(name string, amount int) error {
	priv, err := c.account(name)
	if err != nil {
		return err
	}
	balance, err := c.exec.GetBalance(priv.PublicKey().Bytes())
	if err != nil {
		return err
	}
	if !balance.Eq(core.EtherToWei(uint64(amount))) {
		return fmt.Errorf("expected %d ether, got %s wei", amount, balance.Dec())
	}
	return nil
}

func (c *cellPhoneTestContext) theContractBalanceIsEther(amount int) error {
	vault, err := c.contract.GetContractBalance()
	if err != nil {
		return err
	}
	if !vault.Eq(core.EtherToWei(uint64(amount))) {
		return fmt.Errorf("expected vault %d ether, got %s wei", amount, vault.Dec())
	}
	native, err := c.contract.NativeBalance()
	if err != nil {
		return err
	}
	if !native.Eq(vault) {
		return fmt.Errorf("vault %s differs from native balance %s", vault.Dec(), native.Dec())
	}
	return nil
}

func (c *cellPhoneTestContext) productHasBeenPurchasedTimes(id, count int) error {
	product, err := c.contract.GetProduct(uint64(id))
	if err != nil {
		return err
	}
	if product.PurchaseCount != uint64(count) {
		return fmt.Errorf("expected %d purchases, got %d", count, product.PurchaseCount)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &cellPhoneTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, tc.reset()
	})
	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		tc.close()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a deployed cell phone contract$`, tc.aDeployedCellPhoneContract)
	ctx.Step(`^a deployed cell phone contract with "([^"]*)" accrual$`, tc.aDeployedCellPhoneContractWithAccrual)

	// When steps
	ctx.Step(`^"([^"]*)" enrolls as "([^"]*)"$`, tc.enrollsAs)
	ctx.Step(`^"([^"]*)" pays a monthly bill of (\d+) ether$`, tc.paysAMonthlyBillOfEther)
	ctx.Step(`^"([^"]*)" exchanges points for product (\d+)$`, tc.exchangesPointsForProduct)
	ctx.Step(`^"([^"]*)" transfers (\d+) ether to "([^"]*)"$`, tc.transfersEtherTo)

	// Then steps
	ctx.Step(`^the call succeeds$`, tc.theCallSucceeds)
	ctx.Step(`^the call fails with "([^"]*)"$`, tc.theCallFailsWith)
	ctx.Step(`^"([^"]*)" has (\d+) points$`, tc.hasPoints)
	ctx.Step(`^"([^"]*)" is enrolled as "([^"]*)"$`, tc.isEnrolledAs)
	ctx.Step(`^"([^"]*)" has a balance of (\d+) ether$`, tc.hasABalanceOfEther)
	ctx.Step(`^the contract balance is (\d+) ether$`, tc.theContractBalanceIsEther)
	ctx.Step(`^product (\d+) has been purchased (\d+) times$`, tc.productHasBeenPurchasedTimes)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"cell_phone.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
