package features

import (
	"context"
	"fmt"
	"testing"

	"github.com/cucumber/godog"

	"github.com/piwi3910/PriceWheel/internal/model"
	"github.com/piwi3910/PriceWheel/internal/project"
)

type pricingTestContext struct {
	store *project.MemoryStorage
	calc  *model.Calculator
}

func (c *pricingTestContext) reset() {
	c.store = project.NewMemoryStorage()
	c.calc = model.NewCalculator(model.WithStorage(c.store, model.DefaultStorageKey))
}

func (c *pricingTestContext) aFreshCalculator() error {
	c.reset()
	return nil
}

func (c *pricingTestContext) theStoredMarginIs(raw string) error {
	return c.store.Set(model.DefaultStorageKey, raw)
}

func (c *pricingTestContext) theCalculatorRestores() error {
	c.calc = model.NewCalculator(model.WithStorage(c.store, model.DefaultStorageKey))
	c.calc.Restore()
	return nil
}

func (c *pricingTestContext) iType(text string) error {
	for _, r := range text {
		c.calc.AppendDigit(r)
	}
	return nil
}

func (c *pricingTestContext) iSelectMargin(margin int) error {
	c.calc.SetMargin(margin)
	return nil
}

func (c *pricingTestContext) iReset() error {
	c.calc.Reset()
	return nil
}

func (c *pricingTestContext) theSellingPriceIs(want string) error {
	if got := c.calc.SellingPrice(); got != want {
		return fmt.Errorf("expected selling price %q, got %q", want, got)
	}
	return nil
}

func (c *pricingTestContext) theMarginIs(want int) error {
	if got := c.calc.Margin(); got != want {
		return fmt.Errorf("expected margin %d, got %d", want, got)
	}
	return nil
}

func (c *pricingTestContext) theCostTextIs(want string) error {
	if got := string(c.calc.Cost()); got != want {
		return fmt.Errorf("expected cost text %q, got %q", want, got)
	}
	return nil
}

func (c *pricingTestContext) theCostShows(want string) error {
	if got := c.calc.Cost().Display(); got != want {
		return fmt.Errorf("expected cost display %q, got %q", want, got)
	}
	return nil
}

func (c *pricingTestContext) theStoredMarginShouldBe(want string) error {
	got, ok := c.store.Get(model.DefaultStorageKey)
	if !ok {
		return fmt.Errorf("no margin stored")
	}
	if got != want {
		return fmt.Errorf("expected stored margin %q, got %q", want, got)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &pricingTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a fresh calculator$`, tc.aFreshCalculator)
	ctx.Step(`^the stored margin is "([^"]*)"$`, tc.theStoredMarginIs)

	// When steps
	ctx.Step(`^the calculator restores$`, tc.theCalculatorRestores)
	ctx.Step(`^I type "([^"]*)"$`, tc.iType)
	ctx.Step(`^I select margin (-?\d+)$`, tc.iSelectMargin)
	ctx.Step(`^I reset$`, tc.iReset)

	// Then steps
	ctx.Step(`^the selling price is "([^"]*)"$`, tc.theSellingPriceIs)
	ctx.Step(`^the margin is (\d+)$`, tc.theMarginIs)
	ctx.Step(`^the cost text is "([^"]*)"$`, tc.theCostTextIs)
	ctx.Step(`^the cost shows "([^"]*)"$`, tc.theCostShows)
	ctx.Step(`^the margin "([^"]*)" is stored$`, tc.theStoredMarginShouldBe)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"pricing.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
