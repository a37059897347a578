package steps

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/traveller-trade-go/internal/domain/contract"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/shared"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/world"
)

type contractContext struct {
	mortgage *contract.Mortgage

	backer string
	rate   float64
	home   shared.HexSet
	safe   shared.HexSet

	state    contract.State
	payments []float64
	cut      *contract.Cut
	err      error
}

func (cc *contractContext) reset() {
	cc.mortgage = nil
	cc.backer = ""
	cc.rate = 0
	cc.home = shared.NewHexSet()
	cc.safe = shared.NewHexSet()
	cc.state = contract.NewState()
	cc.payments = nil
	cc.cut = nil
	cc.err = nil
}

// revenueShare builds the contract from the terms gathered so far, so
// Given steps may add home and safe worlds in any order
func (cc *contractContext) revenueShare() (*contract.RevenueShare, error) {
	return contract.NewRevenueShare(contract.RevenueShareTerms{
		Backer:     cc.backer,
		Rate:       cc.rate,
		HomeWorlds: cc.home,
		SafeWorlds: cc.safe,
	})
}

// Given steps

func (cc *contractContext) aMortgageOfCreditsWithInstallmentsOf(principal, installment float64) error {
	m, err := contract.NewMortgage(principal, installment)
	if err != nil {
		return err
	}
	cc.mortgage = m
	return nil
}

func (cc *contractContext) aRevenueShareWithAtRate(backer string, rate float64) error {
	cc.backer = backer
	cc.rate = rate
	return nil
}

func (cc *contractContext) isAHomeWorld(location string) error {
	key, err := shared.ParseSectorHex(location)
	if err != nil {
		return err
	}
	cc.home[key] = struct{}{}
	return nil
}

func (cc *contractContext) isASafeWorld(location string) error {
	key, err := shared.ParseSectorHex(location)
	if err != nil {
		return err
	}
	cc.safe[key] = struct{}{}
	return nil
}

// When steps

func (cc *contractContext) periodicPaymentsAreMade(n int) error {
	if cc.mortgage == nil {
		return fmt.Errorf("no mortgage available")
	}
	for i := 0; i < n; i++ {
		cc.payments = append(cc.payments, cc.mortgage.PeriodicPayment(cc.state))
	}
	return nil
}

func (cc *contractContext) theShipArrivesAtAfterALegEarning(location string, profit float64) error {
	rs, err := cc.revenueShare()
	if err != nil {
		return err
	}
	key, err := shared.ParseSectorHex(location)
	if err != nil {
		return err
	}
	dest, err := world.NewWorld(location, key, 0, 0, "A788899-C", "", "Im", "")
	if err != nil {
		return err
	}
	cc.cut = rs.ArrivalCut(cc.state, dest, profit)
	return nil
}

func (cc *contractContext) iCreateARevenueShareWithAtRate(backer string, rate float64) error {
	cc.backer = backer
	cc.rate = rate
	_, cc.err = cc.revenueShare()
	return nil
}

// Then steps

func (cc *contractContext) thePaymentsShouldBe(expected string) error {
	parts := make([]string, len(cc.payments))
	for i, p := range cc.payments {
		parts[i] = fmt.Sprintf("%.0f", p)
	}
	if got := strings.Join(parts, ", "); got != expected {
		return fmt.Errorf("expected payments %q, got %q", expected, got)
	}
	return nil
}

func (cc *contractContext) theCutShouldBe(expected float64) error {
	if cc.cut == nil {
		return fmt.Errorf("expected a cut of %.2f, but no cut was taken", expected)
	}
	if math.Abs(cc.cut.Amount-expected) > 0.01 {
		return fmt.Errorf("expected cut %.2f, got %.2f", expected, cc.cut.Amount)
	}
	return nil
}

func (cc *contractContext) theCutReasonShouldContain(expected string) error {
	if cc.cut == nil {
		return fmt.Errorf("no cut was taken")
	}
	if !strings.Contains(cc.cut.Reason, expected) {
		return fmt.Errorf("expected cut reason to contain %q, got %q", expected, cc.cut.Reason)
	}
	return nil
}

func (cc *contractContext) theAccruedObligationShouldBe(expected float64) error {
	rs, err := cc.revenueShare()
	if err != nil {
		return err
	}
	if got := rs.AccruedObligation(cc.state); math.Abs(got-expected) > 0.01 {
		return fmt.Errorf("expected accrued obligation %.2f, got %.2f", expected, got)
	}
	return nil
}

func (cc *contractContext) noCutShouldBeTaken() error {
	if cc.cut != nil {
		return fmt.Errorf("expected no cut, got %.2f (%s)", cc.cut.Amount, cc.cut.Reason)
	}
	return nil
}

func (cc *contractContext) contractCreationShouldFailWith(expected string) error {
	if cc.err == nil {
		return fmt.Errorf("expected contract creation to fail with %q, but it succeeded", expected)
	}
	if !strings.Contains(cc.err.Error(), expected) {
		return fmt.Errorf("expected error containing %q, got %q", expected, cc.err.Error())
	}
	return nil
}

func InitializeContractScenario(ctx *godog.ScenarioContext) {
	cc := &contractContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		cc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a mortgage of (\d+) credits with installments of (\d+)$`, cc.aMortgageOfCreditsWithInstallmentsOf)
	ctx.Step(`^a revenue share with "([^"]*)" at rate ([0-9.]+)$`, cc.aRevenueShareWithAtRate)
	ctx.Step(`^"([^"]*)" is a home world$`, cc.isAHomeWorld)
	ctx.Step(`^"([^"]*)" is a safe world$`, cc.isASafeWorld)

	// When steps
	ctx.Step(`^(\d+) periodic payments are made$`, cc.periodicPaymentsAreMade)
	ctx.Step(`^the ship arrives at "([^"]*)" after a leg earning (-?\d+)$`, cc.theShipArrivesAtAfterALegEarning)
	ctx.Step(`^I create a revenue share with "([^"]*)" at rate ([0-9.]+)$`, cc.iCreateARevenueShareWithAtRate)

	// Then steps
	ctx.Step(`^the payments should be "([^"]*)"$`, cc.thePaymentsShouldBe)
	ctx.Step(`^the cut should be (\d+)$`, cc.theCutShouldBe)
	ctx.Step(`^the cut reason should contain "([^"]*)"$`, cc.theCutReasonShouldContain)
	ctx.Step(`^the accrued obligation should be (\d+)$`, cc.theAccruedObligationShouldBe)
	ctx.Step(`^no cut should be taken$`, cc.noCutShouldBeTaken)
	ctx.Step(`^contract creation should fail with "([^"]*)"$`, cc.contractCreationShouldFailWith)
}
