package booking

import (
	"testing"

	"rentnest/models"
)

func TestComputeAmountDueFirstAndLast(t *testing.T) {
	pricing := models.PricingInput{MonthlyRent: 1200, SecurityDeposit: 500, Currency: "cad"}
	policy := models.BookingOptions{AllowFirstAndLastRent: true}

	out := ComputeAmountDue(pricing, policy)

	if out.Amount != 2900 {
		t.Fatalf("expected amount 2900, got %v", out.Amount)
	}
	if out.LastMonthPayment == nil || *out.LastMonthPayment != 1200 {
		t.Fatalf("expected last month payment 1200, got %v", out.LastMonthPayment)
	}
	if out.SecurityDepositCharged == nil || *out.SecurityDepositCharged != 500 {
		t.Fatalf("expected deposit charged 500, got %v", out.SecurityDepositCharged)
	}
	if out.Currency != "cad" {
		t.Fatalf("expected currency cad, got %q", out.Currency)
	}
}

func TestComputeAmountDueFirstRent(t *testing.T) {
	pricing := models.PricingInput{MonthlyRent: 1200, SecurityDeposit: 500, Currency: "cad"}
	policy := models.BookingOptions{AllowFirstRent: true}

	out := ComputeAmountDue(pricing, policy)

	if out.Amount != 1700 {
		t.Fatalf("expected amount 1700, got %v", out.Amount)
	}
	if out.LastMonthPayment != nil {
		t.Fatalf("last month payment should not be set, got %v", *out.LastMonthPayment)
	}
}

func TestComputeAmountDueDepositOnly(t *testing.T) {
	pricing := models.PricingInput{MonthlyRent: 1200, SecurityDeposit: 500, Currency: "cad"}
	policy := models.BookingOptions{AllowSecurityDeposit: true}

	out := ComputeAmountDue(pricing, policy)

	if out.Amount != 500 {
		t.Fatalf("expected amount 500, got %v", out.Amount)
	}
}

// The deposit-only branch still applies when the deposit is zero: the
// tenant is charged nothing up front rather than falling through to rent.
func TestComputeAmountDueDepositOnlyZeroDeposit(t *testing.T) {
	pricing := models.PricingInput{MonthlyRent: 1200, SecurityDeposit: 0, Currency: "cad"}
	policy := models.BookingOptions{AllowSecurityDeposit: true}

	out := ComputeAmountDue(pricing, policy)

	if out.Amount != 0 {
		t.Fatalf("expected zero amount, got %v", out.Amount)
	}
	if out.SecurityDepositCharged == nil || *out.SecurityDepositCharged != 0 {
		t.Fatalf("expected deposit charged to be recorded as 0, got %v", out.SecurityDepositCharged)
	}
}

func TestComputeAmountDueDefault(t *testing.T) {
	pricing := models.PricingInput{MonthlyRent: 1200, SecurityDeposit: 500, Currency: "cad"}

	out := ComputeAmountDue(pricing, models.BookingOptions{})

	if out.Amount != 1200 {
		t.Fatalf("expected amount 1200, got %v", out.Amount)
	}
	if out.LastMonthPayment != nil || out.SecurityDepositCharged != nil {
		t.Fatalf("default branch should charge rent only, got %+v", out)
	}
}

// First matching flag wins when a listing has several set.
func TestComputeAmountDueFlagPrecedence(t *testing.T) {
	pricing := models.PricingInput{MonthlyRent: 1000, SecurityDeposit: 300, Currency: "cad"}
	policy := models.BookingOptions{
		AllowFirstAndLastRent: true,
		AllowFirstRent:        true,
		AllowSecurityDeposit:  true,
	}

	out := ComputeAmountDue(pricing, policy)

	if out.Amount != 2300 {
		t.Fatalf("expected first-and-last to win with amount 2300, got %v", out.Amount)
	}
}

func TestComputeAmountDueNegativeDepositClamped(t *testing.T) {
	pricing := models.PricingInput{MonthlyRent: 1000, SecurityDeposit: -50, Currency: "cad"}
	policy := models.BookingOptions{AllowFirstRent: true}

	out := ComputeAmountDue(pricing, policy)

	if out.Amount != 1000 {
		t.Fatalf("expected negative deposit to be treated as zero, got %v", out.Amount)
	}
	if out.SecurityDepositCharged != nil {
		t.Fatalf("no deposit should be recorded, got %v", *out.SecurityDepositCharged)
	}
}

// Same input, same output: the computation has no hidden state.
func TestComputeAmountDueDeterministic(t *testing.T) {
	pricing := models.PricingInput{MonthlyRent: 875.50, SecurityDeposit: 437.75, Currency: "cad"}
	policy := models.BookingOptions{AllowFirstAndLastRent: true}

	first := ComputeAmountDue(pricing, policy)
	second := ComputeAmountDue(pricing, policy)

	if first.Amount != second.Amount || first.Currency != second.Currency {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}
	if *first.LastMonthPayment != *second.LastMonthPayment {
		t.Fatalf("expected identical last month payment, got %v and %v", *first.LastMonthPayment, *second.LastMonthPayment)
	}
}
