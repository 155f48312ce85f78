package booking

import "rentnest/models"

// ComputeAmountDue calculates the amount charged up front for a booking
// attempt under the landlord's payment-option policy. The first matching
// flag wins; with no flags set the full first month's rent is charged.
// A negative or absent deposit is treated as zero. Pure function.
func ComputeAmountDue(pricing models.PricingInput, policy models.BookingOptions) models.PaymentAmount {
	rent := pricing.MonthlyRent
	deposit := pricing.SecurityDeposit
	if deposit < 0 {
		deposit = 0
	}

	out := models.PaymentAmount{Currency: pricing.Currency}

	switch {
	case policy.AllowFirstAndLastRent:
		out.Amount = 2*rent + deposit
		last := rent
		out.LastMonthPayment = &last
		if deposit > 0 {
			d := deposit
			out.SecurityDepositCharged = &d
		}
	case policy.AllowFirstRent:
		out.Amount = rent + deposit
		if deposit > 0 {
			d := deposit
			out.SecurityDepositCharged = &d
		}
	case policy.AllowSecurityDeposit:
		// Rent is deferred to arrival; only the deposit is charged,
		// even when the deposit is zero.
		out.Amount = deposit
		d := deposit
		out.SecurityDepositCharged = &d
	default:
		out.Amount = rent
	}

	return out
}
