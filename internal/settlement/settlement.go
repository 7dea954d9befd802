// Package settlement reconciles an order's monetary totals into the fee
// breakdown shown to the maker. Amounts are decimal to keep cent-level
// arithmetic exact.
package settlement

import "github.com/shopspring/decimal"

// Breakdown is the reconciled settlement of one order. NetPayout is always
// the upstream-supplied subtotal; PlatformCommission is the explicit
// intermediary fee when one was supplied, otherwise derived from the other
// three values.
type Breakdown struct {
	GrossTotal         decimal.Decimal
	ProcessingFee      decimal.Decimal
	PlatformCommission decimal.Decimal
	NetPayout          decimal.Decimal
}

// Reconcile computes the fee breakdown. Negative inputs are clamped to zero
// rather than rejected: this feeds a display layer where partial output
// beats an error page. An explicit commission is used only when positive;
// otherwise the commission is max(0, gross - fee - net), which satisfies the
// gross = fee + commission + net invariant by construction.
func Reconcile(gross, processingFee, netPayout decimal.Decimal, explicitCommission *decimal.Decimal) Breakdown {
	gross = clamp(gross)
	processingFee = clamp(processingFee)
	netPayout = clamp(netPayout)

	commission := clamp(gross.Sub(processingFee).Sub(netPayout))
	if explicitCommission != nil && explicitCommission.IsPositive() {
		// The explicit value is authoritative even when it contradicts the
		// derived one; callers check Consistent and log the divergence.
		commission = *explicitCommission
	}

	return Breakdown{
		GrossTotal:         gross,
		ProcessingFee:      processingFee,
		PlatformCommission: commission,
		NetPayout:          netPayout,
	}
}

// Consistent reports whether gross = fee + commission + net holds within
// epsilon. The derived branch always passes; an inconsistent explicit
// commission is an upstream data-quality problem worth a warning, not a
// value to silently correct.
func (b Breakdown) Consistent(epsilon decimal.Decimal) bool {
	sum := b.ProcessingFee.Add(b.PlatformCommission).Add(b.NetPayout)
	return b.GrossTotal.Sub(sum).Abs().LessThanOrEqual(epsilon)
}

func clamp(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
