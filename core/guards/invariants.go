// Package guards - Runtime assertion guards
// These assertions PANIC if violated - there is no recovery.
// They check the money identities every emitted breakdown and quote carries.
package guards

import (
	"fmt"

	"github.com/shopspring/decimal"

	"equipment-quote/core/types"
)

// AssertBreakdown checks the line identities:
//
//	subtotal = equipment + operator + delivery + surcharges - discount
//	total    = subtotal + tax
func AssertBreakdown(b *types.PricingBreakdown) {
	if b == nil {
		panic("INVARIANT VIOLATED: breakdown cannot be nil")
	}
	assertRounded("equipment cost", b.EquipmentCost)
	assertRounded("operator cost", b.OperatorCost)
	assertRounded("delivery cost", b.DeliveryCost)
	assertRounded("surcharge cost", b.SurchargeCost)
	assertRounded("discount amount", b.DiscountAmount)
	assertRounded("tax amount", b.TaxAmount)

	sum := b.EquipmentCost.
		Add(b.OperatorCost).
		Add(b.DeliveryCost).
		Add(b.SurchargeCost).
		Sub(b.DiscountAmount)
	assertEqual("line subtotal", b.Subtotal, sum)
	assertEqual("line total", b.Total, b.Subtotal.Add(b.TaxAmount))

	items := decimal.Zero
	for _, s := range b.Surcharges {
		items = items.Add(s.Amount)
	}
	assertEqual("itemized surcharges", b.SurchargeCost, types.RoundMoney(items))
}

// AssertQuote checks the project identities:
//
//	equipment total = sum of line totals
//	grand total     = subtotal + tax
//	deposit + balance = grand total
func AssertQuote(q *types.ProjectQuote) {
	if q == nil {
		panic("INVARIANT VIOLATED: quote cannot be nil")
	}
	s := q.Summary

	lines := decimal.Zero
	for i := range q.LineItems {
		lines = lines.Add(q.LineItems[i].Breakdown.Total)
	}
	assertEqual("equipment total", s.EquipmentTotal, lines)

	sub := s.EquipmentTotal.
		Add(s.ManagementFee).
		Add(s.Insurance).
		Add(s.SitePrep).
		Add(s.PermitFee).
		Add(s.RushSurcharge)
	assertEqual("project subtotal", s.Subtotal, sub)
	assertEqual("grand total", s.GrandTotal, s.Subtotal.Add(s.TaxAmount))
	assertEqual("payment schedule", q.Payment.Deposit.Add(q.Payment.Balance), s.GrandTotal)
	assertRounded("deposit", q.Payment.Deposit)
}

func assertEqual(what string, got, want decimal.Decimal) {
	if !got.Equal(want) {
		panic(fmt.Sprintf("INVARIANT VIOLATED: %s is %s, expected %s", what, got, want))
	}
}

func assertRounded(what string, d decimal.Decimal) {
	if !d.Equal(types.RoundMoney(d)) {
		panic(fmt.Sprintf("INVARIANT VIOLATED: %s %s is not rounded to %d places", what, d, types.MoneyPlaces))
	}
}
