// Package pricing computes the funnel's order totals. The engine is a pure
// function of an OrderIntent and a Policy; nothing here touches storage or
// the clock, which is what lets submission recompute totals server-side and
// trust that they match what the customer saw.
package pricing

import domain "github.com/coastlinevibe/eubiosis/internal/entity"

// Engine derives PricingBreakdowns under one Policy.
type Engine struct {
	policy Policy
}

func NewEngine(policy Policy) *Engine {
	return &Engine{policy: policy}
}

func (e *Engine) Policy() Policy { return e.policy }

// Breakdown computes the full price breakdown for an intent.
//
// The percentage discount applies to the special-price subtotal. Bundle
// pricing wins over the email discount; the two never stack. The OTO add-on
// is never discounted and (under the canonical policy) never counts toward
// the reduced delivery-fee threshold.
func (e *Engine) Breakdown(intent domain.OrderIntent) domain.PricingBreakdown {
	qty := intent.Quantity
	if qty < 1 {
		qty = 1
	}

	sp := e.policy.SizePricingFor(intent.Size)
	listPrice := sp.ListPrice * float64(qty)
	specialPrice := sp.SpecialPrice * float64(qty)
	baseSavings := sp.UnitSavings() * float64(qty)

	discount := e.percentageDiscount(intent, specialPrice)
	discountedSubtotal := specialPrice - discount

	var irresistible, irresistibleSavings float64
	if intent.IrresistibleOfferAccepted {
		irresistible = e.policy.IrresistiblePrice
		irresistibleSavings = e.policy.IrresistibleSavings
	}

	var oto float64
	if intent.OTO != nil {
		oto = intent.OTO.Price
	}

	preDelivery := discountedSubtotal + irresistible
	if e.policy.OTOInThreshold {
		preDelivery += oto
	}
	fee := e.policy.StandardDeliveryFee
	if preDelivery >= e.policy.ReducedFeeThreshold {
		fee = e.policy.ReducedDeliveryFee
	}

	return domain.PricingBreakdown{
		ListPrice:     listPrice,
		SpecialPrice:  specialPrice,
		DiscountTotal: discount,
		AddOnPrice:    irresistible + oto,
		DeliveryFee:   fee,
		Total:         discountedSubtotal + irresistible + oto + fee,
		TotalSavings:  baseSavings + discount + irresistibleSavings,
	}
}

func (e *Engine) percentageDiscount(intent domain.OrderIntent, subtotal float64) float64 {
	switch {
	case intent.Bundle:
		pct := e.policy.DefaultBundlePercent
		if intent.UpsellDiscountPercent > 0 {
			pct = intent.UpsellDiscountPercent
		}
		return subtotal * float64(pct) / 100
	case intent.EmailDiscountEligible:
		return subtotal * float64(e.policy.EmailPercent) / 100
	default:
		return 0
	}
}
