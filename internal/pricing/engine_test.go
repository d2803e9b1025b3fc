package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domain "github.com/coastlinevibe/eubiosis/internal/entity"
)

func canonicalEngine() *Engine { return NewEngine(Canonical()) }

func TestSubtotalIsSpecialPriceTimesQuantity(t *testing.T) {
	e := canonicalEngine()
	tests := []struct {
		size domain.Size
		qty  int
		want float64
	}{
		{domain.Size50ml, 1, 265},
		{domain.Size50ml, 3, 795},
		{domain.Size100ml, 1, 530},
		{domain.Size100ml, 5, 2650},
	}
	for _, tt := range tests {
		bd := e.Breakdown(domain.OrderIntent{Size: tt.size, Quantity: tt.qty})
		assert.Equal(t, tt.want, bd.SpecialPrice, "size=%s qty=%d", tt.size, tt.qty)
	}
}

func TestBundleAndEmailDiscountsNeverStack(t *testing.T) {
	e := canonicalEngine()

	// Both flags set: bundle (15%) wins, email (10%) is ignored.
	bd := e.Breakdown(domain.OrderIntent{
		Size: domain.Size50ml, Quantity: 2,
		Bundle: true, EmailDiscountEligible: true,
	})
	assert.Equal(t, 79.5, bd.DiscountTotal)

	// Email alone: flat 10%.
	bd = e.Breakdown(domain.OrderIntent{
		Size: domain.Size50ml, Quantity: 2,
		EmailDiscountEligible: true,
	})
	assert.Equal(t, 53.0, bd.DiscountTotal)

	// Neither: no percentage discount.
	bd = e.Breakdown(domain.OrderIntent{Size: domain.Size50ml, Quantity: 2})
	assert.Zero(t, bd.DiscountTotal)
}

func TestBundleUsesUpsellPercentWhenSet(t *testing.T) {
	e := canonicalEngine()

	bd := e.Breakdown(domain.OrderIntent{
		Size: domain.Size100ml, Quantity: 2,
		Bundle: true, UpsellDiscountPercent: 25,
	})
	assert.Equal(t, 265.0, bd.DiscountTotal)

	// Zero/unset percent falls back to the default 15.
	bd = e.Breakdown(domain.OrderIntent{
		Size: domain.Size100ml, Quantity: 2, Bundle: true,
	})
	assert.Equal(t, 159.0, bd.DiscountTotal)
}

func TestDeliveryFeeTiers(t *testing.T) {
	e := canonicalEngine()

	// 265 < 650 -> standard fee.
	bd := e.Breakdown(domain.OrderIntent{Size: domain.Size50ml, Quantity: 1})
	assert.Equal(t, 59.0, bd.DeliveryFee)

	// 795 >= 650 -> reduced fee.
	bd = e.Breakdown(domain.OrderIntent{Size: domain.Size50ml, Quantity: 3})
	assert.Equal(t, 29.0, bd.DeliveryFee)

	// Exactly at the threshold counts as reduced.
	p := Canonical()
	p.ReducedFeeThreshold = 530
	bd = NewEngine(p).Breakdown(domain.OrderIntent{Size: domain.Size100ml, Quantity: 1})
	assert.Equal(t, 29.0, bd.DeliveryFee)
}

func TestIrresistibleOfferAddsFlatAmounts(t *testing.T) {
	e := canonicalEngine()
	for _, tt := range []struct {
		size domain.Size
		qty  int
	}{
		{domain.Size50ml, 1},
		{domain.Size50ml, 4},
		{domain.Size100ml, 2},
	} {
		without := e.Breakdown(domain.OrderIntent{Size: tt.size, Quantity: tt.qty})
		with := e.Breakdown(domain.OrderIntent{
			Size: tt.size, Quantity: tt.qty, IrresistibleOfferAccepted: true,
		})
		// The flat add-on may also flip the delivery tier, so compare with
		// the fee removed.
		assert.Equal(t, 235.0, (with.Total-with.DeliveryFee)-(without.Total-without.DeliveryFee),
			"size=%s qty=%d", tt.size, tt.qty)
		assert.Equal(t, 90.0, with.TotalSavings-without.TotalSavings)
	}
}

func TestOTOAddsFlatUndiscountedAndOutsideThreshold(t *testing.T) {
	e := canonicalEngine()

	// 265 + OTO 940: without OTO in threshold the order still pays the
	// standard fee even though the grand total clears 650.
	bd := e.Breakdown(domain.OrderIntent{
		Size: domain.Size50ml, Quantity: 1,
		EmailDiscountEligible: true,
		OTO:                   &domain.OTO{OfferID: "offer2", Price: 940},
	})
	assert.Equal(t, 59.0, bd.DeliveryFee)
	// OTO price is never discounted: discount applies to the 265 subtotal only.
	assert.Equal(t, 26.5, bd.DiscountTotal)
	assert.Equal(t, 265-26.5+940+59, bd.Total)

	// Legacy variant: OTO counted toward the threshold.
	p := Canonical()
	p.OTOInThreshold = true
	bd = NewEngine(p).Breakdown(domain.OrderIntent{
		Size: domain.Size50ml, Quantity: 1,
		OTO: &domain.OTO{OfferID: "offer2", Price: 940},
	})
	assert.Equal(t, 29.0, bd.DeliveryFee)
}

func TestEmailDiscountOrderTotal(t *testing.T) {
	// 50ml x2, email discount, no irresistible offer.
	bd := canonicalEngine().Breakdown(domain.OrderIntent{
		Size:                  domain.Size50ml,
		Quantity:              2,
		EmailDiscountEligible: true,
	})
	assert.Equal(t, 530.0, bd.SpecialPrice)
	assert.Equal(t, 53.0, bd.DiscountTotal)
	assert.Equal(t, 59.0, bd.DeliveryFee) // 477 < 650
	assert.Equal(t, 536.0, bd.Total)
}

func TestIrresistibleOfferOrderTotal(t *testing.T) {
	// 100ml x1 with the irresistible offer.
	bd := canonicalEngine().Breakdown(domain.OrderIntent{
		Size:                      domain.Size100ml,
		Quantity:                  1,
		IrresistibleOfferAccepted: true,
	})
	assert.Equal(t, 530.0, bd.SpecialPrice)
	assert.Equal(t, 29.0, bd.DeliveryFee) // 765 >= 650
	assert.Equal(t, 794.0, bd.Total)
	assert.Equal(t, 210.0, bd.TotalSavings) // 120 base + 90 offer
}

func TestBreakdownListPriceAndSavings(t *testing.T) {
	bd := canonicalEngine().Breakdown(domain.OrderIntent{
		Size: domain.Size50ml, Quantity: 2, EmailDiscountEligible: true,
	})
	assert.Equal(t, 650.0, bd.ListPrice)
	assert.Equal(t, 173.0, bd.TotalSavings) // 120 base + 53 email
}
