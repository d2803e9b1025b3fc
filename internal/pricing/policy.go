package pricing

import domain "github.com/coastlinevibe/eubiosis/internal/entity"

// SizePricing holds the per-unit price points for one bottle size.
type SizePricing struct {
	ListPrice    float64 `koanf:"list_price" json:"listPrice"`
	SpecialPrice float64 `koanf:"special_price" json:"specialPrice"`
}

// UnitSavings is the per-unit gap between list and special price.
func (s SizePricing) UnitSavings() float64 { return s.ListPrice - s.SpecialPrice }

// Policy is a swappable pricing configuration. The live behavior is one
// named policy (Canonical); historical variants of the funnel shipped
// different discount stacking and delivery rules, and keeping those
// expressible as alternate policy values keeps them testable.
type Policy struct {
	Sizes map[domain.Size]SizePricing `koanf:"sizes" json:"sizes"`

	// Percentage discounts on the special-price subtotal. Bundle takes
	// precedence over the email discount; they are never summed.
	DefaultBundlePercent int `koanf:"default_bundle_percent" json:"defaultBundlePercent"`
	EmailPercent         int `koanf:"email_percent" json:"emailPercent"`

	// Irresistible offer: flat-priced bonus bottle at the final step.
	IrresistiblePrice   float64 `koanf:"irresistible_price" json:"irresistiblePrice"`
	IrresistibleSavings float64 `koanf:"irresistible_savings" json:"irresistibleSavings"`

	// Delivery fee tiers on the pre-delivery subtotal.
	ReducedFeeThreshold float64 `koanf:"reduced_fee_threshold" json:"reducedFeeThreshold"`
	ReducedDeliveryFee  float64 `koanf:"reduced_delivery_fee" json:"reducedDeliveryFee"`
	StandardDeliveryFee float64 `koanf:"standard_delivery_fee" json:"standardDeliveryFee"`

	// OTOInThreshold lets the OTO add-on count toward the reduced-fee
	// threshold. The canonical policy excludes it; one legacy variant did not.
	OTOInThreshold bool `koanf:"oto_in_threshold" json:"otoInThreshold"`
}

// Canonical returns the live pricing policy.
func Canonical() Policy {
	return Policy{
		Sizes: map[domain.Size]SizePricing{
			domain.Size50ml:  {ListPrice: 325, SpecialPrice: 265},
			domain.Size100ml: {ListPrice: 650, SpecialPrice: 530},
		},
		DefaultBundlePercent: 15,
		EmailPercent:         10,
		IrresistiblePrice:    235,
		IrresistibleSavings:  90,
		ReducedFeeThreshold:  650,
		ReducedDeliveryFee:   29,
		StandardDeliveryFee:  59,
		OTOInThreshold:       false,
	}
}

// SizePricingFor falls back to 50ml pricing for unknown sizes so the engine
// stays total even on a hand-rolled policy value.
func (p Policy) SizePricingFor(size domain.Size) SizePricing {
	if sp, ok := p.Sizes[size]; ok {
		return sp
	}
	return p.Sizes[domain.Size50ml]
}
