// Package funnel turns raw entry parameters from the upsell pages into a
// well-formed OrderIntent.
package funnel

import (
	"strconv"

	domain "github.com/coastlinevibe/eubiosis/internal/entity"
)

// Parameter keys accepted at funnel entry. Anything else is ignored.
const (
	KeySize           = "size"
	KeyQuantity       = "quantity"
	KeyBundle         = "bundle"
	KeyEmail          = "email"
	KeyUpsellDiscount = "upsellDiscount"
	KeyTookBigOffer   = "tookBigOffer"
	KeyOTO            = "oto"
	KeyOTOPrice       = "otoPrice"
)

// Resolve maps a flat parameter set to an OrderIntent. It is total: unknown,
// missing, and malformed values degrade silently to defaults, never to an
// error. Upsell pages link into checkout with hand-built query strings, so
// garbage input is an expected case, not an exceptional one.
func Resolve(params map[string]string) domain.OrderIntent {
	intent := domain.OrderIntent{
		Size:                  parseSize(params[KeySize]),
		Quantity:              parseQuantity(params[KeyQuantity]),
		Bundle:                params[KeyBundle] == "true",
		EmailDiscountEligible: params[KeyEmail] == "true",
		UpsellDiscountPercent: parsePercent(params[KeyUpsellDiscount]),
		TookBigOffer:          params[KeyTookBigOffer] == "true",
	}

	// OTO only counts when both the offer id and a numeric price arrive.
	if offer, ok := params[KeyOTO]; ok && offer != "" {
		if price, err := strconv.ParseFloat(params[KeyOTOPrice], 64); err == nil && price > 0 {
			intent.OTO = &domain.OTO{OfferID: offer, Price: price}
		}
	}

	return intent
}

func parseSize(s string) domain.Size {
	if s == string(domain.Size100ml) {
		return domain.Size100ml
	}
	return domain.Size50ml
}

func parseQuantity(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func parsePercent(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 100 {
		return 0
	}
	return n
}
