// Package payment routes a checkout to a payment channel based on the
// delivery province and the customer's method choice.
package payment

import (
	"strings"

	domain "github.com/coastlinevibe/eubiosis/internal/entity"
)

// Decision is the router's answer for one (province, method) pair.
type Decision struct {
	Channel             domain.PaymentChannel `json:"channel"`
	RequiresProvince    bool                  `json:"requiresProvince"`
	ContactInstructions string                `json:"contactInstructions,omitempty"`
}

// Config holds the routing tables. RestrictedProvinces are regions where
// the card gateway cannot settle; orders there go through a representative.
type Config struct {
	RestrictedProvinces []string `koanf:"restricted_provinces"`
	EFTInstructions     string   `koanf:"eft_instructions"`
	RepInstructions     string   `koanf:"rep_instructions"`
}

// DefaultConfig returns the live routing tables.
func DefaultConfig() Config {
	return Config{
		RestrictedProvinces: []string{
			"Western Cape",
			"Northern Cape",
			"North West",
			"Limpopo",
		},
		EFTInstructions: "Pay by EFT to Eubiosis (Pty) Ltd, FNB 62000000001, " +
			"branch 250655. Use your order number as reference and email " +
			"proof of payment to orders@eubiosis.co.za.",
		RepInstructions: "Card payments are not available in your province yet. " +
			"A representative will phone you within one business day to " +
			"arrange payment and delivery.",
	}
}

// Router is stateless; one Router serves every session. The province table
// is built once at construction rather than re-scanning a string slice per
// call.
type Router struct {
	cfg        Config
	restricted map[string]bool
}

func NewRouter(cfg Config) *Router {
	r := &Router{cfg: cfg, restricted: make(map[string]bool, len(cfg.RestrictedProvinces))}
	for _, p := range cfg.RestrictedProvinces {
		r.restricted[normalize(p)] = true
	}
	return r
}

// Resolve maps a province and method choice to a payment channel.
//
// EFT never needs a province and always surfaces the bank-transfer
// instructions. Card needs a province before it can be confirmed, and a
// restricted province redirects the session to a human representative
// instead of the gateway.
func (r *Router) Resolve(province string, method domain.PaymentMethod) Decision {
	if method == domain.MethodEFT {
		return Decision{
			Channel:             domain.ChannelManualEFT,
			RequiresProvince:    false,
			ContactInstructions: r.cfg.EFTInstructions,
		}
	}
	if r.Restricted(province) {
		return Decision{
			Channel:             domain.ChannelRepresentativeContact,
			RequiresProvince:    true,
			ContactInstructions: r.cfg.RepInstructions,
		}
	}
	return Decision{Channel: domain.ChannelCardGateway, RequiresProvince: true}
}

// AvailableChannels lists the channels a customer in the given province may
// end up on. EFT is always offered; card is swapped for representative
// contact in restricted provinces.
func (r *Router) AvailableChannels(province string) []domain.PaymentChannel {
	if r.Restricted(province) {
		return []domain.PaymentChannel{domain.ChannelRepresentativeContact, domain.ChannelManualEFT}
	}
	return []domain.PaymentChannel{domain.ChannelCardGateway, domain.ChannelManualEFT}
}

// Restricted reports whether the card gateway is blocked for the province.
func (r *Router) Restricted(province string) bool {
	return r.restricted[normalize(province)]
}

func normalize(province string) string {
	return strings.ToLower(strings.TrimSpace(province))
}
