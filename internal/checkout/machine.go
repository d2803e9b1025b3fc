// Package checkout owns the funnel's step state machine: an ordered
// Product → Details → Payment progression gated on the collected customer
// data and the payment-channel decision for the chosen province.
package checkout

import (
	"strings"
	"time"

	domain "github.com/coastlinevibe/eubiosis/internal/entity"
	"github.com/coastlinevibe/eubiosis/internal/payment"
)

type Step int

const (
	StepProduct Step = 1 // entered already completed
	StepDetails Step = 2
	StepPayment Step = 3 // terminal on successful submission
)

// Session is one customer's in-progress checkout. It is exclusively owned
// by the single caller driving it; no locking, no expiry beyond the store's
// TTL, and cancellation is simply the caller going away.
type Session struct {
	ID        string                 `json:"id"`
	Step      Step                   `json:"step"`
	Intent    domain.OrderIntent     `json:"intent"`
	Customer  domain.CustomerProfile `json:"customer"`
	Method    domain.PaymentMethod   `json:"method"`
	Submitted bool                   `json:"submitted"`
	CreatedAt time.Time              `json:"createdAt"`
}

// Machine evaluates transitions under one ValidationPolicy and one payment
// router. It holds no session state itself.
type Machine struct {
	policy ValidationPolicy
	router *payment.Router
}

func NewMachine(policy ValidationPolicy, router *payment.Router) *Machine {
	return &Machine{policy: policy, router: router}
}

// Advance moves the session one step forward. A refused move leaves the
// session untouched and returns a ValidationError naming every unmet
// condition.
func (m *Machine) Advance(s *Session) error {
	switch s.Step {
	case StepProduct:
		s.Step = StepDetails
		return nil
	case StepDetails:
		if conds := m.detailsConditions(s.Customer); len(conds) > 0 {
			return &ValidationError{Conditions: conds}
		}
		s.Step = StepPayment
		return nil
	default:
		// Payment is terminal; forward movement happens via submission.
		return &ValidationError{Conditions: []string{"no step beyond payment"}}
	}
}

// Back moves one step backward. Always allowed while step > 1.
func (m *Machine) Back(s *Session) {
	if s.Step > StepProduct {
		s.Step--
	}
}

// StepValid reports whether the given step's gate passes for the session's
// current data. Product is always valid; Details checks the required-field
// set; Payment checks the full submission gate.
func (m *Machine) StepValid(s *Session, step Step) error {
	switch step {
	case StepDetails:
		if conds := m.detailsConditions(s.Customer); len(conds) > 0 {
			return &ValidationError{Conditions: conds}
		}
	case StepPayment:
		return m.CanSubmit(s)
	}
	return nil
}

// CanSubmit evaluates the final submission gate: details still valid, a
// province selected where the channel decision demands one, the channel not
// blocked, and the confirmation email matching when the policy asks for one.
func (m *Machine) CanSubmit(s *Session) error {
	conds := m.detailsConditions(s.Customer)

	dec := m.router.Resolve(s.Customer.Province, s.Method)
	if dec.RequiresProvince && strings.TrimSpace(s.Customer.Province) == "" {
		conds = append(conds, "province: required before payment can be confirmed")
	}
	if dec.Channel == domain.ChannelCardGateway && m.router.Restricted(s.Customer.Province) {
		conds = append(conds, "province: card payments are not available in "+s.Customer.Province)
	}
	if m.policy.RequireEmailConfirmation &&
		strings.TrimSpace(s.Customer.EmailConfirmation) != strings.TrimSpace(s.Customer.Email) {
		conds = append(conds, "emailConfirmation: must match email")
	}

	if len(conds) > 0 {
		return &ValidationError{Conditions: conds}
	}
	return nil
}

// Decision exposes the channel decision for the session's current inputs.
func (m *Machine) Decision(s *Session) payment.Decision {
	return m.router.Resolve(s.Customer.Province, s.Method)
}

func (m *Machine) detailsConditions(p domain.CustomerProfile) []string {
	var conds []string
	for _, name := range m.policy.RequiredDetailsFields {
		if strings.TrimSpace(profileField(p, name)) == "" {
			conds = append(conds, name+": required")
		}
	}
	return conds
}
