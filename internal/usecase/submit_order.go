package usecase

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/coastlinevibe/eubiosis/internal/checkout"
	domain "github.com/coastlinevibe/eubiosis/internal/entity"
	"github.com/coastlinevibe/eubiosis/internal/pricing"
)

// PersistenceError wraps a failed storage insert. The session is left
// unchanged; the caller may submit again. There is no idempotency key, so
// a repeated successful submit produces a second record.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string { return "order insert failed: " + e.Err.Error() }
func (e *PersistenceError) Unwrap() error { return e.Err }

// SubmitOrder finalizes a checkout session: it re-runs the submission gate,
// recomputes pricing server-side, and performs exactly one insert.
type SubmitOrder struct {
	engine  *pricing.Engine
	machine *checkout.Machine
	repo    OrderInserter
	events  OrderEventPublisher
}

func NewSubmitOrder(engine *pricing.Engine, machine *checkout.Machine, repo OrderInserter, events OrderEventPublisher) *SubmitOrder {
	return &SubmitOrder{engine: engine, machine: machine, repo: repo, events: events}
}

// Execute persists the session's order. Caller-visible totals are never
// trusted; the breakdown is recomputed from the intent here. On success the
// session is marked submitted (Payment stays the terminal step). No retry:
// resilience belongs to the caller.
func (uc *SubmitOrder) Execute(ctx context.Context, s *checkout.Session) (*OrderRecord, error) {
	if err := uc.machine.CanSubmit(s); err != nil {
		return nil, err
	}

	bd := uc.engine.Breakdown(s.Intent)
	dec := uc.machine.Decision(s)

	// The irresistible offer ships one extra 50ml bottle. Stock counting
	// needs the real unit count, so the persisted quantity goes up by one
	// while the line item the customer saw stays as-is.
	qty := s.Intent.Quantity
	if s.Intent.IrresistibleOfferAccepted {
		qty++
	}

	rec := &OrderRecord{
		ID: uuid.NewString(),

		FirstName:         s.Customer.FirstName,
		LastName:          s.Customer.LastName,
		Email:             s.Customer.Email,
		EmailConfirmation: s.Customer.EmailConfirmation,
		Phone:             s.Customer.Phone,
		Address:           s.Customer.Address,
		City:              s.Customer.City,
		PostalCode:        s.Customer.PostalCode,
		Province:          s.Customer.Province,
		Country:           s.Customer.Country,

		ProductSize:    string(s.Intent.Size),
		Quantity:       qty,
		IsBundle:       s.Intent.Bundle,
		EmailDiscount:  s.Intent.EmailDiscountEligible,
		UpsellDiscount: s.Intent.UpsellDiscountPercent,
		TookBigOffer:   s.Intent.TookBigOffer,
		PaymentChannel: string(dec.Channel),

		ListPriceCents:    toCents(bd.ListPrice),
		SpecialPriceCents: toCents(bd.SpecialPrice),
		DiscountCents:     toCents(bd.DiscountTotal),
		AddOnCents:        toCents(bd.AddOnPrice),
		DeliveryFeeCents:  toCents(bd.DeliveryFee),
		TotalCents:        toCents(bd.Total),
		SavingsCents:      toCents(bd.TotalSavings),

		Status:    string(domain.StatusPending),
		MailSent:  false,
		CreatedAt: time.Now().UTC(),
	}
	if s.Intent.OTO != nil {
		rec.OTOOffer = s.Intent.OTO.OfferID
		rec.OTOPriceCents = toCents(s.Intent.OTO.Price)
	}

	if err := uc.repo.Insert(ctx, rec); err != nil {
		return nil, &PersistenceError{Err: err}
	}
	s.Submitted = true

	// Best-effort: the mailer catches up from the queue; a publish failure
	// must not fail an already-persisted order.
	if uc.events != nil {
		_ = uc.events.PublishCreated(ctx, CreatedMsg{
			OrderID:    rec.ID,
			Email:      rec.Email,
			FirstName:  rec.FirstName,
			TotalCents: rec.TotalCents,
			Channel:    rec.PaymentChannel,
		})
	}
	return rec, nil
}

func toCents(major float64) int64 {
	return int64(math.Round(major * 100))
}
