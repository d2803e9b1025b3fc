package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coastlinevibe/eubiosis/internal/checkout"
	domain "github.com/coastlinevibe/eubiosis/internal/entity"
	"github.com/coastlinevibe/eubiosis/internal/payment"
	"github.com/coastlinevibe/eubiosis/internal/pricing"
)

type fakeInserter struct {
	inserted []*OrderRecord
	err      error
}

func (f *fakeInserter) Insert(_ context.Context, rec *OrderRecord) error {
	if f.err != nil {
		return f.err
	}
	f.inserted = append(f.inserted, rec)
	return nil
}

type fakePublisher struct {
	msgs []CreatedMsg
	err  error
}

func (f *fakePublisher) PublishCreated(_ context.Context, msg CreatedMsg) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msg)
	return nil
}

func newSubmit(repo OrderInserter, events OrderEventPublisher) *SubmitOrder {
	engine := pricing.NewEngine(pricing.Canonical())
	machine := checkout.NewMachine(
		checkout.CanonicalValidationPolicy(),
		payment.NewRouter(payment.DefaultConfig()),
	)
	return NewSubmitOrder(engine, machine, repo, events)
}

func readySession() *checkout.Session {
	return &checkout.Session{
		ID:   "sess-1",
		Step: checkout.StepPayment,
		Intent: domain.OrderIntent{
			Size:                  domain.Size50ml,
			Quantity:              2,
			EmailDiscountEligible: true,
		},
		Customer: domain.CustomerProfile{
			FirstName:         "Thandi",
			LastName:          "Nkosi",
			Email:             "thandi@example.co.za",
			EmailConfirmation: "thandi@example.co.za",
			Phone:             "0821234567",
			Address:           "12 Protea Rd",
			City:              "Durban",
			PostalCode:        "4001",
			Province:          "KwaZulu-Natal",
			Country:           "South Africa",
		},
		Method: domain.MethodCard,
	}
}

func TestExecutePersistsRecomputedTotalsInCents(t *testing.T) {
	repo := &fakeInserter{}
	uc := newSubmit(repo, nil)

	rec, err := uc.Execute(context.Background(), readySession())
	require.NoError(t, err)
	require.Len(t, repo.inserted, 1)

	// 50ml x2 with the email discount: total 536.00, savings 173.00.
	assert.Equal(t, int64(53600), rec.TotalCents)
	assert.Equal(t, int64(65000), rec.ListPriceCents)
	assert.Equal(t, int64(53000), rec.SpecialPriceCents)
	assert.Equal(t, int64(5300), rec.DiscountCents)
	assert.Equal(t, int64(5900), rec.DeliveryFeeCents)
	assert.Equal(t, int64(17300), rec.SavingsCents)

	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, string(domain.StatusPending), rec.Status)
	assert.False(t, rec.MailSent)
	assert.False(t, rec.CreatedAt.IsZero())
	assert.Equal(t, string(domain.ChannelCardGateway), rec.PaymentChannel)
}

func TestExecuteRefusesInvalidSession(t *testing.T) {
	repo := &fakeInserter{}
	uc := newSubmit(repo, nil)

	s := readySession()
	s.Customer.EmailConfirmation = "wrong@example.co.za"

	_, err := uc.Execute(context.Background(), s)
	var ve *checkout.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Empty(t, repo.inserted, "nothing may be persisted on a refused submit")
	assert.False(t, s.Submitted)
}

func TestExecuteIrresistibleOfferBumpsPersistedQuantity(t *testing.T) {
	repo := &fakeInserter{}
	uc := newSubmit(repo, nil)

	s := readySession()
	s.Intent.IrresistibleOfferAccepted = true

	rec, err := uc.Execute(context.Background(), s)
	require.NoError(t, err)
	// Two bottles ordered, one bonus bottle shipped.
	assert.Equal(t, 3, rec.Quantity)
	assert.Equal(t, "50ml", rec.ProductSize)
}

func TestExecuteWrapsInsertFailure(t *testing.T) {
	boom := errors.New("connection refused")
	uc := newSubmit(&fakeInserter{err: boom}, nil)

	s := readySession()
	_, err := uc.Execute(context.Background(), s)

	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.ErrorIs(t, err, boom)
	assert.False(t, s.Submitted, "session state unchanged on persistence failure")
}

func TestExecuteTwiceInsertsTwoRecords(t *testing.T) {
	// Pins the current lack of an idempotency key: an identical resubmit
	// yields a second, distinct record.
	repo := &fakeInserter{}
	uc := newSubmit(repo, nil)
	s := readySession()

	first, err := uc.Execute(context.Background(), s)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), s)
	require.NoError(t, err)

	require.Len(t, repo.inserted, 2)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestExecutePublishesCreatedEvent(t *testing.T) {
	pub := &fakePublisher{}
	uc := newSubmit(&fakeInserter{}, pub)

	rec, err := uc.Execute(context.Background(), readySession())
	require.NoError(t, err)
	require.Len(t, pub.msgs, 1)
	assert.Equal(t, rec.ID, pub.msgs[0].OrderID)
	assert.Equal(t, rec.TotalCents, pub.msgs[0].TotalCents)
}

func TestExecutePublishFailureDoesNotFailSubmission(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	repo := &fakeInserter{}
	uc := newSubmit(repo, pub)

	_, err := uc.Execute(context.Background(), readySession())
	require.NoError(t, err)
	assert.Len(t, repo.inserted, 1)
}

func TestExecuteOTORecordedButNeverDiscounted(t *testing.T) {
	repo := &fakeInserter{}
	uc := newSubmit(repo, nil)

	s := readySession()
	s.Intent.OTO = &domain.OTO{OfferID: "offer1", Price: 245}

	rec, err := uc.Execute(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, "offer1", rec.OTOOffer)
	assert.Equal(t, int64(24500), rec.OTOPriceCents)
	// Discount unchanged from the no-OTO case (53.00).
	assert.Equal(t, int64(5300), rec.DiscountCents)
	// 536 + 245 OTO.
	assert.Equal(t, int64(78100), rec.TotalCents)
}
