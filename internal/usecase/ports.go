package usecase

import (
	"context"
	"time"

	"github.com/coastlinevibe/eubiosis/internal/checkout"
)

// OrderRecord is the persistence shape (kept out of domain). Monetary
// fields are integer minor units; a record is never mutated by the funnel
// core after insert.
type OrderRecord struct {
	ID string

	// Customer
	FirstName         string
	LastName          string
	Email             string
	EmailConfirmation string
	Phone             string
	Address           string
	City              string
	PostalCode        string
	Province          string
	Country           string

	// Order
	ProductSize    string
	Quantity       int
	IsBundle       bool
	EmailDiscount  bool
	UpsellDiscount int
	TookBigOffer   bool
	OTOOffer       string
	OTOPriceCents  int64
	PaymentChannel string

	// Pricing, minor units
	ListPriceCents    int64
	SpecialPriceCents int64
	DiscountCents     int64
	AddOnCents        int64
	DeliveryFeeCents  int64
	TotalCents        int64
	SavingsCents      int64

	Status    string
	MailSent  bool
	CreatedAt time.Time
}

// OrderInserter is everything submission needs from storage: one insert.
type OrderInserter interface {
	Insert(ctx context.Context, rec *OrderRecord) error
}

// OrderReader backs the confirmation-page lookup.
type OrderReader interface {
	GetByID(ctx context.Context, id string) (*OrderRecord, error)
}

// OrderStatusWriter is used by the event adapters, never by the funnel core.
type OrderStatusWriter interface {
	UpdateStatusIf(ctx context.Context, id, fromStatus, toStatus string) (bool, error)
	MarkMailSent(ctx context.Context, id string) error
}

// OrderEventPublisher hands a finished order to the mail pipeline.
type OrderEventPublisher interface {
	PublishCreated(ctx context.Context, msg CreatedMsg) error
}

// SessionStore keeps in-progress checkout sessions between calls.
type SessionStore interface {
	Save(ctx context.Context, s *checkout.Session) error
	Load(ctx context.Context, id string) (*checkout.Session, error)
}
