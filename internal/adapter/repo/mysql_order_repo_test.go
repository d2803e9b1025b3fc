package repo

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coastlinevibe/eubiosis/internal/usecase"
)

func sampleRecord() *usecase.OrderRecord {
	return &usecase.OrderRecord{
		ID:                "4f9c0e1a-0000-0000-0000-000000000001",
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
		ProductSize:       "50ml",
		Quantity:          2,
		EmailDiscount:     true,
		PaymentChannel:    "card_gateway",
		ListPriceCents:    65000,
		SpecialPriceCents: 53000,
		DiscountCents:     5300,
		DeliveryFeeCents:  5900,
		TotalCents:        53600,
		SavingsCents:      17300,
		Status:            "pending",
		CreatedAt:         time.Date(2024, 11, 2, 9, 30, 0, 0, time.UTC),
	}
}

func TestInsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rec := sampleRecord()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(
			rec.ID, rec.FirstName, rec.LastName, rec.Email, rec.EmailConfirmation, rec.Phone,
			rec.Address, rec.City, rec.PostalCode, rec.Province, rec.Country,
			rec.ProductSize, rec.Quantity, rec.IsBundle, rec.EmailDiscount, rec.UpsellDiscount,
			rec.TookBigOffer, rec.OTOOffer, rec.OTOPriceCents, rec.PaymentChannel,
			rec.ListPriceCents, rec.SpecialPriceCents, rec.DiscountCents, rec.AddOnCents,
			rec.DeliveryFeeCents, rec.TotalCents, rec.SavingsCents,
			rec.Status, rec.MailSent, rec.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewMySQLOrderRepo(db)
	require.NoError(t, repo.Insert(context.Background(), rec))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM orders WHERE id=").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := NewMySQLOrderRepo(db)
	_, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusIf(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE orders SET status").
		WithArgs("processing", "order-1", "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE orders SET status").
		WithArgs("completed", "order-1", "pending").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewMySQLOrderRepo(db)

	ok, err := repo.UpdateStatusIf(context.Background(), "order-1", "pending", "processing")
	require.NoError(t, err)
	assert.True(t, ok)

	// Guard: status already moved on, nothing matches.
	ok, err = repo.UpdateStatusIf(context.Background(), "order-1", "pending", "completed")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkMailSent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE orders SET mail_sent").
		WithArgs("order-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE orders SET mail_sent").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewMySQLOrderRepo(db)
	require.NoError(t, repo.MarkMailSent(context.Background(), "order-1"))
	assert.ErrorIs(t, repo.MarkMailSent(context.Background(), "missing"), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
