package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/coastlinevibe/eubiosis/internal/usecase"
)

var ErrNotFound = errors.New("not found")

type MySQLOrderRepo struct{ db *sql.DB }

func NewMySQLOrderRepo(db *sql.DB) *MySQLOrderRepo { return &MySQLOrderRepo{db: db} }

func (r *MySQLOrderRepo) Insert(ctx context.Context, o *usecase.OrderRecord) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO orders (
  id, first_name, last_name, email, email_confirmation, phone,
  address, city, postal_code, province, country,
  product_size, quantity, is_bundle, email_discount, upsell_discount,
  took_big_offer, oto_offer, oto_price_cents, payment_channel,
  list_price_cents, special_price_cents, discount_cents, addon_cents,
  delivery_fee_cents, total_cents, savings_cents,
  status, mail_sent, created_at
) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		o.ID, o.FirstName, o.LastName, o.Email, o.EmailConfirmation, o.Phone,
		o.Address, o.City, o.PostalCode, o.Province, o.Country,
		o.ProductSize, o.Quantity, o.IsBundle, o.EmailDiscount, o.UpsellDiscount,
		o.TookBigOffer, o.OTOOffer, o.OTOPriceCents, o.PaymentChannel,
		o.ListPriceCents, o.SpecialPriceCents, o.DiscountCents, o.AddOnCents,
		o.DeliveryFeeCents, o.TotalCents, o.SavingsCents,
		o.Status, o.MailSent, o.CreatedAt,
	)
	return err
}

func (r *MySQLOrderRepo) GetByID(ctx context.Context, id string) (*usecase.OrderRecord, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, first_name, last_name, email, email_confirmation, phone,
       address, city, postal_code, province, country,
       product_size, quantity, is_bundle, email_discount, upsell_discount,
       took_big_offer, oto_offer, oto_price_cents, payment_channel,
       list_price_cents, special_price_cents, discount_cents, addon_cents,
       delivery_fee_cents, total_cents, savings_cents,
       status, mail_sent, created_at
FROM orders WHERE id=?`, id)

	var rec usecase.OrderRecord
	err := row.Scan(
		&rec.ID, &rec.FirstName, &rec.LastName, &rec.Email, &rec.EmailConfirmation, &rec.Phone,
		&rec.Address, &rec.City, &rec.PostalCode, &rec.Province, &rec.Country,
		&rec.ProductSize, &rec.Quantity, &rec.IsBundle, &rec.EmailDiscount, &rec.UpsellDiscount,
		&rec.TookBigOffer, &rec.OTOOffer, &rec.OTOPriceCents, &rec.PaymentChannel,
		&rec.ListPriceCents, &rec.SpecialPriceCents, &rec.DiscountCents, &rec.AddOnCents,
		&rec.DeliveryFeeCents, &rec.TotalCents, &rec.SavingsCents,
		&rec.Status, &rec.MailSent, &rec.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// UpdateStatusIf performs a guarded transition; rows == 0 means either the
// order is missing or it already left fromStatus.
func (r *MySQLOrderRepo) UpdateStatusIf(ctx context.Context, id, fromStatus, toStatus string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
UPDATE orders SET status = ?, updated_at = NOW()
WHERE id = ? AND status = ?`,
		toStatus, id, fromStatus,
	)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *MySQLOrderRepo) MarkMailSent(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE orders SET mail_sent = 1, updated_at = NOW()
WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

var (
	_ usecase.OrderInserter     = (*MySQLOrderRepo)(nil)
	_ usecase.OrderReader       = (*MySQLOrderRepo)(nil)
	_ usecase.OrderStatusWriter = (*MySQLOrderRepo)(nil)
)
