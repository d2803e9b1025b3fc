package queue

import (
	"context"
	"errors"

	"github.com/coastlinevibe/eubiosis/internal/adapter/repo"
	"github.com/coastlinevibe/eubiosis/internal/usecase"
)

// MailSentHandler flips the order's mail_sent flag once the mailer service
// reports the confirmation email went out.
type MailSentHandler struct {
	orders usecase.OrderStatusWriter
}

func NewMailSentHandler(orders usecase.OrderStatusWriter) *MailSentHandler {
	return &MailSentHandler{orders: orders}
}

// HandleMailSent is intended for the JSON adapter (queue.JSONHandler[MailSentMsg]).
// An unknown order id is acked rather than requeued; redelivering it forever
// helps nobody.
func (h *MailSentHandler) HandleMailSent(ctx context.Context, msg usecase.MailSentMsg) error {
	err := h.orders.MarkMailSent(ctx, msg.OrderID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil
	}
	return err
}
