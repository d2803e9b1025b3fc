package kafka

import (
	"context"

	domain "github.com/coastlinevibe/eubiosis/internal/entity"
	"github.com/coastlinevibe/eubiosis/internal/usecase"
)

// PaymentStatusHandler applies back-office payment outcomes to persisted
// orders. The funnel core itself never mutates a record; this adapter is the
// one place status moves after submission.
type PaymentStatusHandler struct {
	Orders usecase.OrderStatusWriter
}

func NewPaymentStatusHandler(orders usecase.OrderStatusWriter) *PaymentStatusHandler {
	return &PaymentStatusHandler{Orders: orders}
}

// Handle maps the external status and applies it as a guarded transition so
// an out-of-order or replayed event cannot resurrect a cancelled order.
func (h *PaymentStatusHandler) Handle(ctx context.Context, ev usecase.OrderStatusChangedMsg) error {
	var from, to domain.Status
	switch ev.Status {
	case "AUTHORIZED":
		from, to = domain.StatusPending, domain.StatusProcessing
	case "SETTLED":
		from, to = domain.StatusProcessing, domain.StatusCompleted
	case "FAILED", "REFUNDED":
		from, to = domain.StatusProcessing, domain.StatusCancelled
	default:
		return nil // unknown statuses are ignored, not retried
	}

	ok, err := h.Orders.UpdateStatusIf(ctx, ev.OrderID, string(from), string(to))
	if err != nil {
		return err
	}
	if !ok && to == domain.StatusCancelled {
		// A failure can also arrive before authorization.
		_, err = h.Orders.UpdateStatusIf(ctx, ev.OrderID, string(domain.StatusPending), string(to))
	}
	return err
}
