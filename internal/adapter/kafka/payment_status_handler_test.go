package kafka

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coastlinevibe/eubiosis/internal/usecase"
)

type transition struct{ id, from, to string }

type fakeStatusWriter struct {
	transitions []transition
	matched     map[transition]bool
}

func (f *fakeStatusWriter) UpdateStatusIf(_ context.Context, id, from, to string) (bool, error) {
	tr := transition{id, from, to}
	f.transitions = append(f.transitions, tr)
	return f.matched[tr], nil
}

func (f *fakeStatusWriter) MarkMailSent(context.Context, string) error { return nil }

func TestHandleMapsExternalStatuses(t *testing.T) {
	tests := []struct {
		ext  string
		want transition
	}{
		{"AUTHORIZED", transition{"o1", "pending", "processing"}},
		{"SETTLED", transition{"o1", "processing", "completed"}},
		{"FAILED", transition{"o1", "processing", "cancelled"}},
		{"REFUNDED", transition{"o1", "processing", "cancelled"}},
	}
	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			w := &fakeStatusWriter{matched: map[transition]bool{tt.want: true}}
			h := NewPaymentStatusHandler(w)

			err := h.Handle(context.Background(), usecase.OrderStatusChangedMsg{
				OrderID: "o1", Status: tt.ext,
			})
			require.NoError(t, err)
			assert.Equal(t, []transition{tt.want}, w.transitions)
		})
	}
}

func TestHandleFailureBeforeAuthorizationCancelsPendingOrder(t *testing.T) {
	w := &fakeStatusWriter{matched: map[transition]bool{
		{"o1", "pending", "cancelled"}: true,
	}}
	h := NewPaymentStatusHandler(w)

	err := h.Handle(context.Background(), usecase.OrderStatusChangedMsg{
		OrderID: "o1", Status: "FAILED",
	})
	require.NoError(t, err)
	assert.Equal(t, []transition{
		{"o1", "processing", "cancelled"},
		{"o1", "pending", "cancelled"},
	}, w.transitions)
}

func TestHandleIgnoresUnknownStatus(t *testing.T) {
	w := &fakeStatusWriter{}
	h := NewPaymentStatusHandler(w)

	err := h.Handle(context.Background(), usecase.OrderStatusChangedMsg{
		OrderID: "o1", Status: "SOMETHING_NEW",
	})
	require.NoError(t, err)
	assert.Empty(t, w.transitions)
}
