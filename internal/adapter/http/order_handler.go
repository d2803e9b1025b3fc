package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/coastlinevibe/eubiosis/internal/adapter/repo"
	"github.com/coastlinevibe/eubiosis/internal/usecase"
)

// OrderHandler serves the confirmation-page lookup.
type OrderHandler struct {
	query usecase.OrderReader
}

func NewOrderHandler(query usecase.OrderReader) *OrderHandler {
	return &OrderHandler{query: query}
}

func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	ctx, cancel := timeoutCtx(c, 2*time.Second)
	defer cancel()

	rec, err := h.query.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup_failed"})
		return
	}
	c.JSON(http.StatusOK, orderResp(rec))
}

func orderResp(rec *usecase.OrderRecord) gin.H {
	return gin.H{
		"id":              rec.ID,
		"first_name":      rec.FirstName,
		"last_name":       rec.LastName,
		"email":           rec.Email,
		"product_size":    rec.ProductSize,
		"quantity":        rec.Quantity,
		"is_bundle":       rec.IsBundle,
		"oto_offer":       rec.OTOOffer,
		"payment_channel": rec.PaymentChannel,
		"total_cents":     rec.TotalCents,
		"savings_cents":   rec.SavingsCents,
		"status":          rec.Status,
		"mail_sent":       rec.MailSent,
		"created_at":      rec.CreatedAt,
	}
}

func timeoutCtx(c *gin.Context, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), d)
}
