package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/coastlinevibe/eubiosis/internal/adapter/cache"
	"github.com/coastlinevibe/eubiosis/internal/adapter/observ"
	"github.com/coastlinevibe/eubiosis/internal/checkout"
	domain "github.com/coastlinevibe/eubiosis/internal/entity"
	"github.com/coastlinevibe/eubiosis/internal/funnel"
	"github.com/coastlinevibe/eubiosis/internal/logging"
	"github.com/coastlinevibe/eubiosis/internal/payment"
	"github.com/coastlinevibe/eubiosis/internal/pricing"
	"github.com/coastlinevibe/eubiosis/internal/usecase"
)

// CheckoutHandler drives one checkout session per customer through the
// step state machine. It holds no session state itself; everything lives in
// the session store between calls.
type CheckoutHandler struct {
	sessions usecase.SessionStore
	machine  *checkout.Machine
	engine   *pricing.Engine
	router   *payment.Router
	submit   *usecase.SubmitOrder
}

func NewCheckoutHandler(
	sessions usecase.SessionStore,
	machine *checkout.Machine,
	engine *pricing.Engine,
	router *payment.Router,
	submit *usecase.SubmitOrder,
) *CheckoutHandler {
	return &CheckoutHandler{
		sessions: sessions,
		machine:  machine,
		engine:   engine,
		router:   router,
		submit:   submit,
	}
}

type sessionView struct {
	ID        string                  `json:"id"`
	Step      checkout.Step           `json:"step"`
	Submitted bool                    `json:"submitted"`
	Intent    domain.OrderIntent      `json:"intent"`
	Customer  domain.CustomerProfile  `json:"customer"`
	Breakdown domain.PricingBreakdown `json:"breakdown"`
	Decision  payment.Decision        `json:"decision"`
	Details   []string                `json:"detailsConditions,omitempty"`
	Payment   []string                `json:"paymentConditions,omitempty"`
}

func (h *CheckoutHandler) view(s *checkout.Session) sessionView {
	v := sessionView{
		ID:        s.ID,
		Step:      s.Step,
		Submitted: s.Submitted,
		Intent:    s.Intent,
		Customer:  s.Customer,
		Breakdown: h.engine.Breakdown(s.Intent),
		Decision:  h.machine.Decision(s),
	}
	v.Details = conditions(h.machine.StepValid(s, checkout.StepDetails))
	v.Payment = conditions(h.machine.StepValid(s, checkout.StepPayment))
	return v
}

func conditions(err error) []string {
	var ve *checkout.ValidationError
	if errors.As(err, &ve) {
		return ve.Conditions
	}
	return nil
}

// CreateSession resolves funnel entry parameters into a fresh session.
// Parameter parsing never fails; garbage falls back to defaults.
func (h *CheckoutHandler) CreateSession(c *gin.Context) {
	var params map[string]string
	if err := c.ShouldBindJSON(&params); err != nil {
		params = map[string]string{}
	}

	s := &checkout.Session{
		ID:     uuid.NewString(),
		Step:   checkout.StepDetails, // Product(1) arrives already completed
		Intent: funnel.Resolve(params),
		Customer: domain.CustomerProfile{
			Country: "South Africa",
		},
		Method:    domain.MethodCard,
		CreatedAt: time.Now().UTC(),
	}

	if h.save(c, s) {
		return
	}
	c.JSON(http.StatusCreated, h.view(s))
}

func (h *CheckoutHandler) GetSession(c *gin.Context) {
	s, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.view(s))
}

type detailsReq struct {
	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	City       *string `json:"city"`
	PostalCode *string `json:"postalCode"`
	Province   *string `json:"province"`
	Country    *string `json:"country"`
}

// UpdateDetails merges the supplied customer fields into the session.
// Absent fields are left alone so the UI can save field-by-field.
func (h *CheckoutHandler) UpdateDetails(c *gin.Context) {
	s, ok := h.load(c)
	if !ok {
		return
	}
	var req detailsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&s.Customer.FirstName, req.FirstName)
	apply(&s.Customer.LastName, req.LastName)
	apply(&s.Customer.Email, req.Email)
	apply(&s.Customer.Phone, req.Phone)
	apply(&s.Customer.Address, req.Address)
	apply(&s.Customer.City, req.City)
	apply(&s.Customer.PostalCode, req.PostalCode)
	apply(&s.Customer.Province, req.Province)
	apply(&s.Customer.Country, req.Country)

	if h.save(c, s) {
		return
	}
	c.JSON(http.StatusOK, h.view(s))
}

// Advance moves the session forward one step. A refused transition leaves
// the session untouched and surfaces every unmet condition.
func (h *CheckoutHandler) Advance(c *gin.Context) {
	s, ok := h.load(c)
	if !ok {
		return
	}
	if err := h.machine.Advance(s); err != nil {
		observ.StepTransitions.WithLabelValues("forward", "refused").Inc()
		var ve *checkout.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":      "validation_failed",
				"conditions": ve.Conditions,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	observ.StepTransitions.WithLabelValues("forward", "ok").Inc()

	if h.save(c, s) {
		return
	}
	c.JSON(http.StatusOK, h.view(s))
}

func (h *CheckoutHandler) Back(c *gin.Context) {
	s, ok := h.load(c)
	if !ok {
		return
	}
	h.machine.Back(s)
	observ.StepTransitions.WithLabelValues("back", "ok").Inc()

	if h.save(c, s) {
		return
	}
	c.JSON(http.StatusOK, h.view(s))
}

type paymentReq struct {
	Method                    *domain.PaymentMethod `json:"method"`
	Province                  *string               `json:"province"`
	EmailConfirmation         *string               `json:"emailConfirmation"`
	IrresistibleOfferAccepted *bool                 `json:"irresistibleOfferAccepted"`
}

// UpdatePayment records the payment-step inputs. Accepting the irresistible
// offer is the only OrderIntent mutation after entry, and the offer is never
// shown to customers who already took the big upsell.
func (h *CheckoutHandler) UpdatePayment(c *gin.Context) {
	s, ok := h.load(c)
	if !ok {
		return
	}
	var req paymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	if req.Method != nil {
		if *req.Method != domain.MethodCard && *req.Method != domain.MethodEFT {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown_method"})
			return
		}
		s.Method = *req.Method
	}
	if req.Province != nil {
		s.Customer.Province = *req.Province
	}
	if req.EmailConfirmation != nil {
		s.Customer.EmailConfirmation = *req.EmailConfirmation
	}
	if req.IrresistibleOfferAccepted != nil && !s.Intent.TookBigOffer {
		s.Intent.IrresistibleOfferAccepted = *req.IrresistibleOfferAccepted
	}

	if h.save(c, s) {
		return
	}
	c.JSON(http.StatusOK, h.view(s))
}

// Channels answers "what can I pay with from this province".
func (h *CheckoutHandler) Channels(c *gin.Context) {
	province := c.Query("province")
	c.JSON(http.StatusOK, gin.H{
		"province": province,
		"channels": h.router.AvailableChannels(province),
		"card":     h.router.Resolve(province, domain.MethodCard),
		"eft":      h.router.Resolve(province, domain.MethodEFT),
	})
}

// Submit finalizes the session. Pricing is recomputed server-side; the
// session is saved back regardless of outcome so the submitted flag and any
// untouched state stay consistent.
func (h *CheckoutHandler) Submit(c *gin.Context) {
	s, ok := h.load(c)
	if !ok {
		return
	}

	ctx, cancel := timeoutCtx(c, 5*time.Second)
	defer cancel()

	rec, err := h.submit.Execute(ctx, s)
	if err != nil {
		var ve *checkout.ValidationError
		if errors.As(err, &ve) {
			observ.SubmitFailures.WithLabelValues("validation").Inc()
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":      "validation_failed",
				"conditions": ve.Conditions,
			})
			return
		}
		var pe *usecase.PersistenceError
		if errors.As(err, &pe) {
			observ.SubmitFailures.WithLabelValues("persistence").Inc()
			logging.From(c).Error("order insert failed", "err", pe.Err)
			c.JSON(http.StatusBadGateway, gin.H{"error": pe.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	observ.OrdersSubmitted.WithLabelValues(rec.PaymentChannel).Inc()

	if h.save(c, s) {
		return
	}
	c.JSON(http.StatusCreated, orderResp(rec))
}

// load fetches the session or writes the error response itself.
func (h *CheckoutHandler) load(c *gin.Context) (*checkout.Session, bool) {
	ctx, cancel := timeoutCtx(c, 2*time.Second)
	defer cancel()

	s, err := h.sessions.Load(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, cache.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session_not_found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "session_load_failed"})
		}
		return nil, false
	}
	return s, true
}

// save persists the session; a true return means the response was already
// written and the caller must stop.
func (h *CheckoutHandler) save(c *gin.Context, s *checkout.Session) bool {
	ctx, cancel := timeoutCtx(c, 2*time.Second)
	defer cancel()

	if err := h.sessions.Save(ctx, s); err != nil {
		logging.From(c).Error("session save failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session_save_failed"})
		return true
	}
	return false
}
