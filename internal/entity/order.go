package domain

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

type Size string

const (
	Size50ml  Size = "50ml"
	Size100ml Size = "100ml"
)

// OTO is the one-time-offer upsell picked before the main checkout.
// Its price is added flatly and never discounted.
type OTO struct {
	OfferID string  `json:"offerId"`
	Price   float64 `json:"price"`
}

// OrderIntent is built once from the funnel entry parameters.
// IrresistibleOfferAccepted is the only field mutated afterwards, at the
// payment step.
type OrderIntent struct {
	Size                      Size  `json:"size"`
	Quantity                  int   `json:"quantity"`
	Bundle                    bool  `json:"bundle"`
	EmailDiscountEligible     bool  `json:"emailDiscountEligible"`
	UpsellDiscountPercent     int   `json:"upsellDiscountPercent"`
	TookBigOffer              bool  `json:"tookBigOffer"`
	OTO                       *OTO  `json:"oto,omitempty"`
	IrresistibleOfferAccepted bool  `json:"irresistibleOfferAccepted"`
}

// CustomerProfile is collected incrementally across the checkout steps and
// finalized at submission.
type CustomerProfile struct {
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	Email             string `json:"email"`
	EmailConfirmation string `json:"emailConfirmation,omitempty"`
	Phone             string `json:"phone"`
	Address           string `json:"address"`
	City              string `json:"city"`
	PostalCode        string `json:"postalCode"`
	Province          string `json:"province"`
	Country           string `json:"country"`
}

// PricingBreakdown is derived from an OrderIntent; it is never stored
// independently of its inputs. Amounts are major currency units; conversion
// to integer cents happens at persistence time only.
type PricingBreakdown struct {
	ListPrice     float64 `json:"listPrice"`
	SpecialPrice  float64 `json:"specialPrice"`
	DiscountTotal float64 `json:"discountTotal"`
	AddOnPrice    float64 `json:"addOnPrice"`
	DeliveryFee   float64 `json:"deliveryFee"`
	Total         float64 `json:"total"`
	TotalSavings  float64 `json:"totalSavings"`
}

type PaymentChannel string

const (
	ChannelCardGateway           PaymentChannel = "card_gateway"
	ChannelManualEFT             PaymentChannel = "manual_eft"
	ChannelRepresentativeContact PaymentChannel = "representative_contact"
)

// PaymentMethod is the customer-facing choice on the payment step.
type PaymentMethod string

const (
	MethodCard PaymentMethod = "card"
	MethodEFT  PaymentMethod = "eft"
)
