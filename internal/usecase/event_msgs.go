package usecase

// Published to RabbitMQ after a successful insert; the mailer service
// consumes it to send the order confirmation.
type CreatedMsg struct {
	OrderID    string `json:"orderId"`
	Email      string `json:"email"`
	FirstName  string `json:"firstName"`
	TotalCents int64  `json:"totalCents"`
	Channel    string `json:"channel"`
}

// Published back by the mailer once the confirmation went out.
type MailSentMsg struct {
	OrderID string `json:"orderId"`
}

// Sent by the back office on Kafka when a payment outcome is known.
type OrderStatusChangedMsg struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"` // AUTHORIZED | SETTLED | FAILED | REFUNDED
}
