package models

import "time"

type OrderStatus string

const (
	OrderStatusPaid     OrderStatus = "Paid"
	OrderStatusDeclined OrderStatus = "Declined"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityDanger  Severity = "danger"
)

// CustomerSnapshot is the customer as they were at checkout time. It is
// denormalized onto the order and never re-joined from a live customer record.
type CustomerSnapshot struct {
	CustomerID string `json:"customer_id"`
	Email      string `json:"email"`
	Company    string `json:"company"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Address1   string `json:"address1"`
	Address2   string `json:"address2"`
	Country    string `json:"country"`
	State      string `json:"state"`
	Postcode   string `json:"postcode"`
	Phone      string `json:"phone"`
}

type CartProduct struct {
	ProductID      string  `json:"product_id"`
	Title          string  `json:"title"`
	Quantity       int     `json:"quantity"`
	TotalItemPrice float64 `json:"total_item_price"`
}

// CartSnapshot is the session-held cart state read at the start of a checkout
// attempt. The total here is the exact amount sent to the gateway.
type CartSnapshot struct {
	TotalAmount   float64          `json:"total_amount"`
	TotalShipping float64          `json:"total_shipping"`
	ItemCount     int              `json:"item_count"`
	ProductCount  int              `json:"product_count"`
	Products      []CartProduct    `json:"products"`
	Customer      CustomerSnapshot `json:"customer"`
	OrderComment  string           `json:"order_comment"`
}

// CheckoutRequest is the full input of one checkout attempt. It is consumed
// once and never persisted as-is.
type CheckoutRequest struct {
	SessionID        string
	SingleUseTokenID string
	Cart             CartSnapshot
}

// ChargeOutcome is the normalized result of one gateway charge call.
// Approved=false means the processor declined the charge, which is a
// successful gateway interaction with a negative business result.
type ChargeOutcome struct {
	Approved      bool
	TransactionID string
	ResponseCode  string
	ResponseText  string
}

type Order struct {
	ID             string           `json:"order_id"`
	PaymentID      string           `json:"payment_id"`
	PaymentGateway string           `json:"payment_gateway"`
	PaymentMessage string           `json:"payment_message"`
	Total          float64          `json:"total"`
	Shipping       float64          `json:"shipping"`
	ItemCount      int              `json:"item_count"`
	ProductCount   int              `json:"product_count"`
	Customer       CustomerSnapshot `json:"customer"`
	Comment        string           `json:"comment"`
	Status         OrderStatus      `json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
	Products       []CartProduct    `json:"products"`
	Type           string           `json:"type"`
}

// SessionOutcome is the caller-visible result of a checkout attempt. It is
// written once per attempt and cleared when the next rendered response reads it.
type SessionOutcome struct {
	Message     string   `json:"message"`
	Severity    Severity `json:"severity"`
	Approved    bool     `json:"approved"`
	Details     string   `json:"details"`
	NotifyEmail string   `json:"notify_email,omitempty"`
}

// CheckoutResult is what the routing layer gets back: where to send the
// customer and the outcome it will render there.
type CheckoutResult struct {
	RedirectTarget string
	OrderID        string
	Outcome        SessionOutcome
}

type OrderRecordedEvent struct {
	OrderID       string      `json:"order_id"`
	PaymentID     string      `json:"payment_id"`
	Status        OrderStatus `json:"status"`
	Total         float64     `json:"total"`
	CustomerEmail string      `json:"customer_email"`
	CreatedAt     time.Time   `json:"created_at"`
}
