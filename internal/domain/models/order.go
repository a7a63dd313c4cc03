package models

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

type FulfillmentStatus string

const (
	FulfillmentPending    FulfillmentStatus = "Pending"
	FulfillmentProcessing FulfillmentStatus = "Processing"
	FulfillmentPrinted    FulfillmentStatus = "Printed"
	FulfillmentShipped    FulfillmentStatus = "Shipped"
	FulfillmentDelivered  FulfillmentStatus = "Delivered"
	FulfillmentFailed     FulfillmentStatus = "Failed"
	FulfillmentCancelled  FulfillmentStatus = "Cancelled"
)

type Gateway string

const (
	GatewayCashfree Gateway = "cashfree"
	GatewayRazorpay Gateway = "razorpay"
)

// Order is the persisted checkout. Customer and Address are a snapshot taken
// at creation and are never touched by payment reconciliation.
type Order struct {
	ID             uuid.UUID `json:"id" db:"id"`
	Gateway        Gateway   `json:"gateway" db:"gateway"`
	GatewayOrderID string    `json:"gateway_order_id" db:"gateway_order_id"`
	TotalAmount    int64     `json:"total_amount" db:"total_amount"`
	Currency       string    `json:"currency" db:"currency"`

	PaymentStatus     PaymentStatus     `json:"payment_status" db:"payment_status"`
	FulfillmentStatus FulfillmentStatus `json:"fulfillment_status" db:"fulfillment_status"`

	PaymentID     *string    `json:"payment_id,omitempty" db:"payment_id"`
	PaymentMethod *string    `json:"payment_method,omitempty" db:"payment_method"`
	PaidAt        *time.Time `json:"paid_at,omitempty" db:"paid_at"`

	Customer `json:"customer"`
	Address  `json:"shipping_address"`

	Items []Item `json:"items,omitempty" db:"-"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type Customer struct {
	Name  string `json:"name" db:"customer_name"`
	Email string `json:"email" db:"customer_email"`
	Phone string `json:"phone" db:"customer_phone"`
}

type Address struct {
	Line1      string `json:"line1" db:"address_line1"`
	Line2      string `json:"line2,omitempty" db:"address_line2"`
	City       string `json:"city" db:"address_city"`
	State      string `json:"state" db:"address_state"`
	PostalCode string `json:"postal_code" db:"address_postal_code"`
	Country    string `json:"country" db:"address_country"`
}

// Item is a single frame line. CustomImageURL is set for personalised frames.
type Item struct {
	OrderID        uuid.UUID `json:"-" db:"order_id"`
	ProductID      uuid.UUID `json:"product_id" db:"product_id"`
	Title          string    `json:"title" db:"title"`
	FrameSize      string    `json:"frame_size" db:"frame_size"`
	Quantity       int       `json:"quantity" db:"quantity"`
	UnitAmount     int64     `json:"unit_amount" db:"unit_amount"`
	CustomImageURL *string   `json:"custom_image_url,omitempty" db:"custom_image_url"`
}

func (o *Order) CalculateTotal() {
	var total int64
	for _, item := range o.Items {
		total += int64(item.Quantity) * item.UnitAmount
	}

	o.TotalAmount = total
}

// PaymentPatch is the set of fields a reconciled webhook writes.
type PaymentPatch struct {
	PaymentStatus     PaymentStatus
	FulfillmentStatus FulfillmentStatus
	PaymentID         *string
	PaymentMethod     *string
	PaidAt            *time.Time
}

// PaymentCondition guards a conditional update: the write only lands when the
// stored payment status differs from PaymentStatusNot.
type PaymentCondition struct {
	PaymentStatusNot PaymentStatus
}

func (c PaymentCondition) Holds(order *Order) bool {
	return order.PaymentStatus != c.PaymentStatusNot
}

// NotCompleted is the guard every webhook write uses.
var NotCompleted = PaymentCondition{PaymentStatusNot: PaymentStatusCompleted}
