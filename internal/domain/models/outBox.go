package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	OrderCreated            EventType = "ORDER_CREATED"
	OrderPaid               EventType = "ORDER_PAID"
	OrderPaymentFailed      EventType = "ORDER_PAYMENT_FAILED"
	OrderPaymentCancelled   EventType = "ORDER_PAYMENT_CANCELLED"
	OrderFulfillmentChanged EventType = "ORDER_STATUS_CHANGED"
)

type OutBoxMessage struct {
	ID          int             `json:"id" db:"id"`
	EventUUID   uuid.UUID       `json:"event_uuid" db:"event_uuid"`
	AggregateID uuid.UUID       `json:"aggregate_id" db:"aggregate_id"`
	EventType   string          `json:"event_type" db:"event_type"`
	Payload     json.RawMessage `json:"payload" db:"payload"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

type OrderPayload struct {
	OrderID           uuid.UUID         `json:"order_id"`
	Gateway           Gateway           `json:"gateway"`
	PaymentStatus     PaymentStatus     `json:"payment_status"`
	FulfillmentStatus FulfillmentStatus `json:"fulfillment_status"`
	TotalAmount       int64             `json:"total_amount"`
	PaymentID         *string           `json:"payment_id,omitempty"`
}

func NewOrderPayload(order *Order) OrderPayload {
	return OrderPayload{
		OrderID:           order.ID,
		Gateway:           order.Gateway,
		PaymentStatus:     order.PaymentStatus,
		FulfillmentStatus: order.FulfillmentStatus,
		TotalAmount:       order.TotalAmount,
		PaymentID:         order.PaymentID,
	}
}

// PaymentEventType picks the outbox event for a reconciled payment status.
func PaymentEventType(status PaymentStatus) EventType {
	switch status {
	case PaymentStatusCompleted:
		return OrderPaid
	case PaymentStatusFailed:
		return OrderPaymentFailed
	case PaymentStatusCancelled:
		return OrderPaymentCancelled
	default:
		return OrderFulfillmentChanged
	}
}
