package models

import "time"

type EventKind int

const (
	EventUnrecognized EventKind = iota
	EventPaymentSucceeded
	EventPaymentFailed
	EventPaymentCanceled
)

func (k EventKind) String() string {
	switch k {
	case EventPaymentSucceeded:
		return "payment_succeeded"
	case EventPaymentFailed:
		return "payment_failed"
	case EventPaymentCanceled:
		return "payment_canceled"
	default:
		return "unrecognized"
	}
}

// WebhookEvent is a gateway notification reduced to what reconciliation needs.
// It is never persisted.
type WebhookEvent struct {
	Kind           EventKind
	Gateway        Gateway
	Type           string
	GatewayOrderID string

	PaymentID     string
	PaymentMethod string
	// PaidAt is zero when the payload carries no payment timestamp.
	PaidAt time.Time
}
