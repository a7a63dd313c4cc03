package reconcile

import (
	"time"

	"github.com/tumbleweedd/frame_store/payment_service/internal/domain/models"
)

type TransitionKind int

const (
	NoOrderFound TransitionKind = iota + 1
	NoOp
	Applied
)

func (k TransitionKind) String() string {
	switch k {
	case NoOrderFound:
		return "no_order_found"
	case NoOp:
		return "no_op"
	case Applied:
		return "applied"
	default:
		return "unknown"
	}
}

const (
	ReasonAlreadyProcessed = "already processed"
	ReasonAlreadyCompleted = "order already completed"
	ReasonUnhandledType    = "unhandled type"
	ReasonOrderNotFound    = "order not found"
)

type Transition struct {
	Kind   TransitionKind
	Reason string
	Patch  models.PaymentPatch
}

// Apply decides what a webhook event does to an order. order is nil when no
// order matches the event's gateway order id. receivedAt stands in for the
// payment time when the event carries none.
func Apply(event models.WebhookEvent, order *models.Order, receivedAt time.Time) Transition {
	if order == nil {
		return Transition{Kind: NoOrderFound, Reason: ReasonOrderNotFound}
	}

	completed := order.PaymentStatus == models.PaymentStatusCompleted

	switch event.Kind {
	case models.EventPaymentSucceeded:
		if completed {
			return Transition{Kind: NoOp, Reason: ReasonAlreadyProcessed}
		}

		paidAt := event.PaidAt
		if paidAt.IsZero() {
			paidAt = receivedAt
		}

		return Transition{
			Kind: Applied,
			Patch: models.PaymentPatch{
				PaymentStatus:     models.PaymentStatusCompleted,
				FulfillmentStatus: models.FulfillmentProcessing,
				PaymentID:         optional(event.PaymentID),
				PaymentMethod:     optional(event.PaymentMethod),
				PaidAt:            &paidAt,
			},
		}
	case models.EventPaymentFailed:
		if completed {
			return Transition{Kind: NoOp, Reason: ReasonAlreadyCompleted}
		}

		return Transition{
			Kind: Applied,
			Patch: models.PaymentPatch{
				PaymentStatus:     models.PaymentStatusFailed,
				FulfillmentStatus: models.FulfillmentFailed,
			},
		}
	case models.EventPaymentCanceled:
		if completed {
			return Transition{Kind: NoOp, Reason: ReasonAlreadyCompleted}
		}

		return Transition{
			Kind: Applied,
			Patch: models.PaymentPatch{
				PaymentStatus:     models.PaymentStatusCancelled,
				FulfillmentStatus: models.FulfillmentCancelled,
			},
		}
	default:
		return Transition{Kind: NoOp, Reason: ReasonUnhandledType}
	}
}

func optional(value string) *string {
	if value == "" {
		return nil
	}

	return &value
}
