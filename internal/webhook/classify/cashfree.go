package classify

import (
	"encoding/json"

	"github.com/tumbleweedd/frame_store/payment_service/internal/domain/models"
)

const (
	cashfreePaymentSuccess     = "PAYMENT_SUCCESS_WEBHOOK"
	cashfreePaymentFailed      = "PAYMENT_FAILED_WEBHOOK"
	cashfreePaymentUserDropped = "PAYMENT_USER_DROPPED_WEBHOOK"
)

type cashfreeEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type cashfreeData struct {
	Order struct {
		OrderID string `json:"order_id"`
	} `json:"order"`
	Payment struct {
		CfPaymentID  flexString `json:"cf_payment_id"`
		PaymentGroup string     `json:"payment_group"`
		PaymentTime  string     `json:"payment_time"`
	} `json:"payment"`
}

// Cashfree reads the event type first; the data object is decoded only for
// the types the service acts on, so unknown events are acknowledged whatever
// their shape.
func Cashfree(rawBody []byte) (models.WebhookEvent, error) {
	var envelope cashfreeEnvelope
	if err := decode(rawBody, &envelope); err != nil {
		return models.WebhookEvent{}, err
	}

	event := models.WebhookEvent{
		Gateway: models.GatewayCashfree,
		Type:    envelope.Type,
	}

	switch envelope.Type {
	case cashfreePaymentSuccess, cashfreePaymentFailed, cashfreePaymentUserDropped:
	default:
		event.Kind = models.EventUnrecognized
		return event, nil
	}

	var data cashfreeData
	if len(envelope.Data) > 0 {
		if err := decode(envelope.Data, &data); err != nil {
			return models.WebhookEvent{}, err
		}
	}

	event.GatewayOrderID = data.Order.OrderID

	switch envelope.Type {
	case cashfreePaymentSuccess:
		event.Kind = models.EventPaymentSucceeded
		event.PaymentID = string(data.Payment.CfPaymentID)
		event.PaymentMethod = data.Payment.PaymentGroup
		event.PaidAt = parsePaymentTime(data.Payment.PaymentTime)
	case cashfreePaymentFailed:
		event.Kind = models.EventPaymentFailed
	case cashfreePaymentUserDropped:
		event.Kind = models.EventPaymentCanceled
	}

	return finish(event)
}
