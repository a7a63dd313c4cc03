package classify

import (
	"encoding/json"
	"time"

	"github.com/tumbleweedd/frame_store/payment_service/internal/domain/models"
)

const (
	razorpayPaymentCaptured = "payment.captured"
	razorpayOrderPaid       = "order.paid"
	razorpayPaymentFailed   = "payment.failed"
)

type razorpayEnvelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

type razorpayPayload struct {
	Payment struct {
		Entity struct {
			ID        string `json:"id"`
			OrderID   string `json:"order_id"`
			Method    string `json:"method"`
			CreatedAt int64  `json:"created_at"`
		} `json:"entity"`
	} `json:"payment"`
	Order struct {
		Entity struct {
			ID string `json:"id"`
		} `json:"entity"`
	} `json:"order"`
}

func Razorpay(rawBody []byte) (models.WebhookEvent, error) {
	var envelope razorpayEnvelope
	if err := decode(rawBody, &envelope); err != nil {
		return models.WebhookEvent{}, err
	}

	event := models.WebhookEvent{
		Gateway: models.GatewayRazorpay,
		Type:    envelope.Event,
	}

	switch envelope.Event {
	case razorpayPaymentCaptured, razorpayOrderPaid, razorpayPaymentFailed:
	default:
		event.Kind = models.EventUnrecognized
		return event, nil
	}

	var payload razorpayPayload
	if len(envelope.Payload) > 0 {
		if err := decode(envelope.Payload, &payload); err != nil {
			return models.WebhookEvent{}, err
		}
	}

	payment := payload.Payment.Entity

	event.GatewayOrderID = payment.OrderID
	if event.GatewayOrderID == "" {
		event.GatewayOrderID = payload.Order.Entity.ID
	}

	switch envelope.Event {
	case razorpayPaymentCaptured, razorpayOrderPaid:
		event.Kind = models.EventPaymentSucceeded
		event.PaymentID = payment.ID
		event.PaymentMethod = payment.Method
		if payment.CreatedAt > 0 {
			event.PaidAt = time.Unix(payment.CreatedAt, 0).UTC()
		}
	case razorpayPaymentFailed:
		event.Kind = models.EventPaymentFailed
	}

	return finish(event)
}
