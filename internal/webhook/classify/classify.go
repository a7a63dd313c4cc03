// Package classify turns gateway webhook payloads into models.WebhookEvent.
// Provider field names stay inside this package.
package classify

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/tumbleweedd/frame_store/payment_service/internal/domain/models"
)

var (
	ErrMalformedPayload      = errors.New("webhook payload is not valid json")
	ErrMissingCorrelationKey = errors.New("webhook payload has no gateway order id")
)

// Func classifies a raw, already authenticated, webhook body.
type Func func(rawBody []byte) (models.WebhookEvent, error)

// flexString accepts both JSON strings and numbers; gateways are not
// consistent about id types.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())

	return nil
}

func decode(rawBody []byte, v any) error {
	if err := json.Unmarshal(rawBody, v); err != nil {
		return errors.Join(ErrMalformedPayload, err)
	}

	return nil
}

// finish enforces the correlation rule shared by all gateways.
func finish(event models.WebhookEvent) (models.WebhookEvent, error) {
	event.GatewayOrderID = strings.TrimSpace(event.GatewayOrderID)

	if event.Kind == models.EventPaymentSucceeded && event.GatewayOrderID == "" {
		return event, ErrMissingCorrelationKey
	}

	return event, nil
}

var paymentTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func parsePaymentTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}

	for _, layout := range paymentTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC()
		}
	}

	return time.Time{}
}
