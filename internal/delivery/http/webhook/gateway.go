package webhook

import (
	"github.com/tumbleweedd/frame_store/payment_service/internal/domain/models"
	"github.com/tumbleweedd/frame_store/payment_service/internal/webhook/classify"
	"github.com/tumbleweedd/frame_store/payment_service/internal/webhook/signature"
)

// Gateway binds one provider's signing rules to its payload classifier.
type Gateway struct {
	Name            models.Gateway
	Scheme          signature.Scheme
	SignatureHeader string
	// TimestampHeader is empty for body-only schemes.
	TimestampHeader string
	Secret          string
	Classify        classify.Func
}

func Cashfree(secret string) Gateway {
	return Gateway{
		Name:            models.GatewayCashfree,
		Scheme:          signature.SchemeTimestampBody,
		SignatureHeader: "x-webhook-signature",
		TimestampHeader: "x-webhook-timestamp",
		Secret:          secret,
		Classify:        classify.Cashfree,
	}
}

func Razorpay(secret string) Gateway {
	return Gateway{
		Name:            models.GatewayRazorpay,
		Scheme:          signature.SchemeBody,
		SignatureHeader: "x-razorpay-signature",
		Secret:          secret,
		Classify:        classify.Razorpay,
	}
}
