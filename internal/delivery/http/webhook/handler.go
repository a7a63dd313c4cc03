package webhook

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/tumbleweedd/frame_store/payment_service/internal/domain/models"
	httpresponse "github.com/tumbleweedd/frame_store/payment_service/internal/lib/http"
	"github.com/tumbleweedd/frame_store/payment_service/internal/services/payment/reconcile"
	"github.com/tumbleweedd/frame_store/payment_service/internal/webhook/classify"
	"github.com/tumbleweedd/frame_store/payment_service/internal/webhook/signature"
	"github.com/tumbleweedd/frame_store/payment_service/pkg/logger"
)

const defaultMaxBodyBytes = 1 << 20

type reconciler interface {
	Reconcile(ctx context.Context, event models.WebhookEvent) (reconcile.Result, error)
}

type Handler struct {
	log     logger.Logger
	gateway Gateway

	reconciler   reconciler
	maxBodyBytes int64
}

func NewHandler(log logger.Logger, gateway Gateway, reconciler reconciler, maxBodyBytes int64) *Handler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}

	return &Handler{
		log:          log.With(logger.String("gateway", string(gateway.Name))),
		gateway:      gateway,
		reconciler:   reconciler,
		maxBodyBytes: maxBodyBytes,
	}
}

// Receive acknowledges every well-formed, authentic delivery with 200, whatever
// it did to the order. Only storage failures answer 500 so the gateway retries.
func (h *Handler) Receive(w http.ResponseWriter, r *http.Request) {
	const op = "delivery.http.webhook.Receive"

	rawBody, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		h.log.Warn(op, logger.String("failed to read body", err.Error()))
		h.respondError(w, http.StatusBadRequest, "unreadable body")
		return
	}

	var timestamp string
	if h.gateway.TimestampHeader != "" {
		timestamp = r.Header.Get(h.gateway.TimestampHeader)
	}

	err = signature.Verify(rawBody, r.Header.Get(h.gateway.SignatureHeader), timestamp, h.gateway.Secret, h.gateway.Scheme)
	if err != nil {
		status := verificationStatus(err)
		scheme := logger.String("scheme", h.gateway.Scheme.String())
		if status == http.StatusInternalServerError {
			h.log.Error(op, logger.String("error", err.Error()), scheme)
		} else {
			h.log.Warn(op, logger.String("rejected", err.Error()), scheme)
		}

		h.respondError(w, status, err.Error())
		return
	}

	event, err := h.gateway.Classify(rawBody)
	if err != nil {
		h.log.Warn(op, logger.String("failed to classify", err.Error()))
		h.respondError(w, http.StatusBadRequest, classificationMessage(err))
		return
	}

	result, err := h.reconciler.Reconcile(r.Context(), event)
	if err != nil {
		h.log.Error(op, logger.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "temporarily unable to process webhook")
		return
	}

	h.log.InfoContext(r.Context(), op,
		logger.String("gateway_order_id", event.GatewayOrderID),
		logger.String("event", event.Kind.String()),
		logger.String("outcome", result.Transition.Kind.String()),
	)

	if err = httpresponse.JSON(w, http.StatusOK, httpresponse.Ack{
		Success: true,
		Message: ackMessage(result),
	}); err != nil {
		h.log.Error(op, logger.String("failed to encode response", err.Error()))
	}
}

// Liveness answers GET on the webhook path for manual checks.
func (h *Handler) Liveness(w http.ResponseWriter, _ *http.Request) {
	_ = httpresponse.JSON(w, http.StatusOK, httpresponse.H{
		"status":  "ok",
		"gateway": h.gateway.Name,
	})
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	if err := httpresponse.JSON(w, status, httpresponse.Ack{Success: false, Message: message}); err != nil {
		h.log.Error("delivery.http.webhook.respondError", logger.String("error", err.Error()))
	}
}

func verificationStatus(err error) int {
	switch {
	case errors.Is(err, signature.ErrMissingSecret):
		return http.StatusInternalServerError
	case errors.Is(err, signature.ErrMissingSignature), errors.Is(err, signature.ErrMissingTimestamp):
		return http.StatusBadRequest
	default:
		return http.StatusUnauthorized
	}
}

func classificationMessage(err error) string {
	if errors.Is(err, classify.ErrMissingCorrelationKey) {
		return "missing order id"
	}

	return "malformed payload"
}

func ackMessage(result reconcile.Result) string {
	switch result.Transition.Kind {
	case reconcile.Applied:
		if result.Order != nil {
			return "order " + string(result.Order.PaymentStatus)
		}
		return "order updated"
	default:
		return result.Transition.Reason
	}
}
