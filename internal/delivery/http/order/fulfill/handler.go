package fulfill

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/tumbleweedd/frame_store/payment_service/internal/delivery/http/middleware"
	"github.com/tumbleweedd/frame_store/payment_service/internal/domain/models"
	internalErrors "github.com/tumbleweedd/frame_store/payment_service/internal/lib/errors"
	httpresponse "github.com/tumbleweedd/frame_store/payment_service/internal/lib/http"
	"github.com/tumbleweedd/frame_store/payment_service/pkg/logger"
)

type fulfillmentAdvancer interface {
	Advance(ctx context.Context, orderID uuid.UUID, to models.FulfillmentStatus) (*models.Order, error)
}

type Handler struct {
	log logger.Logger

	fulfillmentAdvancer fulfillmentAdvancer
}

func NewHandler(log logger.Logger, fulfillmentAdvancer fulfillmentAdvancer) *Handler {
	return &Handler{
		log:                 log,
		fulfillmentAdvancer: fulfillmentAdvancer,
	}
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "delivery.http.order.fulfill.Update"

	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		_ = httpresponse.Error(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var request UpdateFulfillmentRequest
	if err = json.NewDecoder(r.Body).Decode(&request); err != nil {
		_ = httpresponse.Error(w, http.StatusBadRequest, "malformed request body")
		return
	}

	if err = request.validate(); err != nil {
		_ = httpresponse.Error(w, http.StatusBadRequest, "invalid status")
		return
	}

	order, err := h.fulfillmentAdvancer.Advance(r.Context(), orderID, request.toServiceRepresentation())
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, internalErrors.ErrOrderNotFound):
			status = http.StatusNotFound
		case errors.Is(err, internalErrors.ErrOrderNotPaid),
			errors.Is(err, internalErrors.ErrInvalidFulfillmentTransition),
			errors.Is(err, internalErrors.ErrFulfillmentConflict):
			status = http.StatusConflict
		}

		if status == http.StatusInternalServerError {
			h.log.Error(op, logger.String("failed to update fulfillment", err.Error()))
			_ = httpresponse.Error(w, status, "failed to update fulfillment")
			return
		}

		_ = httpresponse.Error(w, status, err.Error())
		return
	}

	actor := ""
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		actor = claims.Subject
	}
	h.log.InfoContext(r.Context(), op,
		logger.String("order_id", orderID.String()),
		logger.String("status", string(order.FulfillmentStatus)),
		logger.String("actor", actor),
	)

	if err = httpresponse.JSON(w, http.StatusOK, order); err != nil {
		h.log.Error(op, logger.String("failed to encode response", err.Error()))
	}
}
