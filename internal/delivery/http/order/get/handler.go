package get

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/tumbleweedd/frame_store/payment_service/internal/domain/models"
	internalErrors "github.com/tumbleweedd/frame_store/payment_service/internal/lib/errors"
	httpresponse "github.com/tumbleweedd/frame_store/payment_service/internal/lib/http"
	"github.com/tumbleweedd/frame_store/payment_service/pkg/logger"
)

type orderGetter interface {
	OrdersByIDs(ctx context.Context, orderIDs []uuid.UUID) ([]models.Order, error)
	OrderByID(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
}

type Handler struct {
	log logger.Logger

	orderGetter orderGetter
}

func NewHandler(log logger.Logger, orderGetter orderGetter) *Handler {
	return &Handler{
		log:         log,
		orderGetter: orderGetter,
	}
}

func (h *Handler) OrderByID(w http.ResponseWriter, r *http.Request) {
	const op = "delivery.http.order.get.OrderByID"

	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		_ = httpresponse.Error(w, http.StatusBadRequest, errInvalidOrderID.Error())
		return
	}

	order, err := h.orderGetter.OrderByID(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, internalErrors.ErrOrderNotFound) {
			_ = httpresponse.Error(w, http.StatusNotFound, internalErrors.ErrOrderNotFound.Error())
			return
		}

		h.log.Error(op, logger.String("failed to get order", err.Error()))
		_ = httpresponse.Error(w, http.StatusInternalServerError, "failed to get order")
		return
	}

	if err = httpresponse.JSON(w, http.StatusOK, order); err != nil {
		h.log.Error(op, logger.String("failed to encode response", err.Error()))
	}
}

func (h *Handler) OrdersByIDs(w http.ResponseWriter, r *http.Request) {
	const op = "delivery.http.order.get.OrdersByIDs"
	var request OrdersByIDsRequest

	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		h.log.Error(op, logger.String("failed to decode request", err.Error()))
		_ = httpresponse.Error(w, http.StatusBadRequest, "malformed request body")
		return
	}

	if err = request.validate(); err != nil {
		h.log.Error(op, logger.String("failed to validate request", err.Error()))
		_ = httpresponse.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	orders, err := h.orderGetter.OrdersByIDs(r.Context(), request.toServiceRepresentation())
	if err != nil {
		h.log.Error(op, logger.String("failed to get orders", err.Error()))
		_ = httpresponse.Error(w, http.StatusInternalServerError, "failed to get orders")
		return
	}

	if err = httpresponse.JSON(w, http.StatusOK, httpresponse.H{
		"orders": orders,
	}); err != nil {
		h.log.Error(op, logger.String("failed to encode response", err.Error()))
	}
}
