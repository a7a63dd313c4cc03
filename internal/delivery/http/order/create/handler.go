package create

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/tumbleweedd/frame_store/payment_service/internal/domain/models"
	internalErrors "github.com/tumbleweedd/frame_store/payment_service/internal/lib/errors"
	httpresponse "github.com/tumbleweedd/frame_store/payment_service/internal/lib/http"
	"github.com/tumbleweedd/frame_store/payment_service/pkg/logger"
)

type orderCreator interface {
	Create(ctx context.Context, order *models.Order) (uuid.UUID, error)
}

type Handler struct {
	log logger.Logger

	orderCreator orderCreator
}

func NewHandler(log logger.Logger, orderCreator orderCreator) *Handler {
	return &Handler{
		log:          log,
		orderCreator: orderCreator,
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "delivery.http.order.create.Create"
	var request CreateOrderRequest

	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		h.log.Error(op, logger.String("failed to decode request", err.Error()))
		_ = httpresponse.Error(w, http.StatusBadRequest, "malformed request body")
		return
	}

	if err = request.validate(); err != nil {
		h.log.Warn(op, logger.String("failed to validate request", err.Error()))
		_ = httpresponse.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	order := request.toDTO()
	orderID, err := h.orderCreator.Create(r.Context(), &order)
	if err != nil {
		if errors.Is(err, internalErrors.ErrDuplicateGatewayOrderID) {
			_ = httpresponse.Error(w, http.StatusConflict, internalErrors.ErrDuplicateGatewayOrderID.Error())
			return
		}

		h.log.Error(op, logger.String("failed to create order", err.Error()))
		_ = httpresponse.Error(w, http.StatusInternalServerError, "failed to create order")
		return
	}

	if err = httpresponse.JSON(w, http.StatusCreated, httpresponse.H{
		"order_id": orderID.String(),
	}); err != nil {
		h.log.Error(op, logger.String("failed to encode response", err.Error()))
	}
}
