package create

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tumbleweedd/frame_store/payment_service/internal/domain/models"
	"github.com/tumbleweedd/frame_store/payment_service/pkg/logger"
)

const defaultCurrency = "INR"

type orderCreator interface {
	Create(ctx context.Context, order *models.Order) (uuid.UUID, error)
}

type orderCache interface {
	Add(key uuid.UUID, value *models.Order) (evicted bool)
}

type OrderCreationService struct {
	log   logger.Logger
	cache orderCache

	orderCreator orderCreator
}

func New(log logger.Logger, cache orderCache, orderCreator orderCreator) *OrderCreationService {
	return &OrderCreationService{
		log:          log,
		cache:        cache,
		orderCreator: orderCreator,
	}
}

// Create stores a new order awaiting payment. Statuses and total are always
// derived here, never taken from the caller.
func (os *OrderCreationService) Create(ctx context.Context, order *models.Order) (uuid.UUID, error) {
	const op = "services.order.Create"

	order.PaymentStatus = models.PaymentStatusPending
	order.FulfillmentStatus = models.FulfillmentPending
	order.PaymentID = nil
	order.PaymentMethod = nil
	order.PaidAt = nil
	if order.Currency == "" {
		order.Currency = defaultCurrency
	}
	order.CalculateTotal()

	orderID, err := os.orderCreator.Create(ctx, order)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	order.ID = orderID
	for i := range order.Items {
		order.Items[i].OrderID = orderID
	}

	_ = os.cache.Add(orderID, order)

	os.log.InfoContext(ctx, op,
		logger.String("order_id", orderID.String()),
		logger.String("gateway", string(order.Gateway)),
		logger.String("gateway_order_id", order.GatewayOrderID),
	)

	return orderID, nil
}
