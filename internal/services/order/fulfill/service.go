package fulfill

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tumbleweedd/frame_store/payment_service/internal/domain/models"
	internalErrors "github.com/tumbleweedd/frame_store/payment_service/internal/lib/errors"
	"github.com/tumbleweedd/frame_store/payment_service/pkg/logger"
)

type orderGetter interface {
	Order(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
}

type fulfillmentUpdater interface {
	UpdateFulfillmentStatus(ctx context.Context, orderID uuid.UUID, from, to models.FulfillmentStatus) (*models.Order, error)
}

type cacheEvicter interface {
	Remove(key uuid.UUID) bool
}

// nextStatuses lists where a paid order may go from each fulfillment status.
var nextStatuses = map[models.FulfillmentStatus][]models.FulfillmentStatus{
	models.FulfillmentProcessing: {models.FulfillmentPrinted, models.FulfillmentCancelled},
	models.FulfillmentPrinted:    {models.FulfillmentShipped, models.FulfillmentCancelled},
	models.FulfillmentShipped:    {models.FulfillmentDelivered},
}

func CanMove(from, to models.FulfillmentStatus) bool {
	for _, next := range nextStatuses[from] {
		if next == to {
			return true
		}
	}

	return false
}

type OrderFulfillmentService struct {
	log   logger.Logger
	cache cacheEvicter

	orderGetter        orderGetter
	fulfillmentUpdater fulfillmentUpdater
}

func New(
	log logger.Logger,
	cache cacheEvicter,
	orderGetter orderGetter,
	fulfillmentUpdater fulfillmentUpdater,
) *OrderFulfillmentService {
	return &OrderFulfillmentService{
		log:                log,
		cache:              cache,
		orderGetter:        orderGetter,
		fulfillmentUpdater: fulfillmentUpdater,
	}
}

func (os *OrderFulfillmentService) Advance(ctx context.Context, orderID uuid.UUID, to models.FulfillmentStatus) (*models.Order, error) {
	const op = "services.order.fulfill.Advance"

	order, err := os.orderGetter.Order(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if order.PaymentStatus != models.PaymentStatusCompleted {
		return nil, internalErrors.ErrOrderNotPaid
	}

	if !CanMove(order.FulfillmentStatus, to) {
		return nil, fmt.Errorf("%s: %s -> %s: %w", op, order.FulfillmentStatus, to, internalErrors.ErrInvalidFulfillmentTransition)
	}

	updated, err := os.fulfillmentUpdater.UpdateFulfillmentStatus(ctx, orderID, order.FulfillmentStatus, to)
	if err != nil {
		os.log.Error(op, logger.String("update fulfillment error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if updated == nil {
		return nil, internalErrors.ErrFulfillmentConflict
	}

	os.cache.Remove(orderID)

	os.log.InfoContext(ctx, op,
		logger.String("order_id", orderID.String()),
		logger.String("from", string(order.FulfillmentStatus)),
		logger.String("to", string(to)),
	)

	return updated, nil
}
