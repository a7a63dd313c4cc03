package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tumbleweedd/frame_store/payment_service/internal/domain/models"
	internalErrors "github.com/tumbleweedd/frame_store/payment_service/internal/lib/errors"
	"github.com/tumbleweedd/frame_store/payment_service/pkg/logger"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go -package=mocks

type OrderFinder interface {
	OrderByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*models.Order, error)
}

type OrderUpdater interface {
	// ConditionalUpdate returns nil, nil when cond no longer holds.
	ConditionalUpdate(
		ctx context.Context,
		orderID uuid.UUID,
		cond models.PaymentCondition,
		patch models.PaymentPatch,
	) (*models.Order, error)
}

type Notifier interface {
	Notify(ctx context.Context, order *models.Order)
}

type CacheEvicter interface {
	Remove(key uuid.UUID) bool
}

type Result struct {
	Transition Transition
	// Order is the stored order after an applied transition.
	Order *models.Order
}

type Service struct {
	log   logger.Logger
	cache CacheEvicter

	orderFinder  OrderFinder
	orderUpdater OrderUpdater
	notifier     Notifier

	now func() time.Time
}

func New(
	log logger.Logger,
	cache CacheEvicter,
	orderFinder OrderFinder,
	orderUpdater OrderUpdater,
	notifier Notifier,
) *Service {
	return &Service{
		log:          log,
		cache:        cache,
		orderFinder:  orderFinder,
		orderUpdater: orderUpdater,
		notifier:     notifier,
		now:          time.Now,
	}
}

// Reconcile applies event to the order it references. A returned error always
// means an infrastructure failure; every domain outcome is a Result.
func (s *Service) Reconcile(ctx context.Context, event models.WebhookEvent) (Result, error) {
	const op = "services.payment.reconcile.Reconcile"

	log := s.log.With(
		logger.String("op", op),
		logger.String("gateway", string(event.Gateway)),
		logger.String("gateway_order_id", event.GatewayOrderID),
		logger.String("event", event.Kind.String()),
	)

	if event.Kind == models.EventUnrecognized {
		log.InfoContext(ctx, "ignoring webhook", logger.String("type", event.Type))
		return Result{Transition: Transition{Kind: NoOp, Reason: ReasonUnhandledType}}, nil
	}

	order, err := s.loadOrder(ctx, event)
	if err != nil {
		log.ErrorContext(ctx, "load order", logger.Err(err))
		return Result{}, fmt.Errorf("%s: %w", op, err)
	}

	transition := Apply(event, order, s.now().UTC())
	if transition.Kind != Applied {
		log.InfoContext(ctx, "webhook not applied",
			logger.String("transition", transition.Kind.String()),
			logger.String("reason", transition.Reason),
		)
		return Result{Transition: transition}, nil
	}

	updated, err := s.orderUpdater.ConditionalUpdate(ctx, order.ID, models.NotCompleted, transition.Patch)
	if err != nil {
		log.ErrorContext(ctx, "persist transition", logger.Err(err))
		return Result{}, fmt.Errorf("%s: %w", op, err)
	}

	if updated == nil {
		// a concurrent delivery completed the order between read and write
		log.InfoContext(ctx, "lost race to concurrent delivery", logger.String("order_id", order.ID.String()))
		return Result{Transition: Transition{Kind: NoOp, Reason: ReasonAlreadyProcessed}}, nil
	}

	s.cache.Remove(updated.ID)

	log.InfoContext(ctx, "order reconciled",
		logger.String("order_id", updated.ID.String()),
		logger.String("payment_status", string(updated.PaymentStatus)),
		logger.String("fulfillment_status", string(updated.FulfillmentStatus)),
	)

	if updated.PaymentStatus == models.PaymentStatusCompleted {
		s.notifier.Notify(ctx, updated)
	}

	return Result{Transition: transition, Order: updated}, nil
}

// loadOrder returns nil when no order of event's gateway carries the gateway
// order id. Ids are only unique per gateway, so an order created for another
// gateway never matches.
func (s *Service) loadOrder(ctx context.Context, event models.WebhookEvent) (*models.Order, error) {
	if event.GatewayOrderID == "" {
		return nil, nil
	}

	order, err := s.orderFinder.OrderByGatewayOrderID(ctx, event.GatewayOrderID)
	if err != nil {
		if errors.Is(err, internalErrors.ErrOrderNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if order != nil && order.Gateway != event.Gateway {
		s.log.WarnContext(ctx, "gateway order id belongs to another gateway",
			logger.String("order_id", order.ID.String()),
			logger.String("order_gateway", string(order.Gateway)),
			logger.String("event_gateway", string(event.Gateway)),
		)
		return nil, nil
	}

	return order, nil
}
