package get

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/tumbleweedd/frame_store/payment_service/internal/domain/models"
	internalErrors "github.com/tumbleweedd/frame_store/payment_service/internal/lib/errors"
	"github.com/tumbleweedd/frame_store/payment_service/pkg/logger"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go -package=mocks

type OrderGetter interface {
	OrdersByIDs(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID]models.Order, error)
	Order(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
}

type OrderCache interface {
	Get(key uuid.UUID) (value *models.Order, ok bool)
	Add(key uuid.UUID, value *models.Order) (evicted bool)
}

type OrderRetrievalService struct {
	log   logger.Logger
	cache OrderCache

	orderGetter OrderGetter
}

func New(
	log logger.Logger,
	cache OrderCache,
	orderGetter OrderGetter,
) *OrderRetrievalService {
	return &OrderRetrievalService{
		log:         log,
		cache:       cache,
		orderGetter: orderGetter,
	}
}

func (os *OrderRetrievalService) OrderByID(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	const op = "service.order.OrderByID"

	order, ok := os.cache.Get(orderID)
	if ok && order != nil {
		os.log.DebugContext(ctx, op, logger.String("message", "cache was used"))
		return order, nil
	}

	order, err := os.orderGetter.Order(ctx, orderID)
	if err != nil {
		return nil, err
	}

	_ = os.cache.Add(orderID, order)

	return order, nil
}

func (os *OrderRetrievalService) OrdersByIDs(ctx context.Context, orderIDs []uuid.UUID) ([]models.Order, error) {
	const op = "service.order.OrdersByIDs"

	result, notInCache := os.partitionOrdersByCache(ctx, orderIDs, op)

	if len(notInCache) == 0 {
		return result, nil
	}

	return os.fetchNotInCacheOrders(ctx, notInCache, result, op)
}

func (os *OrderRetrievalService) partitionOrdersByCache(ctx context.Context, orderIDs []uuid.UUID, op string) (result []models.Order, notInCache []uuid.UUID) {
	inCacheCh := make(chan models.Order, len(orderIDs))
	notInCacheCh := make(chan uuid.UUID, len(orderIDs))
	wg := sync.WaitGroup{}

	for _, id := range orderIDs {
		wg.Add(1)
		go os.checkCache(id, &wg, inCacheCh, notInCacheCh)
	}

	wg.Wait()
	close(inCacheCh)
	close(notInCacheCh)

	result = make([]models.Order, 0, len(orderIDs))
	for order := range inCacheCh {
		result = append(result, order)
	}

	notInCache = make([]uuid.UUID, 0, len(orderIDs))
	for orderID := range notInCacheCh {
		notInCache = append(notInCache, orderID)
	}

	os.log.DebugContext(ctx, op,
		logger.Int("items in cache", len(result)),
		logger.Int("items not in cache", len(notInCache)),
	)

	return result, notInCache
}

func (os *OrderRetrievalService) checkCache(orderID uuid.UUID,
	wg *sync.WaitGroup, inCacheCh chan models.Order, notInCacheCh chan uuid.UUID) {
	defer wg.Done()

	if value, ok := os.cache.Get(orderID); ok && value != nil {
		inCacheCh <- *value
		return
	}

	notInCacheCh <- orderID
}

func (os *OrderRetrievalService) fetchNotInCacheOrders(ctx context.Context, notInCache []uuid.UUID,
	result []models.Order, op string) ([]models.Order, error) {
	ordersMap, err := os.orderGetter.OrdersByIDs(ctx, notInCache)
	if err != nil {
		if errors.Is(err, internalErrors.ErrOrderNotFound) {
			return result, nil
		}

		os.log.Error(op, logger.String("get orders error", err.Error()))
		return nil, err
	}

	for _, order := range ordersMap {
		order := order
		result = append(result, order)
		_ = os.cache.Add(order.ID, &order)
	}

	os.log.DebugContext(ctx, op, logger.Int("orders from DB", len(ordersMap)))

	return result, nil
}
