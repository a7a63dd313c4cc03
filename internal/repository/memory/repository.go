// Package memory is an in-process order store with the same conditional
// update semantics as the Postgres repository. It backs `storage.driver: memory`
// and the end-to-end webhook tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tumbleweedd/frame_store/payment_service/internal/domain/models"
	internalErrors "github.com/tumbleweedd/frame_store/payment_service/internal/lib/errors"
)

type Event struct {
	AggregateID uuid.UUID
	Type        models.EventType
	Payload     models.OrderPayload
}

type Repository struct {
	mu sync.Mutex

	orders      map[uuid.UUID]*models.Order
	byGatewayID map[string]uuid.UUID
	events      []Event
	writes      int

	now func() time.Time
}

func New() *Repository {
	return &Repository{
		orders:      make(map[uuid.UUID]*models.Order),
		byGatewayID: make(map[string]uuid.UUID),
		now:         time.Now,
	}
}

func (r *Repository) Create(_ context.Context, order *models.Order) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byGatewayID[order.GatewayOrderID]; exists {
		return uuid.Nil, internalErrors.ErrDuplicateGatewayOrderID
	}

	now := r.now().UTC()

	order.ID = uuid.New()
	order.CreatedAt = now
	order.UpdatedAt = now
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}

	stored := clone(order)
	r.orders[order.ID] = stored
	r.byGatewayID[order.GatewayOrderID] = order.ID
	r.record(models.OrderCreated, stored)

	return order.ID, nil
}

func (r *Repository) Order(_ context.Context, orderID uuid.UUID) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[orderID]
	if !ok {
		return nil, internalErrors.ErrOrderNotFound
	}

	return clone(order), nil
}

func (r *Repository) OrdersByIDs(_ context.Context, orderIDs []uuid.UUID) (map[uuid.UUID]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders := make(map[uuid.UUID]models.Order, len(orderIDs))
	for _, id := range orderIDs {
		if order, ok := r.orders[id]; ok {
			orders[id] = *clone(order)
		}
	}

	if len(orders) == 0 {
		return nil, internalErrors.ErrOrderNotFound
	}

	return orders, nil
}

func (r *Repository) OrderByGatewayOrderID(_ context.Context, gatewayOrderID string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byGatewayID[gatewayOrderID]
	if !ok {
		return nil, internalErrors.ErrOrderNotFound
	}

	order := clone(r.orders[id])
	order.Items = nil

	return order, nil
}

func (r *Repository) ConditionalUpdate(
	_ context.Context,
	orderID uuid.UUID,
	cond models.PaymentCondition,
	patch models.PaymentPatch,
) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[orderID]
	if !ok || !cond.Holds(order) {
		return nil, nil
	}

	order.PaymentStatus = patch.PaymentStatus
	order.FulfillmentStatus = patch.FulfillmentStatus
	if patch.PaymentID != nil {
		order.PaymentID = copyString(patch.PaymentID)
	}
	if patch.PaymentMethod != nil {
		order.PaymentMethod = copyString(patch.PaymentMethod)
	}
	if patch.PaidAt != nil {
		paidAt := *patch.PaidAt
		order.PaidAt = &paidAt
	}
	order.UpdatedAt = r.now().UTC()

	r.writes++
	r.record(models.PaymentEventType(order.PaymentStatus), order)

	updated := clone(order)
	updated.Items = nil

	return updated, nil
}

func (r *Repository) UpdateFulfillmentStatus(
	_ context.Context,
	orderID uuid.UUID,
	from, to models.FulfillmentStatus,
) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[orderID]
	if !ok || order.FulfillmentStatus != from || order.PaymentStatus != models.PaymentStatusCompleted {
		return nil, nil
	}

	order.FulfillmentStatus = to
	order.UpdatedAt = r.now().UTC()

	r.writes++
	r.record(models.OrderFulfillmentChanged, order)

	updated := clone(order)
	updated.Items = nil

	return updated, nil
}

// Writes counts updates that changed an order.
func (r *Repository) Writes() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.writes
}

func (r *Repository) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	events := make([]Event, len(r.events))
	copy(events, r.events)

	return events
}

func (r *Repository) record(eventType models.EventType, order *models.Order) {
	r.events = append(r.events, Event{
		AggregateID: order.ID,
		Type:        eventType,
		Payload:     models.NewOrderPayload(clone(order)),
	})
}

func clone(order *models.Order) *models.Order {
	c := *order
	c.PaymentID = copyString(order.PaymentID)
	c.PaymentMethod = copyString(order.PaymentMethod)
	if order.PaidAt != nil {
		paidAt := *order.PaidAt
		c.PaidAt = &paidAt
	}

	if order.Items != nil {
		c.Items = make([]models.Item, len(order.Items))
		copy(c.Items, order.Items)
		for i := range c.Items {
			c.Items[i].CustomImageURL = copyString(order.Items[i].CustomImageURL)
		}
	}

	return &c
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}

	v := *s
	return &v
}
