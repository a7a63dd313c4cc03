package create

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tumbleweedd/frame_store/payment_service/internal/cache_impl"
	"github.com/tumbleweedd/frame_store/payment_service/internal/domain/models"
	internalErrors "github.com/tumbleweedd/frame_store/payment_service/internal/lib/errors"
	"github.com/tumbleweedd/frame_store/payment_service/internal/repository/memory"
	"github.com/tumbleweedd/frame_store/payment_service/pkg/logger"
)

func newOrder(gatewayOrderID string) *models.Order {
	completed := models.PaymentStatusCompleted

	return &models.Order{
		Gateway:        models.GatewayCashfree,
		GatewayOrderID: gatewayOrderID,
		PaymentStatus:  completed,
		Customer:       models.Customer{Name: "Asha", Email: "asha@example.com"},
		Items: []models.Item{
			{ProductID: "frame-a4", Title: "Oak A4", FrameSize: "A4", Quantity: 2, UnitAmount: 1500},
			{ProductID: "frame-a3", Title: "Oak A3", FrameSize: "A3", Quantity: 1, UnitAmount: 2500},
		},
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	log := logger.NewDiscard()

	repo := memory.New()
	cache := cache_impl.NewLRU(log, 16, time.Minute)
	svc := New(log, cache, repo)

	order := newOrder("cf_order_1")

	id, err := svc.Create(ctx, order)
	require.NoError(t, err)

	stored, err := repo.Order(ctx, id)
	require.NoError(t, err)
	require.Equal(t, models.PaymentStatusPending, stored.PaymentStatus)
	require.Equal(t, models.FulfillmentPending, stored.FulfillmentStatus)
	require.Equal(t, "INR", stored.Currency)
	require.EqualValues(t, 5500, stored.TotalAmount)
	require.Len(t, stored.Items, 2)

	cached, ok := cache.Get(id)
	require.True(t, ok)
	require.Equal(t, id, cached.ID)

	events := repo.Events()
	require.Len(t, events, 1)
	require.Equal(t, models.OrderCreated, events[0].Type)
}

func TestCreateDuplicateGatewayOrderID(t *testing.T) {
	ctx := context.Background()
	log := logger.NewDiscard()

	repo := memory.New()
	svc := New(log, cache_impl.NewLRU(log, 16, time.Minute), repo)

	_, err := svc.Create(ctx, newOrder("cf_order_1"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, newOrder("cf_order_1"))
	require.ErrorIs(t, err, internalErrors.ErrDuplicateGatewayOrderID)
}
