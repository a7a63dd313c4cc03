package memory

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/tumbleweedd/frame_store/payment_service/internal/domain/models"
	internalErrors "github.com/tumbleweedd/frame_store/payment_service/internal/lib/errors"
	"golang.org/x/sync/errgroup"
)

func newPendingOrder(gatewayOrderID string) *models.Order {
	return &models.Order{
		Gateway:           models.GatewayRazorpay,
		GatewayOrderID:    gatewayOrderID,
		Currency:          "INR",
		PaymentStatus:     models.PaymentStatusPending,
		FulfillmentStatus: models.FulfillmentPending,
		Customer:          models.Customer{Name: "Asha", Email: "asha@example.com"},
		Items: []models.Item{
			{ProductID: uuid.New(), Title: "Oak frame", FrameSize: "8x10", Quantity: 2, UnitAmount: 49900},
		},
	}
}

func TestCreateAndLookup(t *testing.T) {
	ctx := context.Background()
	repo := New()

	order := newPendingOrder("order_1")
	id, err := repo.Create(ctx, order)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)

	byID, err := repo.Order(ctx, id)
	require.NoError(t, err)
	require.Len(t, byID.Items, 1)
	require.Equal(t, id, byID.Items[0].OrderID)

	byGateway, err := repo.OrderByGatewayOrderID(ctx, "order_1")
	require.NoError(t, err)
	require.Equal(t, id, byGateway.ID)

	_, err = repo.Create(ctx, newPendingOrder("order_1"))
	require.ErrorIs(t, err, internalErrors.ErrDuplicateGatewayOrderID)

	_, err = repo.OrderByGatewayOrderID(ctx, "missing")
	require.ErrorIs(t, err, internalErrors.ErrOrderNotFound)

	_, err = repo.Order(ctx, uuid.New())
	require.ErrorIs(t, err, internalErrors.ErrOrderNotFound)

	events := repo.Events()
	require.Len(t, events, 1)
	require.Equal(t, models.OrderCreated, events[0].Type)
}

func TestConditionalUpdateGuard(t *testing.T) {
	ctx := context.Background()
	repo := New()

	id, err := repo.Create(ctx, newPendingOrder("order_2"))
	require.NoError(t, err)

	payID := "pay_1"
	completed := models.PaymentPatch{
		PaymentStatus:     models.PaymentStatusCompleted,
		FulfillmentStatus: models.FulfillmentProcessing,
		PaymentID:         &payID,
	}

	updated, err := repo.ConditionalUpdate(ctx, id, models.NotCompleted, completed)
	require.NoError(t, err)
	require.NotNil(t, updated)
	require.Equal(t, "pay_1", *updated.PaymentID)

	failed := models.PaymentPatch{
		PaymentStatus:     models.PaymentStatusFailed,
		FulfillmentStatus: models.FulfillmentFailed,
	}

	updated, err = repo.ConditionalUpdate(ctx, id, models.NotCompleted, failed)
	require.NoError(t, err)
	require.Nil(t, updated)

	stored, err := repo.Order(ctx, id)
	require.NoError(t, err)
	require.Equal(t, models.PaymentStatusCompleted, stored.PaymentStatus)
	require.Equal(t, models.FulfillmentProcessing, stored.FulfillmentStatus)
	require.Equal(t, 1, repo.Writes())
}

func TestConditionalUpdateConcurrent(t *testing.T) {
	ctx := context.Background()
	repo := New()

	id, err := repo.Create(ctx, newPendingOrder("order_3"))
	require.NoError(t, err)

	patch := models.PaymentPatch{
		PaymentStatus:     models.PaymentStatusCompleted,
		FulfillmentStatus: models.FulfillmentProcessing,
	}

	var applied atomic.Int32
	g, gCtx := errgroup.WithContext(ctx)

	for i := 0; i < 32; i++ {
		g.Go(func() error {
			updated, err := repo.ConditionalUpdate(gCtx, id, models.NotCompleted, patch)
			if updated != nil {
				applied.Add(1)
			}
			return err
		})
	}

	require.NoError(t, g.Wait())
	require.EqualValues(t, 1, applied.Load())
	require.Equal(t, 1, repo.Writes())
}

func TestUpdateFulfillmentStatus(t *testing.T) {
	ctx := context.Background()
	repo := New()

	id, err := repo.Create(ctx, newPendingOrder("order_4"))
	require.NoError(t, err)

	updated, err := repo.UpdateFulfillmentStatus(ctx, id, models.FulfillmentPending, models.FulfillmentPrinted)
	require.NoError(t, err)
	require.Nil(t, updated, "unpaid orders cannot progress")

	_, err = repo.ConditionalUpdate(ctx, id, models.NotCompleted, models.PaymentPatch{
		PaymentStatus:     models.PaymentStatusCompleted,
		FulfillmentStatus: models.FulfillmentProcessing,
	})
	require.NoError(t, err)

	updated, err = repo.UpdateFulfillmentStatus(ctx, id, models.FulfillmentProcessing, models.FulfillmentPrinted)
	require.NoError(t, err)
	require.NotNil(t, updated)
	require.Equal(t, models.FulfillmentPrinted, updated.FulfillmentStatus)

	updated, err = repo.UpdateFulfillmentStatus(ctx, id, models.FulfillmentProcessing, models.FulfillmentPrinted)
	require.NoError(t, err)
	require.Nil(t, updated)
}
