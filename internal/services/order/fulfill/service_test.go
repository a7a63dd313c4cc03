package fulfill

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/tumbleweedd/frame_store/payment_service/internal/cache_impl"
	"github.com/tumbleweedd/frame_store/payment_service/internal/domain/models"
	internalErrors "github.com/tumbleweedd/frame_store/payment_service/internal/lib/errors"
	"github.com/tumbleweedd/frame_store/payment_service/internal/repository/memory"
	"github.com/tumbleweedd/frame_store/payment_service/pkg/logger"
)

func TestCanMove(t *testing.T) {
	tCases := []struct {
		from, to models.FulfillmentStatus
		want     bool
	}{
		{models.FulfillmentProcessing, models.FulfillmentPrinted, true},
		{models.FulfillmentPrinted, models.FulfillmentShipped, true},
		{models.FulfillmentShipped, models.FulfillmentDelivered, true},
		{models.FulfillmentProcessing, models.FulfillmentCancelled, true},
		{models.FulfillmentPrinted, models.FulfillmentCancelled, true},
		{models.FulfillmentShipped, models.FulfillmentCancelled, false},
		{models.FulfillmentProcessing, models.FulfillmentShipped, false},
		{models.FulfillmentDelivered, models.FulfillmentProcessing, false},
		{models.FulfillmentPending, models.FulfillmentProcessing, false},
	}

	for _, tCase := range tCases {
		t.Run(string(tCase.from)+"_"+string(tCase.to), func(t *testing.T) {
			require.Equal(t, tCase.want, CanMove(tCase.from, tCase.to))
		})
	}
}

func seedOrder(t *testing.T, repo *memory.Repository, paid bool) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	id, err := repo.Create(ctx, &models.Order{
		Gateway:           models.GatewayRazorpay,
		GatewayOrderID:    "order_" + uuid.NewString(),
		PaymentStatus:     models.PaymentStatusPending,
		FulfillmentStatus: models.FulfillmentPending,
	})
	require.NoError(t, err)

	if paid {
		paymentID := "pay_1"
		updated, err := repo.ConditionalUpdate(ctx, id, models.NotCompleted, models.PaymentPatch{
			PaymentStatus:     models.PaymentStatusCompleted,
			FulfillmentStatus: models.FulfillmentProcessing,
			PaymentID:         &paymentID,
		})
		require.NoError(t, err)
		require.NotNil(t, updated)
	}

	return id
}

func TestAdvance(t *testing.T) {
	ctx := context.Background()
	log := logger.NewDiscard()

	repo := memory.New()
	cache := cache_impl.NewLRU(log, 16, time.Minute)
	svc := New(log, cache, repo, repo)

	id := seedOrder(t, repo, true)
	_ = cache.Add(id, &models.Order{ID: id})

	order, err := svc.Advance(ctx, id, models.FulfillmentPrinted)
	require.NoError(t, err)
	require.Equal(t, models.FulfillmentPrinted, order.FulfillmentStatus)

	_, ok := cache.Get(id)
	require.False(t, ok)

	_, err = svc.Advance(ctx, id, models.FulfillmentDelivered)
	require.ErrorIs(t, err, internalErrors.ErrInvalidFulfillmentTransition)

	events := repo.Events()
	require.Equal(t, models.OrderFulfillmentChanged, events[len(events)-1].Type)
}

func TestAdvanceUnpaid(t *testing.T) {
	log := logger.NewDiscard()
	repo := memory.New()
	svc := New(log, cache_impl.NewLRU(log, 16, time.Minute), repo, repo)

	id := seedOrder(t, repo, false)

	_, err := svc.Advance(context.Background(), id, models.FulfillmentPrinted)
	require.ErrorIs(t, err, internalErrors.ErrOrderNotPaid)
}

func TestAdvanceUnknownOrder(t *testing.T) {
	log := logger.NewDiscard()
	repo := memory.New()
	svc := New(log, cache_impl.NewLRU(log, 16, time.Minute), repo, repo)

	_, err := svc.Advance(context.Background(), uuid.New(), models.FulfillmentPrinted)
	require.ErrorIs(t, err, internalErrors.ErrOrderNotFound)
}
