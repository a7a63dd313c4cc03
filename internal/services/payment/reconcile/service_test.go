package reconcile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/tumbleweedd/frame_store/payment_service/internal/domain/models"
	internalErrors "github.com/tumbleweedd/frame_store/payment_service/internal/lib/errors"
	"github.com/tumbleweedd/frame_store/payment_service/internal/services/payment/reconcile/mocks"
	"github.com/tumbleweedd/frame_store/payment_service/pkg/logger"
)

type serviceMocks struct {
	finder   *mocks.MockOrderFinder
	updater  *mocks.MockOrderUpdater
	notifier *mocks.MockNotifier
	cache    *mocks.MockCacheEvicter
}

func newTestService(t *testing.T) (*Service, serviceMocks) {
	ctl := gomock.NewController(t)

	m := serviceMocks{
		finder:   mocks.NewMockOrderFinder(ctl),
		updater:  mocks.NewMockOrderUpdater(ctl),
		notifier: mocks.NewMockNotifier(ctl),
		cache:    mocks.NewMockCacheEvicter(ctl),
	}

	svc := New(logger.NewDiscard(), m.cache, m.finder, m.updater, m.notifier)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	return svc, m
}

func TestReconcile(t *testing.T) {
	ctx := context.Background()
	errDB := errors.New("connection refused")

	success := models.WebhookEvent{
		Kind:           models.EventPaymentSucceeded,
		Gateway:        models.GatewayCashfree,
		GatewayOrderID: "gw-123",
		PaymentID:      "pay-1",
		PaymentMethod:  "upi",
	}

	tCases := []struct {
		name         string
		event        models.WebhookEvent
		mockBehavior func(m serviceMocks)
		expectedKind TransitionKind
		expReason    string
		wantErr      error
	}{
		{
			name:  "success_applied_and_notified",
			event: success,
			mockBehavior: func(m serviceMocks) {
				order := orderWithStatus(models.PaymentStatusPending, models.FulfillmentPending)
				updated := *order
				updated.PaymentStatus = models.PaymentStatusCompleted
				updated.FulfillmentStatus = models.FulfillmentProcessing

				m.finder.EXPECT().OrderByGatewayOrderID(ctx, "gw-123").Return(order, nil)
				m.updater.EXPECT().
					ConditionalUpdate(ctx, order.ID, models.NotCompleted, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ uuid.UUID, _ models.PaymentCondition, patch models.PaymentPatch) (*models.Order, error) {
						if patch.PaymentStatus != models.PaymentStatusCompleted || *patch.PaymentID != "pay-1" {
							return nil, errors.New("unexpected patch")
						}
						return &updated, nil
					})
				m.cache.EXPECT().Remove(order.ID).Return(true)
				m.notifier.EXPECT().Notify(ctx, &updated).Times(1)
			},
			expectedKind: Applied,
		},
		{
			name:  "replay_is_noop",
			event: success,
			mockBehavior: func(m serviceMocks) {
				m.finder.EXPECT().OrderByGatewayOrderID(ctx, "gw-123").
					Return(orderWithStatus(models.PaymentStatusCompleted, models.FulfillmentProcessing), nil)
			},
			expectedKind: NoOp,
			expReason:    ReasonAlreadyProcessed,
		},
		{
			name:  "lost_race_is_noop",
			event: success,
			mockBehavior: func(m serviceMocks) {
				order := orderWithStatus(models.PaymentStatusPending, models.FulfillmentPending)
				m.finder.EXPECT().OrderByGatewayOrderID(ctx, "gw-123").Return(order, nil)
				m.updater.EXPECT().ConditionalUpdate(ctx, order.ID, models.NotCompleted, gomock.Any()).Return(nil, nil)
			},
			expectedKind: NoOp,
			expReason:    ReasonAlreadyProcessed,
		},
		{
			name:  "failure_applied_without_notification",
			event: models.WebhookEvent{Kind: models.EventPaymentFailed, Gateway: models.GatewayCashfree, GatewayOrderID: "gw-123"},
			mockBehavior: func(m serviceMocks) {
				order := orderWithStatus(models.PaymentStatusPending, models.FulfillmentPending)
				updated := *order
				updated.PaymentStatus = models.PaymentStatusFailed
				updated.FulfillmentStatus = models.FulfillmentFailed

				m.finder.EXPECT().OrderByGatewayOrderID(ctx, "gw-123").Return(order, nil)
				m.updater.EXPECT().ConditionalUpdate(ctx, order.ID, models.NotCompleted, models.PaymentPatch{
					PaymentStatus:     models.PaymentStatusFailed,
					FulfillmentStatus: models.FulfillmentFailed,
				}).Return(&updated, nil)
				m.cache.EXPECT().Remove(order.ID).Return(false)
			},
			expectedKind: Applied,
		},
		{
			name:  "unknown_order",
			event: success,
			mockBehavior: func(m serviceMocks) {
				m.finder.EXPECT().OrderByGatewayOrderID(ctx, "gw-123").Return(nil, internalErrors.ErrOrderNotFound)
			},
			expectedKind: NoOrderFound,
			expReason:    ReasonOrderNotFound,
		},
		{
			name: "order_of_other_gateway_untouched",
			event: models.WebhookEvent{
				Kind:           models.EventPaymentSucceeded,
				Gateway:        models.GatewayRazorpay,
				GatewayOrderID: "gw-123",
				PaymentID:      "pay_rzp",
			},
			mockBehavior: func(m serviceMocks) {
				m.finder.EXPECT().OrderByGatewayOrderID(ctx, "gw-123").
					Return(orderWithStatus(models.PaymentStatusPending, models.FulfillmentPending), nil)
			},
			expectedKind: NoOrderFound,
			expReason:    ReasonOrderNotFound,
		},
		{
			name:         "unrecognized_skips_repository",
			event:        models.WebhookEvent{Kind: models.EventUnrecognized, Type: "REFUND_STATUS_WEBHOOK"},
			mockBehavior: func(m serviceMocks) {},
			expectedKind: NoOp,
			expReason:    ReasonUnhandledType,
		},
		{
			name:         "cancel_without_order_id",
			event:        models.WebhookEvent{Kind: models.EventPaymentCanceled},
			mockBehavior: func(m serviceMocks) {},
			expectedKind: NoOrderFound,
			expReason:    ReasonOrderNotFound,
		},
		{
			name:  "repository_down_on_read",
			event: success,
			mockBehavior: func(m serviceMocks) {
				m.finder.EXPECT().OrderByGatewayOrderID(ctx, "gw-123").Return(nil, errDB)
			},
			wantErr: errDB,
		},
		{
			name:  "repository_down_on_write",
			event: success,
			mockBehavior: func(m serviceMocks) {
				order := orderWithStatus(models.PaymentStatusPending, models.FulfillmentPending)
				m.finder.EXPECT().OrderByGatewayOrderID(ctx, "gw-123").Return(order, nil)
				m.updater.EXPECT().ConditionalUpdate(ctx, order.ID, models.NotCompleted, gomock.Any()).Return(nil, errDB)
			},
			wantErr: errDB,
		},
	}

	for _, tCase := range tCases {
		t.Run(tCase.name, func(t *testing.T) {
			svc, m := newTestService(t)
			tCase.mockBehavior(m)

			result, err := svc.Reconcile(ctx, tCase.event)
			if tCase.wantErr != nil {
				require.ErrorIs(t, err, tCase.wantErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tCase.expectedKind, result.Transition.Kind)
			require.Equal(t, tCase.expReason, result.Transition.Reason)
		})
	}
}
