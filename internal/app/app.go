package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	httpapp "github.com/tumbleweedd/frame_store/payment_service/internal/app/http"
	"github.com/tumbleweedd/frame_store/payment_service/internal/cache_impl"
	"github.com/tumbleweedd/frame_store/payment_service/internal/config"
	payment_service_http "github.com/tumbleweedd/frame_store/payment_service/internal/delivery/http"
	"github.com/tumbleweedd/frame_store/payment_service/internal/delivery/http/middleware"
	"github.com/tumbleweedd/frame_store/payment_service/internal/delivery/http/order/create"
	"github.com/tumbleweedd/frame_store/payment_service/internal/delivery/http/order/fulfill"
	"github.com/tumbleweedd/frame_store/payment_service/internal/delivery/http/order/get"
	"github.com/tumbleweedd/frame_store/payment_service/internal/delivery/http/webhook"
	"github.com/tumbleweedd/frame_store/payment_service/internal/domain/models"
	"github.com/tumbleweedd/frame_store/payment_service/internal/notification"
	"github.com/tumbleweedd/frame_store/payment_service/internal/repository/memory"
	orderRepository "github.com/tumbleweedd/frame_store/payment_service/internal/repository/order"
	outBoxRepository "github.com/tumbleweedd/frame_store/payment_service/internal/repository/outBox"
	orderCreationService "github.com/tumbleweedd/frame_store/payment_service/internal/services/order/create"
	orderFulfillmentService "github.com/tumbleweedd/frame_store/payment_service/internal/services/order/fulfill"
	orderRetrievalService "github.com/tumbleweedd/frame_store/payment_service/internal/services/order/get"
	"github.com/tumbleweedd/frame_store/payment_service/internal/services/payment/reconcile"
	"github.com/tumbleweedd/frame_store/payment_service/pkg/brokers/kafka/producer"
	"github.com/tumbleweedd/frame_store/payment_service/pkg/databases/postgres"
	"github.com/tumbleweedd/frame_store/payment_service/pkg/logger"
)

const limiterSweepInterval = 5 * time.Minute

// orderStore is implemented by both storage drivers.
type orderStore interface {
	Create(ctx context.Context, order *models.Order) (uuid.UUID, error)
	Order(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	OrdersByIDs(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID]models.Order, error)
	OrderByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*models.Order, error)
	ConditionalUpdate(ctx context.Context, orderID uuid.UUID, cond models.PaymentCondition, patch models.PaymentPatch) (*models.Order, error)
	UpdateFulfillmentStatus(ctx context.Context, orderID uuid.UUID, from, to models.FulfillmentStatus) (*models.Order, error)
}

type notifier interface {
	reconcile.Notifier
	Close(ctx context.Context) error
}

type closer struct {
	name  string
	close func() error
}

type App struct {
	log logger.Logger
	cfg *config.Config

	HTTPServer *httpapp.App

	notifier notifier
	limiter  *middleware.IPRateLimiter
	closers  []closer
}

func NewApp(ctx context.Context, log logger.Logger, cfg *config.Config) (*App, error) {
	a := &App{log: log, cfg: cfg}

	store, err := a.setupStorage(ctx)
	if err != nil {
		a.closeAll()
		return nil, err
	}

	a.notifier, err = a.setupNotifier()
	if err != nil {
		a.closeAll()
		return nil, err
	}

	cache := cache_impl.NewLRU(log, cfg.Cache.Size, cfg.Cache.TTL)

	reconciler := reconcile.New(log, cache, store, store, a.notifier)
	orderCreationSvc := orderCreationService.New(log, cache, store)
	orderRetrievalSvc := orderRetrievalService.New(log, cache, store)
	orderFulfillmentSvc := orderFulfillmentService.New(log, cache, store, store)

	a.limiter = middleware.NewIPRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	handler := payment_service_http.NewHandler(log, payment_service_http.Handlers{
		Cashfree:    webhook.NewHandler(log, webhook.Cashfree(cfg.Gateways.Cashfree.Secret), reconciler, cfg.HTTP.MaxBodyBytes),
		Razorpay:    webhook.NewHandler(log, webhook.Razorpay(cfg.Gateways.Razorpay.Secret), reconciler, cfg.HTTP.MaxBodyBytes),
		CreateOrder: create.NewHandler(log, orderCreationSvc),
		GetOrder:    get.NewHandler(log, orderRetrievalSvc),
		Fulfill:     fulfill.NewHandler(log, orderFulfillmentSvc),
	}, a.limiter, cfg.Admin.JWTSecret)

	a.HTTPServer = httpapp.NewApp(log, handler.InitRoutes(), cfg.HTTP)

	a.warnMissingSecrets()

	return a, nil
}

func (a *App) setupStorage(ctx context.Context) (orderStore, error) {
	if a.cfg.Storage.Driver == config.StorageDriverMemory {
		a.log.Warn("using in-memory storage, orders are lost on restart")
		return memory.New(), nil
	}

	db, err := postgres.NewPostgresDB(ctx, a.log, a.cfg.Postgres.DSN(), postgres.PoolOptions{
		MaxOpenConns:    a.cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    a.cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: a.cfg.Postgres.ConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	a.closers = append(a.closers, closer{name: "postgres", close: db.Close})

	outBoxRepo := outBoxRepository.New(a.log, db.GetDB())

	return orderRepository.NewOrderRepository(a.log, db.GetDB(), outBoxRepo), nil
}

func (a *App) setupNotifier() (notifier, error) {
	cfg := a.cfg.Notification

	var mailer notification.Mailer
	switch {
	case !cfg.Enabled:
		return disabledNotifier{}, nil
	case len(a.cfg.Kafka.BrokerList) == 0:
		a.log.Warn("no kafka brokers configured, confirmation emails are only logged")
		mailer = notification.NewLogMailer(a.log)
	default:
		p, err := producer.NewProducer(a.log, a.cfg.Kafka.BrokerList)
		if err != nil {
			return nil, fmt.Errorf("failed to start email producer: %w", err)
		}
		a.closers = append(a.closers, closer{name: "kafka producer", close: p.Close})

		mailer = notification.NewKafkaMailer(cfg.EmailTopic, p)
	}

	return notification.NewDispatcher(a.log, mailer, cfg.From, cfg.StoreName, cfg.Timeout), nil
}

func (a *App) warnMissingSecrets() {
	if a.cfg.Gateways.Cashfree.Secret == "" {
		a.log.Warn("cashfree webhook secret is not set, deliveries will be answered with 500")
	}
	if a.cfg.Gateways.Razorpay.Secret == "" {
		a.log.Warn("razorpay webhook secret is not set, deliveries will be answered with 500")
	}
	if a.cfg.Admin.JWTSecret == "" {
		a.log.Warn("admin jwt secret is not set, admin routes are disabled")
	}
}

// Run serves until ctx is cancelled, then shuts everything down.
func (a *App) Run(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(a.HTTPServer.Run)

	g.Go(func() error {
		ticker := time.NewTicker(limiterSweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				a.limiter.Sweep()
			case <-gCtx.Done():
				return nil
			}
		}
	})

	g.Go(func() error {
		<-gCtx.Done()

		stopCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.ShutdownTimeout)
		defer cancel()

		return a.Stop(stopCtx)
	})

	return g.Wait()
}

// Stop drains HTTP first so no new notifications start, then waits for the
// in-flight ones before closing the producer and the pool.
func (a *App) Stop(ctx context.Context) error {
	var errs []error

	if err := a.HTTPServer.Stop(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to shutdown http server: %w", err))
	}

	if err := a.notifier.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to wait for notifications: %w", err))
	}

	errs = append(errs, a.closeAll()...)

	a.log.Info("application stopped")

	return errors.Join(errs...)
}

func (a *App) closeAll() []error {
	var errs []error

	for i := len(a.closers) - 1; i >= 0; i-- {
		c := a.closers[i]
		if err := c.close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close %s: %w", c.name, err))
			continue
		}
		a.log.Info(c.name + " closed")
	}
	a.closers = nil

	return errs
}

type disabledNotifier struct{}

func (disabledNotifier) Notify(context.Context, *models.Order) {}

func (disabledNotifier) Close(context.Context) error { return nil }
