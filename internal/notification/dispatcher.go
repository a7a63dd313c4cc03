// Package notification sends the order confirmation email once a payment is
// reconciled. Delivery never blocks or fails the webhook response.
package notification

import (
	"context"
	"sync"
	"time"

	"github.com/tumbleweedd/frame_store/payment_service/internal/domain/models"
	"github.com/tumbleweedd/frame_store/payment_service/pkg/logger"
)

type Dispatcher struct {
	log    logger.Logger
	mailer Mailer

	from      string
	storeName string
	timeout   time.Duration

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(log logger.Logger, mailer Mailer, from, storeName string, timeout time.Duration) *Dispatcher {
	return &Dispatcher{
		log:       log,
		mailer:    mailer,
		from:      from,
		storeName: storeName,
		timeout:   timeout,
	}
}

// Notify starts delivery in the background and returns immediately.
func (d *Dispatcher) Notify(ctx context.Context, order *models.Order) {
	const op = "notification.Dispatcher.Notify"

	if order == nil {
		return
	}

	log := d.log.With(logger.String("op", op), logger.String("order_id", order.ID.String()))

	if order.Customer.Email == "" {
		log.Warn("no customer email, confirmation skipped")
		return
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		log.Warn("dispatcher is closed, confirmation dropped")
		return
	}
	d.wg.Add(1)
	d.mu.Unlock()

	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)

	go func() {
		defer d.wg.Done()
		defer cancel()

		if err := d.send(sendCtx, order); err != nil {
			log.Error("confirmation email failed", logger.String("error", err.Error()))
			return
		}

		log.Info("confirmation email sent")
	}()
}

func (d *Dispatcher) send(ctx context.Context, order *models.Order) error {
	email, err := RenderConfirmation(d.from, d.storeName, order)
	if err != nil {
		return err
	}

	return d.mailer.Send(ctx, email)
}

// Close rejects new dispatches and waits for in-flight ones until ctx is done.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Wait blocks until every started dispatch has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
