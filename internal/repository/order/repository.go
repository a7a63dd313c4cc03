package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/tumbleweedd/frame_store/payment_service/internal/domain/models"
	internalErrors "github.com/tumbleweedd/frame_store/payment_service/internal/lib/errors"
	"github.com/tumbleweedd/frame_store/payment_service/pkg/logger"
)

const uniqueViolation = "23505"

const orderColumns = `
	id, gateway, gateway_order_id, total_amount, currency,
	payment_status, fulfillment_status, payment_id, payment_method, paid_at,
	customer_name, customer_email, customer_phone,
	address_line1, address_line2, address_city, address_state, address_postal_code, address_country,
	created_at, updated_at`

type outBoxRepository interface {
	Insert(
		ctx context.Context,
		exec sqlx.ExecerContext,
		aggregateID uuid.UUID,
		eventType models.EventType,
		payload any,
	) error
}

type Repository struct {
	log              logger.Logger
	db               *sqlx.DB
	outBoxRepository outBoxRepository
}

func NewOrderRepository(log logger.Logger, db *sqlx.DB, outBoxRepository outBoxRepository) *Repository {
	return &Repository{
		log:              log,
		db:               db,
		outBoxRepository: outBoxRepository,
	}
}

func (or *Repository) Create(ctx context.Context, order *models.Order) (orderID uuid.UUID, err error) {
	const op = "repository.order.Create"

	tx, err := or.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		or.log.Error(op, logger.String("error", err.Error()))
		return uuid.Nil, fmt.Errorf("%s: begin transaction: %w", op, err)
	}

	defer func() {
		if err != nil {
			if rollBackErr := tx.Rollback(); rollBackErr != nil {
				or.log.Error(op, logger.String("error", rollBackErr.Error()))
				err = errors.Join(err, fmt.Errorf("%s: rollback transaction: %w", op, rollBackErr))
			}
		}
	}()

	const orderQuery = `
		INSERT INTO orders (
			gateway, gateway_order_id, total_amount, currency, payment_status, fulfillment_status,
			customer_name, customer_email, customer_phone,
			address_line1, address_line2, address_city, address_state, address_postal_code, address_country
		) VALUES (
			:gateway, :gateway_order_id, :total_amount, :currency, :payment_status, :fulfillment_status,
			:customer_name, :customer_email, :customer_phone,
			:address_line1, :address_line2, :address_city, :address_state, :address_postal_code, :address_country
		) RETURNING id, created_at, updated_at`

	query, args, err := sqlx.Named(orderQuery, order)
	if err != nil {
		or.log.Error(op, logger.String("error", err.Error()))
		return uuid.Nil, fmt.Errorf("%s: bind named query: %w", op, err)
	}

	row := tx.QueryRowxContext(ctx, tx.Rebind(query), args...)
	if err = row.Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return uuid.Nil, fmt.Errorf("%s: %w", op, internalErrors.ErrDuplicateGatewayOrderID)
		}
		or.log.Error(op, logger.String("error", err.Error()))
		return uuid.Nil, fmt.Errorf("%s: order execute statement: %w", op, err)
	}

	if err = or.insertItems(ctx, tx, order); err != nil {
		or.log.Error(op, logger.String("error", err.Error()))
		return uuid.Nil, fmt.Errorf("%s: order_items execute statement: %w", op, err)
	}

	if err = or.outBoxRepository.Insert(ctx, tx, order.ID, models.OrderCreated, models.NewOrderPayload(order)); err != nil {
		return uuid.Nil, fmt.Errorf("%s: outbox insert error: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		or.log.Error(op, logger.String("error", err.Error()))
		return uuid.Nil, fmt.Errorf("%s: commit transaction: %w", op, err)
	}

	return order.ID, nil
}

func (or *Repository) insertItems(ctx context.Context, tx *sqlx.Tx, order *models.Order) error {
	if len(order.Items) == 0 {
		return nil
	}

	const orderItemsQuery = `INSERT INTO order_items (order_id, product_id, title, frame_size, quantity, unit_amount, custom_image_url) VALUES %s`
	const columns = 7

	values := make([]interface{}, 0, len(order.Items)*columns)
	placeholders := make([]string, 0, len(order.Items))

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID

		values = append(values,
			order.ID, item.ProductID, item.Title, item.FrameSize, item.Quantity, item.UnitAmount, item.CustomImageURL,
		)

		argID := i * columns
		placeholders = append(placeholders, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			argID+1, argID+2, argID+3, argID+4, argID+5, argID+6, argID+7))
	}

	fullQuery := fmt.Sprintf(orderItemsQuery, strings.Join(placeholders, ","))

	_, err := tx.ExecContext(ctx, fullQuery, values...)
	return err
}

func (or *Repository) Order(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	const op = "repository.order.Order"

	var order models.Order
	if err := or.db.GetContext(ctx, &order, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, orderID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internalErrors.ErrOrderNotFound
		}
		or.log.Error(op, logger.String("scan order error", err.Error()))
		return nil, fmt.Errorf("%s: select order: %w", op, err)
	}

	const orderItemsQuery = `
		SELECT order_id, product_id, title, frame_size, quantity, unit_amount, custom_image_url
			FROM order_items
			WHERE order_id = $1`

	if err := or.db.SelectContext(ctx, &order.Items, orderItemsQuery, orderID); err != nil {
		or.log.Error(op, logger.String("scan order_items", err.Error()))
		return nil, fmt.Errorf("%s: select items: %w", op, err)
	}

	return &order, nil
}

func (or *Repository) OrderByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*models.Order, error) {
	const op = "repository.order.OrderByGatewayOrderID"

	var order models.Order

	err := or.db.GetContext(ctx, &order, `SELECT `+orderColumns+` FROM orders WHERE gateway_order_id = $1`, gatewayOrderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internalErrors.ErrOrderNotFound
		}
		or.log.Error(op, logger.String("error", err.Error()))
		return nil, fmt.Errorf("%s: select order: %w", op, err)
	}

	return &order, nil
}

// ConditionalUpdate writes patch only while the stored payment status still
// satisfies cond. The check and the write are one UPDATE statement, so two
// concurrent deliveries for the same order cannot both land.
func (or *Repository) ConditionalUpdate(
	ctx context.Context,
	orderID uuid.UUID,
	cond models.PaymentCondition,
	patch models.PaymentPatch,
) (updated *models.Order, err error) {
	const op = "repository.order.ConditionalUpdate"

	tx, err := or.db.BeginTxx(ctx, nil)
	if err != nil {
		or.log.Error(op, logger.String("error", err.Error()))
		return nil, fmt.Errorf("%s: begin transaction: %w", op, err)
	}

	defer func() {
		if err != nil || updated == nil {
			if rollBackErr := tx.Rollback(); rollBackErr != nil {
				or.log.Error(op, logger.String("error", rollBackErr.Error()))
				err = errors.Join(err, fmt.Errorf("%s: rollback transaction: %w", op, rollBackErr))
			}
		}
	}()

	const updateQuery = `
		UPDATE orders SET
			payment_status     = $2,
			fulfillment_status = $3,
			payment_id         = COALESCE($4, payment_id),
			payment_method     = COALESCE($5, payment_method),
			paid_at            = COALESCE($6, paid_at),
			updated_at         = now()
		WHERE id = $1 AND payment_status <> $7
		RETURNING ` + orderColumns

	var order models.Order

	err = tx.GetContext(ctx, &order, updateQuery,
		orderID,
		string(patch.PaymentStatus),
		string(patch.FulfillmentStatus),
		patch.PaymentID,
		patch.PaymentMethod,
		patch.PaidAt,
		string(cond.PaymentStatusNot),
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		or.log.Error(op, logger.String("error", err.Error()))
		return nil, fmt.Errorf("%s: update order: %w", op, err)
	}

	eventType := models.PaymentEventType(order.PaymentStatus)
	if err = or.outBoxRepository.Insert(ctx, tx, order.ID, eventType, models.NewOrderPayload(&order)); err != nil {
		return nil, fmt.Errorf("%s: outbox insert error: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		or.log.Error(op, logger.String("error", err.Error()))
		return nil, fmt.Errorf("%s: commit transaction: %w", op, err)
	}

	return &order, nil
}

// UpdateFulfillmentStatus moves a paid order from one fulfillment status to
// another. It returns nil, nil when the order is no longer in from.
func (or *Repository) UpdateFulfillmentStatus(
	ctx context.Context,
	orderID uuid.UUID,
	from, to models.FulfillmentStatus,
) (updated *models.Order, err error) {
	const op = "repository.order.UpdateFulfillmentStatus"

	tx, err := or.db.BeginTxx(ctx, nil)
	if err != nil {
		or.log.Error(op, logger.String("error", err.Error()))
		return nil, fmt.Errorf("%s: begin transaction: %w", op, err)
	}

	defer func() {
		if err != nil || updated == nil {
			if rollBackErr := tx.Rollback(); rollBackErr != nil {
				or.log.Error(op, logger.String("error", rollBackErr.Error()))
				err = errors.Join(err, fmt.Errorf("%s: rollback transaction: %w", op, rollBackErr))
			}
		}
	}()

	const updateQuery = `
		UPDATE orders SET fulfillment_status = $3, updated_at = now()
		WHERE id = $1 AND fulfillment_status = $2 AND payment_status = $4
		RETURNING ` + orderColumns

	var order models.Order

	err = tx.GetContext(ctx, &order, updateQuery, orderID, string(from), string(to), string(models.PaymentStatusCompleted))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		or.log.Error(op, logger.String("error", err.Error()))
		return nil, fmt.Errorf("%s: update order: %w", op, err)
	}

	if err = or.outBoxRepository.Insert(ctx, tx, order.ID, models.OrderFulfillmentChanged, models.NewOrderPayload(&order)); err != nil {
		return nil, fmt.Errorf("%s: outbox insert error: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		or.log.Error(op, logger.String("error", err.Error()))
		return nil, fmt.Errorf("%s: commit transaction: %w", op, err)
	}

	return &order, nil
}

func (or *Repository) OrdersByIDs(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID]models.Order, error) {
	const op = "repository.order.OrdersByIDs"

	var orders []models.Order
	if err := or.db.SelectContext(ctx, &orders, `SELECT `+orderColumns+` FROM orders WHERE id = ANY($1)`, pq.Array(orderIDs)); err != nil {
		or.log.Error(op, logger.String("error", err.Error()))
		return nil, fmt.Errorf("%s: select orders: %w", op, err)
	}

	if len(orders) == 0 {
		return nil, internalErrors.ErrOrderNotFound
	}

	ordersMap := make(map[uuid.UUID]models.Order, len(orders))
	for _, order := range orders {
		ordersMap[order.ID] = order
	}

	const orderItemsQuery = `
		SELECT order_id, product_id, title, frame_size, quantity, unit_amount, custom_image_url
			FROM order_items
			WHERE order_id = ANY($1)`

	var items []models.Item
	if err := or.db.SelectContext(ctx, &items, orderItemsQuery, pq.Array(orderIDs)); err != nil {
		or.log.Error(op, logger.String("error", err.Error()))
		return nil, fmt.Errorf("%s: select items: %w", op, err)
	}

	for _, item := range items {
		order := ordersMap[item.OrderID]
		order.Items = append(order.Items, item)

		ordersMap[item.OrderID] = order
	}

	return ordersMap, nil
}
