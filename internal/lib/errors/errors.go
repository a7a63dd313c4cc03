package errors

import "errors"

var (
	ErrOrderNotFound                = errors.New("order not found")
	ErrDuplicateGatewayOrderID      = errors.New("gateway order id already used")
	ErrOrderNotPaid                 = errors.New("order is not paid")
	ErrInvalidFulfillmentTransition = errors.New("fulfillment status transition is not allowed")
	ErrFulfillmentConflict          = errors.New("fulfillment status was changed concurrently")
)
