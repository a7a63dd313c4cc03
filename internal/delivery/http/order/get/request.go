package get

import (
	"errors"

	"github.com/google/uuid"
)

const maxLookupIDs = 100

var (
	errEmptyOrderIDs   = errors.New("no order ids passed")
	errTooManyOrderIDs = errors.New("too many order ids")
	errInvalidOrderID  = errors.New("invalid order id")
)

type OrdersByIDsRequest struct {
	IDs []string `json:"order_ids"`
}

func (r *OrdersByIDsRequest) validate() error {
	if len(r.IDs) == 0 {
		return errEmptyOrderIDs
	}

	if len(r.IDs) > maxLookupIDs {
		return errTooManyOrderIDs
	}

	for _, orderID := range r.IDs {
		if _, err := uuid.Parse(orderID); err != nil {
			return errInvalidOrderID
		}
	}

	return nil
}

func (r *OrdersByIDsRequest) toServiceRepresentation() []uuid.UUID {
	result := make([]uuid.UUID, 0, len(r.IDs))
	seen := make(map[uuid.UUID]struct{}, len(r.IDs))

	for _, orderID := range r.IDs {
		id := uuid.MustParse(orderID)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}

	return result
}
