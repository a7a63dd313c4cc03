package fulfill

import (
	"github.com/go-playground/validator/v10"
	"github.com/tumbleweedd/frame_store/payment_service/internal/domain/models"
)

var validate = validator.New()

type UpdateFulfillmentRequest struct {
	Status string `json:"status" validate:"required,oneof=Printed Shipped Delivered Cancelled"`
}

func (r *UpdateFulfillmentRequest) validate() error {
	return validate.Struct(r)
}

func (r *UpdateFulfillmentRequest) toServiceRepresentation() models.FulfillmentStatus {
	return models.FulfillmentStatus(r.Status)
}
