package create

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/tumbleweedd/frame_store/payment_service/internal/domain/models"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

var errEmptyItems = errors.New("items can't be empty")

type CreateOrderRequest struct {
	Gateway        string   `json:"gateway" validate:"required,oneof=cashfree razorpay"`
	GatewayOrderID string   `json:"gateway_order_id" validate:"required,max=128"`
	Currency       string   `json:"currency" validate:"omitempty,len=3,alpha"`
	Customer       Customer `json:"customer" validate:"required"`
	Address        Address  `json:"shipping_address" validate:"required"`
	Items          []Item   `json:"items" validate:"dive"`
}

type Customer struct {
	Name  string `json:"name" validate:"required,max=200"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"omitempty,e164"`
}

type Address struct {
	Line1      string `json:"line1" validate:"required"`
	Line2      string `json:"line2"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code" validate:"required"`
	Country    string `json:"country" validate:"required,iso3166_1_alpha2"`
}

type Item struct {
	ProductID      string  `json:"product_id" validate:"required"`
	Title          string  `json:"title" validate:"required"`
	FrameSize      string  `json:"frame_size" validate:"required"`
	Quantity       int     `json:"quantity" validate:"gt=0,lte=100"`
	UnitAmount     int64   `json:"unit_amount" validate:"gt=0"`
	CustomImageURL *string `json:"custom_image_url" validate:"omitempty,url"`
}

func (req *CreateOrderRequest) validate() error {
	if len(req.Items) == 0 {
		return errEmptyItems
	}

	if err := validate.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			fields := make([]string, 0, len(validationErrors))
			for _, fe := range validationErrors {
				fields = append(fields, fmt.Sprintf("%s: %s", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid request: %s", strings.Join(fields, ", "))
		}
		return err
	}

	return nil
}

func (req *CreateOrderRequest) toDTO() models.Order {
	items := make([]models.Item, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, models.Item{
			ProductID:      item.ProductID,
			Title:          item.Title,
			FrameSize:      item.FrameSize,
			Quantity:       item.Quantity,
			UnitAmount:     item.UnitAmount,
			CustomImageURL: item.CustomImageURL,
		})
	}

	return models.Order{
		Gateway:        models.Gateway(req.Gateway),
		GatewayOrderID: req.GatewayOrderID,
		Currency:       strings.ToUpper(req.Currency),
		Customer: models.Customer{
			Name:  req.Customer.Name,
			Email: req.Customer.Email,
			Phone: req.Customer.Phone,
		},
		Address: models.Address{
			Line1:      req.Address.Line1,
			Line2:      req.Address.Line2,
			City:       req.Address.City,
			State:      req.Address.State,
			PostalCode: req.Address.PostalCode,
			Country:    req.Address.Country,
		},
		Items: items,
	}
}
