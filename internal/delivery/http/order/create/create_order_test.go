package create

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validRequest() *CreateOrderRequest {
	return &CreateOrderRequest{
		Gateway:        "cashfree",
		GatewayOrderID: "gw-123",
		Currency:       "inr",
		Customer:       Customer{Name: "Asha", Email: "asha@example.com", Phone: "+919812345678"},
		Address: Address{
			Line1:      "12 MG Road",
			City:       "Bengaluru",
			State:      "KA",
			PostalCode: "560001",
			Country:    "IN",
		},
		Items: []Item{
			{ProductID: "frame-a4", Title: "Oak A4", FrameSize: "A4", Quantity: 2, UnitAmount: 1500},
		},
	}
}

func TestValidate(t *testing.T) {
	tCases := []struct {
		name   string
		modify func(r *CreateOrderRequest)
	}{
		{name: "full", modify: func(r *CreateOrderRequest) {}},
		{name: "razorpay_no_currency", modify: func(r *CreateOrderRequest) {
			r.Gateway = "razorpay"
			r.Currency = ""
		}},
		{name: "custom_image", modify: func(r *CreateOrderRequest) {
			url := "https://cdn.frames.test/uploads/42.jpg"
			r.Items[0].CustomImageURL = &url
		}},
	}

	for _, tCase := range tCases {
		t.Run(tCase.name, func(t *testing.T) {
			req := validRequest()
			tCase.modify(req)

			require.NoError(t, req.validate())
		})
	}
}

func TestValidateError(t *testing.T) {
	tCases := []struct {
		name     string
		modify   func(r *CreateOrderRequest)
		contains string
	}{
		{
			name:     "no_items",
			modify:   func(r *CreateOrderRequest) { r.Items = nil },
			contains: errEmptyItems.Error(),
		},
		{
			name:     "unknown_gateway",
			modify:   func(r *CreateOrderRequest) { r.Gateway = "stripe" },
			contains: "Gateway: oneof",
		},
		{
			name:     "bad_email",
			modify:   func(r *CreateOrderRequest) { r.Customer.Email = "asha" },
			contains: "Email: email",
		},
		{
			name:     "zero_quantity",
			modify:   func(r *CreateOrderRequest) { r.Items[0].Quantity = 0 },
			contains: "Quantity: gt",
		},
		{
			name:     "missing_gateway_order_id",
			modify:   func(r *CreateOrderRequest) { r.GatewayOrderID = "" },
			contains: "GatewayOrderID: required",
		},
	}

	for _, tCase := range tCases {
		t.Run(tCase.name, func(t *testing.T) {
			req := validRequest()
			tCase.modify(req)

			err := req.validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tCase.contains)
		})
	}
}

func TestToDTO(t *testing.T) {
	order := validRequest().toDTO()

	require.Equal(t, "INR", order.Currency)
	require.Equal(t, "gw-123", order.GatewayOrderID)
	require.Len(t, order.Items, 1)
	require.Equal(t, "IN", order.Address.Country)
}
