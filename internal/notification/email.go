package notification

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/tumbleweedd/frame_store/payment_service/internal/domain/models"
)

type Email struct {
	OrderID string `json:"order_id"`
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

var confirmationSubject = template.Must(template.New("subject").Parse(
	`{{.StoreName}}: payment received for order {{.Order.ID}}`))

var confirmationBody = template.Must(template.New("body").Funcs(template.FuncMap{
	"amount": formatAmount,
	"deref":  deref,
}).Parse(`Hi {{if .Order.Customer.Name}}{{.Order.Customer.Name}}{{else}}there{{end}},

We received your payment for order {{.Order.ID}}.

Amount:         {{amount .Order.TotalAmount .Order.Currency}}
Payment ID:     {{deref .Order.PaymentID}}
Payment method: {{deref .Order.PaymentMethod}}

Your frames are now being prepared. We will write again once they ship.

{{.StoreName}}
`))

type confirmationData struct {
	StoreName string
	Order     *models.Order
}

func RenderConfirmation(from, storeName string, order *models.Order) (Email, error) {
	data := confirmationData{StoreName: storeName, Order: order}

	var subject, body bytes.Buffer
	if err := confirmationSubject.Execute(&subject, data); err != nil {
		return Email{}, fmt.Errorf("render subject: %w", err)
	}

	if err := confirmationBody.Execute(&body, data); err != nil {
		return Email{}, fmt.Errorf("render body: %w", err)
	}

	return Email{
		OrderID: order.ID.String(),
		From:    from,
		To:      order.Customer.Email,
		Subject: subject.String(),
		Body:    body.String(),
	}, nil
}

// formatAmount prints integer minor units as major.minor.
func formatAmount(minor int64, currency string) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}

	return strings.TrimSpace(fmt.Sprintf("%s%d.%02d %s", sign, minor/100, minor%100, currency))
}

func deref(s *string) string {
	if s == nil || *s == "" {
		return "n/a"
	}

	return *s
}
