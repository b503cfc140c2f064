package order

import (
	"context"
	"math"

	"confreg/internal/models"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/checkout/session"
)

// CheckoutProvider is the payment-provider boundary: start a hosted checkout
// and report its current status in the ledger's status vocabulary.
type CheckoutProvider interface {
	CreateCheckout(ctx context.Context, amount float64, description, email string) (id, url string, err error)
	CheckoutStatus(ctx context.Context, id string) (string, error)
}

// StripeProvider implements CheckoutProvider on Stripe Checkout Sessions.
type StripeProvider struct {
	returnURL string
}

func NewStripeProvider(secretKey, returnURL string) *StripeProvider {
	stripe.Key = secretKey
	return &StripeProvider{returnURL: returnURL}
}

func (p *StripeProvider) CreateCheckout(ctx context.Context, amount float64, description, email string) (string, string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:    stripe.String(p.returnURL + "?paymentId={CHECKOUT_SESSION_ID}"),
		CancelURL:     stripe.String(p.returnURL + "?paymentId={CHECKOUT_SESSION_ID}"),
		CustomerEmail: stripe.String(email),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String("sek"),
					UnitAmount: stripe.Int64(int64(math.Round(amount * 100))),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx
	params.AddMetadata("ticket", description)

	s, err := session.New(params)
	if err != nil {
		return "", "", err
	}
	return s.ID, s.URL, nil
}

// CheckoutStatus maps Stripe session state onto the ledger status set:
// open, paid, failed, expired, canceled.
func (p *StripeProvider) CheckoutStatus(ctx context.Context, id string) (string, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	s, err := session.Get(id, params)
	if err != nil {
		return "", err
	}

	switch {
	case s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid:
		return models.OrderStatusPaid, nil
	case s.Status == stripe.CheckoutSessionStatusExpired:
		return models.OrderStatusExpired, nil
	case s.Status == stripe.CheckoutSessionStatusOpen:
		return models.OrderStatusOpen, nil
	case s.Status == stripe.CheckoutSessionStatusComplete:
		// Complete but not paid: async payment method still settling.
		return models.OrderStatusOpen, nil
	default:
		return models.OrderStatusCanceled, nil
	}
}
