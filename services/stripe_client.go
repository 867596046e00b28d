package services

import (
	"context"
	"math"
	"time"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/checkout/session"
)

// CheckoutParams is the processor-independent shape of a checkout
// session request.
type CheckoutParams struct {
	OrderID       string
	MealName      string
	CustomerEmail string
	Price         float64
	Quantity      int
}

// CheckoutProvider abstracts the external payment processor. The real
// implementation is StripeService; reconciliation is tested against a
// mock.
type CheckoutProvider interface {
	CreateSession(ctx context.Context, params CheckoutParams) (*stripe.CheckoutSession, error)
	GetSession(ctx context.Context, sessionID string) (*stripe.CheckoutSession, error)
}

// retrieveTimeout bounds the session lookup during reconciliation; a
// timeout surfaces as an unconfirmed payment, retryable by the caller.
const retrieveTimeout = 15 * time.Second

// StripeService wraps the Stripe checkout sessions API.
type StripeService struct {
	SiteDomain string
}

// NewStripeService configures the global Stripe key and returns the
// checkout wrapper. SiteDomain is the frontend origin the success and
// cancel redirects point back to.
func NewStripeService(secretKey, siteDomain string) *StripeService {
	stripe.Key = secretKey
	return &StripeService{SiteDomain: siteDomain}
}

// CreateSession creates a hosted checkout session for one order. The
// order id and meal name ride along in the session metadata so the
// reconciliation flow can link the session back to the order.
func (s *StripeService) CreateSession(ctx context.Context, p CheckoutParams) (*stripe.CheckoutSession, error) {
	amount := int64(math.Round(p.Price * float64(p.Quantity) * 100))

	params := &stripe.CheckoutSessionParams{
		Params: stripe.Params{Context: ctx},
		Mode:   stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String("usd"),
					UnitAmount: stripe.Int64(amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Please pay for: " + p.MealName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		Metadata: map[string]string{
			"orderId":  p.OrderID,
			"mealName": p.MealName,
		},
		CustomerEmail: stripe.String(p.CustomerEmail),
		SuccessURL:    stripe.String(s.SiteDomain + "/dashboard/payment-success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:     stripe.String(s.SiteDomain + "/dashboard/my-orders"),
	}

	return session.New(params)
}

// GetSession retrieves a checkout session by its reference.
func (s *StripeService) GetSession(ctx context.Context, sessionID string) (*stripe.CheckoutSession, error) {
	ctx, cancel := context.WithTimeout(ctx, retrieveTimeout)
	defer cancel()

	return session.Get(sessionID, &stripe.CheckoutSessionParams{
		Params: stripe.Params{Context: ctx},
	})
}
