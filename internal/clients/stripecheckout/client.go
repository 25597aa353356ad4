package stripecheckout

import (
	"boost-server/internal/observability"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"
)

// The outbound call gets a bounded timeout and no automatic retries: an
// ambiguous outcome must be resolved by the caller re-initiating checkout,
// not by a blind retry that could mint a duplicate session.
const requestTimeout = 15 * time.Second

// Client wraps the gateway's checkout-session API.
type Client struct {
	logger *observability.Logger
}

// CreateSessionParams describes one hosted checkout session.
type CreateSessionParams struct {
	AmountCents int64
	ProductName string
	Description string
	ImageURL    *string
	SuccessURL  string
	CancelURL   string
	Metadata    map[string]string
}

// Session is the slice of the gateway response the core needs: the
// correlation key and where to send the payer.
type Session struct {
	ID          string
	RedirectURL string
}

func New(apiKey string, logger *observability.Logger) *Client {
	stripe.Key = apiKey
	stripe.SetBackend(stripe.APIBackend, stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		HTTPClient:        &http.Client{Timeout: requestTimeout},
		MaxNetworkRetries: stripe.Int64(0),
	}))
	return &Client{logger: logger}
}

// CreateCheckoutSession opens a one-time payment session with the gateway.
func (c *Client) CreateCheckoutSession(ctx context.Context, p CreateSessionParams) (Session, error) {
	productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
		Name:        stripe.String(p.ProductName),
		Description: stripe.String(p.Description),
	}
	if p.ImageURL != nil && *p.ImageURL != "" {
		productData.Images = []*string{p.ImageURL}
	}

	params := &stripe.CheckoutSessionParams{
		Params: stripe.Params{Context: ctx},
		Mode:   stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: []*string{
			stripe.String("card"),
		},
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:    stripe.String(string(stripe.CurrencyUSD)),
					ProductData: productData,
					UnitAmount:  stripe.Int64(p.AmountCents),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(p.SuccessURL),
		CancelURL:  stripe.String(p.CancelURL),
	}
	for k, v := range p.Metadata {
		params.AddMetadata(k, v)
	}

	sess, err := session.New(params)
	if err != nil {
		c.logger.Error(ctx, "failed to create checkout session", err)
		return Session{}, fmt.Errorf("failed to create checkout session: %w", err)
	}

	return Session{ID: sess.ID, RedirectURL: sess.URL}, nil
}

// ExpireCheckoutSession invalidates a previously issued session with the
// gateway so a replaced correlation key cannot still be paid.
func (c *Client) ExpireCheckoutSession(ctx context.Context, sessionID string) error {
	ctx = observability.WithFields(ctx, observability.Field{Key: "checkout_session_id", Value: sessionID})

	_, err := session.Expire(sessionID, &stripe.CheckoutSessionExpireParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		c.logger.Error(ctx, "failed to expire checkout session", err)
		return fmt.Errorf("failed to expire checkout session: %w", err)
	}
	return nil
}
