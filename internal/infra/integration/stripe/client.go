package stripe

import (
	"context"
	"fmt"
	"log"

	stripego "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/xavierca1/mailmorph/internal/entity"
)

const currency = "usd"

type Client struct {
	api        *client.API
	successURL string
	cancelURL  string
}

func NewClient(secretKey, successURL, cancelURL string) *Client {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &Client{api: sc, successURL: successURL, cancelURL: cancelURL}
}

// NewClientWithBackends points the client at another API host (stripe-mock, tests).
func NewClientWithBackends(secretKey, successURL, cancelURL string, backends *stripego.Backends) *Client {
	sc := &client.API{}
	sc.Init(secretKey, backends)
	return &Client{api: sc, successURL: successURL, cancelURL: cancelURL}
}

// CreateCheckoutSession opens a one-off card payment session and returns its hosted URL.
func (c *Client) CreateCheckoutSession(ctx context.Context, customerEmail string, items []entity.CheckoutItem) (string, error) {
	params := SessionParams(customerEmail, items, c.successURL, c.cancelURL)
	params.Context = ctx

	session, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		log.Printf("❌ [STRIPE] falha ao criar checkout para %s: %v", customerEmail, err)
		return "", fmt.Errorf("stripe checkout session: %w", err)
	}
	return session.URL, nil
}

func SessionParams(customerEmail string, items []entity.CheckoutItem, successURL, cancelURL string) *stripego.CheckoutSessionParams {
	lineItems := make([]*stripego.CheckoutSessionLineItemParams, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, &stripego.CheckoutSessionLineItemParams{
			PriceData: &stripego.CheckoutSessionLineItemPriceDataParams{
				Currency: stripego.String(currency),
				ProductData: &stripego.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripego.String(item.Title),
				},
				UnitAmount: stripego.Int64(item.UnitAmountCents()),
			},
			Quantity: stripego.Int64(int64(item.Quantity)),
		})
	}

	return &stripego.CheckoutSessionParams{
		PaymentMethodTypes: stripego.StringSlice([]string{"card"}),
		Mode:               stripego.String(string(stripego.CheckoutSessionModePayment)),
		LineItems:          lineItems,
		SuccessURL:         stripego.String(successURL),
		CancelURL:          stripego.String(cancelURL),
		CustomerEmail:      stripego.String(customerEmail),
	}
}
