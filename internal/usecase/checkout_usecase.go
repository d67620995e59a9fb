package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
)

type CheckoutUseCase struct {
	Stripe StripeGateway
	Polar  PolarGateway
}

func NewCheckoutUseCase(stripe StripeGateway, polar PolarGateway) *CheckoutUseCase {
	return &CheckoutUseCase{Stripe: stripe, Polar: polar}
}

// StripeCheckout opens a payment session for the cart and returns its URL.
func (uc *CheckoutUseCase) StripeCheckout(ctx context.Context, input CheckoutInput) (string, error) {
	if err := validationFailed(ValidateCheckoutInput(input)); err != nil {
		return "", err
	}
	if uc.Stripe == nil {
		return "", upstream("stripe", fmt.Errorf("not configured"))
	}

	url, err := uc.Stripe.CreateCheckoutSession(ctx, input.Email, input.Items)
	if err != nil {
		return "", upstream("stripe", err)
	}

	log.Printf("💳 [CHECKOUT] sessão Stripe criada para %s (%d item(ns))", input.Email, len(input.Items))
	return url, nil
}

func (uc *CheckoutUseCase) PolarCheckout(ctx context.Context, input PolarCheckoutInput) (map[string]any, error) {
	var errs []ValidationError
	if strings.TrimSpace(input.ProductID) == "" {
		errs = append(errs, ValidationError{"product_id", "is required"})
	}
	if strings.TrimSpace(input.CustomerEmail) == "" {
		errs = append(errs, ValidationError{"customer_email", "is required"})
	}
	if err := validationFailed(errs); err != nil {
		return nil, err
	}
	if uc.Polar == nil {
		return nil, upstream("polar", fmt.Errorf("not configured"))
	}

	out, err := uc.Polar.CreateCheckout(ctx, input.ProductID, input.CustomerEmail)
	if err != nil {
		return nil, upstream("polar", err)
	}
	return out, nil
}
