package handlers

import (
	"net/http"

	"github.com/xavierca1/mailmorph/internal/usecase"
)

type CheckoutHandler struct {
	UC *usecase.CheckoutUseCase
}

func NewCheckoutHandler(uc *usecase.CheckoutUseCase) *CheckoutHandler {
	return &CheckoutHandler{UC: uc}
}

func (h *CheckoutHandler) Stripe(w http.ResponseWriter, r *http.Request) {
	var input usecase.CheckoutInput
	if _, err := decodeJSON(r, &input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido: "+err.Error())
		return
	}

	url, err := h.UC.StripeCheckout(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, envelope{"checkout_url": url})
}

// Polar answers with Polar's checkout object as is.
func (h *CheckoutHandler) Polar(w http.ResponseWriter, r *http.Request) {
	var input usecase.PolarCheckoutInput
	if _, err := decodeJSON(r, &input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido: "+err.Error())
		return
	}

	out, err := h.UC.PolarCheckout(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
