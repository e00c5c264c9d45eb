package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Omerrrrrrr/tamer-shop/internal/checkout"
	"github.com/Omerrrrrrr/tamer-shop/internal/domain"
	"github.com/Omerrrrrrr/tamer-shop/internal/payment"
)

type CheckoutService interface {
	Preview(ctx context.Context, sessionID string) (domain.CartTotals, error)
	Checkout(ctx context.Context, sessionID string, form payment.Form) (*checkout.Outcome, error)
}

type CheckoutHandler struct {
	checkout CheckoutService
	timeout  time.Duration
}

func NewCheckoutHandler(svc CheckoutService, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: svc,
		timeout:  timeout,
	}
}

type CheckoutRequestDTO struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	CardNumber string `json:"card_number"`
	Exp        string `json:"exp"`
	CVC        string `json:"cvc"`
}

type CheckoutPreviewResponse struct {
	Totals domain.CartTotals `json:"totals"`
}

type CheckoutSuccessResponse struct {
	OrderCode  string            `json:"order_code"`
	MaskedCard string            `json:"masked_card"`
	Totals     domain.CartTotals `json:"totals"`
}

// Preview returns the totals for the payment page. An empty cart is not
// an error; the client is told to go back to the cart view.
func (h *CheckoutHandler) Preview(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := sessionIDFromContext(r.Context())
	totals, err := h.checkout.Preview(ctx, sessionID)
	if errors.Is(err, checkout.ErrEmptyCart) {
		respondError(w, http.StatusConflict, "empty_cart", "cart is empty")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not load checkout")
		return
	}

	respondJSON(w, http.StatusOK, CheckoutPreviewResponse{Totals: totals})
}

func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := sessionIDFromContext(r.Context())

	var req CheckoutRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}

	out, err := h.checkout.Checkout(ctx, sessionID, payment.Form{
		Name:       req.Name,
		Email:      req.Email,
		CardNumber: req.CardNumber,
		Exp:        req.Exp,
		CVC:        req.CVC,
	})
	if errors.Is(err, checkout.ErrEmptyCart) {
		respondError(w, http.StatusConflict, "empty_cart", "cart is empty")
		return
	}
	if errors.Is(err, checkout.ErrOrderPersist) {
		// cart is intact; the client may simply retry
		respondError(w, http.StatusServiceUnavailable, "order_failed", "payment could not be recorded, please try again")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "checkout failed")
		return
	}

	if out.Status != checkout.StatusCompleted {
		respondValidationErrors(w, out.Validation.Errors)
		return
	}

	respondJSON(w, http.StatusCreated, CheckoutSuccessResponse{
		OrderCode:  out.OrderCode,
		MaskedCard: out.MaskedCard,
		Totals:     out.Totals,
	})
}
