package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Omerrrrrrr/tamer-shop/internal/cart"
	"github.com/Omerrrrrrr/tamer-shop/internal/domain"
)

// CartService is the session cart surface consumed by the handlers.
type CartService interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	AddItem(ctx context.Context, sessionID string, productID int64, qty int) (*domain.Cart, error)
	UpdateQuantity(ctx context.Context, sessionID string, productID int64, qty int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, sessionID string, productID int64) (*domain.Cart, error)
	Totals(ctx context.Context, sessionID string) (domain.CartTotals, error)
}

type CartHandler struct {
	carts   CartService
	timeout time.Duration
}

func NewCartHandler(carts CartService, timeout time.Duration) *CartHandler {
	return &CartHandler{
		carts:   carts,
		timeout: timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartResponse struct {
	Cart   *domain.Cart      `json:"cart"`
	Totals domain.CartTotals `json:"totals"`
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := sessionIDFromContext(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "no_session", "missing session")
		return
	}

	h.respondCart(ctx, w, sessionID, http.StatusOK)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := sessionIDFromContext(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "no_session", "missing session")
		return
	}

	var req AddItemRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}
	if req.Quantity < 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	_, err := h.carts.AddItem(ctx, sessionID, req.ProductID, req.Quantity)
	if errors.Is(err, cart.ErrProductUnavailable) {
		respondError(w, http.StatusConflict, "unavailable", "product is not available")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not update cart")
		return
	}

	h.respondCart(ctx, w, sessionID, http.StatusCreated)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := sessionIDFromContext(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "no_session", "missing session")
		return
	}
	productID, ok := parseID(w, r, "productID")
	if !ok {
		return
	}

	var req UpdateQuantityRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Quantity < 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 0 and 99")
		return
	}

	_, err := h.carts.UpdateQuantity(ctx, sessionID, productID, req.Quantity)
	if errors.Is(err, cart.ErrLineNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "item is not in the cart")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not update cart")
		return
	}

	h.respondCart(ctx, w, sessionID, http.StatusOK)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := sessionIDFromContext(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "no_session", "missing session")
		return
	}
	productID, ok := parseID(w, r, "productID")
	if !ok {
		return
	}

	if _, err := h.carts.RemoveItem(ctx, sessionID, productID); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not update cart")
		return
	}

	h.respondCart(ctx, w, sessionID, http.StatusOK)
}

func (h *CartHandler) respondCart(ctx context.Context, w http.ResponseWriter, sessionID string, status int) {
	c, err := h.carts.Get(ctx, sessionID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not load cart")
		return
	}
	totals, err := h.carts.Totals(ctx, sessionID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not compute totals")
		return
	}

	respondJSON(w, status, CartResponse{Cart: c, Totals: totals})
}
