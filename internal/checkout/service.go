// Package checkout turns a session cart plus a payment form into an
// order, or into an itemized list of validation errors. Validation
// failures are data, not Go errors; the error returns are reserved for
// the guard conditions (empty cart) and collaborator failures.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Omerrrrrrr/tamer-shop/internal/cart"
	"github.com/Omerrrrrrr/tamer-shop/internal/domain"
	"github.com/Omerrrrrrr/tamer-shop/internal/payment"
	"github.com/Omerrrrrrr/tamer-shop/internal/repository"
)

var (
	// ErrEmptyCart is a guard, not a failure: callers redirect to the
	// cart view instead of rendering an error.
	ErrEmptyCart = errors.New("cart is empty, nothing to checkout")
	// ErrOrderPersist means the order sink rejected a valid checkout.
	// The cart is preserved so the customer can retry.
	ErrOrderPersist = errors.New("order could not be saved, please retry")
)

const codeAttempts = 3

type Status string

const (
	StatusAwaitingPayment Status = "awaiting_payment"
	StatusCompleted       Status = "completed"
)

// Carts is the slice of the session cart service checkout needs.
type Carts interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	Clear(ctx context.Context, sessionID string) error
}

// OrderSink persists completed checkouts. It must enforce order-code
// uniqueness; repository.ErrDuplicateCode signals a collision.
type OrderSink interface {
	CreateOrder(ctx context.Context, order *domain.Order) (int64, error)
}

// Outcome is the result of one checkout attempt. On validation failure
// Status stays awaiting_payment and Validation carries the errors plus
// the echoed form; on success OrderCode and MaskedCard are set.
type Outcome struct {
	Status     Status
	Totals     domain.CartTotals
	Validation payment.Result
	Form       payment.Form
	OrderCode  string
	MaskedCard string
}

type Service struct {
	carts    Carts
	products cart.ProductLookup
	orders   OrderSink
	now      func() time.Time
	newCode  func() string
}

func NewService(carts Carts, products cart.ProductLookup, orders OrderSink) *Service {
	return &Service{
		carts:    carts,
		products: products,
		orders:   orders,
		now:      time.Now,
		newCode:  NewOrderCode,
	}
}

// Preview resolves the totals shown on the checkout page. ErrEmptyCart
// when there is nothing to pay for.
func (s *Service) Preview(ctx context.Context, sessionID string) (domain.CartTotals, error) {
	totals, err := s.resolveTotals(ctx, sessionID)
	if err != nil {
		return domain.CartTotals{}, err
	}
	return totals, nil
}

// Checkout validates the submitted form against the session cart and, on
// success, persists exactly one order and clears the cart. The cart is
// only cleared after the order write is confirmed.
func (s *Service) Checkout(ctx context.Context, sessionID string, form payment.Form) (*Outcome, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	form.CardNumber = strings.TrimSpace(form.CardNumber)
	form.Exp = strings.TrimSpace(form.Exp)
	form.CVC = strings.TrimSpace(form.CVC)

	totals, err := s.resolveTotals(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	validation := payment.ValidateForm(form, s.now())
	if !validation.Valid {
		return &Outcome{
			Status:     StatusAwaitingPayment,
			Totals:     totals,
			Validation: validation,
			Form:       form,
		}, nil
	}

	brand := payment.DetectBrand(validation.CardDigits)
	last4 := payment.Last4(validation.CardDigits)

	order := &domain.Order{
		CustomerName:  form.Name,
		CustomerEmail: form.Email,
		TotalAmount:   totals.TotalAmount,
		Shipping:      totals.Shipping,
		Payable:       totals.Payable,
		Lines:         totals.Lines,
		CardBrand:     string(brand),
		CardLast4:     last4,
		Status:        domain.OrderStatusPaid,
		CreatedAt:     s.now(),
	}

	if err := s.persist(ctx, order); err != nil {
		log.Printf("order persist error: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrOrderPersist, err)
	}

	if err := s.carts.Clear(ctx, sessionID); err != nil {
		// the order exists; a stale cart is the lesser problem
		log.Printf("cart clear after order %s failed: %v", order.Code, err)
	}

	return &Outcome{
		Status:     StatusCompleted,
		Totals:     totals,
		Validation: validation,
		OrderCode:  order.Code,
		MaskedCard: payment.MaskedDescriptor(brand, last4),
	}, nil
}

func (s *Service) resolveTotals(ctx context.Context, sessionID string) (domain.CartTotals, error) {
	c, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return domain.CartTotals{}, err
	}
	if len(c.Lines) == 0 {
		return domain.CartTotals{}, ErrEmptyCart
	}

	totals, dropped, err := cart.Totals(ctx, c.Lines, s.products)
	if err != nil {
		return domain.CartTotals{}, err
	}
	if dropped > 0 {
		log.Printf("checkout %s: dropped %d stale line(s)", sessionID, dropped)
	}
	// every line may have been pruned since the cart was filled
	if len(totals.Lines) == 0 {
		return domain.CartTotals{}, ErrEmptyCart
	}
	return totals, nil
}

// persist writes the order under a fresh code, retrying on the unlikely
// code collision.
func (s *Service) persist(ctx context.Context, order *domain.Order) error {
	var lastErr error
	for i := 0; i < codeAttempts; i++ {
		order.Code = s.newCode()
		id, err := s.orders.CreateOrder(ctx, order)
		if err == nil {
			order.ID = id
			return nil
		}
		if !errors.Is(err, repository.ErrDuplicateCode) {
			return err
		}
		lastErr = err
	}
	return lastErr
}
