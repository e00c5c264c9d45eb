package domain

import "time"

type OrderStatus string

const (
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is the durable record of a completed checkout. It is written once
// and never mutated here. The raw card number and CVC are never part of it,
// only the brand and the last four digits.
type Order struct {
	ID            int64       `json:"id"`
	Code          string      `json:"code"`
	CustomerName  string      `json:"customer_name"`
	CustomerEmail string      `json:"customer_email"`
	TotalAmount   float64     `json:"total_amount"`
	Shipping      float64     `json:"shipping"`
	Payable       float64     `json:"payable"`
	Lines         []CartLine  `json:"lines"`
	CardBrand     string      `json:"card_brand"`
	CardLast4     string      `json:"card_last4"`
	Status        OrderStatus `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
}
