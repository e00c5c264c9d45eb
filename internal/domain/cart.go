package domain

import "time"

// CartLine is a single cart position. The price fields are snapshots for
// display only; totals computation always re-resolves them against the
// current product state.
type CartLine struct {
	ProductID       int64     `json:"product_id"`
	Name            string    `json:"name"`
	Quantity        int       `json:"quantity"`
	UnitPrice       float64   `json:"unit_price"`
	OriginalPrice   float64   `json:"original_price"`
	DiscountPercent float64   `json:"discount_percent"`
	ImageURL        string    `json:"image_url"`
	AddedAt         time.Time `json:"added_at"`
}

type Cart struct {
	SessionID string     `json:"session_id"`
	Lines     []CartLine `json:"lines"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type CartTotals struct {
	Lines       []CartLine `json:"lines"`
	TotalAmount float64    `json:"total_amount"`
	Shipping    float64    `json:"shipping"`
	Payable     float64    `json:"payable"`
	TotalItems  int        `json:"total_items"`
}
