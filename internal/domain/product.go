package domain

import "time"

type Product struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	Stock           int       `json:"stock"`
	Price           float64   `json:"price"`
	DiscountPercent float64   `json:"discount_percent"`
	Images          []string  `json:"images"`
	SalePrice       float64   `json:"sale_price"`
	CreatedAt       time.Time `json:"created_at"`
}

// MainImage is the primary image, by convention the first of the list.
func (p *Product) MainImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

type Category struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	ImageURL string `json:"image_url"`
}

type CatalogStats struct {
	TotalProducts   int `json:"total_products"`
	TotalStock      int `json:"total_stock"`
	TotalCategories int `json:"total_categories"`
}
