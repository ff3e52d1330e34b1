package models

import "time"

// Item is a part or retail product in inventory, keyed by UPC for catalog
// reconciliation.
type Item struct {
	ID            string    `json:"item_id"`
	UPC           string    `json:"upc"`
	Name          string    `json:"name"`
	Brand         string    `json:"brand"`
	Category      string    `json:"category"`
	StandardPrice float64   `json:"standard_price"`
	WholesaleCost float64   `json:"wholesale_cost"`
	Stock         int       `json:"stock"`
	MinimumStock  int       `json:"minimum_stock"`
	Managed       bool      `json:"managed"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
