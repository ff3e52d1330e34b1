package models

import "time"

// Bike is a bicycle tracked by the shop, either a customer's bike attached
// to a repair or a shop-owned bike being refurbished for sale.
type Bike struct {
	ID          string    `json:"bike_id"`
	Make        string    `json:"make"`
	Model       string    `json:"model"`
	Description string    `json:"description"`
	BikeType    string    `json:"bike_type"`
	SizeCm      float64   `json:"size_cm"`
	Condition   string    `json:"condition"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
