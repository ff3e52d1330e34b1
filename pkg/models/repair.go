package models

import "time"

// Repair is an entry of the repairs catalog: a named service with a fixed
// price. Disabled repairs stay on past transactions but cannot be added to
// new ones.
type Repair struct {
	ID          string    `json:"repair_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Disabled    bool      `json:"disabled"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
