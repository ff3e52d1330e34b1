package models

import "time"

// Customer is a shop customer. Email is the lookup key used by the front
// desk when attaching transactions.
type Customer struct {
	ID        string    `json:"customer_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
