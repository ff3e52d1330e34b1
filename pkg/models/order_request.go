package models

import "time"

// OrderRequest asks the operations team to order stock for an item,
// optionally on behalf of a transaction waiting on the part.
type OrderRequest struct {
	ID            string    `json:"order_request_id"`
	ItemID        string    `json:"item_id"`
	TransactionID *string   `json:"transaction_id,omitempty"`
	Quantity      int       `json:"quantity"`
	Notes         string    `json:"notes"`
	Ordered       bool      `json:"ordered"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
