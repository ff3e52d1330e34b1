package models

import "time"

// TransactionType classifies an entry in the shop ledger.
type TransactionType string

const (
	TransactionTypeRepair    TransactionType = "repair"
	TransactionTypeRetail    TransactionType = "retail"
	TransactionTypeRetrospec TransactionType = "retrospec"
	TransactionTypeBeerBike  TransactionType = "beer_bike"
	TransactionTypeRefurb    TransactionType = "refurb"
	TransactionTypeEmployee  TransactionType = "employee"
)

// Valid reports whether t is one of the closed set of transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeRepair, TransactionTypeRetail, TransactionTypeRetrospec,
		TransactionTypeBeerBike, TransactionTypeRefurb, TransactionTypeEmployee:
		return true
	}

	return false
}

// Transaction is a sales/repair record in the shop's ledger. It owns zero or
// more workflow-step sets; deleting a transaction deletes its steps.
type Transaction struct {
	ID              string          `json:"transaction_id"`
	TransactionNum  int64           `json:"transaction_num"`
	CustomerID      string          `json:"customer_id"`
	BikeID          *string         `json:"bike_id,omitempty"`
	TransactionType TransactionType `json:"transaction_type"`
	Description     string          `json:"description"`
	TotalCost       float64         `json:"total_cost"`
	IsCompleted     bool            `json:"is_completed"`
	IsPaid          bool            `json:"is_paid"`
	IsRefurb        bool            `json:"is_refurb"`
	IsUrgent        bool            `json:"is_urgent"`
	IsBeerBike      bool            `json:"is_beer_bike"`
	IsEmployee      bool            `json:"is_employee"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DateCompleted   *time.Time      `json:"date_completed,omitempty"`
}

// TransactionsSummary is a point-in-time projection for the dashboard tiles.
// It is never stored; every request recomputes it.
type TransactionsSummary struct {
	QuantityIncomplete           int64 `json:"quantity_incomplete"`
	QuantityBeerBikeIncomplete   int64 `json:"quantity_beer_bike_incomplete"`
	QuantityWaitingOnPickup      int64 `json:"quantity_waiting_on_pickup"`
	QuantityWaitingOnSafetyCheck int64 `json:"quantity_waiting_on_safety_check"`
}
