package view

import "time"

// OrderRow is one order in the account history table.
type OrderRow struct {
	OrderID   int64     `json:"order_id"`
	Number    string    `json:"number"`
	Status    string    `json:"status"`
	Items     int       `json:"items"`
	Total     string    `json:"total"`
	CreatedAt time.Time `json:"created_at"`
}

// OrdersPage is the paged order history payload.
type OrdersPage struct {
	Orders []OrderRow `json:"orders"`
	Total  int        `json:"total"`
	Page   int        `json:"page"`
}

// OrderConfirmation is rendered after a successful checkout.
type OrderConfirmation struct {
	OrderID int64  `json:"order_id"`
	Number  string `json:"number"`
	Total   string `json:"total"`
}
