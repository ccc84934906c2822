package entity

import "time"

// InventoryItem tracks stock kept outside the public catalog.
// Quantity and Price are non-negative; the store enforces both.
type InventoryItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
