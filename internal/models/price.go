package models

import "github.com/uptrace/bun"

// PriceOption is an admin-managed ticket type. Paid bookings snapshot its
// name and amount, so edits only affect future purchases.
type PriceOption struct {
	bun.BaseModel `bun:"table:price_options"`

	ID          int64   `bun:"id,pk,autoincrement" json:"id"`
	Name        string  `bun:"name,notnull,unique" json:"name"`
	Amount      float64 `bun:"amount,notnull" json:"amount"`
	Description string  `bun:"description" json:"description"`
	Position    int     `bun:"position" json:"position"`
}
