package entity

import "math"

type CheckoutItem struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"` // em dólares
	Quantity int     `json:"quantity"`
}

// UnitAmountCents converts the dollar price to the smallest currency unit.
func (i CheckoutItem) UnitAmountCents() int64 {
	return int64(math.Round(i.Price * 100))
}
