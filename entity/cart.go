package entity

// CartLine is one cart entry, keyed by menu item id. The unit price is
// captured when the line is created and never re-derived.
type CartLine struct {
	ItemID    int     `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     *string `json:"image,omitempty"`
}

// Subtotal is unit price times quantity for this line.
func (l *CartLine) Subtotal() float64 {
	return l.UnitPrice * float64(l.Quantity)
}
