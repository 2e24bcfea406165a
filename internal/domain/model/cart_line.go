package model

import "encoding/json"

// ServerCartItem is one row of GET /cart.
type ServerCartItem struct {
	Product  Product `json:"product"`
	Quantity int64   `json:"quantity"`
}

// CartLine is a product with the quantity held in the cart.
// Quantity is always >= 1; a line that reaches 0 is dropped.
type CartLine struct {
	Product
	Quantity int64 `json:"quantity"`
}

// UnmarshalJSON reads the quantity separately; Product.UnmarshalJSON is promoted.
func (l *CartLine) UnmarshalJSON(b []byte) error {
	var p Product
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	var q struct {
		Quantity int64 `json:"quantity"`
	}
	if err := json.Unmarshal(b, &q); err != nil {
		return err
	}
	l.Product = p
	l.Quantity = q.Quantity
	return nil
}

// Subtotal is price × quantity for the line.
func (l CartLine) Subtotal() Money {
	return l.Price.Mul(l.Quantity)
}

// LinesFromServer maps the server cart into lines, keeping server order.
func LinesFromServer(items []ServerCartItem) []CartLine {
	lines := make([]CartLine, 0, len(items))
	for _, it := range items {
		if it.Quantity < 1 {
			continue
		}
		lines = append(lines, CartLine{Product: it.Product, Quantity: it.Quantity})
	}
	return lines
}

// CartTotal sums the lines. Never cached.
func CartTotal(lines []CartLine) Money {
	var total Money
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total
}
