package services

import "modahaus/internal/domain"

// vatRate is the canonical VAT rate for order totals. Wholesale garment
// orders are currently zero-rated; the rate lives here so a future
// nonzero rate is a one-line change.
const vatRate = 0.0

// Totals is the checkout breakdown shown on the review step and stored
// on the order.
type Totals struct {
	Subtotal      float64
	VAT           float64
	DeliveryFee   float64
	GrandTotal    float64
	DeliveryLabel string
}

// CalculateTotals is a pure function of the cart lines and the chosen
// delivery method. Same inputs, same breakdown; no I/O.
func CalculateTotals(items []domain.CartItem, method domain.DeliveryMethod) Totals {
	subtotal := 0.0
	for _, it := range items {
		subtotal += it.LineTotal()
	}
	vat := subtotal * vatRate
	fee := method.Fee()
	return Totals{
		Subtotal:      subtotal,
		VAT:           vat,
		DeliveryFee:   fee,
		GrandTotal:    subtotal + vat + fee,
		DeliveryLabel: method.Label(),
	}
}
