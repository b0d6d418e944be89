package services_test

import (
	"testing"

	"modahaus/internal/domain"
	"modahaus/internal/services"
)

func sampleItems() []domain.CartItem {
	return []domain.CartItem{
		{ProductID: "shein-floral-maxi-gown", Quantity: 30, UnitPrice: 3500},
		{ProductID: "chiffon-ruffle-blouse", Quantity: 6, UnitPrice: 3000},
	}
}

func TestCalculateTotalsBreakdown(t *testing.T) {
	got := services.CalculateTotals(sampleItems(), domain.DeliveryRider)
	if got.Subtotal != 123000 {
		t.Fatalf("want subtotal 123000, got %v", got.Subtotal)
	}
	if got.VAT != 0 {
		t.Fatalf("orders are zero-rated; got VAT %v", got.VAT)
	}
	if got.DeliveryFee != 1 {
		t.Fatalf("want nominal rider fee 1, got %v", got.DeliveryFee)
	}
	if got.GrandTotal != 123001 {
		t.Fatalf("want grand total 123001, got %v", got.GrandTotal)
	}
	if got.DeliveryLabel != "Dispatch Rider" {
		t.Fatalf("bad label %q", got.DeliveryLabel)
	}
}

func TestCalculateTotalsDeliveryFees(t *testing.T) {
	cases := []struct {
		method domain.DeliveryMethod
		fee    float64
	}{
		{domain.DeliveryPickup, 0},
		{domain.DeliveryRider, 1},
		{domain.DeliveryPark, 1},
	}
	for _, tc := range cases {
		if got := services.CalculateTotals(sampleItems(), tc.method); got.DeliveryFee != tc.fee {
			t.Fatalf("%s: want fee %v, got %v", tc.method, tc.fee, got.DeliveryFee)
		}
	}
}

func TestCalculateTotalsIsPure(t *testing.T) {
	items := sampleItems()
	a := services.CalculateTotals(items, domain.DeliveryPark)
	b := services.CalculateTotals(items, domain.DeliveryPark)
	if a != b {
		t.Fatalf("same inputs gave different breakdowns: %+v vs %+v", a, b)
	}
	// Inputs untouched.
	if items[0].Quantity != 30 || items[1].UnitPrice != 3000 {
		t.Fatalf("inputs mutated: %+v", items)
	}
}

func TestCalculateTotalsEmptyCart(t *testing.T) {
	got := services.CalculateTotals(nil, domain.DeliveryPickup)
	if got.Subtotal != 0 || got.GrandTotal != 0 {
		t.Fatalf("empty cart should total zero: %+v", got)
	}
}
