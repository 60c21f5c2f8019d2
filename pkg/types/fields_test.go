package types

import (
	"errors"
	"testing"
)

func sampleOrder() *Order {
	return &Order{
		OrderID:         "8a6bdf6e-0001-4000-8000-000000000001",
		CustomerID:      42,
		ProductID:       7,
		ProductName:     "Compact Widget 7",
		Category:        "Electronics",
		Quantity:        3,
		Price:           19.99,
		TotalAmount:     59.97,
		OrderDate:       1735689600000,
		ShippingCountry: "Japan",
		PaymentMethod:   "credit_card",
		IsReturned:      false,
	}
}

func TestStringField(t *testing.T) {
	o := sampleOrder()

	tests := []struct {
		field string
		want  string
	}{
		{FieldOrderID, o.OrderID},
		{FieldProductName, "Compact Widget 7"},
		{FieldCategory, "Electronics"},
		{FieldShippingCountry, "Japan"},
		{FieldPaymentMethod, "credit_card"},
	}

	for _, tt := range tests {
		get, err := StringField(tt.field)
		if err != nil {
			t.Fatalf("StringField(%q): %v", tt.field, err)
		}
		if got := get(o); got != tt.want {
			t.Errorf("StringField(%q) = %q, want %q", tt.field, got, tt.want)
		}
	}
}

func TestFloatField(t *testing.T) {
	o := sampleOrder()

	tests := []struct {
		field string
		want  float64
	}{
		{FieldCustomerID, 42},
		{FieldProductID, 7},
		{FieldQuantity, 3},
		{FieldPrice, 19.99},
		{FieldTotalAmount, 59.97},
	}

	for _, tt := range tests {
		get, err := FloatField(tt.field)
		if err != nil {
			t.Fatalf("FloatField(%q): %v", tt.field, err)
		}
		if got := get(o); got != tt.want {
			t.Errorf("FloatField(%q) = %v, want %v", tt.field, got, tt.want)
		}
	}
}

func TestFieldLookup_Unknown(t *testing.T) {
	if _, err := StringField("no_such_field"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("want ErrUnknownField, got %v", err)
	}
	// Numeric fields are not string fields and vice versa.
	if _, err := StringField(FieldTotalAmount); !errors.Is(err, ErrUnknownField) {
		t.Errorf("type-mismatched lookup should fail, got %v", err)
	}
	if _, err := FloatField(FieldCategory); !errors.Is(err, ErrUnknownField) {
		t.Errorf("type-mismatched lookup should fail, got %v", err)
	}
}
