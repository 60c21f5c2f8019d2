// Package types provides core data types for formatbench.
package types

// Order represents a single synthetic e-commerce order record. Orders are
// immutable once generated: they live in one batch buffer on the way to a
// format writer and are never collected in memory across batches.
type Order struct {
	// OrderID is the unique order identifier (UUID string)
	OrderID string `json:"order_id"`

	// CustomerID identifies the customer who placed the order
	CustomerID int64 `json:"customer_id"`

	// ProductID identifies the purchased product
	ProductID int64 `json:"product_id"`

	// ProductName is the display name of the product
	ProductName string `json:"product_name"`

	// Category is the product category, drawn from a fixed vocabulary
	Category string `json:"category"`

	// Quantity is the number of units ordered (1-10)
	Quantity int32 `json:"quantity"`

	// Price is the unit price in dollars, rounded to cents
	Price float64 `json:"price"`

	// TotalAmount equals Quantity*Price, rounded to cents
	TotalAmount float64 `json:"total_amount"`

	// OrderDate is the Unix timestamp (milliseconds) of the order
	OrderDate int64 `json:"order_date"`

	// ShippingCountry is the destination country, drawn from a fixed vocabulary
	ShippingCountry string `json:"shipping_country"`

	// PaymentMethod is how the order was paid, drawn from a fixed vocabulary
	PaymentMethod string `json:"payment_method"`

	// IsReturned marks orders that were later returned
	IsReturned bool `json:"is_returned"`
}
