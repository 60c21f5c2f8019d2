package types

// Canonical field names used by filter and aggregation operations. The same
// names appear as column/field names in every serialized format.
const (
	FieldOrderID         = "order_id"
	FieldCustomerID      = "customer_id"
	FieldProductID       = "product_id"
	FieldProductName     = "product_name"
	FieldCategory        = "category"
	FieldQuantity        = "quantity"
	FieldPrice           = "price"
	FieldTotalAmount     = "total_amount"
	FieldOrderDate       = "order_date"
	FieldShippingCountry = "shipping_country"
	FieldPaymentMethod   = "payment_method"
	FieldIsReturned      = "is_returned"
)

// StringField returns an accessor for a string-typed field. Scan-based
// handlers resolve the accessor once per operation, not per record.
func StringField(name string) (func(*Order) string, error) {
	switch name {
	case FieldOrderID:
		return func(o *Order) string { return o.OrderID }, nil
	case FieldProductName:
		return func(o *Order) string { return o.ProductName }, nil
	case FieldCategory:
		return func(o *Order) string { return o.Category }, nil
	case FieldShippingCountry:
		return func(o *Order) string { return o.ShippingCountry }, nil
	case FieldPaymentMethod:
		return func(o *Order) string { return o.PaymentMethod }, nil
	default:
		return nil, ErrUnknownField
	}
}

// FloatField returns an accessor for a numeric field, widened to float64.
func FloatField(name string) (func(*Order) float64, error) {
	switch name {
	case FieldCustomerID:
		return func(o *Order) float64 { return float64(o.CustomerID) }, nil
	case FieldProductID:
		return func(o *Order) float64 { return float64(o.ProductID) }, nil
	case FieldQuantity:
		return func(o *Order) float64 { return float64(o.Quantity) }, nil
	case FieldPrice:
		return func(o *Order) float64 { return o.Price }, nil
	case FieldTotalAmount:
		return func(o *Order) float64 { return o.TotalAmount }, nil
	default:
		return nil, ErrUnknownField
	}
}
