package models

// Tables lists every entity in foreign-key dependency order:
// a table only references tables that appear before it.
func Tables() []interface{} {
	return []interface{}{
		&User{},
		&Category{},
		&Product{},
		&Order{},
		&OrderDetail{},
		&ShippingAddress{},
		&CartItem{},
		&PaymentMethod{},
		&OrderPayment{},
		&ProductReview{},
		&PaymentHistory{},
	}
}
