package models

// All lists the catalog models in dependency order, for AutoMigrate.
func All() []any {
	return []any{
		&Region{},
		&Product{},
		&Item{},
		&ItemRegionPrice{},
		&QuantityDiscount{},
		&QuantityDiscountRegion{},
		&Sale{},
		&ShippingType{},
		&ShippingRate{},
	}
}
