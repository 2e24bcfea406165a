package model

type ShippingMethod string

const (
	ShippingDHL          ShippingMethod = "DHL"
	ShippingDPD          ShippingMethod = "DPD"
	ShippingPocztaPolska ShippingMethod = "Poczta Polska"
)

var shippingCosts = map[ShippingMethod]Money{
	ShippingDHL:          NewMoney(15, 0),
	ShippingDPD:          NewMoney(12, 0),
	ShippingPocztaPolska: NewMoney(8, 50),
}

// ShippingMethods lists the methods in display order.
func ShippingMethods() []ShippingMethod {
	return []ShippingMethod{ShippingDHL, ShippingDPD, ShippingPocztaPolska}
}

// Cost returns the shipping price; unknown methods cost 0.
func (m ShippingMethod) Cost() Money {
	return shippingCosts[m]
}

func (m ShippingMethod) Valid() bool {
	_, ok := shippingCosts[m]
	return ok
}
