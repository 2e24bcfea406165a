package model

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCanceled  OrderStatus = "CANCELED"
)

// OrderRequest is the checkout form sent with POST /orders.
type OrderRequest struct {
	FirstName      string         `json:"firstName"`
	LastName       string         `json:"lastName"`
	Street         string         `json:"street"`
	City           string         `json:"city"`
	ZipCode        string         `json:"zipCode"`
	ShippingMethod ShippingMethod `json:"shippingMethod"`
	TotalAmount    Money          `json:"totalAmount"`
	CouponCode     *string        `json:"couponCode"`
}

type OrderItem struct {
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int64  `json:"quantity"`
	Price       Money  `json:"price"`
}

type Order struct {
	ID             string         `json:"id"`
	Status         OrderStatus    `json:"status"`
	TotalAmount    Money          `json:"totalAmount"`
	ShippingMethod ShippingMethod `json:"shippingMethod,omitempty"`
	CouponCode     string         `json:"couponCode,omitempty"`
	CreatedAt      string         `json:"createdAt,omitempty"`
	Items          []OrderItem    `json:"items"`
}
