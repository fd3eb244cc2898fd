package models

import "time"

// CartItem is ephemeral: it exists in a request or a redis-backed cart and is
// never persisted on its own.
type CartItem struct {
	ID       string  `json:"id" binding:"required"`
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price" binding:"min=0"`
	Quantity int     `json:"quantity" binding:"required,min=1"`
	Image    string  `json:"image,omitempty"`
}

type Cart struct {
	ID        string     `json:"id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// DeliveryDetails is immutable once submitted to checkout and is persisted
// serialized on the order.
type DeliveryDetails struct {
	Address      string `json:"address" binding:"required"`
	Borough      string `json:"borough" binding:"required"`
	City         string `json:"city" binding:"required"`
	Zip          string `json:"zip" binding:"required"`
	Date         string `json:"date" binding:"required"`
	Time         string `json:"time" binding:"required"`
	Instructions string `json:"instructions,omitempty"`
}

type CustomerInfo struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required"`
}

type CheckoutRequest struct {
	Customer      CustomerInfo    `json:"customer" binding:"required"`
	Delivery      DeliveryDetails `json:"delivery" binding:"required"`
	Items         []CartItem      `json:"items"`
	PaymentMethod string          `json:"paymentMethod" binding:"required"`
}
