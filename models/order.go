package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order status lifecycle. Webhook materialization only ever writes
// StatusDepositPaid or StatusConfirmed; later transitions are administrative.
const (
	StatusPending     = "pending"
	StatusDepositPaid = "deposit_paid"
	StatusConfirmed   = "confirmed"
	StatusPreparing   = "preparing"
	StatusReady       = "ready"
	StatusDelivered   = "delivered"
	StatusCancelled   = "cancelled"
)

type Order struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderNumber string    `gorm:"uniqueIndex;not null" json:"order_number"`

	// A registered user reference or guest contact fields, never both.
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	GuestEmail *string    `json:"guest_email,omitempty"`
	GuestName  *string    `json:"guest_name,omitempty"`
	GuestPhone *string    `json:"guest_phone,omitempty"`

	Status        string   `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Subtotal      float64  `gorm:"not null" json:"subtotal"`
	DepositAmount *float64 `json:"deposit_amount,omitempty"`
	DepositPaid   bool     `gorm:"not null;default:false" json:"deposit_paid"`
	TotalAmount   float64  `gorm:"not null" json:"total_amount"`
	AmountPaid    float64  `gorm:"not null;default:0" json:"amount_paid"`

	PaymentMethod string `gorm:"type:varchar(20)" json:"payment_method"`
	// Stripe checkout session ID. The unique index is the idempotency
	// guarantee against redelivered or concurrent completed events.
	CheckoutSessionID string  `gorm:"uniqueIndex;not null" json:"-"`
	PaymentIntentID   *string `json:"-"`

	DeliveryBorough     *string `json:"delivery_borough,omitempty"`
	DeliveryAddress     *string `json:"delivery_address,omitempty"` // serialized DeliveryDetails
	DeliveryDate        *string `json:"delivery_date,omitempty"`
	DeliveryTime        *string `json:"delivery_time,omitempty"`
	SpecialInstructions *string `json:"special_instructions,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	OrderItems []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem snapshots a purchased line at order time. ProductName is captured
// so later catalog edits do not rewrite order history.
type OrderItem struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID         uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	ProductID       string    `gorm:"not null" json:"product_id"`
	ProductName     string    `gorm:"not null" json:"product_name"`
	Quantity        int       `gorm:"not null" json:"quantity"`
	PriceAtPurchase float64   `gorm:"not null" json:"price_at_purchase"`
}
