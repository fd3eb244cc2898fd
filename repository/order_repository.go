package repository

import (
	"context"

	"storefront-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByCheckoutSessionID(ctx context.Context, sessionID string) (*models.Order, error)
	// FindByRef looks an order up by its human-readable order number or,
	// when ref parses as a UUID, by internal ID.
	FindByRef(ctx context.Context, ref string) (*models.Order, error)
}

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new instance of GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: db}
}

// Create inserts the order and its items in one association write.
func (r *GormOrderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *GormOrderRepository) FindByCheckoutSessionID(ctx context.Context, sessionID string) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).
		Preload("OrderItems").
		Where("checkout_session_id = ?", sessionID).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormOrderRepository) FindByRef(ctx context.Context, ref string) (*models.Order, error) {
	var order models.Order

	query := r.db.WithContext(ctx).Preload("OrderItems")
	if id, err := uuid.Parse(ref); err == nil {
		query = query.Where("id = ? OR order_number = ?", id, ref)
	} else {
		query = query.Where("order_number = ?", ref)
	}

	if err := query.First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}
