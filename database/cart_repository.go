package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront-service/models"

	"github.com/redis/go-redis/v9"
)

type CartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCartRepository(client *redis.Client, ttl time.Duration) *CartRepository {
	return &CartRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *CartRepository) getKey(cartID string) string {
	return fmt.Sprintf("cart:%s", cartID)
}

func (r *CartRepository) GetCart(ctx context.Context, cartID string) (*models.Cart, error) {
	data, err := r.client.Get(ctx, r.getKey(cartID)).Result()
	if err == redis.Nil {
		// No cart found
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *CartRepository) SaveCart(ctx context.Context, cart *models.Cart) error {
	cart.UpdatedAt = time.Now()

	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, r.getKey(cart.ID), data, r.ttl).Err()
}

func (r *CartRepository) DeleteCart(ctx context.Context, cartID string) error {
	return r.client.Del(ctx, r.getKey(cartID)).Err()
}
