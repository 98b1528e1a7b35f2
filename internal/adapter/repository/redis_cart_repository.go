package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"foodapp/internal/domain/entity"
	"foodapp/internal/domain/repository"
	"foodapp/pkg/errors"
)

const cartKeyPrefix = "cart:%s"

type redisCartRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCartRepository(rdb *redis.Client, ttl time.Duration) repository.CartRepository {
	return &redisCartRepository{
		rdb: rdb,
		ttl: ttl,
	}
}

func cartKey(customerID string) string {
	return fmt.Sprintf(cartKeyPrefix, customerID)
}

func (r *redisCartRepository) Get(ctx context.Context, customerID string) (*entity.Cart, error) {
	data, err := r.rdb.Get(ctx, cartKey(customerID)).Result()
	if err == redis.Nil {
		return &entity.Cart{CustomerID: customerID}, nil
	}
	if err != nil {
		return nil, errors.Internal("Failed to load cart", err)
	}

	var cart entity.Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return nil, errors.Internal("Failed to decode cart", err)
	}

	return &cart, nil
}

func (r *redisCartRepository) Save(ctx context.Context, cart *entity.Cart) error {
	cart.UpdatedAt = time.Now()

	data, err := json.Marshal(cart)
	if err != nil {
		return errors.Internal("Failed to encode cart", err)
	}

	if err := r.rdb.Set(ctx, cartKey(cart.CustomerID), data, r.ttl).Err(); err != nil {
		return errors.Internal("Failed to save cart", err)
	}

	return nil
}

func (r *redisCartRepository) Clear(ctx context.Context, customerID string) error {
	if err := r.rdb.Del(ctx, cartKey(customerID)).Err(); err != nil {
		return errors.Internal("Failed to clear cart", err)
	}
	return nil
}
