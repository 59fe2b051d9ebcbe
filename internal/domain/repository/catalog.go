package repository

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// ProfileRepository reads user profiles.
type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*model.Profile, error)
}

// ProductRepository reads catalog products.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*model.Product, error)
}
