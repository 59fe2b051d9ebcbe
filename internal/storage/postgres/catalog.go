package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront/internal/domain/model"
)

type profileRepository struct {
	storage *Storage
}

type productRepository struct {
	storage *Storage
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*model.Profile, error) {
	const query = `SELECT id::text, email FROM profiles WHERE id=$1`
	var p model.Profile
	if err := r.storage.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Email); err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	const query = `SELECT id::text, name, price::text FROM products WHERE id=$1`
	var (
		p     model.Product
		price string
	)
	if err := r.storage.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &price); err != nil {
		return nil, mapError(err)
	}
	var err error
	if p.Price, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("product %s price: %w", id, err)
	}
	return &p, nil
}
