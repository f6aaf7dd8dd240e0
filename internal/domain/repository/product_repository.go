package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProductNotFound is returned when a product does not exist.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines catalog persistence.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)

	// Update overwrites name and price; returns ErrProductNotFound when nothing matched.
	Update(ctx context.Context, product *entity.Product) error

	// Delete removes a product; returns ErrProductNotFound when nothing matched.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountExisting returns how many of the distinct ids exist.
	CountExisting(ctx context.Context, ids []uuid.UUID) (int64, error)
}
