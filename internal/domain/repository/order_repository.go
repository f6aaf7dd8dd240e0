package repository

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderRepository defines order persistence.
type OrderRepository interface {
	// Create persists the order and its product lines.
	Create(ctx context.Context, order *entity.Order) error

	// ListByPrincipal returns the principal's orders, oldest first, with products populated.
	ListByPrincipal(ctx context.Context, principalID uuid.UUID) ([]*entity.Order, error)
}
