package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateOrderInput lists the referenced products in submission order.
type CreateOrderInput struct {
	ProductIDs []uuid.UUID
}

// OrderUsecase defines user-scoped order operations.
// The principal always comes from the authorization gate, never from the request body.
type OrderUsecase interface {
	CreateOrder(ctx context.Context, principalID uuid.UUID, input *CreateOrderInput) (*entity.Order, error)
	ListOrders(ctx context.Context, principalID uuid.UUID) ([]*entity.Order, error)
}
