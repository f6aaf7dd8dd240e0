package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager repository.TransactionManager
	orderRepo repository.OrderRepository
	logger    *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	OrderRepo repository.OrderRepository
	Logger    *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager: params.TxManager,
		orderRepo: params.OrderRepo,
		logger:    params.Logger,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateOrder stores an order owned by principalID after checking every referenced product exists.
func (srv *orderService) CreateOrder(ctx context.Context, principalID uuid.UUID, input *usecase.CreateOrderInput) (*entity.Order, error) {
	if principalID == uuid.Nil {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("order owner is required")
	}
	if input == nil || len(input.ProductIDs) == 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("order must reference at least one product")
	}

	distinct := distinctIDs(input.ProductIDs)
	order := &entity.Order{
		PrincipalID: principalID,
		ProductIDs:  append([]uuid.UUID(nil), input.ProductIDs...),
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.ProductRepo().CountExisting(ctx, distinct)
		if err != nil {
			return errors.Wrap(err, "failed to check referenced products")
		}
		if found != int64(len(distinct)) {
			return domainerrors.ErrUnknownProduct.WrapMessage("order references an unknown product")
		}

		return repoFactory.OrderRepo().Create(ctx, order)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrUnknownProduct) {
			srv.log(ctx).Warn("Order rejected, unknown product reference", slog.String("principalID", principalID.String()))

			return nil, err
		}

		srv.log(ctx).Error("Failed to create order", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create order")
	}

	srv.log(ctx).Info("Order created",
		slog.String("orderID", order.ID.String()),
		slog.String("principalID", principalID.String()),
		slog.Int("lines", len(order.ProductIDs)))

	return order, nil
}

// ListOrders returns only the orders owned by principalID.
func (srv *orderService) ListOrders(ctx context.Context, principalID uuid.UUID) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.ListByPrincipal(ctx, principalID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

func distinctIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}
