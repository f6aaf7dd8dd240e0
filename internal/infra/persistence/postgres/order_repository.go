package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// orderRepository implements repository.OrderRepository using GORM.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// Create persists an order with one item row per referenced product.
// GORM inserts the items in the same statement batch as the order.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUnknownProduct.WrapMessage("order references a missing product or principal")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt

	return nil
}

// ListByPrincipal returns the principal's orders with items and products preloaded.
func (repo *orderRepository) ListByPrincipal(ctx context.Context, principalID uuid.UUID) ([]*entity.Order, error) {
	var orderMs []*model.OrderModel
	err := repo.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Items.Product").
		Where("principal_id = ?", principalID).
		Order("created_at ASC").
		Find(&orderMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders by principal")
	}

	orders := make([]*entity.Order, 0, len(orderMs))
	for _, orderM := range orderMs {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, nil
}

// --- Mapper Functions ---

func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	order := &entity.Order{
		ID:          data.ID,
		PrincipalID: data.PrincipalID,
		ProductIDs:  make([]uuid.UUID, 0, len(data.Items)),
		Products:    make([]*entity.Product, 0, len(data.Items)),
		CreatedAt:   data.CreatedAt,
	}
	for _, item := range data.Items {
		order.ProductIDs = append(order.ProductIDs, item.ProductID)
		if item.Product != nil {
			order.Products = append(order.Products, toProductDomain(item.Product))
		}
	}

	return order
}

func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	items := make([]model.OrderItemModel, 0, len(data.ProductIDs))
	for i, productID := range data.ProductIDs {
		items = append(items, model.OrderItemModel{
			Position:  i,
			ProductID: productID,
		})
	}

	return &model.OrderModel{
		ID:          data.ID,
		PrincipalID: data.PrincipalID,
		Items:       items,
	}
}
