package impl

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	mockRepo "storefront/internal/mocks/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderServiceFixtures struct {
	service   usecase.OrderUsecase
	txManager *mockRepo.MockTransactionManager
	orderRepo *mockRepo.MockOrderRepository
}

func createTestOrderService(t *testing.T) orderServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	orderRepo := mockRepo.NewMockOrderRepository(t)

	return orderServiceFixtures{
		service: NewOrderService(OrderServiceParams{
			TxManager: txManager,
			OrderRepo: orderRepo,
			Logger:    newDiscardLogger(),
		}),
		txManager: txManager,
		orderRepo: orderRepo,
	}
}

func TestOrderService_CreateOrder_KeepsDuplicatesAndOwner(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	principalID := uuid.New()
	coffee, tea := uuid.New(), uuid.New()
	orderID := uuid.New()

	expectTransaction(t, fx.txManager, func(factory *mockRepo.MockRepositoryFactory) {
		txProductRepo := mockRepo.NewMockProductRepository(t)
		txOrderRepo := mockRepo.NewMockOrderRepository(t)
		factory.EXPECT().ProductRepo().Return(txProductRepo)
		factory.EXPECT().OrderRepo().Return(txOrderRepo)

		txProductRepo.EXPECT().CountExisting(ctx, []uuid.UUID{coffee, tea}).Return(int64(2), nil)
		txOrderRepo.EXPECT().
			Create(ctx, mock.MatchedBy(func(o *entity.Order) bool {
				return o.PrincipalID == principalID && len(o.ProductIDs) == 3
			})).
			Run(func(_ context.Context, o *entity.Order) {
				o.ID = orderID
			}).
			Return(nil)
	})

	order, err := fx.service.CreateOrder(ctx, principalID, &usecase.CreateOrderInput{
		ProductIDs: []uuid.UUID{coffee, tea, coffee},
	})

	require.NoError(t, err)
	assert.Equal(t, orderID, order.ID)
	assert.Equal(t, principalID, order.PrincipalID)
	assert.Equal(t, []uuid.UUID{coffee, tea, coffee}, order.ProductIDs)
}

func TestOrderService_CreateOrder_UnknownProduct(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	known, unknown := uuid.New(), uuid.New()

	expectTransaction(t, fx.txManager, func(factory *mockRepo.MockRepositoryFactory) {
		txProductRepo := mockRepo.NewMockProductRepository(t)
		factory.EXPECT().ProductRepo().Return(txProductRepo)
		txProductRepo.EXPECT().CountExisting(ctx, []uuid.UUID{known, unknown}).Return(int64(1), nil)
	})

	order, err := fx.service.CreateOrder(ctx, uuid.New(), &usecase.CreateOrderInput{
		ProductIDs: []uuid.UUID{known, unknown},
	})

	assert.Nil(t, order)
	assert.True(t, errors.Is(err, domainerrors.ErrUnknownProduct))
}

func TestOrderService_CreateOrder_Validation(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()

	_, err := fx.service.CreateOrder(ctx, uuid.New(), &usecase.CreateOrderInput{})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	_, err = fx.service.CreateOrder(ctx, uuid.Nil, &usecase.CreateOrderInput{ProductIDs: []uuid.UUID{uuid.New()}})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestOrderService_CreateOrder_StoreFailure(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	dbErr := errors.New("db down")

	expectTransaction(t, fx.txManager, func(factory *mockRepo.MockRepositoryFactory) {
		txProductRepo := mockRepo.NewMockProductRepository(t)
		factory.EXPECT().ProductRepo().Return(txProductRepo)
		txProductRepo.EXPECT().CountExisting(ctx, mock.Anything).Return(int64(0), dbErr)
	})

	_, err := fx.service.CreateOrder(ctx, uuid.New(), &usecase.CreateOrderInput{ProductIDs: []uuid.UUID{uuid.New()}})

	assert.True(t, errors.Is(err, dbErr))
	assert.False(t, errors.Is(err, domainerrors.ErrUnknownProduct))
}

func TestOrderService_ListOrders(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	principalID := uuid.New()
	orders := []*entity.Order{{ID: uuid.New(), PrincipalID: principalID}}
	fx.orderRepo.EXPECT().ListByPrincipal(ctx, principalID).Return(orders, nil)

	got, err := fx.service.ListOrders(ctx, principalID)

	require.NoError(t, err)
	assert.Equal(t, orders, got)
}

func TestDistinctIDs_PreservesFirstOccurrenceOrder(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	assert.Equal(t, []uuid.UUID{a, b, c}, distinctIDs([]uuid.UUID{a, b, a, c, b}))
	assert.Empty(t, distinctIDs(nil))
}
