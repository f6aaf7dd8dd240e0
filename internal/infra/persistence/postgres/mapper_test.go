package postgres

import (
	"testing"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderMapping_PreservesPositionsAndDuplicates(t *testing.T) {
	p1, p2 := uuid.New(), uuid.New()
	order := &entity.Order{
		PrincipalID: uuid.New(),
		ProductIDs:  []uuid.UUID{p1, p2, p1},
	}

	orderM := fromOrderDomain(order)
	require.Len(t, orderM.Items, 3)
	for i, item := range orderM.Items {
		assert.Equal(t, i, item.Position)
		assert.Equal(t, order.ProductIDs[i], item.ProductID)
	}
	assert.Equal(t, order.PrincipalID, orderM.PrincipalID)
}

func TestToOrderDomain_PopulatesProducts(t *testing.T) {
	now := time.Now()
	product := &model.ProductModel{ID: uuid.New(), Name: "Widget", Price: 9.5}
	orderM := &model.OrderModel{
		ID:          uuid.New(),
		PrincipalID: uuid.New(),
		CreatedAt:   now,
		Items: []model.OrderItemModel{
			{Position: 0, ProductID: product.ID, Product: product},
			{Position: 1, ProductID: product.ID, Product: product},
		},
	}

	order := toOrderDomain(orderM)
	require.NotNil(t, order)
	assert.Equal(t, orderM.ID, order.ID)
	assert.Equal(t, orderM.PrincipalID, order.PrincipalID)
	assert.Equal(t, []uuid.UUID{product.ID, product.ID}, order.ProductIDs)
	require.Len(t, order.Products, 2)
	assert.Equal(t, "Widget", order.Products[0].Name)
	assert.Equal(t, 9.5, order.Products[1].Price)
	assert.Equal(t, now, order.CreatedAt)
}

func TestPrincipalMapping_RoundTripKeepsDigest(t *testing.T) {
	principal := &entity.Principal{
		ID:           uuid.New(),
		DisplayName:  "alice",
		PasswordHash: "$2a$04$digest",
	}

	back := toPrincipalDomain(fromPrincipalDomain(principal))
	assert.Equal(t, principal.ID, back.ID)
	assert.Equal(t, principal.DisplayName, back.DisplayName)
	assert.Equal(t, principal.PasswordHash, back.PasswordHash)
}

func TestMappers_NilSafe(t *testing.T) {
	assert.Nil(t, toPrincipalDomain(nil))
	assert.Nil(t, fromPrincipalDomain(nil))
	assert.Nil(t, toProductDomain(nil))
	assert.Nil(t, fromProductDomain(nil))
	assert.Nil(t, toOrderDomain(nil))
	assert.Nil(t, fromOrderDomain(nil))
}
