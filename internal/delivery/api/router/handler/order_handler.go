package handler

import (
	"log/slog"
	"net/http"
	"time"

	"storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/response"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	OrderUC usecase.OrderUsecase
	Logger  *slog.Logger
}

// OrderHandler serves the caller's orders. Every route sits behind the authorization gate.
type OrderHandler struct {
	orderUC usecase.OrderUsecase
	logger  *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler.
func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	return &OrderHandler{
		orderUC: params.OrderUC,
		logger:  params.Logger,
	}
}

// CreateOrderRequest lists product ids; the owner is never read from the body.
type CreateOrderRequest struct {
	Products []uuid.UUID `json:"products" validate:"required,min=1,max=100"`
}

// OrderResponse is the public view of an order.
type OrderResponse struct {
	ID         uuid.UUID         `json:"id"`
	ProductIDs []uuid.UUID       `json:"product_ids"`
	Products   []ProductResponse `json:"products,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

func toOrderResponse(order *entity.Order) OrderResponse {
	out := OrderResponse{
		ID:         order.ID,
		ProductIDs: order.ProductIDs,
		CreatedAt:  order.CreatedAt,
	}
	if out.ProductIDs == nil {
		out.ProductIDs = []uuid.UUID{}
	}
	for _, product := range order.Products {
		if product != nil {
			out.Products = append(out.Products, toProductResponse(product))
		}
	}

	return out
}

// CreateOrder places an order for the verified principal.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	principalID, ok := middleware.GetPrincipalID(c)
	if !ok {
		return domainerrors.NewAuthorizationError(domainerrors.MissingToken, nil)
	}

	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}

	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	order, err := h.orderUC.CreateOrder(c.Request().Context(), principalID, &usecase.CreateOrderInput{
		ProductIDs: req.Products,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toOrderResponse(order))
}

// ListOrders returns the caller's own orders.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	principalID, ok := middleware.GetPrincipalID(c)
	if !ok {
		return domainerrors.NewAuthorizationError(domainerrors.MissingToken, nil)
	}

	orders, err := h.orderUC.ListOrders(c.Request().Context(), principalID)
	if err != nil {
		return errors.WithStack(err)
	}

	out := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, toOrderResponse(order))
	}

	return response.Success(c, http.StatusOK, out)
}
