package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/dto"
)

const placeOrderFailed = "failed to place order"

// OrderHandler manages customer order endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid order")
		return
	}

	id, err := h.facade.PlaceOrder(c.Request.Context(), toPlaceOrderInput(CurrentUserID(c), req))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidOrder):
			abortWithError(c, http.StatusBadRequest, "invalid order")
		case errors.Is(err, domainErrors.ErrUserNotVerified):
			abortWithError(c, http.StatusForbidden, placeOrderFailed)
		case errors.Is(err, domainErrors.ErrProductNotFound):
			abortWithError(c, http.StatusUnprocessableEntity, placeOrderFailed)
		default:
			abortWithError(c, http.StatusInternalServerError, placeOrderFailed)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.CreatedResponse{ID: id})
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, toOrderResponses(orders))
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.facade.Order(c.Request.Context(), CurrentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			abortWithError(c, http.StatusNotFound, "order not found")
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

func toPlaceOrderInput(userID string, req dto.CreateOrderRequest) model.PlaceOrderInput {
	items := make([]model.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, model.OrderItemInput{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}
	return model.PlaceOrderInput{
		UserID: userID,
		Status: model.OrderStatus(req.Status),
		DeliveryAddress: model.DeliveryAddress{
			District: req.DeliveryAddress.District,
			Village:  req.DeliveryAddress.Village,
			Cell:     req.DeliveryAddress.Cell,
			Phone:    req.DeliveryAddress.Phone,
			Notes:    req.DeliveryAddress.Notes,
		},
		Items: items,
	}
}

func toOrderResponses(orders []model.Order) []dto.OrderResponse {
	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}
	return response
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:            order.ID,
		UserID:        order.UserID,
		CustomerEmail: order.CustomerEmail,
		Status:        string(order.Status),
		TotalPrice:    order.TotalPrice,
		DeliveryAddress: dto.DeliveryAddress{
			District: order.DeliveryAddress.District,
			Village:  order.DeliveryAddress.Village,
			Cell:     order.DeliveryAddress.Cell,
			Phone:    order.DeliveryAddress.Phone,
			Notes:    order.DeliveryAddress.Notes,
		},
		CreatedAt: order.CreatedAt,
	}
	for _, item := range order.Items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}
	return resp
}
