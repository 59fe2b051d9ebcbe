package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/dto"
)

const defaultSweepLimit = 100

// AdminHandler serves the dashboard endpoints.
type AdminHandler struct {
	facade AdminFacade
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(facade AdminFacade) *AdminHandler {
	return &AdminHandler{facade: facade}
}

// Orders handles GET /api/admin/orders.
func (h *AdminHandler) Orders(c *gin.Context) {
	orders, err := h.facade.AllOrders(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, toOrderResponses(orders))
}

// Order handles GET /api/admin/orders/:id.
func (h *AdminHandler) Order(c *gin.Context) {
	order, err := h.facade.OrderDetail(c.Request.Context(), c.Param("id"))
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

// UpdateOrderStatus handles PATCH /api/admin/orders/:id.
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid status")
		return
	}
	err := h.facade.UpdateOrderStatus(c.Request.Context(), c.Param("id"), model.OrderStatus(req.Status))
	writeStatusUpdate(c, err)
}

// Reservations handles GET /api/admin/reservations.
func (h *AdminHandler) Reservations(c *gin.Context) {
	reservations, err := h.facade.AllReservations(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, toReservationResponses(reservations))
}

// UpdateReservationStatus handles PATCH /api/admin/reservations/:id.
func (h *AdminHandler) UpdateReservationStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid status")
		return
	}
	err := h.facade.UpdateReservationStatus(c.Request.Context(), c.Param("id"), model.ReservationStatus(req.Status))
	writeStatusUpdate(c, err)
}

// Inquiries handles GET /api/admin/inquiries.
func (h *AdminHandler) Inquiries(c *gin.Context) {
	inquiries, err := h.facade.Inquiries(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, toInquiryResponses(inquiries))
}

// Sweep handles POST /api/admin/orders/sweep?limit=N.
func (h *AdminHandler) Sweep(c *gin.Context) {
	limit := defaultSweepLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			abortWithError(c, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	removed, err := h.facade.SweepOrphans(c.Request.Context(), limit)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.SweepResponse{Removed: removed})
}

func writeStatusUpdate(c *gin.Context, err error) {
	switch {
	case err == nil:
		c.Status(http.StatusNoContent)
	case errors.Is(err, domainErrors.ErrInvalidStatus):
		abortWithError(c, http.StatusBadRequest, "invalid status")
	case errors.Is(err, domainErrors.ErrNotFound):
		abortWithError(c, http.StatusNotFound, "not found")
	default:
		c.Status(http.StatusInternalServerError)
	}
}
