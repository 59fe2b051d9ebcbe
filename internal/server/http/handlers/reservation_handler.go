package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/dto"
)

const submitBookingFailed = "failed to submit booking"

// ReservationHandler manages customer booking endpoints.
type ReservationHandler struct {
	facade ReservationFacade
}

// NewReservationHandler constructs ReservationHandler.
func NewReservationHandler(facade ReservationFacade) *ReservationHandler {
	return &ReservationHandler{facade: facade}
}

// Create handles POST /api/reservations.
func (h *ReservationHandler) Create(c *gin.Context) {
	var req dto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid reservation")
		return
	}

	id, err := h.facade.CreateReservation(c.Request.Context(), model.ReservationInput{
		UserID:         CurrentUserID(c),
		ServiceName:    req.ServiceName,
		FullName:       req.FullName,
		Email:          req.Email,
		Phone:          req.Phone,
		PreferredDate:  req.PreferredDate,
		PreferredTime:  req.PreferredTime,
		ServiceAddress: req.ServiceAddress,
		Notes:          req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidReservation):
			abortWithError(c, http.StatusBadRequest, "invalid reservation")
		case errors.Is(err, domainErrors.ErrUserNotVerified):
			abortWithError(c, http.StatusForbidden, submitBookingFailed)
		default:
			abortWithError(c, http.StatusInternalServerError, submitBookingFailed)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.CreatedResponse{ID: id})
}

// List handles GET /api/reservations.
func (h *ReservationHandler) List(c *gin.Context) {
	reservations, err := h.facade.Reservations(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, toReservationResponses(reservations))
}

func toReservationResponses(reservations []model.Reservation) []dto.ReservationResponse {
	response := make([]dto.ReservationResponse, 0, len(reservations))
	for _, r := range reservations {
		response = append(response, dto.ReservationResponse{
			ID:             r.ID,
			UserID:         r.UserID,
			ServiceName:    r.ServiceName,
			FullName:       r.FullName,
			Email:          r.Email,
			Phone:          r.Phone,
			PreferredDate:  r.PreferredDate,
			PreferredTime:  r.PreferredTime,
			ServiceAddress: r.ServiceAddress,
			Notes:          r.Notes,
			Status:         string(r.Status),
			CreatedAt:      r.CreatedAt,
		})
	}
	return response
}
