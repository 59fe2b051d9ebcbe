package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/dto"
)

// InquiryHandler accepts contact form submissions.
type InquiryHandler struct {
	facade InquiryFacade
}

// NewInquiryHandler constructs InquiryHandler.
func NewInquiryHandler(facade InquiryFacade) *InquiryHandler {
	return &InquiryHandler{facade: facade}
}

// Submit handles POST /api/inquiries.
func (h *InquiryHandler) Submit(c *gin.Context) {
	var req dto.InquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid inquiry")
		return
	}

	id, err := h.facade.SubmitInquiry(c.Request.Context(), req.Name, req.Email, req.Subject, req.Message)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidInquiry) {
			abortWithError(c, http.StatusBadRequest, "invalid inquiry")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "failed to submit inquiry")
		return
	}

	c.JSON(http.StatusCreated, dto.CreatedResponse{ID: id})
}

func toInquiryResponses(inquiries []model.Inquiry) []dto.InquiryResponse {
	response := make([]dto.InquiryResponse, 0, len(inquiries))
	for _, in := range inquiries {
		response = append(response, dto.InquiryResponse(in))
	}
	return response
}
