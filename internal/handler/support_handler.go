package handler

import (
	"context"
	"net/http"

	"github.com/Justinvibez/prime-vault/internal/middleware"
	"github.com/Justinvibez/prime-vault/internal/models"
	"github.com/gin-gonic/gin"
)

// SupportSubmitter appends user messages to the support inbox.
type SupportSubmitter interface {
	Submit(ctx context.Context, accountNumber, subject, message string) (*models.SupportMessage, error)
}

type SupportHandler struct {
	support SupportSubmitter
}

func NewSupportHandler(support SupportSubmitter) *SupportHandler {
	return &SupportHandler{support: support}
}

type SupportRequest struct {
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=4000"`
}

func (h *SupportHandler) Submit(c *gin.Context) {
	accountNumber, ok := middleware.GetAccountNumber(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req SupportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	if _, err := h.support.Submit(c.Request.Context(), accountNumber, req.Subject, req.Message); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Support message submitted"})
}
