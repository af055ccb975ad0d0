package handler

import (
	"errors"
	"net/http"

	"github.com/Justinvibez/prime-vault/internal/middleware"
	"github.com/Justinvibez/prime-vault/internal/models"
	"github.com/gin-gonic/gin"
)

// respondDomainError maps the domain error taxonomy onto HTTP statuses. The
// error message carries the human-readable detail from the service layer.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		middleware.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrInsufficientFunds):
		middleware.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrForbidden):
		middleware.RespondWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, models.ErrNotFound):
		middleware.RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrConflict):
		middleware.RespondWithError(c, http.StatusConflict, err.Error())
	default:
		middleware.RespondWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}
