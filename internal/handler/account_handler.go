package handler

import (
	"context"
	"net/http"

	"github.com/Justinvibez/prime-vault/internal/middleware"
	"github.com/Justinvibez/prime-vault/internal/models"
	"github.com/gin-gonic/gin"
)

// AccountFinder resolves accounts for authenticated reads.
type AccountFinder interface {
	FindByAccountNumber(ctx context.Context, accountNumber string) (*models.Account, error)
}

type AccountHandler struct {
	accounts AccountFinder
}

func NewAccountHandler(accounts AccountFinder) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// Me returns the authenticated caller's own account.
func (h *AccountHandler) Me(c *gin.Context) {
	accountNumber, ok := middleware.GetAccountNumber(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	account, err := h.accounts.FindByAccountNumber(c.Request.Context(), accountNumber)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": account})
}
