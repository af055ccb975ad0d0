package handler

import (
	"context"
	"net/http"

	"github.com/Justinvibez/prime-vault/internal/middleware"
	"github.com/Justinvibez/prime-vault/internal/models"
	"github.com/Justinvibez/prime-vault/internal/money"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// AdminCommander performs privileged balance and authorization changes.
type AdminCommander interface {
	Deposit(ctx context.Context, accountNumber string, amountCents int64) (*models.LedgerEntry, error)
	SetAuthorization(ctx context.Context, accountNumber string, authorized bool) (*models.Account, error)
}

type AdminHandler struct {
	admin AdminCommander
}

func NewAdminHandler(admin AdminCommander) *AdminHandler {
	return &AdminHandler{admin: admin}
}

type DepositRequest struct {
	AccountNumber string          `json:"accountNumber" validate:"required,len=10,numeric"`
	Amount        decimal.Decimal `json:"amount"`
}

type DepositResponse struct {
	Message string              `json:"message"`
	Entry   *models.LedgerEntry `json:"entry"`
}

type AuthorizeRequest struct {
	AccountNumber string `json:"accountNumber" validate:"required,len=10,numeric"`
	Authorize     *bool  `json:"authorize" validate:"required"`
}

func (h *AdminHandler) Deposit(c *gin.Context) {
	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	amountCents, err := money.ToCents(req.Amount)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	entry, err := h.admin.Deposit(c.Request.Context(), req.AccountNumber, amountCents)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, DepositResponse{
		Message: "Deposited",
		Entry:   entry,
	})
}

func (h *AdminHandler) Authorize(c *gin.Context) {
	var req AuthorizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	account, err := h.admin.SetAuthorization(c.Request.Context(), req.AccountNumber, *req.Authorize)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Updated authorization",
		"accountNumber": account.AccountNumber,
		"isAuthorized":  account.IsAuthorized,
	})
}
