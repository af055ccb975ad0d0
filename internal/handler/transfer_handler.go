package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Justinvibez/prime-vault/internal/middleware"
	"github.com/Justinvibez/prime-vault/internal/models"
	"github.com/Justinvibez/prime-vault/internal/money"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// TransferCommander moves money and lists ledger entries.
type TransferCommander interface {
	Transfer(ctx context.Context, fromAccount, toAccount string, amountCents int64, note string) (*models.LedgerEntry, error)
	ListForAccount(ctx context.Context, accountNumber string, limit int) ([]models.LedgerEntry, error)
}

type TransferHandler struct {
	transfers TransferCommander
}

func NewTransferHandler(transfers TransferCommander) *TransferHandler {
	return &TransferHandler{transfers: transfers}
}

type TransferRequest struct {
	ToAccount string          `json:"toAccount" validate:"required,len=10,numeric"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note" validate:"max=280"`
}

type TransferResponse struct {
	Message string              `json:"message"`
	Entry   *models.LedgerEntry `json:"entry"`
}

func (h *TransferHandler) Transfer(c *gin.Context) {
	fromAccount, ok := middleware.GetAccountNumber(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req TransferRequest
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

	entry, err := h.transfers.Transfer(c.Request.Context(), fromAccount, req.ToAccount, amountCents, req.Note)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, TransferResponse{
		Message: "Transfer successful",
		Entry:   entry,
	})
}

// ListTransactions returns the caller's ledger entries, newest first.
func (h *TransferHandler) ListTransactions(c *gin.Context) {
	accountNumber, ok := middleware.GetAccountNumber(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	limit := models.DefaultLedgerLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			middleware.RespondWithError(c, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = parsed
	}

	entries, err := h.transfers.ListForAccount(c.Request.Context(), accountNumber, limit)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	if entries == nil {
		entries = []models.LedgerEntry{}
	}

	c.JSON(http.StatusOK, gin.H{"transactions": entries})
}
