package handler

import (
	"context"
	"net/http"

	"github.com/Justinvibez/prime-vault/internal/middleware"
	"github.com/Justinvibez/prime-vault/internal/models"
	"github.com/gin-gonic/gin"
)

// Registrar creates new accounts.
type Registrar interface {
	Register(ctx context.Context, name, email, password string) (*models.Account, error)
}

// Authenticator verifies credentials and issues tokens.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, *models.Account, error)
}

type AuthHandler struct {
	accounts Registrar
	auth     Authenticator
}

func NewAuthHandler(accounts Registrar, auth Authenticator) *AuthHandler {
	return &AuthHandler{accounts: accounts, auth: auth}
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type RegisterResponse struct {
	Message       string `json:"message"`
	AccountNumber string `json:"accountNumber"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token         string `json:"token"`
	AccountNumber string `json:"accountNumber"`
	IsAuthorized  bool   `json:"isAuthorized"`
	IsAdmin       bool   `json:"isAdmin"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	account, err := h.accounts.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, RegisterResponse{
		Message:       "Registered",
		AccountNumber: account.AccountNumber,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	token, account, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:         token,
		AccountNumber: account.AccountNumber,
		IsAuthorized:  account.IsAuthorized,
		IsAdmin:       account.IsAdmin,
	})
}
