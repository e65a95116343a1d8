package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wrenfeed/social-api/internal/middleware"
	"github.com/wrenfeed/social-api/internal/models"
)

// AccountManager defines the account operations used by AccountHandler.
type AccountManager interface {
	Register(candidate *models.Account) (*models.Account, error)
	Login(credentials *models.Account) (*models.Account, error)
}

type AccountHandler struct {
	accounts AccountManager
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=4"`
}

func NewAccountHandler(accounts AccountManager) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

func (h *AccountHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	account, err := h.accounts.Register(&models.Account{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Failed to register account")
		return
	}
	if account == nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid registration details")
		return
	}

	c.JSON(http.StatusOK, account)
}

// Login performs a single stateless credential check. Unknown usernames and
// wrong passwords both come back as 401.
func (h *AccountHandler) Login(c *gin.Context) {
	var credentials models.Account
	if err := c.ShouldBindJSON(&credentials); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	account, err := h.accounts.Login(&credentials)
	if err != nil || account == nil {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	c.JSON(http.StatusOK, account)
}
