// server/internal/api/handlers/account_handler.go
package handlers

import (
	"context"
	"errors"
	"net/http"

	"facility-accounts-api-server/internal/accounts"
	"facility-accounts-api-server/internal/api/middleware"
	"facility-accounts-api-server/internal/models"
	"facility-accounts-api-server/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AccountCreator is implemented by accounts.Factory.
type AccountCreator interface {
	CreateAccount(ctx context.Context, username, password string, fields models.Fields) (*models.Account, error)
	CreateSuperuser(ctx context.Context, username, password string, fields models.Fields) (*models.Account, error)
}

// AccountReader looks accounts up by login name or id.
type AccountReader interface {
	FindByUsername(ctx context.Context, username string) (*models.Account, error)
	FindByID(ctx context.Context, id string) (*models.Account, error)
}

type AccountHandler struct {
	Creator AccountCreator
	Reader  AccountReader
	Logger  *zap.Logger
}

type CreateAccountRequest struct {
	Username     string  `json:"username"`
	Password     string  `json:"password"`
	Email        string  `json:"email"`
	FacilityName string  `json:"facility_name"`
	PhoneNum1    string  `json:"phone_num1"`
	PhoneNum2    *string `json:"phone_num2"`
	Address      *string `json:"address"`
	IsStaff      *bool   `json:"is_staff"`
	IsSuperuser  *bool   `json:"is_superuser"`
	IsActive     *bool   `json:"is_active"`
}

func (r CreateAccountRequest) fields() models.Fields {
	return models.Fields{
		Email:        r.Email,
		FacilityName: r.FacilityName,
		PhoneNum1:    r.PhoneNum1,
		PhoneNum2:    r.PhoneNum2,
		Address:      r.Address,
		IsStaff:      r.IsStaff,
		IsSuperuser:  r.IsSuperuser,
		IsActive:     r.IsActive,
	}
}

// CreateAccount tạo một account thường
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	h.create(c, h.Creator.CreateAccount)
}

// CreateSuperuser tạo một account có quyền quản trị
func (h *AccountHandler) CreateSuperuser(c *gin.Context) {
	h.create(c, h.Creator.CreateSuperuser)
}

type createFunc func(ctx context.Context, username, password string, fields models.Fields) (*models.Account, error)

func (h *AccountHandler) create(c *gin.Context, create createFunc) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := create(c.Request.Context(), req.Username, req.Password, req.fields())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, account)
}

// GetAccount lấy thông tin account theo username
func (h *AccountHandler) GetAccount(c *gin.Context) {
	account, err := h.Reader.FindByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

// Me returns the account the bearer token was issued for.
func (h *AccountHandler) Me(c *gin.Context) {
	account, err := h.Reader.FindByID(c.Request.Context(), c.GetString(middleware.KeyAccountID))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func (h *AccountHandler) respondError(c *gin.Context, err error) {
	var verr *accounts.ValidationError
	var uerr *store.UniquenessError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "details": verr})
	case errors.As(err, &uerr):
		c.JSON(http.StatusConflict, gin.H{"error": uerr.Error(), "field": uerr.Field})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
	default:
		h.logger().Error("account request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func (h *AccountHandler) logger() *zap.Logger {
	if h.Logger == nil {
		return zap.NewNop()
	}
	return h.Logger
}
