// server/internal/api/handlers/auth_handler.go
package handlers

import (
	"context"
	"errors"
	"net/http"

	"facility-accounts-api-server/internal/auth"
	"facility-accounts-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LoginAuthenticator interface {
	Authenticate(ctx context.Context, username, password string) (*models.Account, error)
}

type TokenIssuer interface {
	Issue(p auth.Principal) (string, error)
}

type AuthHandler struct {
	Authenticator LoginAuthenticator
	Issuer        TokenIssuer
	Logger        *zap.Logger
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.Authenticator.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		h.Logger.Error("login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	token, err := h.Issuer.Issue(account)
	if err != nil {
		h.Logger.Error("issue token failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"account": account,
	})
}
