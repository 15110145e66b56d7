package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"facility-accounts-api-server/internal/auth"
	"facility-accounts-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedRouter(issuer *auth.TokenIssuer, guards ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{Authenticate(issuer)}, guards...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"account_id": c.GetString(KeyAccountID),
			"username":   c.GetString(KeyUsername),
		})
	})
	r.GET("/protected", handlers...)
	return r
}

func get(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func tokenFor(t *testing.T, issuer *auth.TokenIssuer, staff, superuser bool) string {
	t.Helper()
	token, err := issuer.Issue(&models.Account{ID: "acc-1", Username: "clinic", IsStaff: staff, IsSuperuser: superuser, IsActive: true})
	require.NoError(t, err)
	return token
}

func TestAuthenticate(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	r := newProtectedRouter(issuer)

	assert.Equal(t, http.StatusUnauthorized, get(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer not-a-jwt").Code)

	w := get(r, "Bearer "+tokenFor(t, issuer, false, false))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"account_id":"acc-1"`)
	assert.Contains(t, w.Body.String(), `"username":"clinic"`)
}

func TestRequireStaff(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	r := newProtectedRouter(issuer, RequireStaff())

	assert.Equal(t, http.StatusForbidden, get(r, "Bearer "+tokenFor(t, issuer, false, false)).Code)
	assert.Equal(t, http.StatusOK, get(r, "Bearer "+tokenFor(t, issuer, true, false)).Code)
}

func TestRequireSuperuser(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	r := newProtectedRouter(issuer, RequireSuperuser())

	assert.Equal(t, http.StatusForbidden, get(r, "Bearer "+tokenFor(t, issuer, true, false)).Code)
	assert.Equal(t, http.StatusOK, get(r, "Bearer "+tokenFor(t, issuer, true, true)).Code)
}

func TestRequireFlag_WithoutAuthenticate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequireSuperuser(), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusInternalServerError, get(r, "").Code)
}
