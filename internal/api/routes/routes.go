// server/internal/api/routes/routes.go
package routes

import (
	"net/http"
	"time"

	"facility-accounts-api-server/config"
	"facility-accounts-api-server/internal/api/handlers"
	"facility-accounts-api-server/internal/api/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dependencies are the components the router hands to its handlers.
type Dependencies struct {
	Creator       handlers.AccountCreator
	Reader        handlers.AccountReader
	Authenticator handlers.LoginAuthenticator
	Tokens        interface {
		handlers.TokenIssuer
		middleware.TokenParser
	}
	Logger *zap.Logger
}

// SetupRouter nhận vào các thành phần phụ thuộc và thiết lập các route
func SetupRouter(deps Dependencies, cfg config.Config) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(cors.New(corsConfig(cfg.Server.AllowedOrigins)))

	accountHandler := &handlers.AccountHandler{Creator: deps.Creator, Reader: deps.Reader, Logger: deps.Logger}
	authHandler := &handlers.AuthHandler{Authenticator: deps.Authenticator, Issuer: deps.Tokens, Logger: deps.Logger}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiV1 := router.Group("/api/v1")
	{
		// === CÁC ROUTE KHÔNG YÊU CẦU XÁC THỰC ===
		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
		}

		// === CÁC ROUTE YÊU CẦU XÁC THỰC (PROTECTED) ===
		accounts := apiV1.Group("/accounts")
		accounts.Use(middleware.Authenticate(deps.Tokens))
		{
			accounts.GET("/me", accountHandler.Me)
		}

		admin := apiV1.Group("/admin")
		admin.Use(middleware.Authenticate(deps.Tokens))
		admin.Use(middleware.RequireStaff())
		{
			admin.GET("/accounts/:username", accountHandler.GetAccount)

			// Account creation is reserved for superusers
			creation := admin.Group("/")
			creation.Use(middleware.RequireSuperuser())
			{
				creation.POST("/accounts", accountHandler.CreateAccount)
				creation.POST("/superusers", accountHandler.CreateSuperuser)
			}
		}
	}

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
