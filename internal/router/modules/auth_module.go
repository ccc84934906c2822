package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jortega/storefront/internal/application"
	"github.com/jortega/storefront/internal/container"
	handlers "github.com/jortega/storefront/internal/interface/http"
	"github.com/jortega/storefront/internal/interface/middleware"
)

// AuthModule wires authentication and profile routes.
// Public: POST /api/auth/signup, /api/auth/login, /api/auth/refresh
// Protected: POST /api/auth/logout, GET/PUT /api/profile
type AuthModule struct {
	Auth     *handlers.AuthHandler
	Users    *handlers.UserHandler
	Sessions *application.SessionIssuer
}

func NewAuthModule(auth *handlers.AuthHandler, users *handlers.UserHandler, sessions *application.SessionIssuer) *AuthModule {
	return &AuthModule{Auth: auth, Users: users, Sessions: sessions}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	signupLimiter := middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIP(), nil)
	refreshLimiter := middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/auth/signup", signupLimiter, m.Auth.Signup)
	rg.POST("/auth/login", loginLimiter, m.Auth.Login)
	rg.POST("/auth/refresh", refreshLimiter, m.Auth.Refresh)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Sessions))
	auth.Use(middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/auth/logout", m.Auth.Logout)
		auth.GET("/profile", m.Users.GetProfile)
		auth.PUT("/profile", m.Users.UpdateProfile)
	}
}
