package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-complaint-tracker/internal/interface/http"
	"github.com/oksasatya/go-complaint-tracker/internal/interface/middleware"
)

// AuthModule
// Public: POST /api/auth/register, POST /api/login, POST /api/refresh
// Protected: POST /api/logout
type AuthModule struct {
	Handler   *handlers.AuthHandler
	Auth      gin.HandlerFunc
	Redis     *redis.Client
	PerMinute int
}

func NewAuthModule(h *handlers.AuthHandler, auth gin.HandlerFunc, rdb *redis.Client, perMinute int) *AuthModule {
	return &AuthModule{Handler: h, Auth: auth, Redis: rdb, PerMinute: perMinute}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	perPath := middleware.RateLimit(m.Redis, m.PerMinute, time.Minute, middleware.KeyByIPAndPath(), nil)
	refreshLimiter := middleware.RateLimit(m.Redis, 60, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/auth/register", perPath, m.Handler.Register)
	rg.POST("/login", perPath, m.Handler.Login)
	rg.POST("/refresh", refreshLimiter, m.Handler.Refresh)
	rg.POST("/logout", m.Auth, m.Handler.Logout)
}
