package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-complaint-tracker/internal/interface/http"
	"github.com/oksasatya/go-complaint-tracker/internal/interface/middleware"
)

// UserModule
// Protected: GET /api/users/details, PATCH /api/users/onboarding-stage
type UserModule struct {
	Handler *handlers.UserHandler
	Auth    gin.HandlerFunc
	Redis   *redis.Client
}

func NewUserModule(h *handlers.UserHandler, auth gin.HandlerFunc, rdb *redis.Client) *UserModule {
	return &UserModule{Handler: h, Auth: auth, Redis: rdb}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(m.Auth, middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		users.GET("/details", m.Handler.Details)
		users.PATCH("/onboarding-stage", m.Handler.UpdateOnboardingStage)
	}
}
