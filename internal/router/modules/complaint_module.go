package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-complaint-tracker/internal/interface/http"
	"github.com/oksasatya/go-complaint-tracker/internal/interface/middleware"
)

// ComplaintModule, all routes protected:
// POST /api/complaints, GET /api/complaints, GET /api/complaints/search,
// PATCH /api/complaints/:id/status, GET /api/complaints/:id/metrics,
// POST /api/complaints/:id/attachments
type ComplaintModule struct {
	Handler *handlers.ComplaintHandler
	Auth    gin.HandlerFunc
	Redis   *redis.Client
}

func NewComplaintModule(h *handlers.ComplaintHandler, auth gin.HandlerFunc, rdb *redis.Client) *ComplaintModule {
	return &ComplaintModule{Handler: h, Auth: auth, Redis: rdb}
}

func (m *ComplaintModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/complaints")
	g.Use(m.Auth, middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		g.POST("", m.Handler.Create)
		g.GET("", m.Handler.List)
		g.GET("/search", m.Handler.Search)
		g.PATCH("/:id/status", m.Handler.UpdateStatus)
		g.GET("/:id/metrics", m.Handler.Metrics)
		g.POST("/:id/attachments",
			middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByUserID(), nil),
			m.Handler.UploadAttachment)
	}
}
