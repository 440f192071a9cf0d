package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-complaint-tracker/internal/interface/http"
)

// NotificationModule
// Protected: GET /api/notifications
type NotificationModule struct {
	Handler *handlers.NotificationHandler
	Auth    gin.HandlerFunc
}

func NewNotificationModule(h *handlers.NotificationHandler, auth gin.HandlerFunc) *NotificationModule {
	return &NotificationModule{Handler: h, Auth: auth}
}

func (m *NotificationModule) Register(rg *gin.RouterGroup) {
	rg.GET("/notifications", m.Auth, m.Handler.List)
}
