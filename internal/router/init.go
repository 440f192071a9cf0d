package router

import (
	"github.com/oksasatya/go-complaint-tracker/internal/container"
	handlers "github.com/oksasatya/go-complaint-tracker/internal/interface/http"
	"github.com/oksasatya/go-complaint-tracker/internal/interface/middleware"
	"github.com/oksasatya/go-complaint-tracker/internal/router/modules"
)

// InitModules builds handlers from the container and adds every feature
// module to the registry. Call once during startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) {
	auth := middleware.Auth(c.Redis, c.JWT)
	rateLimit := c.Config.AuthRateLimit

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(c.UserSvc, c.Logger, c.Cookies), auth, c.Redis, rateLimit))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(c.UserSvc, c.Logger), auth, c.Redis))
	r.Add(modules.NewComplaintModule(handlers.NewComplaintHandler(c.ComplaintSvc, c.Logger), auth, c.Redis))
	r.Add(modules.NewNotificationModule(handlers.NewNotificationHandler(c.NotificationSvc, c.Logger), auth))
	if c.Config.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(c.Redis))
	}
}
