// Package container assembles repositories and services from the
// infrastructure clients built in main. Nothing here is global; the
// Container is passed to the router and the workers explicitly.
package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-complaint-tracker/config"
	"github.com/oksasatya/go-complaint-tracker/internal/application"
	"github.com/oksasatya/go-complaint-tracker/internal/domain/repository"
	pginfra "github.com/oksasatya/go-complaint-tracker/internal/infrastructure/postgres"
	"github.com/oksasatya/go-complaint-tracker/pkg/helpers"
)

// Infra is what main has to dial before anything else can be built. Redis,
// GCS and ES may be nil; the features behind them degrade.
type Infra struct {
	Config *config.Config
	Logger *logrus.Logger
	Pool   *pgxpool.Pool
	Redis  *redis.Client
	GCS    *storage.Client
	ES     *elasticsearch.Client
	JWT    *helpers.JWTManager
}

type Container struct {
	Infra

	Users         repository.UserRepository
	Complaints    repository.ComplaintRepository
	Reminders     repository.ReminderRepository
	Notifications repository.NotificationRepository

	NotificationSvc *application.NotificationService
	ComplaintSvc    *application.ComplaintService
	ReminderSvc     *application.ReminderService
	UserSvc         *application.UserService

	Cookies *helpers.CookieManager
}

// New wires the postgres repositories and the services on top of them.
// deliverer decides where dispatched notifications go.
func New(infra Infra, deliverer func(users repository.UserRepository) application.Deliverer) *Container {
	cfg := infra.Config
	c := &Container{
		Infra:         infra,
		Users:         pginfra.NewUserRepository(infra.Pool),
		Complaints:    pginfra.NewComplaintRepository(infra.Pool),
		Reminders:     pginfra.NewReminderRepository(infra.Pool),
		Notifications: pginfra.NewNotificationRepository(infra.Pool),
		Cookies:       helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure),
	}

	c.NotificationSvc = application.NewNotificationService(c.Notifications, deliverer(c.Users), infra.Logger)
	c.ComplaintSvc = application.NewComplaintService(c.Complaints, c.NotificationSvc, infra.Logger,
		infra.ES, cfg.ESComplaintsIndex, infra.GCS, cfg.GCSBucket)
	c.ComplaintSvc.Redis = infra.Redis
	c.ReminderSvc = application.NewReminderService(c.Users, c.Reminders, c.NotificationSvc, infra.Logger, cfg.ReminderScanWorkers)
	c.UserSvc = application.NewUserService(c.Users, c.Complaints, infra.JWT, infra.Redis, infra.Logger)
	return c
}
