package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/oksasatya/go-complaint-tracker/config"
	"github.com/oksasatya/go-complaint-tracker/internal/application"
	"github.com/oksasatya/go-complaint-tracker/internal/container"
	"github.com/oksasatya/go-complaint-tracker/internal/domain/repository"
	"github.com/oksasatya/go-complaint-tracker/internal/infrastructure/messaging"
	pginfra "github.com/oksasatya/go-complaint-tracker/internal/infrastructure/postgres"
	"github.com/oksasatya/go-complaint-tracker/internal/interface/middleware"
	"github.com/oksasatya/go-complaint-tracker/internal/router"
	"github.com/oksasatya/go-complaint-tracker/internal/worker"
	"github.com/oksasatya/go-complaint-tracker/pkg/helpers"
	"github.com/oksasatya/go-complaint-tracker/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := runMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer func() { _ = rdb.Close() }()

	// Attachments are disabled without a bucket.
	var gcsClient *storage.Client
	if cfg.GCSBucket != "" {
		gcsClient, err = helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			log.Fatalf("failed to init GCS client: %v", err)
		}
		defer func() { _ = gcsClient.Close() }()
	}

	// Search is disabled without addresses.
	var es *elasticsearch.Client
	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err = helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			log.Fatalf("failed to init elasticsearch: %v", err)
		}
		if err := helpers.EnsureComplaintIndex(ctx, es, cfg.ESComplaintsIndex); err != nil {
			logger.WithError(err).Warn("ensure complaints index failed")
		}
	}

	var publisher *helpers.RabbitPublisher
	if cfg.MailSendEnabled {
		publisher, err = helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQNotificationQueue)
		if err != nil {
			log.Fatalf("failed to connect to rabbitmq: %v", err)
		}
		defer publisher.Close()
	}

	c := container.New(container.Infra{
		Config: cfg,
		Logger: logger,
		Pool:   pool,
		Redis:  rdb,
		GCS:    gcsClient,
		ES:     es,
		JWT:    helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.RefreshTTL),
	}, func(users repository.UserRepository) application.Deliverer {
		if publisher != nil {
			return messaging.NewQueueDeliverer(users, publisher)
		}
		return messaging.LogDeliverer{Logger: logger}
	})

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if cfg.HTTPLogEnabled {
		r.Use(gin.Logger())
	}

	reg := router.NewRegistry(r)
	router.InitModules(reg, c)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	if cfg.ReminderSchedulerEnabled {
		runner, err := worker.NewReminderRunner(c.ReminderSvc,
			helpers.NewRedisLock(rdb, "lock:reminder_scan", cfg.ReminderLockTTL),
			logger, cfg.ReminderCron, cfg.ReminderScanOnStart)
		if err != nil {
			log.Fatalf("invalid REMINDER_CRON: %v", err)
		}
		g.Go(func() error {
			logger.WithField("schedule", cfg.ReminderCron).Info("reminder scheduler started")
			runner.Run(gctx)
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.WithError(err).Fatal("server stopped with error")
	}
	logger.Info("server exited properly")
}

func runMigrations(dsn string, migrationsDir string, logger *logrus.Logger) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	driver, err := pgmigrate.WithInstance(db, &pgmigrate.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationsDir), "postgres", driver)
	if err != nil {
		return err
	}
	logger.Info("running migrations...")
	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migrations to run")
		return nil
	}
	return err
}
