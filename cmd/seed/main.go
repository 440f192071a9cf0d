package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-complaint-tracker/config"
	"github.com/oksasatya/go-complaint-tracker/internal/application"
	"github.com/oksasatya/go-complaint-tracker/internal/domain/entity"
	"github.com/oksasatya/go-complaint-tracker/internal/domain/repository"
	"github.com/oksasatya/go-complaint-tracker/internal/infrastructure/messaging"
	pginfra "github.com/oksasatya/go-complaint-tracker/internal/infrastructure/postgres"
	"github.com/oksasatya/go-complaint-tracker/pkg/helpers"
)

// Seeds a demo user who signed up two days ago, so the next reminder scan
// has stage 0 reminders due, plus one raised complaint.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), 2, 1, time.Hour)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	users := pginfra.NewUserRepository(pool)
	complaints := pginfra.NewComplaintRepository(pool)
	notifications := application.NewNotificationService(pginfra.NewNotificationRepository(pool), messaging.LogDeliverer{Logger: logger}, logger)
	svc := application.NewComplaintService(complaints, notifications, logger, nil, "", nil, "")

	email := "demo@example.com"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	u := &entity.User{
		Email:     email,
		Password:  hash,
		Name:      "Demo User",
		CreatedAt: time.Now().Add(-48 * time.Hour),
	}
	if err := users.Create(ctx, u); err != nil {
		if !errors.Is(err, repository.ErrDuplicate) {
			log.Fatalf("failed to seed user: %v", err)
		}
		if u, err = users.GetByEmail(ctx, email); err != nil {
			log.Fatalf("failed to load existing user: %v", err)
		}
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", u.ID, email, password)

	c, err := svc.CreateComplaint(ctx, u.ID, entity.ComplaintTypeTechnicalIssue, entity.ComplaintDetails{
		"issue_description": "Dashboard charts do not load after login",
	})
	if err != nil {
		log.Fatalf("failed to seed complaint: %v", err)
	}
	fmt.Printf("seeded complaint: id=%s type=%s status=%s\n", c.ID, c.Type, c.Status)
}
