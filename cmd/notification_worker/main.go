package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-complaint-tracker/config"
	"github.com/oksasatya/go-complaint-tracker/internal/worker"
	"github.com/oksasatya/go-complaint-tracker/pkg/helpers"
	"github.com/oksasatya/go-complaint-tracker/pkg/mailer"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-notification-worker", cfg.Env)

	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; notification worker disabled")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQNotificationQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		log.Fatal("Mailgun not configured")
	}

	consumer, err := helpers.NewRabbitConsumer(cfg.RabbitMQURL, cfg.RabbitMQNotificationQueue, 16)
	if err != nil {
		log.Fatalf("amqp: %v", err)
	}
	defer consumer.Close()

	msgs, err := consumer.Deliveries()
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	handler := worker.NewEmailHandler(mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender), cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.WithField("queue", cfg.RabbitMQNotificationQueue).Info("notification worker listening")
	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down...")
			return
		case msg, ok := <-msgs:
			if !ok {
				logger.Warn("delivery channel closed")
				return
			}
			attempt := helpers.Attempts(msg.Headers)
			switch handler.Handle(ctx, msg.Body, attempt) {
			case worker.Ack:
				_ = msg.Ack(false)
			case worker.Drop:
				_ = msg.Nack(false, false)
			case worker.Requeue:
				if err := consumer.Retry(ctx, msg, attempt+1); err != nil {
					logger.WithError(err).Warn("retry publish failed, requeueing in place")
					_ = msg.Nack(false, true)
				}
			}
		}
	}
}
