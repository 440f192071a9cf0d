package application

import (
	"context"
	"errors"
	"expvar"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/oksasatya/go-complaint-tracker/internal/domain/entity"
	"github.com/oksasatya/go-complaint-tracker/internal/domain/notification"
	"github.com/oksasatya/go-complaint-tracker/internal/domain/onboarding"
	repo "github.com/oksasatya/go-complaint-tracker/internal/domain/repository"
	"github.com/oksasatya/go-complaint-tracker/pkg/helpers"
)

// published under /debug/vars
var scanStats = expvar.NewMap("reminder_scan")

var errStageChanged = errors.New("onboarding stage changed")

// ReminderService nudges users that have not finished onboarding.
type ReminderService struct {
	Users     repo.UserRepository
	Reminders repo.ReminderRepository
	Sink      Sink
	Logger    *logrus.Logger
	// Workers bounds how many users are processed at once.
	Workers int
}

func NewReminderService(users repo.UserRepository, reminders repo.ReminderRepository, sink Sink, logger *logrus.Logger, workers int) *ReminderService {
	if workers <= 0 {
		workers = 4
	}
	return &ReminderService{Users: users, Reminders: reminders, Sink: sink, Logger: logger, Workers: workers}
}

// Scan dispatches every reminder level that is due at now and not yet sent.
// Users are processed concurrently, a single user's levels in ascending
// order. Failures on one user or level are logged and skipped; unsent levels
// are picked up again by the next scan. Only listing users fails the scan.
func (s *ReminderService) Scan(ctx context.Context, now time.Time) (int, error) {
	users, err := s.Users.ListOnboardingIncomplete(ctx)
	if err != nil {
		return 0, err
	}
	scanStats.Add("runs", 1)
	helpers.LogInfo(s.Logger, "processing onboarding reminders", logrus.Fields{"users": len(users)})

	var dispatched atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Workers)
	for _, u := range users {
		u := u
		g.Go(func() error {
			dispatched.Add(int64(s.processUser(gctx, u, now)))
			return nil
		})
	}
	_ = g.Wait()

	n := int(dispatched.Load())
	scanStats.Add("dispatched", int64(n))
	helpers.LogInfo(s.Logger, "onboarding reminders processed", logrus.Fields{"dispatched": n})
	return n, ctx.Err()
}

func (s *ReminderService) processUser(ctx context.Context, u *entity.User, now time.Time) int {
	stage := u.OnboardingStage
	sent := 0
	for _, level := range onboarding.DueLevels(u.CreatedAt, stage, now) {
		if ctx.Err() != nil {
			return sent
		}
		ok, err := s.remind(ctx, u.ID, stage, level, now)
		if errors.Is(err, errStageChanged) {
			helpers.LogDebug(s.Logger, "skipping reminder, stage changed", logrus.Fields{"user_id": u.ID, "stage": stage})
			return sent
		}
		if err != nil {
			scanStats.Add("failed", 1)
			helpers.LogWarn(s.Logger, "onboarding reminder failed", err, logrus.Fields{
				"user_id": u.ID,
				"stage":   stage,
				"level":   level,
			})
			continue
		}
		if ok {
			sent++
		}
	}
	return sent
}

// remind delivers one (stage, level) reminder unless it was already sent or
// the user has since moved to another stage.
func (s *ReminderService) remind(ctx context.Context, userID string, stage, level int, now time.Time) (bool, error) {
	rec, err := s.Reminders.Get(ctx, userID, stage, level)
	switch {
	case err == nil && rec.Sent:
		return false, nil
	case err != nil && !errors.Is(err, repo.ErrNotFound):
		return false, err
	}

	current, err := s.Users.GetByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return false, errStageChanged
	}
	if err != nil {
		return false, err
	}
	if current.OnboardingStage != stage {
		return false, errStageChanged
	}

	claimed, err := s.Reminders.Claim(ctx, userID, stage, level, now)
	if err != nil || !claimed {
		return false, err
	}

	content := notification.OnboardingReminderContent(stage, level)
	st, lv := stage, level
	n := &entity.Notification{
		UserID: userID,
		Type:   entity.NotificationOnboardingReminder,
		Title:  content.Title,
		Body:   content.Body,
		Metadata: entity.NotificationMetadata{
			Stage:         &st,
			ReminderLevel: &lv,
		},
	}
	if _, err := s.Sink.Dispatch(ctx, n); err != nil {
		if rErr := s.Reminders.Release(ctx, userID, stage, level); rErr != nil {
			helpers.LogError(s.Logger, "release reminder claim failed", rErr, logrus.Fields{"user_id": userID})
		}
		return false, err
	}

	helpers.LogInfo(s.Logger, "sent onboarding reminder", logrus.Fields{"user_id": userID, "stage": stage, "level": level})
	return true, nil
}
