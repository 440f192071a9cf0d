// Package worker holds the long-running loops that sit beside the HTTP API.
package worker

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-complaint-tracker/pkg/helpers"
)

// Scanner runs one reminder pass; *application.ReminderService satisfies it.
type Scanner interface {
	Scan(ctx context.Context, now time.Time) (int, error)
}

// Locker grants at most one holder across processes; *helpers.RedisLock
// satisfies it.
type Locker interface {
	Acquire(ctx context.Context) (release func(context.Context) error, ok bool, err error)
}

// ReminderRunner drives reminder scans on a cron schedule.
type ReminderRunner struct {
	Scanner  Scanner
	Lock     Locker // nil runs without cross-instance exclusion
	Logger   *logrus.Logger
	Schedule cron.Schedule
	OnStart  bool
	Now      func() time.Time

	running atomic.Bool
}

// NewReminderRunner parses spec as a standard five-field cron expression
// (descriptors such as "@every 1m" are accepted too), evaluated in UTC.
func NewReminderRunner(s Scanner, lock Locker, logger *logrus.Logger, spec string, onStart bool) (*ReminderRunner, error) {
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("reminder schedule %q: %w", spec, err)
	}
	return &ReminderRunner{Scanner: s, Lock: lock, Logger: logger, Schedule: sched, OnStart: onStart, Now: time.Now}, nil
}

// Run blocks until ctx is done, scanning on every schedule tick. It returns
// after any scan in progress has finished.
func (r *ReminderRunner) Run(ctx context.Context) {
	if r.OnStart {
		r.RunOnce(ctx)
	}

	logger := r.cronLogger()
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	c.Schedule(r.Schedule, cron.FuncJob(func() { r.RunOnce(ctx) }))
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()
}

func (r *ReminderRunner) cronLogger() cron.Logger {
	if r.Logger == nil {
		return cron.DiscardLogger
	}
	return cron.PrintfLogger(r.Logger)
}

// RunOnce performs a single scan. It returns false without scanning when a
// scan is already in flight here or another instance holds the lock.
func (r *ReminderRunner) RunOnce(ctx context.Context) bool {
	if !r.running.CompareAndSwap(false, true) {
		r.debug("reminder scan already running, skipping")
		return false
	}
	defer r.running.Store(false)

	if r.Lock != nil {
		release, ok, err := r.Lock.Acquire(ctx)
		if err != nil {
			r.warn(err, "reminder lock unavailable")
			return false
		}
		if !ok {
			r.debug("reminder scan held by another instance")
			return false
		}
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				r.warn(err, "reminder lock release failed")
			}
		}()
	}

	start := time.Now()
	n, err := r.Scanner.Scan(ctx, r.now())
	if err != nil {
		helpers.LogError(r.Logger, "reminder scan failed", err, nil)
		return true
	}
	helpers.LogInfo(r.Logger, "reminder scan finished", logrus.Fields{"dispatched": n, "took": time.Since(start).String()})
	return true
}

func (r *ReminderRunner) now() time.Time {
	if r.Now == nil {
		return time.Now().UTC()
	}
	return r.Now().UTC()
}

func (r *ReminderRunner) debug(msg string) {
	helpers.LogDebug(r.Logger, msg, nil)
}

func (r *ReminderRunner) warn(err error, msg string) {
	helpers.LogWarn(r.Logger, msg, err, nil)
}
