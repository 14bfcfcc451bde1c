// Package scheduler runs a task on a fixed interval until its context ends.
package scheduler

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Scheduler runs Task once immediately and then every Interval. A failing run is logged and
// the next tick tries again.
type Scheduler struct {
	Name     string
	Interval time.Duration
	Task     func(ctx context.Context) error
	Log      logrus.FieldLogger
}

func (s *Scheduler) Run(ctx context.Context) error {
	t := time.NewTicker(s.Interval)
	defer t.Stop()

	// kick immediately
	s.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	start := time.Now()
	if err := s.Task(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger().WithError(err).WithField("task", s.Name).Warn("scheduled run failed")
		return
	}
	s.logger().WithFields(logrus.Fields{"task": s.Name, "duration": time.Since(start)}).Debug("scheduled run done")
}

func (s *Scheduler) logger() logrus.FieldLogger {
	if s.Log == nil {
		return logrus.StandardLogger()
	}
	return s.Log
}
