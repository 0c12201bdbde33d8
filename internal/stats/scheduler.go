package stats

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const defaultReconcileInterval = 5 * time.Minute

type Reconciler interface {
	Reconcile(ctx context.Context) (bool, error)
}

// Scheduler periodically reconciles the stats summary with the log.
type Scheduler struct {
	reconciler Reconciler
	interval   time.Duration
	// -----
	mu    sync.Mutex
	sched gocron.Scheduler
}

func (s *Scheduler) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	job := func(jobCtx context.Context) {
		execID := uuid.NewString()
		repaired, recErr := s.reconciler.Reconcile(jobCtx)
		if recErr != nil {
			logrus.WithError(recErr).WithField("exec_id", execID).Error("Stats reconcile job failed")
			return
		}
		logrus.WithFields(logrus.Fields{"exec_id": execID, "repaired": repaired}).Debug("Stats reconcile job finished")
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(job),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return err
	}

	scheduler.Start()
	s.mu.Lock()
	s.sched = scheduler
	s.mu.Unlock()

	// Stop scheduler when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := s.Shutdown(); sdErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", sdErr)
		}
	}()
	return nil
}

func (s *Scheduler) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sched == nil {
		return nil
	}
	err := s.sched.Shutdown()
	s.sched = nil
	return err
}

func (s *Scheduler) running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sched != nil
}

func NewScheduler(reconciler Reconciler, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = defaultReconcileInterval
	}
	return &Scheduler{reconciler: reconciler, interval: interval}
}
