package periodicjobs

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// PeriodicJob is a background task that runs on a fixed interval
type PeriodicJob interface {
	// Name is the unique identifier of the job, used in logs
	Name() string

	// Interval is how often the job runs
	Interval() time.Duration

	// Run executes one iteration of the job
	Run(ctx context.Context) error
}

// PeriodicTaskManager owns the registered periodic jobs and drives their
// schedules. A failing iteration is logged and retried on the next tick, it
// does not stop the schedule
type PeriodicTaskManager struct {
	jobs []PeriodicJob
}

// NewPeriodicTaskManager creates a new, empty PeriodicTaskManager
func NewPeriodicTaskManager() *PeriodicTaskManager {
	return &PeriodicTaskManager{}
}

// Add registers a job with the manager
func (m *PeriodicTaskManager) Add(job PeriodicJob) {
	m.jobs = append(m.jobs, job)
}

// RunAll runs every registered job on its own schedule until ctx is canceled
// Each job runs once immediately, then on every interval tick
func (m *PeriodicTaskManager) RunAll(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, job := range m.jobs {
		job := job
		g.Go(func() error {
			return m.runJob(ctx, job)
		})
	}

	return g.Wait()
}

func (m *PeriodicTaskManager) runJob(ctx context.Context, job PeriodicJob) error {
	logger := logrus.WithField("job", job.Name())

	ticker := time.NewTicker(job.Interval())
	defer ticker.Stop()

	for {
		if err := job.Run(ctx); err != nil {
			logger.WithError(err).Error("periodic job iteration failed")
		}

		select {
		case <-ctx.Done():
			logger.Info("stopping periodic job")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
