package controller

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/classboard/classboard/internal/controller/periodicjobs"
	"github.com/classboard/classboard/pkg/catalog"
)

const (
	periodicTasksControllerName = "periodictasks"
	initializationDelay         = 10 * time.Second
)

// PeriodicTasksController owns the service's background jobs
// Not event triggered; it is the platform through which periodic jobs run
type PeriodicTasksController struct {
	taskManager *periodicjobs.PeriodicTaskManager
}

// NewPeriodicTasksController wires up the periodic jobs
// cacheRefreshInterval <= 0 uses the job's default interval
func NewPeriodicTasksController(cat *catalog.Catalog, cacheRefreshInterval time.Duration) *PeriodicTasksController {
	taskManager := periodicjobs.NewPeriodicTaskManager()

	// Add jobs to the periodic task manager
	taskManager.Add(periodicjobs.NewClassroomCacheRefreshJob(cat, cacheRefreshInterval))

	return &PeriodicTasksController{
		taskManager: taskManager,
	}
}

// Start runs the periodic tasks until ctx is canceled
func (ptc *PeriodicTasksController) Start(ctx context.Context) error {
	logger := logrus.WithField("controller", periodicTasksControllerName)
	logger.Info("starting periodic tasks controller")

	defer func() {
		logger.Info("finishing periodic tasks controller")
	}()

	// Wait for initialization delay or context cancellation
	select {
	case <-ctx.Done():
		logger.Info("context canceled during initialization")
		return ctx.Err()
	case <-time.After(initializationDelay):
		logger.Info("periodic tasks ready to start after initialization delay")
	}

	return ptc.taskManager.RunAll(ctx)
}
