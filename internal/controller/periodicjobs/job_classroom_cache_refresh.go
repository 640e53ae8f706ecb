/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package periodicjobs provides scheduled background jobs for the classboard
// service.
//
// This file implements the classroom cache refresh job that periodically
// re-reads the seeded classroom table and replaces the cached list, so cached
// reads never serve an entry older than the refresh interval.
package periodicjobs

import (
	"context"
	"time"

	"github.com/classboard/classboard/pkg/catalog"
)

const (
	// ClassroomCacheRefreshJobName is the unique identifier for the classroom
	// cache refresh periodic job.
	ClassroomCacheRefreshJobName = "classboard_classroom_cache_refresh"

	// ClassroomCacheRefreshJobInterval defines how often the refresh runs.
	ClassroomCacheRefreshJobInterval = 5 * time.Minute
)

// ClassroomCacheRefreshJob re-warms the classroom list cache from the
// database on a fixed interval.
type ClassroomCacheRefreshJob struct {
	catalog  *catalog.Catalog
	interval time.Duration
}

// NewClassroomCacheRefreshJob creates the refresh job
// interval <= 0 falls back to ClassroomCacheRefreshJobInterval
func NewClassroomCacheRefreshJob(cat *catalog.Catalog, interval time.Duration) *ClassroomCacheRefreshJob {
	if interval <= 0 {
		interval = ClassroomCacheRefreshJobInterval
	}
	return &ClassroomCacheRefreshJob{
		catalog:  cat,
		interval: interval,
	}
}

// Name returns the job identifier
func (j *ClassroomCacheRefreshJob) Name() string {
	return ClassroomCacheRefreshJobName
}

// Interval returns how often the job runs
func (j *ClassroomCacheRefreshJob) Interval() time.Duration {
	return j.interval
}

// Run re-reads the classroom table and replaces the cached list
func (j *ClassroomCacheRefreshJob) Run(ctx context.Context) error {
	return j.catalog.RefreshCache(ctx)
}

// Compile-time interface compliance check
var _ PeriodicJob = (*ClassroomCacheRefreshJob)(nil)
