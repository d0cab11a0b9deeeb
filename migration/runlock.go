package migration

import (
	"context"
	"errors"
	"time"

	"github.com/bsm/redislock"
	"github.com/sirupsen/logrus"

	"bitbucket.org/talentforge/recruit_backend/config"
)

// ErrRunInProgress: another operator holds the migration lock.
var ErrRunInProgress = errors.New("another migration run is already in progress")

// runLockTTL comfortably exceeds any observed full-run duration; the lock is
// released explicitly on exit anyway.
const runLockTTL = 2 * time.Hour

// AcquireRunLock takes the cross-process migration lock so two operators
// cannot run the pipeline concurrently — the engine's caches are built for a
// single run. When redis is not configured the lock degrades to a warning:
// the job is rare and operator-triggered.
func AcquireRunLock(ctx context.Context, logger *logrus.Logger) (release func(), err error) {
	locker := config.GetRedisLock()
	if locker == nil {
		logger.Warn("REDIS_URL not set, running without the migration run lock")
		return func() {}, nil
	}

	lock, err := locker.Obtain(ctx, "migration:run", runLockTTL, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, ErrRunInProgress
	}
	if err != nil {
		return nil, err
	}

	return func() {
		_ = lock.Release(ctx)
	}, nil
}
