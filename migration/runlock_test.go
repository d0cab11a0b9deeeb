package migration_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bitbucket.org/talentforge/recruit_backend/migration"
)

func TestAcquireRunLockWithoutRedis(t *testing.T) {
	t.Setenv("REDIS_URL", "")

	release, err := migration.AcquireRunLock(context.Background(), quietLogger())
	require.NoError(t, err)
	require.NotNil(t, release)
	release()
}

func TestAcquireRunLockReleaseIsIdempotent(t *testing.T) {
	t.Setenv("REDIS_URL", "")

	release, err := migration.AcquireRunLock(context.Background(), quietLogger())
	require.NoError(t, err)
	assert.NotPanics(t, func() {
		release()
		release()
	})
}
