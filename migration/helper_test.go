package migration_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"bitbucket.org/talentforge/recruit_backend/identity"
	"bitbucket.org/talentforge/recruit_backend/models"
	"bitbucket.org/talentforge/recruit_backend/models/legacy"
)

var testDBSeq atomic.Int64

// openTestDB opens an isolated in-memory sqlite database. Shared cache with
// a unique name keeps every pooled connection on the same database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:migtest%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

func newSourceDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := openTestDB(t)
	require.NoError(t, db.AutoMigrate(legacy.SourceModels()...))
	return db
}

func newDestinationDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := openTestDB(t)
	require.NoError(t, db.AutoMigrate(models.DestinationModels()...))
	return db
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

// fakeProvider is an in-memory identity provider: a fixed email->user map.
type fakeProvider struct {
	usersByEmail map[string]identity.User
	lookups      int
}

func newFakeProvider(users ...identity.User) *fakeProvider {
	byEmail := make(map[string]identity.User, len(users))
	for _, u := range users {
		byEmail[u.Email] = u
	}
	return &fakeProvider{usersByEmail: byEmail}
}

func (f *fakeProvider) UserExists(ctx context.Context, id string) (bool, error) {
	for _, u := range f.usersByEmail {
		if u.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProvider) GetUserByEmail(ctx context.Context, email string) (*identity.User, error) {
	f.lookups++
	u, ok := f.usersByEmail[email]
	if !ok {
		return nil, identity.ErrNotFound
	}
	return &u, nil
}
