package migration_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bitbucket.org/talentforge/recruit_backend/identity"
	"bitbucket.org/talentforge/recruit_backend/migration"
	"bitbucket.org/talentforge/recruit_backend/models"
	"bitbucket.org/talentforge/recruit_backend/models/legacy"
)

func TestResolveAccountCachesProviderLookups(t *testing.T) {
	src := newSourceDB(t)
	dest := newDestinationDB(t)
	provider := newFakeProvider(identity.User{ID: "uuid-ana", Email: "ana@example.com"})
	r := migration.NewResolver(src, dest, provider)
	ctx := context.Background()

	require.NoError(t, src.Create(&legacy.User{ID: 1, Email: "ana@example.com"}).Error)

	id, err := r.ResolveAccount(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "uuid-ana", id)

	id, err = r.ResolveAccount(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "uuid-ana", id)
	assert.Equal(t, 1, provider.lookups)
}

func TestResolveAccountUnknownToProvider(t *testing.T) {
	src := newSourceDB(t)
	dest := newDestinationDB(t)
	r := migration.NewResolver(src, dest, newFakeProvider())
	ctx := context.Background()

	require.NoError(t, src.Create(&legacy.User{ID: 2, Email: "ghost@example.com"}).Error)

	_, err := r.ResolveAccount(ctx, 2)
	assert.ErrorIs(t, err, migration.ErrIdentityNotFound)

	// the miss is cached too
	_, err = r.ResolveAccount(ctx, 2)
	assert.ErrorIs(t, err, migration.ErrIdentityNotFound)
}

func TestResolveAccountMissingLegacyRow(t *testing.T) {
	src := newSourceDB(t)
	dest := newDestinationDB(t)
	r := migration.NewResolver(src, dest, newFakeProvider())

	_, err := r.ResolveAccount(context.Background(), 404)
	assert.ErrorIs(t, err, migration.ErrUnresolvedReference)
}

func TestResolveJobBySlug(t *testing.T) {
	src := newSourceDB(t)
	dest := newDestinationDB(t)
	r := migration.NewResolver(src, dest, newFakeProvider())
	ctx := context.Background()

	require.NoError(t, dest.Create(&models.Job{
		ID:              "j-dest",
		Slug:            "job-42",
		AgencyCompanyId: "rel-1",
		Title:           "Support Rep",
	}).Error)

	id, err := r.ResolveJob(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "j-dest", id)

	_, err = r.ResolveJob(ctx, 999)
	assert.ErrorIs(t, err, migration.ErrUnresolvedReference)
}

func TestResolveAgencyCreatesOnce(t *testing.T) {
	src := newSourceDB(t)
	dest := newDestinationDB(t)
	r := migration.NewResolver(src, dest, newFakeProvider())
	ctx := context.Background()

	agency := &legacy.Agency{ID: 7, Name: "North Hire", Email: "hello@northhire.com", CreatedAt: time.Now()}

	first, err := r.ResolveAgency(ctx, agency)
	require.NoError(t, err)
	second, err := r.ResolveAgency(ctx, agency)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var count int64
	require.NoError(t, dest.Model(&models.Agency{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var stored models.Agency
	require.NoError(t, dest.Where("slug = ?", "agency-7").First(&stored).Error)
	assert.Equal(t, "North Hire", stored.Name)
}

func TestResolveAgencyFindsExisting(t *testing.T) {
	src := newSourceDB(t)
	dest := newDestinationDB(t)
	ctx := context.Background()

	require.NoError(t, dest.Create(&models.Agency{ID: "existing", Slug: "agency-7", Name: "North Hire"}).Error)

	// a second run with cold caches must adopt the existing row
	r := migration.NewResolver(src, dest, newFakeProvider())
	id, err := r.ResolveAgency(ctx, &legacy.Agency{ID: 7, Name: "North Hire"})
	require.NoError(t, err)
	assert.Equal(t, "existing", id)
}

func TestEnsureAgencyCompany(t *testing.T) {
	src := newSourceDB(t)
	dest := newDestinationDB(t)
	r := migration.NewResolver(src, dest, newFakeProvider())
	ctx := context.Background()

	first, err := r.EnsureAgencyCompany(ctx, "a-1", "c-1")
	require.NoError(t, err)
	second, err := r.EnsureAgencyCompany(ctx, "a-1", "c-1")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := r.EnsureAgencyCompany(ctx, "a-1", "c-2")
	require.NoError(t, err)
	assert.NotEqual(t, first, other)

	var count int64
	require.NoError(t, dest.Model(&models.AgencyCompany{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}
