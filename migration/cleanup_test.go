package migration_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"bitbucket.org/talentforge/recruit_backend/migration"
	"bitbucket.org/talentforge/recruit_backend/models"
	"bitbucket.org/talentforge/recruit_backend/utils"
)

var (
	cleanupMigrationDate = time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	cleanupCutoff        = time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
)

func seedCleanupCandidates(t *testing.T, dest *gorm.DB) {
	t.Helper()
	old := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC)

	for _, c := range []models.Candidate{
		{ID: "old-1", Email: "old1@example.com", FullName: "Old One", IsActive: utils.NewTrue(), CreatedAt: old},
		{ID: "old-keep", Email: "keep@example.com", FullName: "Keep Me", IsActive: utils.NewTrue(), CreatedAt: old},
		{ID: "new-1", Email: "new1@example.com", FullName: "New One", IsActive: utils.NewTrue(), CreatedAt: recent},
	} {
		require.NoError(t, dest.Create(&c).Error)
	}

	require.NoError(t, dest.Create(&models.CandidateProfile{CandidateId: "old-1"}).Error)
	require.NoError(t, dest.Create(&models.Resume{ID: "r-old", CandidateId: "old-1", Slug: "resume-old", Kind: models.ResumeKindSaved}).Error)
	require.NoError(t, dest.Create(&models.Assessment{ID: "a-old", CandidateId: "old-1", Kind: models.AssessmentKindTyping, SourceSessionId: 1}).Error)
	require.NoError(t, dest.Create(&models.Application{ID: "ap-old", CandidateId: "old-1", JobId: "j-1", Status: models.ApplicationStatusSubmitted}).Error)
	require.NoError(t, dest.Create(&models.JobMatch{ID: "m-old", CandidateId: "old-1", JobId: "j-1", Status: models.MatchStatusSuggested}).Error)

	// the preserved candidate's data must survive with it
	require.NoError(t, dest.Create(&models.Resume{ID: "r-keep", CandidateId: "old-keep", Slug: "resume-keep", Kind: models.ResumeKindSaved}).Error)
}

func writeBackupArtifact(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("MIGRATION_BACKUP_DIR", dir)
	name := migration.BackupArtifactName(cleanupMigrationDate)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("-- dump"), 0o644))
}

func TestCleanupRefusesWithoutConfirmation(t *testing.T) {
	dest := newDestinationDB(t)
	seedCleanupCandidates(t, dest)
	gate := migration.NewCleanupGate(dest, quietLogger())

	report, err := gate.Execute(context.Background(), false, cleanupMigrationDate, cleanupCutoff, nil)
	assert.ErrorIs(t, err, migration.ErrNotConfirmed)
	assert.Nil(t, report)
	assert.Equal(t, migration.GateAborted, gate.State())

	var count int64
	require.NoError(t, dest.Model(&models.Candidate{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestCleanupRefusesWithoutBackup(t *testing.T) {
	t.Setenv("MIGRATION_BACKUP_DIR", t.TempDir())

	dest := newDestinationDB(t)
	seedCleanupCandidates(t, dest)
	gate := migration.NewCleanupGate(dest, quietLogger())

	_, err := gate.Execute(context.Background(), true, cleanupMigrationDate, cleanupCutoff, nil)
	assert.ErrorIs(t, err, migration.ErrBackupMissing)
	assert.Equal(t, migration.GateAborted, gate.State())

	var count int64
	require.NoError(t, dest.Model(&models.Candidate{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestCleanupDeletesOldCandidatesAndChildren(t *testing.T) {
	writeBackupArtifact(t)

	dest := newDestinationDB(t)
	seedCleanupCandidates(t, dest)
	gate := migration.NewCleanupGate(dest, quietLogger())

	report, err := gate.Execute(context.Background(), true, cleanupMigrationDate, cleanupCutoff, []string{"old-keep"})
	require.NoError(t, err)
	assert.Equal(t, migration.GateExecuted, gate.State())

	assert.EqualValues(t, 1, report.Deleted["candidates"])
	assert.EqualValues(t, 1, report.Deleted["resumes"])
	assert.EqualValues(t, 1, report.Deleted["assessments"])
	assert.EqualValues(t, 1, report.Deleted["applications"])
	assert.EqualValues(t, 1, report.Deleted["job_matches"])
	assert.EqualValues(t, 1, report.Deleted["candidate_profiles"])

	var survivors []models.Candidate
	require.NoError(t, dest.Order("id").Find(&survivors).Error)
	require.Len(t, survivors, 2)
	assert.Equal(t, "new-1", survivors[0].ID)
	assert.Equal(t, "old-keep", survivors[1].ID)

	// the preserved candidate keeps its resume
	var keptResumes int64
	require.NoError(t, dest.Model(&models.Resume{}).Where("candidate_id = ?", "old-keep").Count(&keptResumes).Error)
	assert.EqualValues(t, 1, keptResumes)

	var doomedResumes int64
	require.NoError(t, dest.Model(&models.Resume{}).Where("candidate_id = ?", "old-1").Count(&doomedResumes).Error)
	assert.EqualValues(t, 0, doomedResumes)
}

func TestCleanupWithEmptyPreserveList(t *testing.T) {
	writeBackupArtifact(t)

	dest := newDestinationDB(t)
	seedCleanupCandidates(t, dest)
	gate := migration.NewCleanupGate(dest, quietLogger())

	report, err := gate.Execute(context.Background(), true, cleanupMigrationDate, cleanupCutoff, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 2, report.Deleted["candidates"])

	var survivors []models.Candidate
	require.NoError(t, dest.Find(&survivors).Error)
	require.Len(t, survivors, 1)
	assert.Equal(t, "new-1", survivors[0].ID)
}

func TestBackupArtifactName(t *testing.T) {
	name := migration.BackupArtifactName(time.Date(2024, 3, 2, 15, 4, 5, 0, time.UTC))
	assert.Equal(t, "pre-migration-2024-03-02.sql", name)
}
