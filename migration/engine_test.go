package migration_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"bitbucket.org/talentforge/recruit_backend/identity"
	"bitbucket.org/talentforge/recruit_backend/migration"
	"bitbucket.org/talentforge/recruit_backend/models"
	"bitbucket.org/talentforge/recruit_backend/models/legacy"
)

// seedSource fills the source store with one candidate (ana, with all three
// side-tables), one platform admin (rex), one user unknown to the identity
// provider (ghost), a resume with an AI analysis, valid and invalid
// assessment sessions, an agency/member/job chain and one orphan application.
func seedSource(t *testing.T, src *gorm.DB) {
	t.Helper()
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	level := 5

	require.NoError(t, src.Create(&legacy.User{
		ID: 1, Email: "ana@example.com", FirstName: "Ana", LastName: "Reyes",
		Phone: "09171234567", CreatedAt: now,
	}).Error)
	require.NoError(t, src.Create(&legacy.WorkStatus{
		ID: 1, UserID: 1, Bio: "Backend dev", Location: "Cebu",
		WorkType: "FULL-TIME", WorkSetup: "wfh", Availability: "active",
		ExpectedSalaryMin: decimal.NewFromInt(60000),
		ExpectedSalaryMax: decimal.NewFromInt(90000),
	}).Error)
	require.NoError(t, src.Create(&legacy.PrivacySetting{ID: 1, UserID: 1, HideProfile: boolPtr(true)}).Error)
	require.NoError(t, src.Create(&legacy.GamificationScore{ID: 1, UserID: 1, Points: 420, Level: 3}).Error)

	require.NoError(t, src.Create(&legacy.User{
		ID: 2, Email: "rex@example.com", FirstName: "Rex", LastName: "Tan",
		AdminLevel: &level, CreatedAt: now,
	}).Error)
	require.NoError(t, src.Create(&legacy.User{
		ID: 3, Email: "ghost@example.com", FirstName: "No", LastName: "Body", CreatedAt: now,
	}).Error)

	require.NoError(t, src.Create(&legacy.ExtractedResume{
		ID: 1, UserID: 1, Slug: "resume-ana-1", Title: "Ana CV",
		Content: []byte(`{"sections":[]}`), CreatedAt: now,
	}).Error)
	require.NoError(t, src.Create(&legacy.ResumeAnalysis{
		ID: 1, UserID: 1, ResumeSlug: "resume-ana-1", Score: 82,
		Result: []byte(`{"strengths":["go"]}`), CreatedAt: now,
	}).Error)

	require.NoError(t, src.Create(&legacy.DiscSession{
		ID: 1, UserID: 1, Dominance: 70, Influence: 55, Steadiness: 40, Compliance: 65, TakenAt: now,
	}).Error)
	// out of range, must become a row error
	require.NoError(t, src.Create(&legacy.DiscSession{
		ID: 2, UserID: 1, Dominance: 150, TakenAt: now,
	}).Error)
	require.NoError(t, src.Create(&legacy.TypingSession{
		ID: 1, UserID: 1, Wpm: 72, AccuracyPct: 95.5, TakenAt: now,
	}).Error)

	require.NoError(t, src.Create(&legacy.Agency{ID: 7, Name: "North Hire", Email: "hello@northhire.com", CreatedAt: now}).Error)
	require.NoError(t, src.Create(&legacy.AgencyMember{
		ID: 3, AgencyID: 7, CompanyName: "Acme Corp", CompanyEmail: "jobs@acme.com", Role: "owner", CreatedAt: now,
	}).Error)
	require.NoError(t, src.Create(&legacy.Job{
		ID: 42, AgencyID: 7, MemberID: 3, Title: "Support Rep",
		Status: "active", WorkType: "fulltime", WorkSetup: "hybrid",
		Skills:    "Go, SQL, Go",
		SalaryMin: decimal.NewFromInt(40000), SalaryMax: decimal.NewFromInt(55000),
		CreatedAt: now,
	}).Error)

	require.NoError(t, src.Create(&legacy.Application{ID: 1, UserID: 1, JobID: 42, Status: "pending", AppliedAt: now, CreatedAt: now}).Error)
	// orphan: job 999 never existed
	require.NoError(t, src.Create(&legacy.Application{ID: 2, UserID: 1, JobID: 999, Status: "pending", CreatedAt: now}).Error)
	require.NoError(t, src.Create(&legacy.JobMatch{
		ID: 1, UserID: 1, JobID: 42, Score: decimal.NewFromFloat(87.5), Status: "new", CreatedAt: now,
	}).Error)
}

func seededProvider() *fakeProvider {
	return newFakeProvider(
		identity.User{ID: "uuid-ana", Email: "ana@example.com"},
		identity.User{ID: "uuid-rex", Email: "rex@example.com"},
	)
}

func boolPtr(b bool) *bool { return &b }

func TestEngineRunMigratesEverything(t *testing.T) {
	src := newSourceDB(t)
	dest := newDestinationDB(t)
	seedSource(t, src)

	engine := migration.NewEngine(src, dest, seededProvider(), quietLogger(), 50)
	rc, err := engine.Run(context.Background())
	require.NoError(t, err)

	// accounts: ana -> candidate, rex -> platform user, ghost -> skipped
	assert.Equal(t, 1, rc.Stats[migration.EntityCandidate].Migrated)
	assert.Equal(t, 1, rc.Stats[migration.EntityCandidate].Skipped)
	assert.Equal(t, 1, rc.Stats[migration.EntityPlatformUser].Migrated)
	assert.Equal(t, 1, rc.Stats[migration.EntityProfile].Migrated)

	var candidate models.Candidate
	require.NoError(t, dest.First(&candidate, "id = ?", "uuid-ana").Error)
	assert.Equal(t, "Ana Reyes", candidate.FullName)
	assert.Equal(t, "+639171234567", candidate.Phone)

	var candidateCount int64
	require.NoError(t, dest.Model(&models.Candidate{}).Count(&candidateCount).Error)
	assert.EqualValues(t, 1, candidateCount)

	var admin models.PlatformUser
	require.NoError(t, dest.First(&admin, "id = ?", "uuid-rex").Error)
	assert.Equal(t, "admin", admin.Role)
	assert.Equal(t, 5, admin.AdminLevel)

	var profile models.CandidateProfile
	require.NoError(t, dest.First(&profile, "candidate_id = ?", "uuid-ana").Error)
	assert.Equal(t, "Cebu", profile.Location)
	assert.Equal(t, models.WorkTypeFullTime, profile.PreferredWorkType)
	assert.Equal(t, models.WorkSetupRemote, profile.PreferredWorkSetup)
	assert.Equal(t, models.AvailabilityActivelyLooking, profile.Availability)
	require.NotNil(t, profile.HideProfile)
	assert.True(t, *profile.HideProfile)
	assert.Equal(t, 420, profile.GamificationPoints)

	// resumes and the AI analysis
	assert.Equal(t, 1, rc.Stats[migration.EntityResume].Migrated)
	assert.Equal(t, 1, rc.Stats[migration.EntityAIAnalysis].Migrated)
	var analysis models.ResumeAIAnalysis
	require.NoError(t, dest.First(&analysis).Error)
	assert.Equal(t, "uuid-ana", analysis.CandidateId)
	assert.Equal(t, 82, analysis.Score)

	// assessments: one DISC + one typing migrated, the 150-dominance session fails
	assert.Equal(t, 2, rc.Stats[migration.EntityAssessment].Migrated)
	assert.Equal(t, 1, rc.Stats[migration.EntityAssessment].Failed)
	var assessmentCount int64
	require.NoError(t, dest.Model(&models.Assessment{}).Count(&assessmentCount).Error)
	assert.EqualValues(t, 2, assessmentCount)

	// organizations and jobs
	assert.Equal(t, 1, rc.Stats[migration.EntityAgency].Migrated)
	assert.Equal(t, 1, rc.Stats[migration.EntityCompany].Migrated)
	assert.Equal(t, 1, rc.Stats[migration.EntityAgencyCompany].Migrated)
	assert.Equal(t, 1, rc.Stats[migration.EntityJob].Migrated)
	assert.Equal(t, 2, rc.Stats[migration.EntityJobSkill].Migrated)

	var job models.Job
	require.NoError(t, dest.First(&job, "slug = ?", "job-42").Error)
	assert.Equal(t, "Support Rep", job.Title)
	assert.Equal(t, models.JobStatusOpen, job.Status)
	var skillCount int64
	require.NoError(t, dest.Model(&models.JobSkill{}).Where("job_id = ?", job.ID).Count(&skillCount).Error)
	assert.EqualValues(t, 2, skillCount)

	// applications: the orphan (job 999) is skipped, never failed
	assert.Equal(t, 1, rc.Stats[migration.EntityApplication].Migrated)
	assert.Equal(t, 1, rc.Stats[migration.EntityApplication].Skipped)
	assert.Equal(t, 0, rc.Stats[migration.EntityApplication].Failed)
	var application models.Application
	require.NoError(t, dest.First(&application).Error)
	assert.Equal(t, models.ApplicationStatusSubmitted, application.Status)

	assert.Equal(t, 1, rc.Stats[migration.EntityJobMatch].Migrated)
	var match models.JobMatch
	require.NoError(t, dest.First(&match).Error)
	assert.Equal(t, models.MatchStatusSuggested, match.Status)
	assert.True(t, match.Score.Equal(decimal.NewFromFloat(87.5)))

	// only the invalid DISC session is in the error list
	assert.Equal(t, 1, rc.ErrorCount())
}

func TestEngineRunIsRepeatable(t *testing.T) {
	src := newSourceDB(t)
	dest := newDestinationDB(t)
	seedSource(t, src)

	first := migration.NewEngine(src, dest, seededProvider(), quietLogger(), 50)
	_, err := first.Run(context.Background())
	require.NoError(t, err)

	counts := func() map[string]int64 {
		out := make(map[string]int64)
		for name, model := range map[string]any{
			"candidates":       &models.Candidate{},
			"platform_users":   &models.PlatformUser{},
			"profiles":         &models.CandidateProfile{},
			"resumes":          &models.Resume{},
			"assessments":      &models.Assessment{},
			"analyses":         &models.ResumeAIAnalysis{},
			"agencies":         &models.Agency{},
			"companies":        &models.Company{},
			"agency_companies": &models.AgencyCompany{},
			"jobs":             &models.Job{},
			"job_skills":       &models.JobSkill{},
			"applications":     &models.Application{},
			"job_matches":      &models.JobMatch{},
		} {
			var n int64
			require.NoError(t, dest.Model(model).Count(&n).Error)
			out[name] = n
		}
		return out
	}
	before := counts()

	// a fresh engine means cold caches, like a real second invocation
	second := migration.NewEngine(src, dest, seededProvider(), quietLogger(), 50)
	rc, err := second.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, before, counts())

	// assessments are append-only: the re-run inserts nothing new
	assert.Equal(t, 0, rc.Stats[migration.EntityAssessment].Migrated)
	assert.Equal(t, 2, rc.Stats[migration.EntityAssessment].Skipped)
}

func TestEngineRunSmallPages(t *testing.T) {
	src := newSourceDB(t)
	dest := newDestinationDB(t)
	seedSource(t, src)

	// page size 1 forces every phase through the paging loop
	engine := migration.NewEngine(src, dest, seededProvider(), quietLogger(), 1)
	rc, err := engine.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, rc.Stats[migration.EntityCandidate].Migrated)
	assert.Equal(t, 1, rc.Stats[migration.EntityJob].Migrated)
	assert.Equal(t, 1, rc.Stats[migration.EntityApplication].Migrated)
}

func TestEngineRunHonorsCancellation(t *testing.T) {
	src := newSourceDB(t)
	dest := newDestinationDB(t)
	seedSource(t, src)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := migration.NewEngine(src, dest, seededProvider(), quietLogger(), 50)
	_, err := engine.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
