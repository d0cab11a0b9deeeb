// Package migration implements the one-shot-but-repeatable pipeline that
// copies a tenant's data from the legacy store into the new schema: vocabulary
// translation, cross-key identity resolution, idempotent writes, a phase
// runner, a completion auditor and the gated destructive cleanup.
package migration

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type EntityKind string

const (
	EntityCandidate     EntityKind = "candidates"
	EntityPlatformUser  EntityKind = "platform_users"
	EntityProfile       EntityKind = "candidate_profiles"
	EntityResume        EntityKind = "resumes"
	EntityAssessment    EntityKind = "assessments"
	EntityAIAnalysis    EntityKind = "resume_ai_analyses"
	EntityAgency        EntityKind = "agencies"
	EntityCompany       EntityKind = "companies"
	EntityAgencyCompany EntityKind = "agency_companies"
	EntityJob           EntityKind = "jobs"
	EntityJobSkill      EntityKind = "job_skills"
	EntityApplication   EntityKind = "applications"
	EntityJobMatch      EntityKind = "job_matches"
)

// entityKinds is the display order for summaries.
var entityKinds = []EntityKind{
	EntityCandidate,
	EntityPlatformUser,
	EntityProfile,
	EntityResume,
	EntityAssessment,
	EntityAIAnalysis,
	EntityAgency,
	EntityCompany,
	EntityAgencyCompany,
	EntityJob,
	EntityJobSkill,
	EntityApplication,
	EntityJobMatch,
}

// RowError is one failed record. Row errors never abort a phase.
type RowError struct {
	Entity     EntityKind
	NaturalKey string
	Message    string
}

type EntityStats struct {
	Migrated int
	Skipped  int
	Failed   int
}

// RunContext carries everything one migration run accumulates. It is passed
// explicitly through the phases and returned at the end, so concurrent or
// test-isolated runs never share state.
type RunContext struct {
	RunID     string
	StartedAt time.Time
	Logger    *logrus.Logger

	Stats  map[EntityKind]*EntityStats
	Errors []RowError
}

func NewRunContext(logger *logrus.Logger) *RunContext {
	stats := make(map[EntityKind]*EntityStats, len(entityKinds))
	for _, kind := range entityKinds {
		stats[kind] = &EntityStats{}
	}
	return &RunContext{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
		Logger:    logger,
		Stats:     stats,
	}
}

func (rc *RunContext) stat(kind EntityKind) *EntityStats {
	s, ok := rc.Stats[kind]
	if !ok {
		s = &EntityStats{}
		rc.Stats[kind] = s
	}
	return s
}

func (rc *RunContext) CountMigrated(kind EntityKind) {
	rc.stat(kind).Migrated++
}

// CountSkipped records an expected skip (orphan reference, unknown identity).
// Skips are warnings, not failures.
func (rc *RunContext) CountSkipped(kind EntityKind, naturalKey string, reason string) {
	rc.stat(kind).Skipped++
	rc.Logger.WithFields(logrus.Fields{
		"run_id":      rc.RunID,
		"entity":      kind,
		"natural_key": naturalKey,
	}).Warn(reason)
}

// AddRowError records a failed record and moves on.
func (rc *RunContext) AddRowError(kind EntityKind, naturalKey string, err error) {
	rc.stat(kind).Failed++
	rc.Errors = append(rc.Errors, RowError{
		Entity:     kind,
		NaturalKey: naturalKey,
		Message:    err.Error(),
	})
	rc.Logger.WithFields(logrus.Fields{
		"run_id":      rc.RunID,
		"entity":      kind,
		"natural_key": naturalKey,
	}).Error(err.Error())
}

func (rc *RunContext) ErrorCount() int {
	return len(rc.Errors)
}

// maxSummaryErrors caps how many row errors the final summary prints; the
// full list stays on the RunContext.
const maxSummaryErrors = 10

// PrintSummary writes the per-entity counters and the first few row errors.
func (rc *RunContext) PrintSummary(w io.Writer) {
	fmt.Fprintf(w, "migration run %s finished in %s\n", rc.RunID, time.Since(rc.StartedAt).Round(time.Second))
	fmt.Fprintf(w, "%-22s %10s %10s %10s\n", "entity", "migrated", "skipped", "failed")
	for _, kind := range entityKinds {
		s := rc.Stats[kind]
		fmt.Fprintf(w, "%-22s %10d %10d %10d\n", kind, s.Migrated, s.Skipped, s.Failed)
	}
	if len(rc.Errors) == 0 {
		return
	}
	fmt.Fprintf(w, "row errors: %d (showing first %d)\n", len(rc.Errors), min(len(rc.Errors), maxSummaryErrors))
	for i, re := range rc.Errors {
		if i >= maxSummaryErrors {
			break
		}
		fmt.Fprintf(w, "  [%s] %s: %s\n", re.Entity, re.NaturalKey, re.Message)
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
