package migration

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"bitbucket.org/talentforge/recruit_backend/models"
	"bitbucket.org/talentforge/recruit_backend/models/legacy"
	"bitbucket.org/talentforge/recruit_backend/utils"
)

// migrateApplications writes application rows. An application whose job or
// account cannot be resolved is an expected orphan in the legacy data: it is
// skipped with a warning, never failed and never retried.
func (e *Engine) migrateApplications(ctx context.Context, rc *RunContext) error {
	return eachPage(ctx, e, rc, EntityApplication, nil, func(row legacy.Application) {
		key := utils.SlugFromLegacyID("application", row.ID)

		candidateID, jobID, ok := e.resolvePair(ctx, rc, EntityApplication, key, row.UserID, row.JobID)
		if !ok {
			return
		}

		appliedAt := row.AppliedAt
		if appliedAt.IsZero() {
			appliedAt = row.CreatedAt
		}

		application := models.Application{
			ID:          uuid.NewString(),
			CandidateId: candidateID,
			JobId:       jobID,
			Status:      TranslateApplicationStatus(row.Status),
			AppliedAt:   appliedAt,
			CreatedAt:   row.CreatedAt,
		}
		err := e.writer.Upsert(ctx, &application,
			[]string{"candidate_id", "job_id"},
			[]string{"status", "applied_at", "updated_at"},
		)
		if err != nil {
			rc.AddRowError(EntityApplication, key, err)
			return
		}
		rc.CountMigrated(EntityApplication)
	})
}

// resolvePair resolves the account and job referenced by an application or
// match. Unresolvable references are counted as skips; true infrastructure
// errors land in the error list.
func (e *Engine) resolvePair(ctx context.Context, rc *RunContext, kind EntityKind, key string, legacyUserID, legacyJobID int) (candidateID, jobID string, ok bool) {
	candidateID, err := e.resolver.ResolveAccount(ctx, legacyUserID)
	if errors.Is(err, ErrIdentityNotFound) || errors.Is(err, ErrUnresolvedReference) {
		rc.CountSkipped(kind, key, "referenced account could not be resolved, skipping")
		return "", "", false
	}
	if err != nil {
		rc.AddRowError(kind, key, err)
		return "", "", false
	}

	jobID, err = e.resolver.ResolveJob(ctx, legacyJobID)
	if errors.Is(err, ErrUnresolvedReference) {
		rc.CountSkipped(kind, key, "referenced job could not be resolved, skipping")
		return "", "", false
	}
	if err != nil {
		rc.AddRowError(kind, key, err)
		return "", "", false
	}

	return candidateID, jobID, true
}
