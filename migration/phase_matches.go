package migration

import (
	"context"

	"github.com/google/uuid"

	"bitbucket.org/talentforge/recruit_backend/models"
	"bitbucket.org/talentforge/recruit_backend/models/legacy"
	"bitbucket.org/talentforge/recruit_backend/utils"
)

// migrateJobMatches mirrors the application phase: both foreign keys must
// resolve, orphans are skipped with a warning.
func (e *Engine) migrateJobMatches(ctx context.Context, rc *RunContext) error {
	return eachPage(ctx, e, rc, EntityJobMatch, nil, func(row legacy.JobMatch) {
		key := utils.SlugFromLegacyID("match", row.ID)

		candidateID, jobID, ok := e.resolvePair(ctx, rc, EntityJobMatch, key, row.UserID, row.JobID)
		if !ok {
			return
		}

		match := models.JobMatch{
			ID:          uuid.NewString(),
			CandidateId: candidateID,
			JobId:       jobID,
			Score:       row.Score,
			Status:      TranslateMatchStatus(row.Status),
			CreatedAt:   row.CreatedAt,
		}
		err := e.writer.Upsert(ctx, &match,
			[]string{"candidate_id", "job_id"},
			[]string{"score", "status", "updated_at"},
		)
		if err != nil {
			rc.AddRowError(EntityJobMatch, key, err)
			return
		}
		rc.CountMigrated(EntityJobMatch)
	})
}
