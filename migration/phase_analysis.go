package migration

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"bitbucket.org/talentforge/recruit_backend/models"
	"bitbucket.org/talentforge/recruit_backend/models/legacy"
	"bitbucket.org/talentforge/recruit_backend/utils"
)

// migrateAIAnalyses copies the AI scoring snapshots. One row per resume;
// the snapshot JSON is replaced whole on re-run, never merged.
func (e *Engine) migrateAIAnalyses(ctx context.Context, rc *RunContext) error {
	return eachPage(ctx, e, rc, EntityAIAnalysis, nil, func(row legacy.ResumeAnalysis) {
		key := utils.SlugFromLegacyID("analysis", row.ID)

		candidateID, err := e.resolver.ResolveAccount(ctx, row.UserID)
		if errors.Is(err, ErrIdentityNotFound) || errors.Is(err, ErrUnresolvedReference) {
			rc.CountSkipped(EntityAIAnalysis, key, "analysis owner could not be resolved, skipping")
			return
		}
		if err != nil {
			rc.AddRowError(EntityAIAnalysis, key, err)
			return
		}

		resumeID, err := e.resolver.ResolveResume(ctx, row.ResumeSlug)
		if errors.Is(err, ErrUnresolvedReference) {
			rc.CountSkipped(EntityAIAnalysis, key, "analysis references a resume that was not migrated, skipping")
			return
		}
		if err != nil {
			rc.AddRowError(EntityAIAnalysis, key, err)
			return
		}

		analysis := models.ResumeAIAnalysis{
			ID:          uuid.NewString(),
			ResumeId:    resumeID,
			CandidateId: candidateID,
			Score:       row.Score,
			Snapshot:    row.Result,
			AnalyzedAt:  row.CreatedAt,
		}
		err = e.writer.Upsert(ctx, &analysis,
			[]string{"resume_id"},
			[]string{"candidate_id", "score", "snapshot", "analyzed_at", "updated_at"},
		)
		if err != nil {
			rc.AddRowError(EntityAIAnalysis, key, err)
			return
		}
		rc.CountMigrated(EntityAIAnalysis)
	})
}
