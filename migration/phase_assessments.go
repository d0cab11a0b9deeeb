package migration

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"bitbucket.org/talentforge/recruit_backend/models"
	"bitbucket.org/talentforge/recruit_backend/models/legacy"
	"bitbucket.org/talentforge/recruit_backend/utils"
)

// migrateAssessments copies DISC then typing sessions. Assessments are
// append-only: no upsert, just insert-if-absent keyed on the legacy session
// id, so re-runs skip sessions they already copied. Scores are re-validated
// into their bounded ranges before the insert.
func (e *Engine) migrateAssessments(ctx context.Context, rc *RunContext) error {
	err := eachPage(ctx, e, rc, EntityAssessment, nil, func(row legacy.DiscSession) {
		key := utils.SlugFromLegacyID("disc-session", row.ID)
		assessment := models.Assessment{
			ID:              uuid.NewString(),
			Kind:            models.AssessmentKindDisc,
			SourceSessionId: row.ID,
			DiscDominance:   &row.Dominance,
			DiscInfluence:   &row.Influence,
			DiscSteadiness:  &row.Steadiness,
			DiscCompliance:  &row.Compliance,
			TakenAt:         row.TakenAt,
		}
		e.insertAssessment(ctx, rc, row.UserID, key, &assessment)
	})
	if err != nil {
		return err
	}

	return eachPage(ctx, e, rc, EntityAssessment, nil, func(row legacy.TypingSession) {
		key := utils.SlugFromLegacyID("typing-session", row.ID)
		assessment := models.Assessment{
			ID:              uuid.NewString(),
			Kind:            models.AssessmentKindTyping,
			SourceSessionId: row.ID,
			WordsPerMinute:  row.Wpm,
			AccuracyPct:     row.AccuracyPct,
			TakenAt:         row.TakenAt,
		}
		e.insertAssessment(ctx, rc, row.UserID, key, &assessment)
	})
}

func (e *Engine) insertAssessment(ctx context.Context, rc *RunContext, legacyUserID int, key string, assessment *models.Assessment) {
	candidateID, err := e.resolver.ResolveAccount(ctx, legacyUserID)
	if errors.Is(err, ErrIdentityNotFound) || errors.Is(err, ErrUnresolvedReference) {
		rc.CountSkipped(EntityAssessment, key, "assessment owner could not be resolved, skipping")
		return
	}
	if err != nil {
		rc.AddRowError(EntityAssessment, key, err)
		return
	}
	assessment.CandidateId = candidateID

	if err := e.validate.Struct(assessment); err != nil {
		rc.AddRowError(EntityAssessment, key, err)
		return
	}

	inserted, err := e.writer.InsertIfAbsent(ctx, assessment, []string{"kind", "source_session_id"})
	if err != nil {
		rc.AddRowError(EntityAssessment, key, err)
		return
	}
	if !inserted {
		rc.CountSkipped(EntityAssessment, key, "assessment already copied by a prior run")
		return
	}
	rc.CountMigrated(EntityAssessment)
}
