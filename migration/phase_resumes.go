package migration

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"bitbucket.org/talentforge/recruit_backend/models"
	"bitbucket.org/talentforge/recruit_backend/models/legacy"
)

// migrateResumes collapses the three legacy resume tables into the single
// destination table. Slug is the idempotency key, so a re-run overwrites
// rather than duplicates.
func (e *Engine) migrateResumes(ctx context.Context, rc *RunContext) error {
	err := eachPage(ctx, e, rc, EntityResume, nil, func(row legacy.ExtractedResume) {
		e.upsertResume(ctx, rc, row.UserID, row.Slug, models.ResumeKindExtracted, row.Title, row.Content, row.CreatedAt)
	})
	if err != nil {
		return err
	}

	err = eachPage(ctx, e, rc, EntityResume, nil, func(row legacy.GeneratedResume) {
		e.upsertResume(ctx, rc, row.UserID, row.Slug, models.ResumeKindGenerated, row.Title, row.Content, row.CreatedAt)
	})
	if err != nil {
		return err
	}

	return eachPage(ctx, e, rc, EntityResume, nil, func(row legacy.SavedResume) {
		e.upsertResume(ctx, rc, row.UserID, row.Slug, models.ResumeKindSaved, row.Title, row.Content, row.CreatedAt)
	})
}

func (e *Engine) upsertResume(ctx context.Context, rc *RunContext, legacyUserID int, slug string, kind models.ResumeKind, title string, content []byte, createdAt time.Time) {
	if slug == "" {
		rc.CountSkipped(EntityResume, "(empty slug)", "resume without slug, skipping")
		return
	}

	candidateID, err := e.resolver.ResolveAccount(ctx, legacyUserID)
	if errors.Is(err, ErrIdentityNotFound) || errors.Is(err, ErrUnresolvedReference) {
		rc.CountSkipped(EntityResume, slug, "resume owner could not be resolved, skipping")
		return
	}
	if err != nil {
		rc.AddRowError(EntityResume, slug, err)
		return
	}

	resume := models.Resume{
		ID:          uuid.NewString(),
		CandidateId: candidateID,
		Slug:        slug,
		Kind:        kind,
		Title:       title,
		Content:     content,
		CreatedAt:   createdAt,
	}
	err = e.writer.Upsert(ctx, &resume,
		[]string{"slug"},
		[]string{"candidate_id", "kind", "title", "content", "updated_at"},
	)
	if err != nil {
		rc.AddRowError(EntityResume, slug, err)
		return
	}
	rc.CountMigrated(EntityResume)
}
