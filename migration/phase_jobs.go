package migration

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"bitbucket.org/talentforge/recruit_backend/models"
	"bitbucket.org/talentforge/recruit_backend/models/legacy"
	"bitbucket.org/talentforge/recruit_backend/utils"
)

// migrateJobs writes jobs and their skill tags. The destination id is
// generated, but the slug ("job-<legacy id>") is derived from the legacy
// integer id, so later phases re-derive the mapping without a side-table.
// The agency<->company relationship must already exist: creation order is
// relationship-before-job, enforced by phase order.
func (e *Engine) migrateJobs(ctx context.Context, rc *RunContext) error {
	return eachPage(ctx, e, rc, EntityJob, nil, func(row legacy.Job) {
		if row.ID <= 0 {
			rc.CountSkipped(EntityJob, "(invalid id)", "job with null or invalid legacy id, skipping")
			return
		}
		slug := utils.SlugFromLegacyID("job", row.ID)

		relationshipID, err := e.resolveJobRelationship(ctx, &row)
		if errors.Is(err, ErrUnresolvedReference) {
			rc.CountSkipped(EntityJob, slug, "job's agency relationship could not be resolved, skipping")
			return
		}
		if err != nil {
			rc.AddRowError(EntityJob, slug, err)
			return
		}

		job := models.Job{
			ID:              uuid.NewString(),
			Slug:            slug,
			AgencyCompanyId: relationshipID,
			Title:           row.Title,
			Description:     row.Description,
			Status:          TranslateJobStatus(row.Status),
			WorkType:        TranslateWorkType(row.WorkType),
			WorkSetup:       TranslateWorkSetup(row.WorkSetup),
			SalaryMin:       row.SalaryMin,
			SalaryMax:       row.SalaryMax,
			CreatedAt:       row.CreatedAt,
		}
		err = e.writer.Upsert(ctx, &job,
			[]string{"slug"},
			[]string{
				"agency_company_id", "title", "description",
				"status", "work_type", "work_setup",
				"salary_min", "salary_max", "updated_at",
			},
		)
		if err != nil {
			rc.AddRowError(EntityJob, slug, err)
			return
		}
		rc.CountMigrated(EntityJob)

		e.upsertJobSkills(ctx, rc, &row, slug)
	})
}

// resolveJobRelationship maps the legacy job's agency + member pair to the
// destination relationship row.
func (e *Engine) resolveJobRelationship(ctx context.Context, row *legacy.Job) (string, error) {
	var agency legacy.Agency
	if err := e.src.WithContext(ctx).First(&agency, row.AgencyID).Error; err != nil {
		return "", ErrUnresolvedReference
	}
	agencyID, err := e.resolver.ResolveAgency(ctx, &agency)
	if err != nil {
		return "", err
	}

	var member legacy.AgencyMember
	if err := e.src.WithContext(ctx).First(&member, row.MemberID).Error; err != nil {
		return "", ErrUnresolvedReference
	}
	companyID, err := e.resolver.ResolveCompany(ctx, &member)
	if err != nil {
		return "", err
	}

	return e.resolver.EnsureAgencyCompany(ctx, agencyID, companyID)
}

func (e *Engine) upsertJobSkills(ctx context.Context, rc *RunContext, row *legacy.Job, slug string) {
	jobID, err := e.resolver.ResolveJob(ctx, row.ID)
	if err != nil {
		rc.AddRowError(EntityJobSkill, slug, err)
		return
	}

	var skills []string
	for _, raw := range strings.Split(row.Skills, ",") {
		if skill := strings.TrimSpace(raw); skill != "" {
			skills = append(skills, skill)
		}
	}
	skills = utils.UniqueSlice(skills)

	if err := e.writer.PruneStaleJobSkills(ctx, jobID, skills); err != nil {
		rc.AddRowError(EntityJobSkill, slug, err)
		return
	}

	for _, skill := range skills {
		jobSkill := models.JobSkill{
			ID:    uuid.NewString(),
			JobId: jobID,
			Skill: skill,
		}
		if _, err := e.writer.InsertIfAbsent(ctx, &jobSkill, []string{"job_id", "skill"}); err != nil {
			rc.AddRowError(EntityJobSkill, slug+"/"+skill, err)
			continue
		}
		rc.CountMigrated(EntityJobSkill)
	}
}
