package migration

import (
	"context"

	"bitbucket.org/talentforge/recruit_backend/models/legacy"
	"bitbucket.org/talentforge/recruit_backend/utils"
)

// migrateOrganizations creates agencies, then the companies the legacy
// schema buried under agency members, then the explicit agency<->company
// relationship rows. The relationships must all exist before the job phase
// runs — a job's relationship foreign key is resolved, never created.
func (e *Engine) migrateOrganizations(ctx context.Context, rc *RunContext) error {
	err := eachPage(ctx, e, rc, EntityAgency, nil, func(row legacy.Agency) {
		if _, err := e.resolver.ResolveAgency(ctx, &row); err != nil {
			rc.AddRowError(EntityAgency, utils.SlugFromLegacyID("agency", row.ID), err)
			return
		}
		rc.CountMigrated(EntityAgency)
	})
	if err != nil {
		return err
	}

	return eachPage(ctx, e, rc, EntityCompany, nil, func(member legacy.AgencyMember) {
		key := utils.SlugFromLegacyID("company", member.ID)
		if member.CompanyName == "" {
			rc.CountSkipped(EntityCompany, key, "agency member carries no company, skipping")
			return
		}

		companyID, err := e.resolver.ResolveCompany(ctx, &member)
		if err != nil {
			rc.AddRowError(EntityCompany, key, err)
			return
		}
		rc.CountMigrated(EntityCompany)

		var agency legacy.Agency
		if err := e.src.WithContext(ctx).First(&agency, member.AgencyID).Error; err != nil {
			rc.CountSkipped(EntityAgencyCompany, key, "member references a missing agency, skipping relationship")
			return
		}
		agencyID, err := e.resolver.ResolveAgency(ctx, &agency)
		if err != nil {
			rc.AddRowError(EntityAgencyCompany, key, err)
			return
		}

		if _, err := e.resolver.EnsureAgencyCompany(ctx, agencyID, companyID); err != nil {
			rc.AddRowError(EntityAgencyCompany, key, err)
			return
		}
		rc.CountMigrated(EntityAgencyCompany)
	})
}
