package migration

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"bitbucket.org/talentforge/recruit_backend/models"
	"bitbucket.org/talentforge/recruit_backend/models/legacy"
	"bitbucket.org/talentforge/recruit_backend/utils"
)

// migrateAccounts splits each legacy user into a candidate or a platform
// user, keyed by the identity-provider UUID. A user the provider does not
// know is skipped — the migration never mints identities. Candidate profiles
// are written inline, right after their account, since the profile depends
// only on the just-upserted candidate.
func (e *Engine) migrateAccounts(ctx context.Context, rc *RunContext) error {
	scope := func(q *gorm.DB) *gorm.DB {
		return q.Preload("WorkStatus").Preload("Privacy").Preload("Gamification")
	}
	return eachPage(ctx, e, rc, EntityCandidate, scope, func(user legacy.User) {
		key := user.Email
		if key == "" {
			key = utils.SlugFromLegacyID("user", user.ID)
		}

		accountID, err := e.resolver.ResolveAccountByEmail(ctx, user.ID, user.Email)
		if errors.Is(err, ErrIdentityNotFound) {
			rc.CountSkipped(EntityCandidate, key, "identity provider does not know this user, skipping")
			return
		}
		if err != nil {
			rc.AddRowError(EntityCandidate, key, err)
			return
		}

		if isPlatformUser(&user) {
			e.upsertPlatformUser(ctx, rc, &user, accountID, key)
			return
		}

		candidate := models.Candidate{
			ID:        accountID,
			Email:     user.Email,
			FullName:  fullName(&user),
			Phone:     utils.NormalizePhone(user.Phone),
			IsActive:  activeFlag(&user),
			CreatedAt: user.CreatedAt,
		}
		err = e.writer.Upsert(ctx, &candidate,
			[]string{"id"},
			[]string{"email", "full_name", "phone", "is_active", "updated_at"},
		)
		if err != nil {
			rc.AddRowError(EntityCandidate, key, err)
			return
		}
		rc.CountMigrated(EntityCandidate)

		e.upsertProfile(ctx, rc, &user, accountID, key)
	})
}

// A NULL or zero admin level means candidate; anything above is platform staff.
func isPlatformUser(user *legacy.User) bool {
	return user.AdminLevel != nil && *user.AdminLevel > 0
}

func (e *Engine) upsertPlatformUser(ctx context.Context, rc *RunContext, user *legacy.User, accountID, key string) {
	level := 0
	if user.AdminLevel != nil {
		level = *user.AdminLevel
	}
	role := "recruiter"
	if level >= 5 {
		role = "admin"
	}

	platformUser := models.PlatformUser{
		ID:         accountID,
		Email:      user.Email,
		FullName:   fullName(user),
		Role:       role,
		AdminLevel: level,
		CreatedAt:  user.CreatedAt,
	}
	err := e.writer.Upsert(ctx, &platformUser,
		[]string{"id"},
		[]string{"email", "full_name", "role", "admin_level", "updated_at"},
	)
	if err != nil {
		rc.AddRowError(EntityPlatformUser, key, err)
		return
	}
	rc.CountMigrated(EntityPlatformUser)
}

// upsertProfile denormalizes the three legacy side-tables into the single
// profile row. Missing side-rows are fine — the profile still exists with
// defaults, keeping the one-profile-per-candidate invariant.
func (e *Engine) upsertProfile(ctx context.Context, rc *RunContext, user *legacy.User, accountID, key string) {
	profile := models.CandidateProfile{
		CandidateId:        accountID,
		Availability:       models.AvailabilityOpenToOffers,
		PreferredWorkType:  models.WorkTypeFullTime,
		PreferredWorkSetup: models.WorkSetupOnsite,
		HideProfile:        utils.NewFalse(),
		ShowExpectedSalary: utils.NewTrue(),
	}

	if ws := user.WorkStatus; ws != nil {
		profile.Bio = ws.Bio
		profile.Location = ws.Location
		profile.ExpectedSalaryMin = ws.ExpectedSalaryMin
		profile.ExpectedSalaryMax = ws.ExpectedSalaryMax
		profile.Availability = TranslateAvailability(ws.Availability)
		profile.PreferredWorkType = TranslateWorkType(ws.WorkType)
		profile.PreferredWorkSetup = TranslateWorkSetup(ws.WorkSetup)
	}
	if p := user.Privacy; p != nil {
		if p.HideProfile != nil {
			profile.HideProfile = p.HideProfile
		}
		if p.ShowSalary != nil {
			profile.ShowExpectedSalary = p.ShowSalary
		}
	}
	if g := user.Gamification; g != nil {
		profile.GamificationPoints = g.Points
		profile.GamificationLevel = g.Level
	}

	err := e.writer.Upsert(ctx, &profile,
		[]string{"candidate_id"},
		[]string{
			"bio", "location", "expected_salary_min", "expected_salary_max",
			"availability", "preferred_work_type", "preferred_work_setup",
			"hide_profile", "show_expected_salary",
			"gamification_points", "gamification_level", "updated_at",
		},
	)
	if err != nil {
		rc.AddRowError(EntityProfile, key, err)
		return
	}
	rc.CountMigrated(EntityProfile)
}

func fullName(user *legacy.User) string {
	return strings.TrimSpace(strings.TrimSpace(user.FirstName) + " " + strings.TrimSpace(user.LastName))
}

func activeFlag(user *legacy.User) *bool {
	if user.IsActive != nil {
		return user.IsActive
	}
	return utils.NewTrue()
}
