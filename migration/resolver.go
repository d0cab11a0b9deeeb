package migration

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bitbucket.org/talentforge/recruit_backend/identity"
	"bitbucket.org/talentforge/recruit_backend/models"
	"bitbucket.org/talentforge/recruit_backend/models/legacy"
	"bitbucket.org/talentforge/recruit_backend/utils"
)

var (
	// ErrIdentityNotFound means the identity provider does not know the
	// account. The caller skips the record; the migration never fabricates
	// an identity.
	ErrIdentityNotFound = errors.New("identity provider does not know this account")

	// ErrUnresolvedReference means a referenced job or account has no
	// destination row. Expected for orphaned legacy references.
	ErrUnresolvedReference = errors.New("referenced entity not found in destination")
)

// Resolver translates source-side natural keys (legacy integer ids, emails,
// slugs) into destination identifiers. Lookups are cached for the run; the
// caches are plain maps because the engine is single-threaded.
//
// Resolution is a pure read except for organizations, which are scaffolding
// and may be created on miss. Accounts and jobs are never created here.
type Resolver struct {
	src      *gorm.DB
	dest     *gorm.DB
	provider identity.Provider

	accountIDs      map[int]string
	accountMisses   map[int]struct{}
	jobIDs          map[int]string
	resumeIDs       map[string]string // slug -> destination id
	agencyIDs       map[int]string
	companyIDs      map[int]string
	relationshipIDs map[string]string // agencyID+"/"+companyID -> relationship id
}

func NewResolver(src, dest *gorm.DB, provider identity.Provider) *Resolver {
	return &Resolver{
		src:             src,
		dest:            dest,
		provider:        provider,
		accountIDs:      make(map[int]string),
		accountMisses:   make(map[int]struct{}),
		jobIDs:          make(map[int]string),
		resumeIDs:       make(map[string]string),
		agencyIDs:       make(map[int]string),
		companyIDs:      make(map[int]string),
		relationshipIDs: make(map[string]string),
	}
}

// ResolveAccount maps a legacy user id to the identity-provider UUID that is
// also the destination account id. Returns ErrIdentityNotFound when the
// provider has no user for the legacy email.
func (r *Resolver) ResolveAccount(ctx context.Context, legacyUserID int) (string, error) {
	if id, ok := r.accountIDs[legacyUserID]; ok {
		return id, nil
	}
	if _, ok := r.accountMisses[legacyUserID]; ok {
		return "", fmt.Errorf("user %d: %w", legacyUserID, ErrIdentityNotFound)
	}

	var user legacy.User
	err := r.src.WithContext(ctx).First(&user, legacyUserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.accountMisses[legacyUserID] = struct{}{}
		return "", fmt.Errorf("user %d: %w", legacyUserID, ErrUnresolvedReference)
	}
	if err != nil {
		return "", err
	}

	return r.ResolveAccountByEmail(ctx, user.ID, user.Email)
}

// ResolveAccountByEmail is the cache-seeding variant used by the accounts
// phase, which already holds the legacy row and its email.
func (r *Resolver) ResolveAccountByEmail(ctx context.Context, legacyUserID int, email string) (string, error) {
	if id, ok := r.accountIDs[legacyUserID]; ok {
		return id, nil
	}
	if _, ok := r.accountMisses[legacyUserID]; ok {
		return "", fmt.Errorf("user %d: %w", legacyUserID, ErrIdentityNotFound)
	}

	identityUser, err := r.provider.GetUserByEmail(ctx, email)
	if errors.Is(err, identity.ErrNotFound) {
		r.accountMisses[legacyUserID] = struct{}{}
		return "", fmt.Errorf("user %d (%s): %w", legacyUserID, email, ErrIdentityNotFound)
	}
	if err != nil {
		return "", err
	}

	r.accountIDs[legacyUserID] = identityUser.ID
	return identityUser.ID, nil
}

// ResolveJob derives the job's natural key from the legacy integer id and
// looks it up in the destination. Never creates a job.
func (r *Resolver) ResolveJob(ctx context.Context, legacyJobID int) (string, error) {
	if id, ok := r.jobIDs[legacyJobID]; ok {
		return id, nil
	}
	slug := utils.SlugFromLegacyID("job", legacyJobID)

	var job models.Job
	err := r.dest.WithContext(ctx).Where("slug = ?", slug).First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("job %s: %w", slug, ErrUnresolvedReference)
	}
	if err != nil {
		return "", err
	}
	r.jobIDs[legacyJobID] = job.ID
	return job.ID, nil
}

// ResolveResume maps a resume slug to its destination id.
func (r *Resolver) ResolveResume(ctx context.Context, slug string) (string, error) {
	if id, ok := r.resumeIDs[slug]; ok {
		return id, nil
	}
	var resume models.Resume
	err := r.dest.WithContext(ctx).Where("slug = ?", slug).First(&resume).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("resume %s: %w", slug, ErrUnresolvedReference)
	}
	if err != nil {
		return "", err
	}
	r.resumeIDs[slug] = resume.ID
	return resume.ID, nil
}

// ResolveAgency finds the destination agency for a legacy agency row,
// creating a scaffold row when absent.
func (r *Resolver) ResolveAgency(ctx context.Context, src *legacy.Agency) (string, error) {
	if id, ok := r.agencyIDs[src.ID]; ok {
		return id, nil
	}
	slug := utils.SlugFromLegacyID("agency", src.ID)

	var agency models.Agency
	err := r.dest.WithContext(ctx).Where("slug = ?", slug).First(&agency).Error
	if err == nil {
		r.agencyIDs[src.ID] = agency.ID
		return agency.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	agency = models.Agency{
		ID:        uuid.NewString(),
		Slug:      slug,
		Name:      src.Name,
		Email:     src.Email,
		IsActive:  utils.NewTrue(),
		CreatedAt: src.CreatedAt,
	}
	if err := r.dest.WithContext(ctx).Create(&agency).Error; err != nil {
		return "", err
	}
	r.agencyIDs[src.ID] = agency.ID
	return agency.ID, nil
}

// ResolveCompany finds the destination company for a legacy agency member
// (where the old schema kept company data), creating one when absent.
func (r *Resolver) ResolveCompany(ctx context.Context, member *legacy.AgencyMember) (string, error) {
	if id, ok := r.companyIDs[member.ID]; ok {
		return id, nil
	}
	slug := utils.SlugFromLegacyID("company", member.ID)

	var company models.Company
	err := r.dest.WithContext(ctx).Where("slug = ?", slug).First(&company).Error
	if err == nil {
		r.companyIDs[member.ID] = company.ID
		return company.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	company = models.Company{
		ID:        uuid.NewString(),
		Slug:      slug,
		Name:      member.CompanyName,
		Email:     member.CompanyEmail,
		CreatedAt: member.CreatedAt,
	}
	if err := r.dest.WithContext(ctx).Create(&company).Error; err != nil {
		return "", err
	}
	r.companyIDs[member.ID] = company.ID
	return company.ID, nil
}

// EnsureAgencyCompany finds or creates the explicit agency<->company
// relationship and returns its id. Jobs reference this row, so it must exist
// before any job insert is attempted.
func (r *Resolver) EnsureAgencyCompany(ctx context.Context, agencyID, companyID string) (string, error) {
	cacheKey := agencyID + "/" + companyID
	if id, ok := r.relationshipIDs[cacheKey]; ok {
		return id, nil
	}

	var rel models.AgencyCompany
	err := r.dest.WithContext(ctx).
		Where("agency_id = ? AND company_id = ?", agencyID, companyID).
		First(&rel).Error
	if err == nil {
		r.relationshipIDs[cacheKey] = rel.ID
		return rel.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	rel = models.AgencyCompany{
		ID:        uuid.NewString(),
		AgencyId:  agencyID,
		CompanyId: companyID,
	}
	if err := r.dest.WithContext(ctx).Create(&rel).Error; err != nil {
		return "", err
	}
	r.relationshipIDs[cacheKey] = rel.ID
	return rel.ID, nil
}
