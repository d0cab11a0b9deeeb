package models

import (
	"time"
)

// Organizations are structural scaffolding, not identity-bearing entities:
// unlike accounts and jobs the migration may synthesize them when the
// destination has no matching row. Slugs are derived from legacy integer ids
// ("agency-7", "company-12") so lookups need no persisted mapping table.

type Agency struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Slug      string    `gorm:"size:120;uniqueIndex;not null" json:"slug"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	Email     string    `gorm:"size:100" json:"email"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type Company struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Slug      string    `gorm:"size:120;uniqueIndex;not null" json:"slug"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	Email     string    `gorm:"size:100" json:"email"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// AgencyCompany is the explicit agency<->company relationship. A Job's
// relationship foreign key must resolve before the job row is written, so
// these rows are always created ahead of the job phase.
type AgencyCompany struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	AgencyId  string    `gorm:"size:36;not null;uniqueIndex:idx_agency_companies_pair" json:"agency_id"`
	CompanyId string    `gorm:"size:36;not null;uniqueIndex:idx_agency_companies_pair" json:"company_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
