package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Job's primary key is generated, but Slug is derived deterministically from
// the legacy integer id ("job-42") so any migration phase can re-derive the
// legacy->new mapping without a persisted side-table.
type Job struct {
	ID              string          `gorm:"primaryKey;size:36" json:"id"`
	Slug            string          `gorm:"size:120;uniqueIndex;not null" json:"slug"`
	AgencyCompanyId string          `gorm:"size:36;index;not null" json:"agency_company_id"`
	Title           string          `gorm:"size:200;not null" json:"title"`
	Description     string          `gorm:"type:text" json:"description"`
	Status          JobStatus       `gorm:"size:20;not null;default:'open'" json:"status"`
	WorkType        WorkType        `gorm:"size:30;not null;default:'full_time'" json:"work_type"`
	WorkSetup       WorkSetup       `gorm:"size:30;not null;default:'onsite'" json:"work_setup"`
	SalaryMin       decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"salary_min"`
	SalaryMax       decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"salary_max"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type JobSkill struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	JobId     string    `gorm:"size:36;not null;uniqueIndex:idx_job_skills_job_skill" json:"job_id"`
	Skill     string    `gorm:"size:100;not null;uniqueIndex:idx_job_skills_job_skill" json:"skill"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
