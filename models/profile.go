package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CandidateProfile is the 1:1 extension of a Candidate. The legacy schema
// kept work status, privacy settings and the gamification score in three
// side-tables; the new schema denormalizes them into this one row. Upsert
// key is the candidate id.
type CandidateProfile struct {
	CandidateId        string          `gorm:"primaryKey;size:36" json:"candidate_id"`
	Bio                string          `gorm:"type:text" json:"bio"`
	Location           string          `gorm:"size:200" json:"location"`
	ExpectedSalaryMin  decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"expected_salary_min"`
	ExpectedSalaryMax  decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"expected_salary_max"`
	Availability       Availability    `gorm:"size:30;not null;default:'open_to_offers'" json:"availability"`
	PreferredWorkType  WorkType        `gorm:"size:30;not null;default:'full_time'" json:"preferred_work_type"`
	PreferredWorkSetup WorkSetup       `gorm:"size:30;not null;default:'onsite'" json:"preferred_work_setup"`
	HideProfile        *bool           `gorm:"not null;default:false" json:"hide_profile"`
	ShowExpectedSalary *bool           `gorm:"not null;default:true" json:"show_expected_salary"`
	GamificationPoints int             `gorm:"not null;default:0" json:"gamification_points"`
	GamificationLevel  int             `gorm:"not null;default:0" json:"gamification_level"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
