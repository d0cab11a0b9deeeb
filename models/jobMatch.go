package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JobMatch is a platform-suggested candidate/job pairing with a match score.
// Same foreign-key rules and natural key as Application.
type JobMatch struct {
	ID          string          `gorm:"primaryKey;size:36" json:"id"`
	CandidateId string          `gorm:"size:36;not null;uniqueIndex:idx_job_matches_candidate_job" json:"candidate_id"`
	JobId       string          `gorm:"size:36;not null;uniqueIndex:idx_job_matches_candidate_job" json:"job_id"`
	Score       decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"score"`
	Status      MatchStatus     `gorm:"size:20;not null;default:'suggested'" json:"status"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
