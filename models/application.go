package models

import (
	"time"
)

// Application references both a Candidate and a Job; both foreign keys must
// resolve before a row is written. Natural key is (candidate, job).
type Application struct {
	ID          string            `gorm:"primaryKey;size:36" json:"id"`
	CandidateId string            `gorm:"size:36;not null;uniqueIndex:idx_applications_candidate_job" json:"candidate_id"`
	JobId       string            `gorm:"size:36;not null;uniqueIndex:idx_applications_candidate_job" json:"job_id"`
	Status      ApplicationStatus `gorm:"size:20;not null;default:'submitted'" json:"status"`
	AppliedAt   time.Time         `json:"applied_at"`
	CreatedAt   time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}
