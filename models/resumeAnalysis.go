package models

import (
	"time"
)

// ResumeAIAnalysis stores the AI scoring result for one resume. Snapshot is
// the raw provider response and is replaced whole on upsert, never merged.
type ResumeAIAnalysis struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	ResumeId    string    `gorm:"size:36;uniqueIndex;not null" json:"resume_id"`
	CandidateId string    `gorm:"size:36;index;not null" json:"candidate_id"`
	Score       int       `gorm:"not null;default:0" json:"score"`
	Snapshot    []byte    `gorm:"type:json" json:"snapshot"`
	AnalyzedAt  time.Time `json:"analyzed_at"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
