package models

import (
	"time"
)

// Resume collapses the three legacy resume tables (extracted, generated,
// explicitly saved) into one, distinguished by Kind. Slug is globally unique
// and is the idempotency key for re-runs.
type Resume struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	CandidateId string     `gorm:"size:36;index;not null" json:"candidate_id"`
	Slug        string     `gorm:"size:120;uniqueIndex;not null" json:"slug"`
	Kind        ResumeKind `gorm:"size:20;not null" json:"kind"`
	Title       string     `gorm:"size:200" json:"title"`
	Content     []byte     `gorm:"type:json" json:"content"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
