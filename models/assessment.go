package models

import (
	"time"
)

// Assessment is an append-only session record (DISC or typing). Rows are
// never upserted: a source session becomes exactly one destination row, and
// SourceSessionId lets a re-run detect sessions it already copied.
//
// Score fields carry validator tags; the migration rejects out-of-range
// legacy rows instead of silently storing them.
type Assessment struct {
	ID              string         `gorm:"primaryKey;size:36" json:"id"`
	CandidateId     string         `gorm:"size:36;index;not null" json:"candidate_id"`
	Kind            AssessmentKind `gorm:"size:20;not null;uniqueIndex:idx_assessments_source_session" json:"kind"`
	SourceSessionId int            `gorm:"not null;uniqueIndex:idx_assessments_source_session" json:"source_session_id"`

	// DISC dimensions, 0..100 each. Nil for typing sessions.
	DiscDominance  *int `gorm:"default:null" json:"disc_dominance" validate:"omitempty,min=0,max=100"`
	DiscInfluence  *int `gorm:"default:null" json:"disc_influence" validate:"omitempty,min=0,max=100"`
	DiscSteadiness *int `gorm:"default:null" json:"disc_steadiness" validate:"omitempty,min=0,max=100"`
	DiscCompliance *int `gorm:"default:null" json:"disc_compliance" validate:"omitempty,min=0,max=100"`

	// Typing results. Zero for DISC sessions.
	WordsPerMinute int     `gorm:"not null;default:0" json:"words_per_minute" validate:"min=0,max=350"`
	AccuracyPct    float64 `gorm:"not null;default:0" json:"accuracy_pct" validate:"min=0,max=100"`

	TakenAt   time.Time `json:"taken_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
