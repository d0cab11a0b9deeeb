package models

import (
	"time"
)

// Candidate is a job-seeker account. The primary key is the identity-provider
// UUID, never generated here: the migration only mirrors metadata for
// identities that already exist in the provider.
type Candidate struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Email     string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	FullName  string    `gorm:"size:200;not null" json:"full_name"`
	Phone     string    `gorm:"size:20" json:"phone"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// PlatformUser is an admin or recruiter account. Same identity rule as
// Candidate; the two tables are disjoint, split on the legacy admin level.
type PlatformUser struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	Email      string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	FullName   string    `gorm:"size:200;not null" json:"full_name"`
	Role       string    `gorm:"size:50;not null;default:'recruiter'" json:"role"`
	AdminLevel int       `gorm:"not null;default:1" json:"admin_level"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
