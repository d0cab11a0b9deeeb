// Package legacy mirrors the tables of the source store. These models are
// read-only: the migration pages through them in legacy id order and never
// writes back.
package legacy

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is the unified legacy account row. AdminLevel NULL or 0 means the
// account is a candidate; anything above is a platform admin/recruiter.
type User struct {
	ID         int       `gorm:"primaryKey"`
	Email      string    `gorm:"size:100"`
	FirstName  string    `gorm:"size:100"`
	LastName   string    `gorm:"size:100"`
	Phone      string    `gorm:"size:30"`
	AdminLevel *int      `gorm:"column:admin_level"`
	IsActive   *bool     `gorm:"column:is_active"`
	CreatedAt  time.Time `gorm:"column:created_at"`

	WorkStatus   *WorkStatus        `gorm:"foreignKey:UserID"`
	Privacy      *PrivacySetting    `gorm:"foreignKey:UserID"`
	Gamification *GamificationScore `gorm:"foreignKey:UserID"`
}

func (User) TableName() string { return "users" }

type WorkStatus struct {
	ID                int             `gorm:"primaryKey"`
	UserID            int             `gorm:"column:user_id;index"`
	Bio               string          `gorm:"type:text"`
	Location          string          `gorm:"size:200"`
	WorkType          string          `gorm:"column:work_type;size:50"`
	WorkSetup         string          `gorm:"column:work_setup;size:50"`
	Availability      string          `gorm:"size:50"`
	ExpectedSalaryMin decimal.Decimal `gorm:"column:expected_salary_min;type:decimal(12,2)"`
	ExpectedSalaryMax decimal.Decimal `gorm:"column:expected_salary_max;type:decimal(12,2)"`
}

func (WorkStatus) TableName() string { return "work_statuses" }

type PrivacySetting struct {
	ID          int   `gorm:"primaryKey"`
	UserID      int   `gorm:"column:user_id;index"`
	HideProfile *bool `gorm:"column:hide_profile"`
	ShowSalary  *bool `gorm:"column:show_salary"`
}

func (PrivacySetting) TableName() string { return "privacy_settings" }

type GamificationScore struct {
	ID     int `gorm:"primaryKey"`
	UserID int `gorm:"column:user_id;index"`
	Points int
	Level  int
}

func (GamificationScore) TableName() string { return "gamification_scores" }

// The legacy schema kept three disjoint resume tables; all collapse into the
// destination resumes table keyed by slug.

type ExtractedResume struct {
	ID        int       `gorm:"primaryKey"`
	UserID    int       `gorm:"column:user_id;index"`
	Slug      string    `gorm:"size:120"`
	Title     string    `gorm:"size:200"`
	Content   []byte    `gorm:"type:json"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (ExtractedResume) TableName() string { return "extracted_resumes" }

type GeneratedResume struct {
	ID        int       `gorm:"primaryKey"`
	UserID    int       `gorm:"column:user_id;index"`
	Slug      string    `gorm:"size:120"`
	Title     string    `gorm:"size:200"`
	Content   []byte    `gorm:"type:json"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (GeneratedResume) TableName() string { return "generated_resumes" }

type SavedResume struct {
	ID        int       `gorm:"primaryKey"`
	UserID    int       `gorm:"column:user_id;index"`
	Slug      string    `gorm:"size:120"`
	Title     string    `gorm:"size:200"`
	Content   []byte    `gorm:"type:json"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (SavedResume) TableName() string { return "saved_resumes" }

type DiscSession struct {
	ID         int       `gorm:"primaryKey"`
	UserID     int       `gorm:"column:user_id;index"`
	Dominance  int       `gorm:"column:dominance"`
	Influence  int       `gorm:"column:influence"`
	Steadiness int       `gorm:"column:steadiness"`
	Compliance int       `gorm:"column:compliance"`
	TakenAt    time.Time `gorm:"column:taken_at"`
}

func (DiscSession) TableName() string { return "disc_sessions" }

type TypingSession struct {
	ID          int       `gorm:"primaryKey"`
	UserID      int       `gorm:"column:user_id;index"`
	Wpm         int       `gorm:"column:wpm"`
	AccuracyPct float64   `gorm:"column:accuracy_pct"`
	TakenAt     time.Time `gorm:"column:taken_at"`
}

func (TypingSession) TableName() string { return "typing_sessions" }

type ResumeAnalysis struct {
	ID         int       `gorm:"primaryKey"`
	UserID     int       `gorm:"column:user_id;index"`
	ResumeSlug string    `gorm:"column:resume_slug;size:120"`
	Score      int
	Result     []byte    `gorm:"type:json"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (ResumeAnalysis) TableName() string { return "resume_analyses" }

type Agency struct {
	ID        int       `gorm:"primaryKey"`
	Name      string    `gorm:"size:200"`
	Email     string    `gorm:"size:100"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (Agency) TableName() string { return "agencies" }

// AgencyMember is where the legacy schema buried companies: each member row
// of an agency carries the company it represents.
type AgencyMember struct {
	ID           int       `gorm:"primaryKey"`
	AgencyID     int       `gorm:"column:agency_id;index"`
	CompanyName  string    `gorm:"column:company_name;size:200"`
	CompanyEmail string    `gorm:"column:company_email;size:100"`
	Role         string    `gorm:"size:50"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (AgencyMember) TableName() string { return "agency_members" }

type Job struct {
	ID          int             `gorm:"primaryKey"`
	AgencyID    int             `gorm:"column:agency_id;index"`
	MemberID    int             `gorm:"column:member_id;index"`
	Title       string          `gorm:"size:200"`
	Description string          `gorm:"type:text"`
	Status      string          `gorm:"size:50"`
	WorkType    string          `gorm:"column:work_type;size:50"`
	WorkSetup   string          `gorm:"column:work_setup;size:50"`
	Skills      string          `gorm:"type:text"` // comma-separated tags
	SalaryMin   decimal.Decimal `gorm:"column:salary_min;type:decimal(12,2)"`
	SalaryMax   decimal.Decimal `gorm:"column:salary_max;type:decimal(12,2)"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
}

func (Job) TableName() string { return "jobs" }

type Application struct {
	ID        int       `gorm:"primaryKey"`
	UserID    int       `gorm:"column:user_id;index"`
	JobID     int       `gorm:"column:job_id;index"`
	Status    string    `gorm:"size:50"`
	AppliedAt time.Time `gorm:"column:applied_at"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (Application) TableName() string { return "applications" }

type JobMatch struct {
	ID        int             `gorm:"primaryKey"`
	UserID    int             `gorm:"column:user_id;index"`
	JobID     int             `gorm:"column:job_id;index"`
	Score     decimal.Decimal `gorm:"type:decimal(5,2)"`
	Status    string          `gorm:"size:50"`
	CreatedAt time.Time       `gorm:"column:created_at"`
}

func (JobMatch) TableName() string { return "job_matches" }

// SourceModels lists every source-schema model, used by tests to build a
// stand-in source store.
func SourceModels() []any {
	return []any{
		&User{},
		&WorkStatus{},
		&PrivacySetting{},
		&GamificationScore{},
		&ExtractedResume{},
		&GeneratedResume{},
		&SavedResume{},
		&DiscSession{},
		&TypingSession{},
		&ResumeAnalysis{},
		&Agency{},
		&AgencyMember{},
		&Job{},
		&Application{},
		&JobMatch{},
	}
}
