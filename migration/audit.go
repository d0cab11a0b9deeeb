package migration

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"bitbucket.org/talentforge/recruit_backend/models"
	"bitbucket.org/talentforge/recruit_backend/models/legacy"
)

// AuditRow compares source and destination counts for one entity kind. The
// auditor only surfaces the discrepancy; diagnosing it is an operator job.
type AuditRow struct {
	Entity           EntityKind
	SourceCount      int64
	DestinationCount int64
}

func (r AuditRow) Gap() int64 {
	return r.SourceCount - r.DestinationCount
}

// Auditor re-counts source vs. destination per entity. Strictly read-only,
// so it can run before, during or after a migration pass.
type Auditor struct {
	src  *gorm.DB
	dest *gorm.DB
}

func NewAuditor(src, dest *gorm.DB) *Auditor {
	return &Auditor{src: src, dest: dest}
}

func (a *Auditor) Audit(ctx context.Context) ([]AuditRow, error) {
	rows := []AuditRow{}

	// Accounts: one legacy users table vs. the candidate/platform split.
	userCount, err := a.count(ctx, a.src, &legacy.User{}, nil)
	if err != nil {
		return nil, fmt.Errorf("count legacy users: %w", err)
	}
	candidateCount, err := a.count(ctx, a.dest, &models.Candidate{}, nil)
	if err != nil {
		return nil, err
	}
	platformCount, err := a.count(ctx, a.dest, &models.PlatformUser{}, nil)
	if err != nil {
		return nil, err
	}
	rows = append(rows, AuditRow{Entity: "accounts", SourceCount: userCount, DestinationCount: candidateCount + platformCount})

	profileCount, err := a.count(ctx, a.dest, &models.CandidateProfile{}, nil)
	if err != nil {
		return nil, err
	}
	rows = append(rows, AuditRow{Entity: EntityProfile, SourceCount: candidateCount, DestinationCount: profileCount})

	// Resumes: three legacy tables collapse into one.
	var resumeSource int64
	for _, model := range []any{&legacy.ExtractedResume{}, &legacy.GeneratedResume{}, &legacy.SavedResume{}} {
		n, err := a.count(ctx, a.src, model, nil)
		if err != nil {
			return nil, err
		}
		resumeSource += n
	}
	resumeDest, err := a.count(ctx, a.dest, &models.Resume{}, nil)
	if err != nil {
		return nil, err
	}
	rows = append(rows, AuditRow{Entity: EntityResume, SourceCount: resumeSource, DestinationCount: resumeDest})

	// Assessments: disc + typing sessions vs. the unified table.
	discCount, err := a.count(ctx, a.src, &legacy.DiscSession{}, nil)
	if err != nil {
		return nil, err
	}
	typingCount, err := a.count(ctx, a.src, &legacy.TypingSession{}, nil)
	if err != nil {
		return nil, err
	}
	assessmentDest, err := a.count(ctx, a.dest, &models.Assessment{}, nil)
	if err != nil {
		return nil, err
	}
	rows = append(rows, AuditRow{Entity: EntityAssessment, SourceCount: discCount + typingCount, DestinationCount: assessmentDest})

	pairs := []struct {
		entity EntityKind
		src    any
		dest   any
	}{
		{EntityAIAnalysis, &legacy.ResumeAnalysis{}, &models.ResumeAIAnalysis{}},
		{EntityAgency, &legacy.Agency{}, &models.Agency{}},
		{EntityCompany, &legacy.AgencyMember{}, &models.Company{}},
		{EntityJob, &legacy.Job{}, &models.Job{}},
		{EntityApplication, &legacy.Application{}, &models.Application{}},
		{EntityJobMatch, &legacy.JobMatch{}, &models.JobMatch{}},
	}
	for _, p := range pairs {
		srcCount, err := a.count(ctx, a.src, p.src, nil)
		if err != nil {
			return nil, err
		}
		destCount, err := a.count(ctx, a.dest, p.dest, nil)
		if err != nil {
			return nil, err
		}
		rows = append(rows, AuditRow{Entity: p.entity, SourceCount: srcCount, DestinationCount: destCount})
	}

	return rows, nil
}

func (a *Auditor) count(ctx context.Context, db *gorm.DB, model any, scope func(*gorm.DB) *gorm.DB) (int64, error) {
	var n int64
	q := db.WithContext(ctx).Model(model)
	if scope != nil {
		q = scope(q)
	}
	if err := q.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// PrintAudit writes the reconciliation table to w.
func PrintAudit(w io.Writer, rows []AuditRow) {
	fmt.Fprintf(w, "%-22s %12s %12s %8s\n", "entity", "source", "destination", "gap")
	for _, r := range rows {
		marker := ""
		if r.Gap() != 0 {
			marker = "  <-"
		}
		fmt.Fprintf(w, "%-22s %12d %12d %8d%s\n", r.Entity, r.SourceCount, r.DestinationCount, r.Gap(), marker)
	}
}

// WriteAuditXLSX writes the reconciliation table as a spreadsheet for the
// operators who sign off on the cutover.
func WriteAuditXLSX(path string, rows []AuditRow) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Reconciliation"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Entity", "Source Count", "Destination Count", "Gap"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for i, r := range rows {
		values := []any{string(r.Entity), r.SourceCount, r.DestinationCount, r.Gap()}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	return f.SaveAs(path)
}
