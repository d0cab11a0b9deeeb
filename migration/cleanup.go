package migration

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
	"gorm.io/gorm"

	"bitbucket.org/talentforge/recruit_backend/models"
)

type GateState string

const (
	GateAwaitingConfirmation GateState = "awaiting_confirmation"
	GateBackupVerified       GateState = "backup_verified"
	GateAborted              GateState = "aborted"
	GateExecuted             GateState = "executed"
)

var (
	// ErrNotConfirmed: the caller did not pass the explicit confirmation
	// flag. Refusal, not failure — nothing was deleted.
	ErrNotConfirmed = errors.New("destructive cleanup requires explicit confirmation")

	// ErrBackupMissing: no backup artifact at the conventional path.
	ErrBackupMissing = errors.New("backup artifact not found")
)

// CleanupGate guards the bulk delete of pre-migration data. It refuses to
// proceed without a verified backup artifact and an explicit confirmation
// supplied by the caller — never inferred from environment or defaults.
type CleanupGate struct {
	dest         *gorm.DB
	logger       *logrus.Logger
	backupDir    string
	backupBucket string
	state        GateState
}

func NewCleanupGate(dest *gorm.DB, logger *logrus.Logger) *CleanupGate {
	backupDir := strings.TrimSpace(os.Getenv("MIGRATION_BACKUP_DIR"))
	if backupDir == "" {
		backupDir = "backups"
	}
	return &CleanupGate{
		dest:         dest,
		logger:       logger,
		backupDir:    backupDir,
		backupBucket: strings.TrimSpace(os.Getenv("MIGRATION_BACKUP_BUCKET")),
		state:        GateAwaitingConfirmation,
	}
}

func (g *CleanupGate) State() GateState {
	return g.state
}

// BackupArtifactName derives the conventional backup file name from the
// migration date.
func BackupArtifactName(migrationDate time.Time) string {
	return fmt.Sprintf("pre-migration-%s.sql", migrationDate.Format("2006-01-02"))
}

// CleanupReport records deleted row counts per table.
type CleanupReport struct {
	Deleted map[string]int64
}

// Execute runs the gated delete: candidates created before the cutoff minus
// the preserve set, plus every row that hangs off them. Preservation is an
// `id NOT IN (...)` exclusion inside the one candidate scope every delete
// shares — there is no second query path to drift from.
func (g *CleanupGate) Execute(ctx context.Context, confirmed bool, migrationDate time.Time, cutoff time.Time, preserveIDs []string) (*CleanupReport, error) {
	g.state = GateAwaitingConfirmation

	if !confirmed {
		g.state = GateAborted
		return nil, ErrNotConfirmed
	}

	if err := g.verifyBackup(ctx, migrationDate); err != nil {
		g.state = GateAborted
		return nil, err
	}
	g.state = GateBackupVerified

	candidateScope := func(db *gorm.DB) *gorm.DB {
		q := db.Model(&models.Candidate{}).Where("created_at < ?", cutoff)
		if len(preserveIDs) > 0 {
			q = q.Where("id NOT IN ?", preserveIDs)
		}
		return q
	}

	report := &CleanupReport{Deleted: make(map[string]int64)}
	err := g.dest.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doomed := candidateScope(tx).Select("id")

		children := []struct {
			name  string
			model any
		}{
			{"job_matches", &models.JobMatch{}},
			{"applications", &models.Application{}},
			{"resume_ai_analyses", &models.ResumeAIAnalysis{}},
			{"assessments", &models.Assessment{}},
			{"resumes", &models.Resume{}},
			{"candidate_profiles", &models.CandidateProfile{}},
		}
		for _, child := range children {
			res := tx.Where("candidate_id IN (?)", doomed).Delete(child.model)
			if res.Error != nil {
				return fmt.Errorf("delete %s: %w", child.name, res.Error)
			}
			report.Deleted[child.name] = res.RowsAffected
		}

		res := candidateScope(tx).Delete(&models.Candidate{})
		if res.Error != nil {
			return fmt.Errorf("delete candidates: %w", res.Error)
		}
		report.Deleted["candidates"] = res.RowsAffected
		return nil
	})
	if err != nil {
		g.state = GateAborted
		return nil, err
	}

	g.state = GateExecuted
	g.logger.WithField("deleted", report.Deleted).Info("pre-migration cleanup executed")
	return report, nil
}

// verifyBackup checks that the backup artifact exists — existence only, the
// content is the backup tooling's problem. Local path by default, bucket
// object when MIGRATION_BACKUP_BUCKET is set.
func (g *CleanupGate) verifyBackup(ctx context.Context, migrationDate time.Time) error {
	name := BackupArtifactName(migrationDate)

	if g.backupBucket != "" {
		client, err := gcsClient(ctx)
		if err != nil {
			return err
		}
		defer client.Close()

		_, err = client.Bucket(g.backupBucket).Object(name).Attrs(ctx)
		if errors.Is(err, storage.ErrObjectNotExist) {
			return fmt.Errorf("gs://%s/%s: %w", g.backupBucket, name, ErrBackupMissing)
		}
		return err
	}

	path := filepath.Join(g.backupDir, name)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s: %w", path, ErrBackupMissing)
		}
		return err
	}
	return nil
}

// gcsClient prefers ADC; GCS_CREDENTIALS_JSON provides explicit JSON locally.
func gcsClient(ctx context.Context) (*storage.Client, error) {
	if credJSON := strings.TrimSpace(os.Getenv("GCS_CREDENTIALS_JSON")); credJSON != "" {
		return storage.NewClient(ctx, option.WithCredentialsJSON([]byte(credJSON)))
	}
	return storage.NewClient(ctx)
}
