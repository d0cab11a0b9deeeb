package migration

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"bitbucket.org/talentforge/recruit_backend/identity"
)

type PhaseState string

const (
	PhasePending             PhaseState = "pending"
	PhaseRunning             PhaseState = "running"
	PhaseCompleted           PhaseState = "completed"
	PhaseCompletedWithErrors PhaseState = "completed_with_errors"
)

// Phase is one ordered stage of the pipeline covering one entity kind (or a
// small tightly-coupled group).
type Phase struct {
	Name  string
	State PhaseState
	run   func(ctx context.Context, rc *RunContext) error
}

// Engine drives the phases strictly in dependency order: later phases need
// identifiers produced by earlier ones. Everything is sequential by design —
// the resolver cache and the run counters are single-owner state, and one
// in-flight record at a time keeps failure attribution unambiguous.
type Engine struct {
	src      *gorm.DB
	dest     *gorm.DB
	resolver *Resolver
	writer   *Writer
	validate *validator.Validate
	logger   *logrus.Logger
	pageSize int
}

func NewEngine(src, dest *gorm.DB, provider identity.Provider, logger *logrus.Logger, pageSize int) *Engine {
	return &Engine{
		src:      src,
		dest:     dest,
		resolver: NewResolver(src, dest, provider),
		writer:   NewWriter(dest),
		validate: validator.New(),
		logger:   logger,
		pageSize: pageSize,
	}
}

func (e *Engine) phases() []*Phase {
	return []*Phase{
		{Name: "accounts", State: PhasePending, run: e.migrateAccounts},
		{Name: "resumes", State: PhasePending, run: e.migrateResumes},
		{Name: "assessments", State: PhasePending, run: e.migrateAssessments},
		{Name: "ai_analyses", State: PhasePending, run: e.migrateAIAnalyses},
		{Name: "organizations", State: PhasePending, run: e.migrateOrganizations},
		{Name: "jobs", State: PhasePending, run: e.migrateJobs},
		{Name: "applications", State: PhasePending, run: e.migrateApplications},
		{Name: "job_matches", State: PhasePending, run: e.migrateJobMatches},
	}
}

// Run executes the full phase sequence. Row-level errors are accumulated on
// the returned RunContext and never abort a phase; a phase that cannot even
// begin (source store unreachable on its first page) is fatal for the run.
func (e *Engine) Run(ctx context.Context) (*RunContext, error) {
	rc := NewRunContext(e.logger)
	e.logger.WithField("run_id", rc.RunID).Info("migration run started")

	for _, phase := range e.phases() {
		phase.State = PhaseRunning
		errsBefore := rc.ErrorCount()
		e.logger.WithFields(logrus.Fields{
			"run_id": rc.RunID,
			"phase":  phase.Name,
		}).Info("phase started")

		if err := phase.run(ctx, rc); err != nil {
			return rc, fmt.Errorf("phase %s: %w", phase.Name, err)
		}

		phase.State = PhaseCompleted
		if rc.ErrorCount() > errsBefore {
			phase.State = PhaseCompletedWithErrors
		}
		e.logger.WithFields(logrus.Fields{
			"run_id": rc.RunID,
			"phase":  phase.Name,
			"state":  phase.State,
			"errors": rc.ErrorCount() - errsBefore,
		}).Info("phase finished")
	}

	e.logger.WithField("run_id", rc.RunID).Info("migration run finished")
	return rc, nil
}

// maxPageFailures bounds consecutive failed page fetches after the first
// page; beyond it the phase's data source is considered gone.
const maxPageFailures = 3

// eachPage pages through source rows in legacy id order. A failure on the
// very first page is fatal (the phase cannot begin); later page failures are
// row-level: logged, and the runner moves to the next page. Cancellation
// granularity is between pages — an in-flight page always finishes.
func eachPage[T any](ctx context.Context, e *Engine, rc *RunContext, kind EntityKind, scope func(*gorm.DB) *gorm.DB, handle func(T)) error {
	offset := 0
	failures := 0
	for page := 0; ; page++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		var rows []T
		q := e.src.WithContext(ctx)
		if scope != nil {
			q = scope(q)
		}
		err := q.Order("id").Limit(e.pageSize).Offset(offset).Find(&rows).Error
		if err != nil {
			if page == 0 {
				return fmt.Errorf("first page: %w", err)
			}
			failures++
			rc.AddRowError(kind, fmt.Sprintf("page-%d", page), err)
			if failures >= maxPageFailures {
				return fmt.Errorf("page %d: %w", page, err)
			}
			offset += e.pageSize
			continue
		}
		failures = 0

		for i := range rows {
			handle(rows[i])
		}
		if len(rows) < e.pageSize {
			return nil
		}
		offset += e.pageSize
	}
}
