package migration

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Writer is the single write path into the destination store. Every phase
// goes through it, so all entities share one conflict-resolution policy:
// insert-or-update by natural key, last-write-wins on fields (overwrite, not
// merge — JSON snapshot columns are replaced whole).
type Writer struct {
	dest *gorm.DB
}

func NewWriter(dest *gorm.DB) *Writer {
	return &Writer{dest: dest}
}

// Upsert inserts value or, when a row with the same conflict columns exists,
// overwrites assignColumns with the incoming values. Running it twice with
// identical fields leaves the row unchanged after the second call; the
// existing primary key survives because assignColumns never includes "id".
func (w *Writer) Upsert(ctx context.Context, value any, conflictColumns []string, assignColumns []string) error {
	cols := make([]clause.Column, 0, len(conflictColumns))
	for _, c := range conflictColumns {
		cols = append(cols, clause.Column{Name: c})
	}
	return w.dest.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   cols,
			DoUpdates: clause.AssignmentColumns(assignColumns),
		}).
		Create(value).Error
}

// InsertIfAbsent is the append-only degradation of Upsert used for
// assessments: insert unless a row with the same conflict columns already
// exists, and report whether a row was written.
func (w *Writer) InsertIfAbsent(ctx context.Context, value any, conflictColumns []string) (bool, error) {
	cols := make([]clause.Column, 0, len(conflictColumns))
	for _, c := range conflictColumns {
		cols = append(cols, clause.Column{Name: c})
	}
	res := w.dest.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   cols,
			DoNothing: true,
		}).
		Create(value)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// PruneStaleJobSkills removes tag rows a re-run no longer produces for a job.
// Uses the raw escape hatch: "keep only this set" is a delete, and the
// upsert contract has no way to express it.
func (w *Writer) PruneStaleJobSkills(ctx context.Context, jobID string, keep []string) error {
	if len(keep) == 0 {
		return w.execRaw(ctx, `DELETE FROM job_skills WHERE job_id = ?`, jobID)
	}
	return w.execRaw(ctx, `DELETE FROM job_skills WHERE job_id = ? AND skill NOT IN ?`, jobID, keep)
}

// execRaw is the writer's deliberate escape valve for statements the upsert
// contract cannot express. It is private: no phase issues raw SQL directly.
func (w *Writer) execRaw(ctx context.Context, sql string, args ...any) error {
	return w.dest.WithContext(ctx).Exec(sql, args...).Error
}
