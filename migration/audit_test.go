package migration_test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"bitbucket.org/talentforge/recruit_backend/migration"
)

func TestAuditCountsSourceAgainstDestination(t *testing.T) {
	src := newSourceDB(t)
	dest := newDestinationDB(t)
	seedSource(t, src)

	engine := migration.NewEngine(src, dest, seededProvider(), quietLogger(), 50)
	_, err := engine.Run(context.Background())
	require.NoError(t, err)

	rows, err := migration.NewAuditor(src, dest).Audit(context.Background())
	require.NoError(t, err)

	byEntity := make(map[migration.EntityKind]migration.AuditRow, len(rows))
	for _, r := range rows {
		byEntity[r.Entity] = r
	}

	// ghost was never migrated: 3 legacy users, 2 destination accounts
	accounts := byEntity["accounts"]
	assert.EqualValues(t, 3, accounts.SourceCount)
	assert.EqualValues(t, 2, accounts.DestinationCount)
	assert.EqualValues(t, 1, accounts.Gap())

	assert.EqualValues(t, 0, byEntity[migration.EntityResume].Gap())
	assert.EqualValues(t, 0, byEntity[migration.EntityJob].Gap())
	assert.EqualValues(t, 0, byEntity[migration.EntityJobMatch].Gap())

	// the invalid DISC session and the orphan application show up as gaps
	assert.EqualValues(t, 1, byEntity[migration.EntityAssessment].Gap())
	assert.EqualValues(t, 1, byEntity[migration.EntityApplication].Gap())
}

func TestAuditOnEmptyStores(t *testing.T) {
	src := newSourceDB(t)
	dest := newDestinationDB(t)

	rows, err := migration.NewAuditor(src, dest).Audit(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	for _, r := range rows {
		assert.EqualValues(t, 0, r.SourceCount, r.Entity)
		assert.EqualValues(t, 0, r.DestinationCount, r.Entity)
	}
}

func TestPrintAuditMarksGaps(t *testing.T) {
	var buf bytes.Buffer
	migration.PrintAudit(&buf, []migration.AuditRow{
		{Entity: "accounts", SourceCount: 3, DestinationCount: 2},
		{Entity: migration.EntityResume, SourceCount: 5, DestinationCount: 5},
	})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "accounts")
	assert.Contains(t, lines[1], "<-")
	// clean rows carry no marker
	assert.Contains(t, lines[2], "resumes")
	assert.NotContains(t, lines[2], "<-")
}

func TestWriteAuditXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reconciliation.xlsx")
	rows := []migration.AuditRow{
		{Entity: "accounts", SourceCount: 3, DestinationCount: 2},
		{Entity: migration.EntityJob, SourceCount: 1, DestinationCount: 1},
	}
	require.NoError(t, migration.WriteAuditXLSX(path, rows))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Reconciliation", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Entity", header)

	entity, err := f.GetCellValue("Reconciliation", "A2")
	require.NoError(t, err)
	assert.Equal(t, "accounts", entity)

	gap, err := f.GetCellValue("Reconciliation", "D2")
	require.NoError(t, err)
	assert.Equal(t, "1", gap)
}
