package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"bitbucket.org/talentforge/recruit_backend/config"
	"bitbucket.org/talentforge/recruit_backend/identity"
	"bitbucket.org/talentforge/recruit_backend/migration"
)

// legacy-migrate copies a tenant's data from the legacy MySQL schema into
// the new PostgreSQL schema. Safe to re-run: every write is an upsert by
// natural key, so a second pass only touches previously-failed or new rows.
//
// Full run:
//   go run ./cmd/legacy-migrate
//
// Audit only (no writes; usable before, during or after a run):
//   go run ./cmd/legacy-migrate -test
//
// Audit with a spreadsheet for sign-off:
//   go run ./cmd/legacy-migrate -test -xlsx=reconciliation.xlsx
func main() {
	testOnly := flag.Bool("test", false, "Run the completion audit only; no writes")
	xlsxPath := flag.String("xlsx", "", "Optional: write the audit table to this .xlsx file")
	flag.Parse()

	ctx := context.Background()
	logger := config.GetLogger()

	if err := config.ConnectSourceWithRetry(); err != nil {
		config.LogError(logger, "legacy-migrate", "main", "connect source database", nil, err)
		os.Exit(1)
	}
	if err := config.ConnectDestinationWithRetry(); err != nil {
		config.LogError(logger, "legacy-migrate", "main", "connect destination database", nil, err)
		os.Exit(1)
	}
	src := config.GetSourceDB()
	dest := config.GetDestinationDB()

	auditor := migration.NewAuditor(src, dest)

	if *testOnly {
		rows, err := auditor.Audit(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "audit failed: %v\n", err)
			os.Exit(1)
		}
		migration.PrintAudit(os.Stdout, rows)
		writeXlsxIfRequested(*xlsxPath, rows)
		return
	}

	provider, err := identity.NewClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "identity provider not configured: %v\n", err)
		os.Exit(1)
	}

	config.ConnectRedis()
	release, err := migration.AcquireRunLock(ctx, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot start: %v\n", err)
		os.Exit(1)
	}
	defer release()

	engine := migration.NewEngine(src, dest, provider, logger, config.PageSize)
	rc, err := engine.Run(ctx)
	if rc != nil {
		rc.PrintSummary(os.Stdout)
	}
	if err != nil {
		config.LogError(logger, "legacy-migrate", "main", "run migration", nil, err)
		os.Exit(1)
	}

	rows, err := auditor.Audit(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "post-run audit failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println()
	migration.PrintAudit(os.Stdout, rows)
	writeXlsxIfRequested(*xlsxPath, rows)
}

func writeXlsxIfRequested(path string, rows []migration.AuditRow) {
	if strings.TrimSpace(path) == "" {
		return
	}
	if err := migration.WriteAuditXLSX(path, rows); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", path, err)
		return
	}
	fmt.Printf("audit written to %s\n", path)
}
