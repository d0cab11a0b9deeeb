package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"bitbucket.org/talentforge/recruit_backend/config"
	"bitbucket.org/talentforge/recruit_backend/migration"
)

// migration-cleanup bulk-deletes pre-migration candidate data from the
// destination store. It never runs implicitly: it refuses without a literal
// -confirm flag, and refuses without a verified backup artifact named after
// the migration date.
//
// Dry inspection (prints guidance, deletes nothing, exits 0):
//   go run ./cmd/migration-cleanup -cutoff=2026-08-01 -migration-date=2026-08-01
//
// Execute:
//   go run ./cmd/migration-cleanup -confirm -cutoff=2026-08-01 -migration-date=2026-08-01 \
//       -preserve=4f6f…,9a1c…
func main() {
	confirm := flag.Bool("confirm", false, "Required to actually delete anything")
	cutoffArg := flag.String("cutoff", "", "Required: delete candidates created before this date (YYYY-MM-DD)")
	migrationDateArg := flag.String("migration-date", "", "Required: migration date naming the backup artifact (YYYY-MM-DD)")
	preserveArg := flag.String("preserve", "", "Comma-separated candidate ids to keep regardless of cutoff")
	flag.Parse()

	cutoff, err := time.Parse("2006-01-02", strings.TrimSpace(*cutoffArg))
	if err != nil {
		fmt.Fprintln(os.Stderr, "-cutoff is required (YYYY-MM-DD)")
		os.Exit(1)
	}
	migrationDate, err := time.Parse("2006-01-02", strings.TrimSpace(*migrationDateArg))
	if err != nil {
		fmt.Fprintln(os.Stderr, "-migration-date is required (YYYY-MM-DD)")
		os.Exit(1)
	}

	var preserveIDs []string
	for _, id := range strings.Split(*preserveArg, ",") {
		if id = strings.TrimSpace(id); id != "" {
			preserveIDs = append(preserveIDs, id)
		}
	}

	ctx := context.Background()
	logger := config.GetLogger()

	if err := config.ConnectDestinationWithRetry(); err != nil {
		fmt.Fprintf(os.Stderr, "destination database unavailable: %v\n", err)
		os.Exit(1)
	}

	gate := migration.NewCleanupGate(config.GetDestinationDB(), logger)
	report, err := gate.Execute(ctx, *confirm, migrationDate, cutoff, preserveIDs)

	if errors.Is(err, migration.ErrNotConfirmed) {
		fmt.Println("nothing deleted.")
		fmt.Println("this command permanently removes pre-migration candidate data.")
		fmt.Printf("verify a backup exists (%s), then re-run with -confirm.\n",
			migration.BackupArtifactName(migrationDate))
		return
	}
	if errors.Is(err, migration.ErrBackupMissing) {
		fmt.Fprintf(os.Stderr, "refusing to delete: %v\n", err)
		os.Exit(1)
	}
	if err != nil {
		config.LogError(logger, "migration-cleanup", "main", "execute cleanup", nil, err)
		os.Exit(1)
	}

	fmt.Println("cleanup complete:")
	for table, n := range report.Deleted {
		fmt.Printf("  %-22s %d\n", table, n)
	}
}
