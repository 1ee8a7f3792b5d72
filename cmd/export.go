package main

import (
	"context"
	"time"

	"github.com/akasheyy/navajuvala-frontend/internal/formatter"
	"github.com/akasheyy/navajuvala-frontend/internal/tasks"
	"github.com/urfave/cli/v3"
)

// ExportBooks writes the public catalog to a local file.
func (r *Runner) ExportBooks(ctx context.Context, cmd *cli.Command) error {
	books, err := r.browser.Books(ctx)
	if err != nil {
		return err
	}

	path, err := formatter.WriteBooksExport(books, cmd.String("format"), cmd.String("output"))
	if err != nil {
		return err
	}

	r.logger.Info("catalog exported", "books", len(books), "path", path)
	return r.writePlain("✓ Exported %d books to %s\n", len(books), path)
}

// ExportRecords writes the borrow-record ledger as CSV.
func (r *Runner) ExportRecords(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAdmin(); err != nil {
		return err
	}

	records, err := r.browser.Records(ctx)
	if err != nil {
		return err
	}

	path, err := formatter.WriteRecordsExport(records, cmd.String("output"), time.Now())
	if err != nil {
		return err
	}

	r.logger.Info("ledger exported", "records", len(records), "path", path)
	return r.writePlain("✓ Exported %d records to %s\n", len(records), path)
}

// ExportAll snapshots the whole catalog to one file per category, optionally
// with the borrow ledger, and prints progress as files are written.
func (r *Runner) ExportAll(ctx context.Context, cmd *cli.Command) error {
	includeRecords := cmd.Bool("records")
	if includeRecords {
		if err := r.requireAdmin(); err != nil {
			return err
		}
	}

	r.logger.Info("starting catalog snapshot", "format", cmd.String("format"), "records", includeRecords)
	r.writePlain("Starting catalog snapshot...\n\n")

	// Progress channel and goroutine to surface updates as they happen
	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			switch update.Phase {
			case tasks.FetchCatalog, tasks.FetchLedger:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.WriteFiles:
				r.writePlain("   %s\n", update.Message)
			case tasks.WriteManifest:
				r.writePlain("\n📝 %s\n", update.Message)
			}
		}
	}()

	engine := tasks.NewSnapshotEngine(r.catalog, r.logger)
	result, err := engine.Snapshot(ctx, progressCh, tasks.SnapshotOpts{
		Format:         cmd.String("format"),
		OutputDir:      cmd.String("output-dir"),
		NumWorkers:     int(cmd.Int("workers")),
		IncludeRecords: includeRecords,
	})
	close(progressCh)

	if err != nil {
		return err
	}

	r.writePlain("\n═══════════════════════════════════════\n")
	r.writePlain("Snapshot Complete!\n")
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("Output: %s\n", result.OutputDirectory)
	r.writePlain("Books: %d, records: %d\n", result.TotalBooks, result.TotalRecords)
	r.writePlain("Files: %d/%d written\n", result.SuccessfulFiles, result.TotalFiles)

	if result.FailedFiles > 0 {
		r.writePlain("\nFailed files:\n")
		for _, res := range result.Results {
			if !res.Success {
				r.writePlain("  - %s: %v\n", res.Name, res.Error)
			}
		}
	}

	return nil
}
