package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/akasheyy/navajuvala-frontend/internal/formatter"
	"github.com/akasheyy/navajuvala-frontend/internal/models"
	"github.com/akasheyy/navajuvala-frontend/internal/shared"
)

// Snapshot exports the catalog to one file per category plus a full-catalog
// file, written concurrently with progress tracking.
//
// This method implements a worker pool pattern. It handles partial failures
// gracefully and generates a manifest file summarizing the run. The borrow
// ledger is appended as a CSV when opts.IncludeRecords is set.
func (e *SnapshotEngine) Snapshot(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	opts SnapshotOpts,
) (*SnapshotResult, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("%w: catalog not initialized", shared.ErrServiceUnavailable)
	}

	ext, err := formatExt(opts.Format)
	if err != nil {
		return nil, err
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("catalog_export_%d", e.now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 8 {
		opts.NumWorkers = 8
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	e.sendProgress(prog, fetchCatalogUpdate())
	books, err := e.catalog.PublicBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	e.sendProgress(prog, catalogFetchedUpdate(len(books)))

	var records []models.BorrowRecord
	if opts.IncludeRecords {
		e.sendProgress(prog, fetchLedgerUpdate())
		records, err = e.catalog.BorrowRecords(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch borrow records: %w", err)
		}
	}

	pending := buildJobs(books, opts.OutputDir, ext)
	total := len(pending)
	if opts.IncludeRecords {
		total++
	}

	result := &SnapshotResult{
		TotalFiles:      total,
		TotalBooks:      len(books),
		TotalRecords:    len(records),
		OutputDirectory: opts.OutputDir,
		Results:         make([]FileResult, 0, total),
	}

	jobs := make(chan exportJob, len(pending))
	results := make(chan FileResult, len(pending))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.snapshotWorker(ctx, &wg, jobs, results, opts.Format)
	}

	go func() {
		for i, job := range pending {
			select {
			case <-ctx.Done():
				close(jobs)
				return
			default:
			}
			e.sendProgress(prog, writeFileUpdate(i+1, total, job.name))
			jobs <- job
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulFiles++
			e.sendProgress(prog, fileDoneUpdate(completed, total, res.Name, res.Count))
		} else {
			result.FailedFiles++
			e.sendProgress(prog, fileFailedUpdate(completed, total, res.Name, res.Error))
		}
	}

	if opts.IncludeRecords {
		completed++
		res := e.writeLedger(records, opts.OutputDir)
		result.Results = append(result.Results, res)
		if res.Success {
			result.SuccessfulFiles++
			e.sendProgress(prog, fileDoneUpdate(completed, total, res.Name, res.Count))
		} else {
			result.FailedFiles++
			e.sendProgress(prog, fileFailedUpdate(completed, total, res.Name, res.Error))
		}
	}

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	if err := writeManifest(result, opts.Format, manifestPath, e.now()); err != nil {
		return result, fmt.Errorf("snapshot completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	e.sendProgress(prog, manifestUpdate(manifestPath, result))
	e.logger.Info("snapshot complete",
		"dir", result.OutputDirectory,
		"files", result.SuccessfulFiles,
		"failed", result.FailedFiles,
		"books", result.TotalBooks,
		"records", result.TotalRecords)
	return result, nil
}

// snapshotWorker is a worker goroutine that writes export files from the jobs channel.
func (e *SnapshotEngine) snapshotWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan exportJob,
	results chan<- FileResult,
	format string,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res := FileResult{Name: job.name, Count: len(job.books)}
		path, err := formatter.WriteBooksExport(job.books, format, job.path)
		if err != nil {
			res.Error = fmt.Errorf("export failed: %w", err)
		} else {
			res.Path = path
			res.Success = true
		}
		results <- res
	}
}

// writeLedger appends the borrow-record ledger as CSV.
func (e *SnapshotEngine) writeLedger(records []models.BorrowRecord, dir string) FileResult {
	res := FileResult{Name: "ledger", Count: len(records)}
	path, err := formatter.WriteRecordsExport(records, filepath.Join(dir, "borrow_records.csv"), e.now())
	if err != nil {
		res.Error = fmt.Errorf("ledger export failed: %w", err)
		return res
	}
	res.Path = path
	res.Success = true
	return res
}

// buildJobs buckets books by category and yields one job per bucket plus a
// full-catalog job, in deterministic order.
func buildJobs(books []models.Book, dir, ext string) []exportJob {
	buckets := make(map[string][]models.Book)
	for _, book := range books {
		for _, cat := range book.Categories {
			if cat == "" {
				continue
			}
			buckets[cat] = append(buckets[cat], book)
		}
	}

	names := make([]string, 0, len(buckets))
	for name := range buckets {
		names = append(names, name)
	}
	sort.Strings(names)

	jobs := make([]exportJob, 0, len(names)+1)
	jobs = append(jobs, exportJob{
		name:  "catalog",
		path:  filepath.Join(dir, "catalog."+ext),
		books: books,
	})
	for _, name := range names {
		jobs = append(jobs, exportJob{
			name:  name,
			path:  filepath.Join(dir, slugify(name)+"."+ext),
			books: buckets[name],
		})
	}
	return jobs
}

// slugify lowercases a category name and collapses runs of non-alphanumeric
// characters into single underscores for use as a file name.
func slugify(name string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastUnderscore = false
		} else if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

func formatExt(format string) (string, error) {
	switch format {
	case "csv", "":
		return "csv", nil
	case "md", "markdown":
		return "md", nil
	case "txt", "text":
		return "txt", nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", format)
	}
}

type manifestEntry struct {
	Name    string `json:"name"`
	Path    string `json:"path,omitempty"`
	Count   int    `json:"count"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type manifest struct {
	GeneratedAt  string          `json:"generated_at"`
	Format       string          `json:"format"`
	TotalBooks   int             `json:"total_books"`
	TotalRecords int             `json:"total_records,omitempty"`
	Files        []manifestEntry `json:"files"`
}

// writeManifest serializes a run summary next to the export files.
func writeManifest(result *SnapshotResult, format, path string, now time.Time) error {
	if format == "" {
		format = "csv"
	}

	m := manifest{
		GeneratedAt:  now.Format(time.RFC3339),
		Format:       format,
		TotalBooks:   result.TotalBooks,
		TotalRecords: result.TotalRecords,
		Files:        make([]manifestEntry, 0, len(result.Results)),
	}
	for _, res := range result.Results {
		entry := manifestEntry{
			Name:    res.Name,
			Path:    res.Path,
			Count:   res.Count,
			Success: res.Success,
		}
		if res.Error != nil {
			entry.Error = res.Error.Error()
		}
		m.Files = append(m.Files, entry)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
