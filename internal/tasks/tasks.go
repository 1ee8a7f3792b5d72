package tasks

import (
	"time"

	"github.com/akasheyy/navajuvala-frontend/internal/models"
	"github.com/akasheyy/navajuvala-frontend/internal/services"
	"github.com/akasheyy/navajuvala-frontend/internal/shared"
	"github.com/charmbracelet/log"
)

// FileResult represents the outcome of writing a single export file.
type FileResult struct {
	Name    string // Dataset name (category slug, "catalog" or "ledger")
	Path    string // Written file path (empty on failure)
	Count   int    // Rows written
	Success bool
	Error   error
}

// SnapshotResult contains all data from a full snapshot run.
type SnapshotResult struct {
	TotalFiles      int          // Files attempted
	SuccessfulFiles int          // Files written
	FailedFiles     int          // Files that failed
	TotalBooks      int          // Books in the catalog at snapshot time
	TotalRecords    int          // Borrow records included (0 when skipped)
	OutputDirectory string       // Base directory for all files
	ManifestPath    string       // Path to the JSON manifest
	Results         []FileResult // Per-file outcomes
}

// SnapshotOpts contains configuration for a catalog snapshot.
type SnapshotOpts struct {
	Format         string // Export format: csv, md, txt (default csv)
	OutputDir      string // Base output directory (default: catalog_export_{epoch})
	NumWorkers     int    // Concurrent file writers (default: 4)
	IncludeRecords bool   // Also export the borrow ledger
}

// exportJob is a unit of work for the snapshot worker pool.
type exportJob struct {
	name  string
	path  string
	books []models.Book
}

// SnapshotEngine writes offline exports of the catalog.
type SnapshotEngine struct {
	catalog services.Catalog
	logger  *log.Logger
	now     func() time.Time
}

// NewSnapshotEngine creates a SnapshotEngine backed by the given catalog service.
func NewSnapshotEngine(catalog services.Catalog, logger *log.Logger) *SnapshotEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &SnapshotEngine{
		catalog: catalog,
		logger:  logger,
		now:     time.Now,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *SnapshotEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}
