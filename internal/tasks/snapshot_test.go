package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/akasheyy/navajuvala-frontend/internal/models"
	"github.com/akasheyy/navajuvala-frontend/internal/shared"
	tu "github.com/akasheyy/navajuvala-frontend/internal/testing"
)

var snapshotBooks = []models.Book{
	{ID: "b1", Title: "Gitanjali", Author: "Rabindranath Tagore", Categories: []string{"Poetry"}, Qty: 3, Available: 2},
	{ID: "b2", Title: "Gora", Author: "Rabindranath Tagore", Categories: []string{"Fiction"}, Qty: 1, Available: 0},
	{ID: "b3", Title: "Chokher Bali", Author: "Rabindranath Tagore", Categories: []string{"Fiction"}, Qty: 2, Available: 2},
}

var snapshotRecords = []models.BorrowRecord{
	{ID: "r1", BookID: "b2", BookTitle: "Gora", BorrowerName: "Anik Das", Phone: "555-0101", BorrowDate: "2025-06-01", ReturnDate: "2025-06-15"},
}

func newTestEngine(mock *tu.MockCatalog) *SnapshotEngine {
	engine := NewSnapshotEngine(mock, nil)
	return engine
}

func TestSnapshot(t *testing.T) {
	t.Run("writes one file per category plus the full catalog", func(t *testing.T) {
		mock := &tu.MockCatalog{
			PublicBooksFn: func(ctx context.Context) ([]models.Book, error) {
				return snapshotBooks, nil
			},
		}
		dir := t.TempDir()

		result, err := newTestEngine(mock).Snapshot(context.Background(), nil, SnapshotOpts{
			OutputDir: dir,
		})
		if err != nil {
			t.Fatalf("snapshot failed: %v", err)
		}

		if result.TotalFiles != 3 {
			t.Errorf("expected 3 files (catalog, fiction, poetry), got %d", result.TotalFiles)
		}
		if result.SuccessfulFiles != 3 || result.FailedFiles != 0 {
			t.Errorf("expected all files written, got %d ok / %d failed", result.SuccessfulFiles, result.FailedFiles)
		}
		if result.TotalBooks != 3 {
			t.Errorf("expected 3 books counted, got %d", result.TotalBooks)
		}

		for _, name := range []string{"catalog.csv", "fiction.csv", "poetry.csv"} {
			if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
				t.Errorf("expected %s to exist: %v", name, err)
			}
		}
	})

	t.Run("writes a manifest summarizing the run", func(t *testing.T) {
		mock := &tu.MockCatalog{
			PublicBooksFn: func(ctx context.Context) ([]models.Book, error) {
				return snapshotBooks, nil
			},
		}
		dir := t.TempDir()

		result, err := newTestEngine(mock).Snapshot(context.Background(), nil, SnapshotOpts{OutputDir: dir})
		if err != nil {
			t.Fatalf("snapshot failed: %v", err)
		}
		if result.ManifestPath == "" {
			t.Fatal("expected manifest path to be set")
		}

		data, err := os.ReadFile(result.ManifestPath)
		if err != nil {
			t.Fatalf("reading manifest: %v", err)
		}

		var m struct {
			Format     string `json:"format"`
			TotalBooks int    `json:"total_books"`
			Files      []struct {
				Name    string `json:"name"`
				Success bool   `json:"success"`
			} `json:"files"`
		}
		if err := json.Unmarshal(data, &m); err != nil {
			t.Fatalf("manifest is not valid JSON: %v", err)
		}
		if m.Format != "csv" || m.TotalBooks != 3 || len(m.Files) != 3 {
			t.Errorf("unexpected manifest contents: %+v", m)
		}
	})

	t.Run("includes the ledger when requested", func(t *testing.T) {
		mock := &tu.MockCatalog{
			PublicBooksFn: func(ctx context.Context) ([]models.Book, error) {
				return snapshotBooks, nil
			},
			BorrowRecordsFn: func(ctx context.Context) ([]models.BorrowRecord, error) {
				return snapshotRecords, nil
			},
		}
		dir := t.TempDir()

		result, err := newTestEngine(mock).Snapshot(context.Background(), nil, SnapshotOpts{
			OutputDir:      dir,
			IncludeRecords: true,
		})
		if err != nil {
			t.Fatalf("snapshot failed: %v", err)
		}

		if result.TotalRecords != 1 {
			t.Errorf("expected 1 record counted, got %d", result.TotalRecords)
		}
		if result.TotalFiles != 4 {
			t.Errorf("expected catalog + 2 categories + ledger, got %d files", result.TotalFiles)
		}
		if _, err := os.Stat(filepath.Join(dir, "borrow_records.csv")); err != nil {
			t.Errorf("expected ledger file to exist: %v", err)
		}
		if mock.CallCount("BorrowRecords") != 1 {
			t.Errorf("expected one ledger fetch, got %d", mock.CallCount("BorrowRecords"))
		}
	})

	t.Run("skips the ledger by default", func(t *testing.T) {
		mock := &tu.MockCatalog{
			PublicBooksFn: func(ctx context.Context) ([]models.Book, error) {
				return snapshotBooks, nil
			},
		}

		if _, err := newTestEngine(mock).Snapshot(context.Background(), nil, SnapshotOpts{OutputDir: t.TempDir()}); err != nil {
			t.Fatalf("snapshot failed: %v", err)
		}
		if mock.CallCount("BorrowRecords") != 0 {
			t.Error("ledger must not be fetched unless requested")
		}
	})

	t.Run("emits phased progress updates", func(t *testing.T) {
		mock := &tu.MockCatalog{
			PublicBooksFn: func(ctx context.Context) ([]models.Book, error) {
				return snapshotBooks, nil
			},
		}
		prog := make(chan ProgressUpdate, 64)

		if _, err := newTestEngine(mock).Snapshot(context.Background(), prog, SnapshotOpts{OutputDir: t.TempDir()}); err != nil {
			t.Fatalf("snapshot failed: %v", err)
		}
		close(prog)

		seen := make(map[Phase]bool)
		for update := range prog {
			seen[update.Phase] = true
		}
		for _, phase := range []Phase{FetchCatalog, WriteFiles, WriteManifest} {
			if !seen[phase] {
				t.Errorf("expected a %s update", phase)
			}
		}
	})

	t.Run("propagates catalog fetch failures", func(t *testing.T) {
		fetchErr := errors.New("upstream down")
		mock := &tu.MockCatalog{
			PublicBooksFn: func(ctx context.Context) ([]models.Book, error) {
				return nil, fetchErr
			},
		}

		_, err := newTestEngine(mock).Snapshot(context.Background(), nil, SnapshotOpts{OutputDir: t.TempDir()})
		if !errors.Is(err, fetchErr) {
			t.Errorf("expected wrapped fetch error, got %v", err)
		}
	})

	t.Run("rejects unsupported formats before any fetch", func(t *testing.T) {
		mock := &tu.MockCatalog{}

		_, err := newTestEngine(mock).Snapshot(context.Background(), nil, SnapshotOpts{
			Format:    "pdf",
			OutputDir: t.TempDir(),
		})
		if err == nil {
			t.Fatal("expected format error")
		}
		if mock.CallCount("PublicBooks") != 0 {
			t.Error("no fetch may happen for an unsupported format")
		}
	})

	t.Run("requires an initialized catalog", func(t *testing.T) {
		engine := NewSnapshotEngine(nil, nil)

		_, err := engine.Snapshot(context.Background(), nil, SnapshotOpts{OutputDir: t.TempDir()})
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})
}

func TestSlugify(t *testing.T) {
	tc := []struct {
		in   string
		want string
	}{
		{"Fiction", "fiction"},
		{"Science Fiction", "science_fiction"},
		{"Children's Books", "children_s_books"},
		{"  History  ", "history"},
	}

	for _, tt := range tc {
		if got := slugify(tt.in); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
