package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akasheyy/navajuvala-frontend/internal/favorites"
	"github.com/akasheyy/navajuvala-frontend/internal/models"
	"github.com/akasheyy/navajuvala-frontend/internal/session"
	"github.com/akasheyy/navajuvala-frontend/internal/shared"
	tu "github.com/akasheyy/navajuvala-frontend/internal/testing"
	"github.com/urfave/cli/v3"
)

// newTestRunner builds a runner wired to a mock catalog, a throwaway
// session and favorites file, and a capture buffer for output.
func newTestRunner(t *testing.T, mock *tu.MockCatalog, loggedIn bool) (*Runner, *bytes.Buffer) {
	t.Helper()

	dir := t.TempDir()
	store := session.NewStore(filepath.Join(dir, "token"))
	if loggedIn {
		if err := store.Set("tok"); err != nil {
			t.Fatalf("seeding token: %v", err)
		}
	}

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Catalog:   mock,
		Session:   store,
		Favorites: favorites.NewStore(filepath.Join(dir, "liked.json"), nil),
		Cache:     tu.NewMemoryCache(),
		Output:    output,
	})
	return runner, output
}

// run executes a registered command line against the runner.
func run(t *testing.T, runner *Runner, args ...string) error {
	t.Helper()
	app := &cli.Command{Name: "navajuvala", Commands: runner.register()}
	return app.Run(context.Background(), append([]string{"navajuvala"}, args...))
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}
			mock := &tu.MockCatalog{}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
				Catalog:    mock,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.catalog != mock {
				t.Error("expected catalog to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("derives session and catalog from config", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.session == nil || runner.catalog == nil {
				t.Error("expected session store and catalog service to be wired")
			}
			if runner.guard == nil || runner.favorites == nil || runner.engine == nil {
				t.Error("expected guard, favorites and engine to be wired")
			}
		})

		t.Run("resolves relative storage paths under the user config dir", func(t *testing.T) {
			confDir := t.TempDir()
			t.Setenv("XDG_CONFIG_HOME", confDir)

			runner := NewRunner(RunnerOpts{
				Catalog: &tu.MockCatalog{},
				Output:  &bytes.Buffer{},
			})

			if err := run(t, runner, "liked", "toggle", "b1"); err != nil {
				t.Fatalf("toggle failed: %v", err)
			}

			want := filepath.Join(confDir, "navajuvala", "liked_books.json")
			if _, err := os.Stat(want); err != nil {
				t.Errorf("expected liked store at %s: %v", want, err)
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, true)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			expected := `{"key":"value"}` + "\n"
			if output.String() != expected {
				t.Errorf("expected %q, got %q", expected, output.String())
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			// channels cannot be marshaled to JSON
			err := runner.writeJSON(make(chan int), false)

			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)

			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlain("hello %s", "world"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "hello world" {
				t.Errorf("expected 'hello world', got %q", output.String())
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			if err := runner.writePlain("test"); err == nil {
				t.Fatal("expected error from failing writer")
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) == 0 {
			t.Error("expected at least one command to be registered")
		}

		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
			}
		}
	})
}

func TestCommands(t *testing.T) {
	t.Run("browse prints the filtered catalog", func(t *testing.T) {
		mock := &tu.MockCatalog{}
		runner, output := newTestRunner(t, mock, false)

		if err := run(t, runner, "browse", "--json"); err != nil {
			t.Fatalf("browse failed: %v", err)
		}
		if mock.CallCount("PublicBooks") != 1 {
			t.Errorf("expected one public fetch, got %d", mock.CallCount("PublicBooks"))
		}
		if !strings.HasSuffix(output.String(), "\n") {
			t.Error("expected JSON output")
		}
	})

	t.Run("admin commands refuse without a session", func(t *testing.T) {
		tc := []struct {
			name string
			args []string
		}{
			{name: "books list", args: []string{"books", "list"}},
			{name: "books delete", args: []string{"books", "delete", "--yes", "b1"}},
			{name: "records list", args: []string{"records", "list"}},
			{name: "stats", args: []string{"stats"}},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				mock := &tu.MockCatalog{}
				runner, _ := newTestRunner(t, mock, false)

				err := run(t, runner, tt.args...)
				if !errors.Is(err, shared.ErrNotAuthenticated) {
					t.Errorf("expected ErrNotAuthenticated, got %v", err)
				}
				if len(mock.Calls) != 0 {
					t.Errorf("no remote call may precede the guard, saw %v", mock.Calls)
				}
			})
		}
	})

	t.Run("books delete requires --yes", func(t *testing.T) {
		mock := &tu.MockCatalog{}
		runner, _ := newTestRunner(t, mock, true)

		err := run(t, runner, "books", "delete", "b1")
		if err == nil {
			t.Fatal("expected confirmation error")
		}
		if mock.CallCount("DeleteBook") != 0 {
			t.Error("unconfirmed delete must not reach the service")
		}
		if mock.CallCount("Book") != 0 {
			t.Error("no lookup should precede the confirmation")
		}

		if err := run(t, runner, "books", "delete", "--yes", "b1"); err != nil {
			t.Fatalf("confirmed delete failed: %v", err)
		}
		if mock.CallCount("DeleteBook") != 1 {
			t.Errorf("expected one delete call, got %d", mock.CallCount("DeleteBook"))
		}
	})

	t.Run("mutation notices name the book", func(t *testing.T) {
		mock := &tu.MockCatalog{
			BookFn: func(ctx context.Context, id string) (*models.Book, error) {
				return &models.Book{ID: id, Title: "Gitanjali"}, nil
			},
		}
		runner, output := newTestRunner(t, mock, true)

		if err := run(t, runner, "books", "delete", "--yes", "b1"); err != nil {
			t.Fatalf("confirmed delete failed: %v", err)
		}
		if !strings.Contains(output.String(), `"Gitanjali"`) {
			t.Errorf("notice should name the book, got %q", output.String())
		}
		if strings.Contains(output.String(), `"b1"`) {
			t.Errorf("notice should not fall back to the id, got %q", output.String())
		}
	})

	t.Run("liked toggle round trips", func(t *testing.T) {
		mock := &tu.MockCatalog{}
		runner, output := newTestRunner(t, mock, false)

		if err := run(t, runner, "liked", "toggle", "b1"); err != nil {
			t.Fatalf("toggle failed: %v", err)
		}
		if !runner.favorites.IsLiked("b1") {
			t.Error("toggle should persist the liked id")
		}

		output.Reset()
		if err := run(t, runner, "liked", "toggle", "b1"); err != nil {
			t.Fatalf("second toggle failed: %v", err)
		}
		if runner.favorites.IsLiked("b1") {
			t.Error("second toggle should remove the id")
		}
	})

	t.Run("stats prints counters", func(t *testing.T) {
		mock := &tu.MockCatalog{}
		runner, output := newTestRunner(t, mock, true)

		if err := run(t, runner, "stats"); err != nil {
			t.Fatalf("stats failed: %v", err)
		}
		if !strings.Contains(output.String(), "Books:") {
			t.Errorf("expected dashboard output, got %q", output.String())
		}
	})
}
