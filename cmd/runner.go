package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/akasheyy/navajuvala-frontend/internal/catalog"
	"github.com/akasheyy/navajuvala-frontend/internal/favorites"
	"github.com/akasheyy/navajuvala-frontend/internal/flows"
	"github.com/akasheyy/navajuvala-frontend/internal/services"
	"github.com/akasheyy/navajuvala-frontend/internal/session"
	"github.com/akasheyy/navajuvala-frontend/internal/shared"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	catalog    services.Catalog
	session    *session.Store
	guard      *session.Guard
	favorites  *favorites.Store
	cache      catalog.Cache
	browser    *catalog.Browser
	engine     *flows.Engine
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Catalog    services.Catalog
	Session    *session.Store
	Favorites  *favorites.Store
	Cache      catalog.Cache
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Session == nil {
		opts.Session = session.NewStore(shared.StateDir(opts.Config.Storage.TokenPath))
	}
	if opts.Catalog == nil {
		opts.Catalog = services.NewCatalogService(opts.Config.API.BaseURL, opts.HTTPClient, opts.Session, opts.Config.API.RateLimit)
	}
	if opts.Favorites == nil {
		opts.Favorites = favorites.NewStore(shared.StateDir(opts.Config.Storage.FavoritesPath), opts.Logger)
	}

	r := &Runner{
		config:     opts.Config,
		catalog:    opts.Catalog,
		session:    opts.Session,
		guard:      session.NewGuard(opts.Session),
		favorites:  opts.Favorites,
		cache:      opts.Cache,
		browser:    catalog.NewBrowser(opts.Catalog, opts.Cache, opts.Logger),
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}

	// Mutation outcomes print where the command output goes, not the log.
	notifier := flows.NotifierFunc(func(n flows.Notice) {
		if n.Success {
			r.writePlain("✓ %s: %s\n", n.Title, n.Detail)
		} else {
			r.writePlain("✗ %s: %s\n", n.Title, n.Detail)
		}
	})
	r.engine = flows.NewEngine(opts.Catalog, opts.Cache, notifier, opts.Logger)

	return r
}

// SetLogger swaps the runner's logger, for commands that must keep the
// terminal clear.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// requireAdmin stops admin commands before any remote call when no session
// token is present.
func (r *Runner) requireAdmin() error {
	if !r.guard.RequireSession().Authenticated {
		return fmt.Errorf("%w: run 'navajuvala login' first", shared.ErrNotAuthenticated)
	}
	return nil
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		browseCommand, bookCommand, likedCommand, loginCommand, logoutCommand,
		booksCommand, recordsCommand, statsCommand, exportCommand, setupCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
