package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/lineup/internal/repositories"
	"github.com/desertthunder/lineup/internal/services"
	"github.com/desertthunder/lineup/internal/shared"
	"github.com/desertthunder/lineup/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	extractor  services.Extractor
	artists    *repositories.ArtistRepository
	engine     tasks.ExtractionEngine
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Extractor  services.Extractor
	Artists    *repositories.ArtistRepository
	Engine     tasks.ExtractionEngine
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
	if opts.Extractor == nil {
		opts.Extractor = services.NewAnthropicService(opts.Config.Credentials.Anthropic, opts.HTTPClient)
	}
	if opts.Engine == nil {
		opts.Engine = tasks.NewLineupEngine(opts.Extractor, opts.Artists, opts.Config.Uploads.Dir)
	}

	return &Runner{
		config:     opts.Config,
		extractor:  opts.Extractor,
		artists:    opts.Artists,
		engine:     opts.Engine,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// SetLogger replaces the Runner's logger.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// rebuildDeps constructs the extractor, registry, and engine for a config
// loaded after startup, so a per-command config file applies to every
// section, credentials and database included.
func (r *Runner) rebuildDeps(config *shared.Config) (services.Extractor, *repositories.ArtistRepository, tasks.ExtractionEngine) {
	extractor := services.NewAnthropicService(config.Credentials.Anthropic, r.httpClient)

	var artists *repositories.ArtistRepository
	if config.Database.Path != "" {
		if db, err := shared.NewDatabase(config.Database.Path); err == nil {
			shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
			artists = repositories.NewArtistRepository(db)
		} else {
			r.logger.Warn("artist registry unavailable, every extracted name will be reported as new", "error", err)
		}
	}

	return extractor, artists, tasks.NewLineupEngine(extractor, artists, config.Uploads.Dir)
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		serveCommand, extractCommand, setupCommand, uploadsCommand,
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

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
